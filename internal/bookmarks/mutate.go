package bookmarks

// Structural mutators. All operations are pure: the input document is never
// touched, untouched subtrees are shared by reference, and a no-op returns the
// input document itself so callers can detect "nothing changed" with ==.
// Statistics are deliberately left stale; callers Restamp after a batch.

// ReorderBookmark moves one bookmark to targetIndex among the bookmark-typed
// children of the folder identified by folderID. Sibling folders keep their
// positions; only the relative order of bookmark siblings changes. The target
// index is clamped. Unknown folder or bookmark ids are a no-op.
func ReorderBookmark(doc *Document, folderID, bookmarkID string, targetIndex int) *Document {
	if doc == nil || doc.Root == nil {
		return doc
	}
	newRoot, changed := reorderIn(doc.Root, folderID, bookmarkID, targetIndex)
	if !changed {
		return doc
	}
	out := *doc
	out.Root = newRoot
	return &out
}

func reorderIn(n *Node, folderID, bookmarkID string, targetIndex int) (*Node, bool) {
	if n.Type != NodeFolder {
		return n, false
	}
	if n.ID == folderID {
		children, changed := reorderChildren(n.Children, bookmarkID, targetIndex)
		if !changed {
			return n, false
		}
		out := *n
		out.Children = children
		return &out, true
	}
	for i, child := range n.Children {
		updated, changed := reorderIn(child, folderID, bookmarkID, targetIndex)
		if !changed {
			continue
		}
		return withChild(n, i, updated), true
	}
	return n, false
}

func reorderChildren(children []*Node, bookmarkID string, targetIndex int) ([]*Node, bool) {
	var current []*Node
	for _, c := range children {
		if c.Type == NodeBookmark {
			current = append(current, c)
		}
	}

	source := -1
	for i, b := range current {
		if b.ID == bookmarkID {
			source = i
			break
		}
	}
	if source == -1 {
		return nil, false
	}

	reordered := make([]*Node, 0, len(current))
	reordered = append(reordered, current[:source]...)
	reordered = append(reordered, current[source+1:]...)

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(reordered) {
		targetIndex = len(reordered)
	}
	reordered = append(reordered[:targetIndex], append([]*Node{current[source]}, reordered[targetIndex:]...)...)

	same := true
	for i := range current {
		if current[i] != reordered[i] {
			same = false
			break
		}
	}
	if same {
		return nil, false
	}

	// Re-interleave the reordered bookmarks back into the slots the original
	// bookmarks occupied, leaving folder siblings untouched.
	out := make([]*Node, len(children))
	next := 0
	for i, c := range children {
		if c.Type == NodeBookmark {
			out[i] = reordered[next]
			next++
		} else {
			out[i] = c
		}
	}
	return out, true
}

// RenameBookmark replaces the name of the first bookmark with the given id.
// No-op when the id is unknown or the name is already newName.
func RenameBookmark(doc *Document, bookmarkID, newName string) *Document {
	return renameDoc(doc, bookmarkID, newName, NodeBookmark)
}

// RenameFolder replaces the name of the first folder with the given id.
// No-op when the id is unknown or the name is already newName.
func RenameFolder(doc *Document, folderID, newName string) *Document {
	return renameDoc(doc, folderID, newName, NodeFolder)
}

func renameDoc(doc *Document, id, newName string, kind NodeType) *Document {
	if doc == nil || doc.Root == nil {
		return doc
	}
	newRoot, changed := renameIn(doc.Root, id, newName, kind)
	if !changed {
		return doc
	}
	out := *doc
	out.Root = newRoot
	return &out
}

func renameIn(n *Node, id, newName string, kind NodeType) (*Node, bool) {
	if n.Type == kind && n.ID == id {
		if n.Name == newName {
			return n, false
		}
		out := *n
		out.Name = newName
		return &out, true
	}
	if n.Type != NodeFolder {
		return n, false
	}
	for i, child := range n.Children {
		updated, changed := renameIn(child, id, newName, kind)
		if !changed {
			continue
		}
		return withChild(n, i, updated), true
	}
	return n, false
}

// withChild clones n with a single replaced child, sharing all siblings.
func withChild(n *Node, index int, child *Node) *Node {
	children := make([]*Node, len(n.Children))
	copy(children, n.Children)
	children[index] = child
	out := *n
	out.Children = children
	return &out
}

// FindNode returns the first node of any type with the given id, or nil.
func FindNode(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if found := FindNode(child, id); found != nil {
			return found
		}
	}
	return nil
}
