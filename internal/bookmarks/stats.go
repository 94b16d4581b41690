package bookmarks

import "strings"

// UntitledFolderName is the placeholder shown for folders with a blank name.
const UntitledFolderName = "untitled folder"

// TrailItem is one step of the id/name chain from the root to a folder.
type TrailItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderOption is a flat read model for folder pickers. Options are emitted in
// pre-order so a UI can rebuild indentation from Depth alone.
type FolderOption struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Depth               int         `json:"depth"`
	Trail               []TrailItem `json:"trail"`
	DirectBookmarkCount int         `json:"directBookmarkCount"`
}

// CalculateStatistics walks the tree and counts folders (excluding the root
// itself) and bookmarks. A non-folder root yields zeros.
func CalculateStatistics(root *Node) Statistics {
	if root == nil || root.Type != NodeFolder {
		return Statistics{}
	}
	folders, bookmarks := countNodes(root)
	return Statistics{
		TotalFolders:   folders - 1,
		TotalBookmarks: bookmarks,
	}
}

func countNodes(n *Node) (folders, bookmarks int) {
	if n.Type == NodeBookmark {
		return 0, 1
	}
	folders = 1
	for _, child := range n.Children {
		cf, cb := countNodes(child)
		folders += cf
		bookmarks += cb
	}
	return folders, bookmarks
}

// CollectFolderOptions flattens every folder of the document, root included,
// into pre-order FolderOptions.
func CollectFolderOptions(doc *Document) []FolderOption {
	if doc == nil || doc.Root == nil || doc.Root.Type != NodeFolder {
		return []FolderOption{}
	}
	options := []FolderOption{}
	collectFolders(doc.Root, 0, nil, &options)
	return options
}

func collectFolders(n *Node, depth int, parentTrail []TrailItem, out *[]FolderOption) {
	if n.Type != NodeFolder {
		return
	}

	trail := make([]TrailItem, len(parentTrail), len(parentTrail)+1)
	copy(trail, parentTrail)
	trail = append(trail, TrailItem{ID: n.ID, Name: displayName(n.Name)})

	direct := 0
	for _, child := range n.Children {
		if child.Type == NodeBookmark {
			direct++
		}
	}

	*out = append(*out, FolderOption{
		ID:                  n.ID,
		Name:                displayName(n.Name),
		Depth:               depth,
		Trail:               trail,
		DirectBookmarkCount: direct,
	})

	for _, child := range n.Children {
		collectFolders(child, depth+1, trail, out)
	}
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return UntitledFolderName
	}
	return name
}

// FindFolderWithTrail locates the first folder with the given id, depth-first,
// and returns it together with the id/name chain from the root. Bookmark ids
// never match. Returns (nil, nil) when absent.
func FindFolderWithTrail(root *Node, folderID string) (*Node, []TrailItem) {
	if root == nil || root.Type != NodeFolder {
		return nil, nil
	}
	return findFolder(root, folderID, nil)
}

func findFolder(n *Node, folderID string, parentTrail []TrailItem) (*Node, []TrailItem) {
	trail := make([]TrailItem, len(parentTrail), len(parentTrail)+1)
	copy(trail, parentTrail)
	trail = append(trail, TrailItem{ID: n.ID, Name: displayName(n.Name)})

	if n.ID == folderID {
		return n, trail
	}
	for _, child := range n.Children {
		if child.Type != NodeFolder {
			continue
		}
		if found, t := findFolder(child, folderID, trail); found != nil {
			return found, t
		}
	}
	return nil, nil
}
