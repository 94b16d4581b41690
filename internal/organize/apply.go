package organize

import (
	"strings"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
)

// ResidualGroupName names the synthesized catch-all group for bookmarks no
// plan group claimed.
const ResidualGroupName = "Miscellaneous"

// residualNames are the recognized catch-all group names. A plan group with
// one of these names absorbs the unclaimed bookmarks instead of a new group
// being synthesized. Model-invented catch-all names outside this set get
// their own group like any other.
var residualNames = map[string]bool{
	"miscellaneous": true,
	"misc":          true,
	"other":         true,
	"others":        true,
	"uncategorized": true,
	"未分类":           true,
	"其他":            true,
}

// ApplyPlan grafts a succeeded plan onto the document: a new folder under the
// root with one child folder per group, each holding fresh-id clones of the
// claimed bookmarks (renamed when the plan says so). Input bookmarks no group
// claimed land in a residual group, so the operation never drops an input.
// The result is a new document; statistics and timestamp are restamped.
func ApplyPlan(doc *bookmarks.Document, input []InputBookmark, plan *Plan, containerName string) *bookmarks.Document {
	if doc == nil || doc.Root == nil || plan == nil {
		return doc
	}
	if containerName == "" {
		containerName = "Organized bookmarks"
	}

	container := &bookmarks.Node{
		Type:     bookmarks.NodeFolder,
		ID:       bookmarks.NewID(),
		Name:     containerName,
		Children: []*bookmarks.Node{},
	}

	claimed := make(map[string]bool)
	var residualFolder *bookmarks.Node
	for _, group := range plan.Groups {
		folder := &bookmarks.Node{
			Type:     bookmarks.NodeFolder,
			ID:       bookmarks.NewID(),
			Name:     group.Name,
			Children: []*bookmarks.Node{},
		}
		for _, ref := range group.Bookmarks {
			node := cloneBookmarkFresh(doc.Root, ref.ID, ref.Title)
			if node == nil {
				continue
			}
			claimed[ref.ID] = true
			folder.Children = append(folder.Children, node)
		}
		container.Children = append(container.Children, folder)
		if residualFolder == nil && residualNames[strings.ToLower(group.Name)] {
			residualFolder = folder
		}
	}

	// Collect every input bookmark the plan left unclaimed.
	var residual []*bookmarks.Node
	for _, bm := range input {
		if claimed[bm.ID] {
			continue
		}
		if node := cloneBookmarkFresh(doc.Root, bm.ID, ""); node != nil {
			residual = append(residual, node)
		}
	}
	if len(residual) > 0 {
		if residualFolder == nil {
			residualFolder = &bookmarks.Node{
				Type:     bookmarks.NodeFolder,
				ID:       bookmarks.NewID(),
				Name:     ResidualGroupName,
				Children: []*bookmarks.Node{},
			}
			container.Children = append(container.Children, residualFolder)
		}
		residualFolder.Children = append(residualFolder.Children, residual...)
	}

	newRoot := *doc.Root
	newRoot.Children = make([]*bookmarks.Node, len(doc.Root.Children), len(doc.Root.Children)+1)
	copy(newRoot.Children, doc.Root.Children)
	newRoot.Children = append(newRoot.Children, container)

	out := *doc
	out.Root = &newRoot
	return bookmarks.Restamp(&out)
}

// cloneBookmarkFresh looks a bookmark up by id and returns a fresh-id clone,
// optionally renamed. Folder ids and unknown ids yield nil.
func cloneBookmarkFresh(root *bookmarks.Node, id, newName string) *bookmarks.Node {
	found := bookmarks.FindNode(root, id)
	if found == nil || found.Type != bookmarks.NodeBookmark {
		return nil
	}
	clone := bookmarks.CloneNode(found)
	clone.ID = bookmarks.NewID()
	if newName != "" {
		clone.Name = newName
	}
	return clone
}
