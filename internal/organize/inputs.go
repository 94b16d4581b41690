package organize

import (
	"net/url"
	"strings"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
)

// CollectInputs flattens the bookmarks of a document into classification
// inputs. When folderID is non-empty only that subtree is collected; an
// unknown folderID yields an empty slice.
func CollectInputs(doc *bookmarks.Document, folderID string) []InputBookmark {
	if doc == nil || doc.Root == nil {
		return nil
	}

	start := doc.Root
	trail := []string{doc.Root.Name}
	if folderID != "" && folderID != doc.Root.ID {
		found, foundTrail := bookmarks.FindFolderWithTrail(doc.Root, folderID)
		if found == nil {
			return nil
		}
		start = found
		trail = make([]string, 0, len(foundTrail))
		for _, item := range foundTrail {
			trail = append(trail, item.Name)
		}
	}

	var out []InputBookmark
	collectInputs(start, trail, &out)
	return out
}

func collectInputs(folder *bookmarks.Node, trail []string, out *[]InputBookmark) {
	for _, child := range folder.Children {
		switch child.Type {
		case bookmarks.NodeBookmark:
			*out = append(*out, InputBookmark{
				ID:               child.ID,
				Name:             child.Name,
				URL:              child.URL,
				Domain:           hostOf(child.URL),
				Trail:            strings.Join(trail, " / "),
				ParentFolderName: folder.Name,
			})
		case bookmarks.NodeFolder:
			collectInputs(child, append(trail, child.Name), out)
		}
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
