package importer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
)

// chromeRootOrder is the preferred emission order for Chromium root folders.
var chromeRootOrder = []string{"bookmark_bar", "other", "synced", "mobile", "trash"}

type chromeFile struct {
	Roots map[string]chromeNode `json:"roots"`
}

type chromeNode struct {
	Type         string       `json:"type"`
	Name         string       `json:"name"`
	URL          string       `json:"url"`
	DateAdded    string       `json:"date_added"`
	DateModified string       `json:"date_modified"`
	DateLastUsed string       `json:"date_last_used"`
	Special      string       `json:"special"`
	Children     []chromeNode `json:"children"`
}

// ParseChrome converts a Chromium "Bookmarks" JSON file into a canonical
// document. Separators and unknown entry types are skipped.
func ParseChrome(raw []byte, sourceLabel string) (*bookmarks.Document, error) {
	var file chromeFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse chrome bookmarks: %w", err)
	}
	if len(file.Roots) == 0 {
		return nil, fmt.Errorf("parse chrome bookmarks: no roots")
	}

	root := bookmarks.NewRoot()
	seen := map[string]bool{}

	appendRoot := func(key string) {
		data, ok := file.Roots[key]
		if !ok || seen[key] {
			return
		}
		seen[key] = true
		converted := convertChromeNode(data)
		if converted == nil {
			return
		}
		if isToolbarName(converted.Name) {
			converted.Tags = append(converted.Tags, "toolbar")
		}
		root.Children = append(root.Children, converted)
	}

	for _, key := range chromeRootOrder {
		appendRoot(key)
	}

	// Remaining roots in stable order.
	rest := make([]string, 0, len(file.Roots))
	for key := range file.Roots {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		appendRoot(key)
	}

	return bookmarks.NewDocument(root, sourceLabel), nil
}

func convertChromeNode(n chromeNode) *bookmarks.Node {
	lastModified := n.DateModified
	if lastModified == "" {
		lastModified = n.DateLastUsed
	}

	switch n.Type {
	case "folder":
		folder := &bookmarks.Node{
			Type:         bookmarks.NodeFolder,
			ID:           bookmarks.NewID(),
			Name:         n.Name,
			Children:     []*bookmarks.Node{},
			AddDate:      n.DateAdded,
			LastModified: lastModified,
		}
		if n.Special != "" {
			folder.Tags = []string{n.Special}
		}
		for _, child := range n.Children {
			if converted := convertChromeNode(child); converted != nil {
				folder.Children = append(folder.Children, converted)
			}
		}
		return folder
	case "url", "bookmark":
		return &bookmarks.Node{
			Type:         bookmarks.NodeBookmark,
			ID:           bookmarks.NewID(),
			Name:         n.Name,
			URL:          n.URL,
			AddDate:      n.DateAdded,
			LastModified: lastModified,
		}
	}
	return nil
}

func isToolbarName(name string) bool {
	switch strings.ToLower(name) {
	case "bookmark bar", "bookmarks bar", "书签栏":
		return true
	}
	return false
}
