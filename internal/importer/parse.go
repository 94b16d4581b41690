package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
)

// Parse sniffs the upload format and dispatches to the matching parser:
// Netscape HTML exports, Chromium "Bookmarks" JSON, or a previously exported
// canonical document.
func Parse(data []byte, sourceLabel string) (*bookmarks.Document, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	if looksLikeHTML(trimmed) {
		return ParseNetscape(string(data), sourceLabel), nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("unsupported bookmark format: %w", err)
	}
	if _, ok := probe["roots"]; ok {
		return ParseChrome(trimmed, sourceLabel)
	}
	if _, ok := probe["root"]; ok {
		return ParseCanonical(trimmed, sourceLabel)
	}
	return nil, fmt.Errorf("unsupported bookmark JSON: expected chromium or canonical structure")
}

func looksLikeHTML(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("<")) {
		return false
	}
	lower := strings.ToLower(string(data[:min(len(data), 512)]))
	return strings.Contains(lower, "netscape-bookmark") ||
		strings.Contains(lower, "<dl") ||
		strings.Contains(lower, "<!doctype") ||
		strings.Contains(lower, "<html")
}

// ParseCanonical re-hydrates a canonical JSON document. Missing node ids are
// re-minted; folders get empty child slices.
func ParseCanonical(raw []byte, sourceLabel string) (*bookmarks.Document, error) {
	var doc bookmarks.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse canonical bookmarks: %w", err)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("parse canonical bookmarks: missing root")
	}

	normalizeCanonical(doc.Root)

	if doc.Version == 0 {
		doc.Version = 1
	}
	if doc.Generator == "" {
		doc.Generator = bookmarks.Generator
	}
	if doc.Source == "" {
		doc.Source = sourceLabel
	}
	doc.Statistics = bookmarks.CalculateStatistics(doc.Root)
	return &doc, nil
}

func normalizeCanonical(n *bookmarks.Node) {
	if n.ID == "" {
		n.ID = bookmarks.NewID()
	}
	if n.Type == bookmarks.NodeFolder && n.Children == nil {
		n.Children = []*bookmarks.Node{}
	}
	for _, child := range n.Children {
		normalizeCanonical(child)
	}
}
