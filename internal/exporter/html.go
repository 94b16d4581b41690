package exporter

import (
	"fmt"
	"html"
	"strings"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
)

// ToHTML serializes a document back to the Netscape bookmark format, the
// inverse of the importer's accepted subset. Re-importing the output yields a
// structurally identical tree (ids are re-minted on import).
func ToHTML(doc *bookmarks.Document) string {
	var b strings.Builder

	title := "Bookmarks"
	if doc != nil && doc.Root != nil && strings.TrimSpace(doc.Root.Name) != "" {
		title = doc.Root.Name
	}

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	fmt.Fprintf(&b, "<TITLE>%s</TITLE>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<H1>%s</H1>\n", html.EscapeString(title))
	b.WriteString("<DL><p>\n")
	if doc != nil && doc.Root != nil {
		for _, child := range doc.Root.Children {
			writeNode(&b, child, 1)
		}
	}
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeNode(b *strings.Builder, n *bookmarks.Node, indent int) {
	prefix := strings.Repeat("    ", indent)

	if n.Type == bookmarks.NodeFolder {
		fmt.Fprintf(b, "%s<DT><H3%s>%s</H3>\n", prefix, folderAttrs(n), html.EscapeString(n.Name))
		writeDescription(b, n, prefix)
		fmt.Fprintf(b, "%s<DL><p>\n", prefix)
		for _, child := range n.Children {
			writeNode(b, child, indent+1)
		}
		fmt.Fprintf(b, "%s</DL><p>\n", prefix)
		return
	}

	fmt.Fprintf(b, "%s<DT><A%s>%s</A>\n", prefix, bookmarkAttrs(n), html.EscapeString(n.Name))
	writeDescription(b, n, prefix)
}

func writeDescription(b *strings.Builder, n *bookmarks.Node, prefix string) {
	if n.Description == "" {
		return
	}
	fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(n.Description))
}

func folderAttrs(n *bookmarks.Node) string {
	var b strings.Builder
	writeAttr(&b, "ADD_DATE", n.AddDate)
	writeAttr(&b, "LAST_MODIFIED", n.LastModified)
	if hasTag(n, "toolbar") {
		writeAttr(&b, "PERSONAL_TOOLBAR_FOLDER", "true")
	}
	return b.String()
}

func bookmarkAttrs(n *bookmarks.Node) string {
	var b strings.Builder
	writeAttr(&b, "HREF", n.URL)
	writeAttr(&b, "ADD_DATE", n.AddDate)
	writeAttr(&b, "LAST_MODIFIED", n.LastModified)
	writeAttr(&b, "ICON", n.Icon)
	if len(n.Tags) > 0 {
		writeAttr(&b, "TAGS", strings.Join(n.Tags, ","))
	}
	return b.String()
}

func writeAttr(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, " %s=\"%s\"", key, html.EscapeString(value))
}

func hasTag(n *bookmarks.Node, tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
