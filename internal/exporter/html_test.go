package exporter

import (
	"strings"
	"testing"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/importer"
)

func exportDoc() *bookmarks.Document {
	root := &bookmarks.Node{
		Type: bookmarks.NodeFolder, ID: "root", Name: "My bookmarks",
		Children: []*bookmarks.Node{
			{
				Type: bookmarks.NodeFolder, ID: "bar", Name: "Bookmarks bar",
				AddDate: "100", LastModified: "200", Tags: []string{"toolbar"},
				Children: []*bookmarks.Node{
					{
						Type: bookmarks.NodeBookmark, ID: "b1", Name: "Go <stdlib>",
						URL: "https://go.dev?a=1&b=2", AddDate: "150",
						Icon: "data:image/png;base64,AAAA", Tags: []string{"dev", "go"},
						Description: "The Go website",
					},
				},
			},
			{Type: bookmarks.NodeBookmark, ID: "b2", Name: "News", URL: "https://news.test"},
		},
	}
	return bookmarks.NewDocument(root, "test")
}

func TestToHTMLStructure(t *testing.T) {
	out := ToHTML(exportDoc())

	for _, want := range []string{
		"<!DOCTYPE NETSCAPE-Bookmark-file-1>",
		"<TITLE>My bookmarks</TITLE>",
		"<H1>My bookmarks</H1>",
		`PERSONAL_TOOLBAR_FOLDER="true"`,
		`HREF="https://go.dev?a=1&amp;b=2"`,
		`ADD_DATE="150"`,
		`ICON="data:image/png;base64,AAAA"`,
		`TAGS="dev,go"`,
		"Go &lt;stdlib&gt;",
		"<DD>The Go website",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestToHTMLEmptyDocument(t *testing.T) {
	out := ToHTML(bookmarks.NewDocument(bookmarks.NewRoot(), "test"))
	if !strings.Contains(out, "<DL><p>") || !strings.Contains(out, "</DL><p>") {
		t.Errorf("empty export missing list wrapper:\n%s", out)
	}
}

// The export is the inverse of the importer's accepted subset: re-importing
// must reproduce the same structure, names, urls and metadata (ids re-minted).
func TestRoundTripStructuralIdempotence(t *testing.T) {
	orig := exportDoc()

	once, err := importer.Parse([]byte(ToHTML(orig)), "roundtrip")
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	twice, err := importer.Parse([]byte(ToHTML(once)), "roundtrip")
	if err != nil {
		t.Fatalf("second re-import failed: %v", err)
	}

	if once.Statistics != orig.Statistics {
		t.Errorf("statistics after re-import = %+v, want %+v", once.Statistics, orig.Statistics)
	}
	assertSameShape(t, orig.Root, once.Root)
	assertSameShape(t, once.Root, twice.Root)
}

func assertSameShape(t *testing.T, want, got *bookmarks.Node) {
	t.Helper()
	if want.Type != got.Type {
		t.Fatalf("type mismatch: %s vs %s", want.Type, got.Type)
	}
	if want.Name != got.Name {
		t.Errorf("name %q != %q", want.Name, got.Name)
	}
	if want.URL != got.URL {
		t.Errorf("url %q != %q", want.URL, got.URL)
	}
	if want.AddDate != got.AddDate || want.LastModified != got.LastModified {
		t.Errorf("timestamps %q/%q != %q/%q", want.AddDate, want.LastModified, got.AddDate, got.LastModified)
	}
	if want.Description != got.Description {
		t.Errorf("description %q != %q", want.Description, got.Description)
	}
	if len(want.Children) != len(got.Children) {
		t.Fatalf("children count %d != %d under %q", len(want.Children), len(got.Children), want.Name)
	}
	for i := range want.Children {
		assertSameShape(t, want.Children[i], got.Children[i])
	}
}
