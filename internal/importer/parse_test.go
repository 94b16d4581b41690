package importer

import (
	"encoding/json"
	"testing"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
)

const chromeSample = `{
  "roots": {
    "other": {
      "type": "folder",
      "name": "Other bookmarks",
      "children": [
        {"type": "url", "name": "Example", "url": "https://example.com", "date_added": "13300000000000000"}
      ]
    },
    "bookmark_bar": {
      "type": "folder",
      "name": "Bookmarks bar",
      "date_added": "13200000000000000",
      "children": [
        {"type": "url", "name": "Go", "url": "https://go.dev"}
      ]
    },
    "zzz_custom": {
      "type": "folder",
      "name": "Custom",
      "children": []
    }
  }
}`

func TestParseChromeRootOrder(t *testing.T) {
	doc, err := ParseChrome([]byte(chromeSample), "chrome")
	if err != nil {
		t.Fatalf("ParseChrome() error = %v", err)
	}

	if len(doc.Root.Children) != 3 {
		t.Fatalf("got %d root children, want 3", len(doc.Root.Children))
	}
	wantNames := []string{"Bookmarks bar", "Other bookmarks", "Custom"}
	for i, want := range wantNames {
		if got := doc.Root.Children[i].Name; got != want {
			t.Errorf("root child[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestParseChromeToolbarTag(t *testing.T) {
	doc, err := ParseChrome([]byte(chromeSample), "chrome")
	if err != nil {
		t.Fatalf("ParseChrome() error = %v", err)
	}

	bar := doc.Root.Children[0]
	found := false
	for _, tag := range bar.Tags {
		if tag == "toolbar" {
			found = true
		}
	}
	if !found {
		t.Errorf("bookmarks bar tags = %v, want toolbar marker", bar.Tags)
	}
}

func TestParseChromeStatistics(t *testing.T) {
	doc, err := ParseChrome([]byte(chromeSample), "chrome")
	if err != nil {
		t.Fatalf("ParseChrome() error = %v", err)
	}
	if doc.Statistics.TotalFolders != 3 || doc.Statistics.TotalBookmarks != 2 {
		t.Errorf("statistics = %+v, want 3 folders / 2 bookmarks", doc.Statistics)
	}
}

func TestParseChromeSkipsUnknownTypes(t *testing.T) {
	input := `{"roots":{"other":{"type":"folder","name":"Other","children":[
		{"type":"separator"},
		{"type":"url","name":"Kept","url":"https://kept.test"}
	]}}}`
	doc, err := ParseChrome([]byte(input), "chrome")
	if err != nil {
		t.Fatalf("ParseChrome() error = %v", err)
	}
	other := doc.Root.Children[0]
	if len(other.Children) != 1 || other.Children[0].Name != "Kept" {
		t.Errorf("children = %+v, want only the url entry", other.Children)
	}
}

func TestParseChromeNoRoots(t *testing.T) {
	if _, err := ParseChrome([]byte(`{"roots":{}}`), "chrome"); err == nil {
		t.Error("ParseChrome() with empty roots should fail")
	}
}

func TestParseSniffsFormat(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "netscape html", data: "<!DOCTYPE NETSCAPE-Bookmark-file-1>\n<DL><p></DL><p>"},
		{name: "bare dl", data: "<DL><p><DT><A HREF=\"https://x.test\">X</A></DL><p>"},
		{name: "chrome json", data: chromeSample},
		{name: "canonical json", data: `{"version":1,"root":{"type":"folder","id":"r","name":"All bookmarks","children":[]}}`},
		{name: "unknown json", data: `{"foo":1}`, wantErr: true},
		{name: "garbage", data: "neither html nor json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.data), "test")
			if tt.wantErr {
				if err == nil {
					t.Error("Parse() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if doc == nil || doc.Root == nil {
				t.Fatal("Parse() returned nil document")
			}
		})
	}
}

func TestParseCanonicalRemintsMissingIDs(t *testing.T) {
	input := `{"root":{"type":"folder","name":"All bookmarks","children":[
		{"type":"bookmark","name":"NoID","url":"https://x.test"},
		{"type":"folder","id":"keep-me","name":"Kept"}
	]}}`

	doc, err := ParseCanonical([]byte(input), "backup")
	if err != nil {
		t.Fatalf("ParseCanonical() error = %v", err)
	}

	if doc.Root.ID == "" {
		t.Error("root id was not minted")
	}
	if doc.Root.Children[0].ID == "" {
		t.Error("bookmark id was not minted")
	}
	if doc.Root.Children[1].ID != "keep-me" {
		t.Errorf("existing id rewritten to %q", doc.Root.Children[1].ID)
	}
	if doc.Root.Children[1].Children == nil {
		t.Error("folder without children should get an empty slice")
	}

	if doc.Version != 1 {
		t.Errorf("version = %d, want defaulted 1", doc.Version)
	}
	if doc.Generator != bookmarks.Generator {
		t.Errorf("generator = %q, want defaulted %q", doc.Generator, bookmarks.Generator)
	}
	if doc.Source != "backup" {
		t.Errorf("source = %q, want defaulted backup", doc.Source)
	}
	if doc.Statistics.TotalFolders != 1 || doc.Statistics.TotalBookmarks != 1 {
		t.Errorf("statistics = %+v, want recomputed 1/1", doc.Statistics)
	}
}

func TestParseCanonicalRoundTrip(t *testing.T) {
	root := &bookmarks.Node{
		Type: bookmarks.NodeFolder, ID: "r", Name: "All bookmarks",
		Children: []*bookmarks.Node{
			{Type: bookmarks.NodeBookmark, ID: "b", Name: "Go", URL: "https://go.dev", Tags: []string{"dev"}},
		},
	}
	orig := bookmarks.NewDocument(root, "test")

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := Parse(data, "reimport")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if parsed.Source != "test" {
		t.Errorf("source = %q, want original preserved", parsed.Source)
	}
	if parsed.Root.Children[0].ID != "b" {
		t.Error("canonical re-import must preserve ids")
	}
	if parsed.Statistics != orig.Statistics {
		t.Errorf("statistics = %+v, want %+v", parsed.Statistics, orig.Statistics)
	}
}
