package bookmarks

import "testing"

func bookmark(id, name string) *Node {
	return &Node{Type: NodeBookmark, ID: id, Name: name, URL: "https://example.com/" + id}
}

func folder(id, name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Type: NodeFolder, ID: id, Name: name, Children: children}
}

func sampleDoc() *Document {
	root := folder("root", "All bookmarks",
		folder("dev", "Dev",
			bookmark("b1", "Go"),
			folder("tools", "Tools",
				bookmark("b2", "GitHub"),
			),
		),
		bookmark("b3", "News"),
	)
	return NewDocument(root, "test")
}

func TestCalculateStatistics(t *testing.T) {
	tests := []struct {
		name          string
		root          *Node
		wantFolders   int
		wantBookmarks int
	}{
		{name: "empty root", root: NewRoot(), wantFolders: 0, wantBookmarks: 0},
		{name: "nil root", root: nil, wantFolders: 0, wantBookmarks: 0},
		{name: "bookmark root", root: bookmark("b", "x"), wantFolders: 0, wantBookmarks: 0},
		{
			name:          "nested tree",
			root:          sampleDoc().Root,
			wantFolders:   2,
			wantBookmarks: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStatistics(tt.root)
			if got.TotalFolders != tt.wantFolders {
				t.Errorf("TotalFolders = %d, want %d", got.TotalFolders, tt.wantFolders)
			}
			if got.TotalBookmarks != tt.wantBookmarks {
				t.Errorf("TotalBookmarks = %d, want %d", got.TotalBookmarks, tt.wantBookmarks)
			}
		})
	}
}

func TestStatisticsCountEveryNodeOnce(t *testing.T) {
	doc := sampleDoc()
	stats := CalculateStatistics(doc.Root)

	// Every node is either the root, a counted folder or a counted bookmark.
	var total func(n *Node) int
	total = func(n *Node) int {
		count := 1
		for _, c := range n.Children {
			count += total(c)
		}
		return count
	}
	if got := stats.TotalFolders + stats.TotalBookmarks + 1; got != total(doc.Root) {
		t.Errorf("folders+bookmarks+root = %d, want %d nodes", got, total(doc.Root))
	}
}

func TestCollectFolderOptions(t *testing.T) {
	doc := sampleDoc()
	options := CollectFolderOptions(doc)

	if len(options) != 3 {
		t.Fatalf("got %d options, want 3 (root, dev, tools)", len(options))
	}

	wantIDs := []string{"root", "dev", "tools"}
	wantDepths := []int{0, 1, 2}
	for i, opt := range options {
		if opt.ID != wantIDs[i] {
			t.Errorf("options[%d].ID = %q, want %q (pre-order)", i, opt.ID, wantIDs[i])
		}
		if opt.Depth != wantDepths[i] {
			t.Errorf("options[%d].Depth = %d, want %d", i, opt.Depth, wantDepths[i])
		}
		if len(opt.Trail) != opt.Depth+1 {
			t.Errorf("options[%d] trail length = %d, want depth+1 = %d", i, len(opt.Trail), opt.Depth+1)
		}
		if opt.Trail[len(opt.Trail)-1].ID != opt.ID {
			t.Errorf("options[%d] trail must end at the folder itself", i)
		}
	}

	if options[1].DirectBookmarkCount != 1 {
		t.Errorf("dev direct bookmark count = %d, want 1", options[1].DirectBookmarkCount)
	}
}

func TestCollectFolderOptionsUntitled(t *testing.T) {
	doc := NewDocument(folder("root", "All bookmarks", folder("f", "   ")), "test")
	options := CollectFolderOptions(doc)
	if len(options) != 2 {
		t.Fatalf("got %d options, want 2", len(options))
	}
	if options[1].Name != UntitledFolderName {
		t.Errorf("blank folder name = %q, want %q", options[1].Name, UntitledFolderName)
	}
}

func TestFindFolderWithTrail(t *testing.T) {
	doc := sampleDoc()

	found, trail := FindFolderWithTrail(doc.Root, "tools")
	if found == nil {
		t.Fatal("FindFolderWithTrail() returned nil for existing folder")
	}
	if len(trail) != 3 {
		t.Fatalf("trail length = %d, want 3", len(trail))
	}
	if trail[0].ID != "root" || trail[2].ID != "tools" {
		t.Errorf("trail = %v, want root..tools", trail)
	}

	// Bookmark ids never match.
	if found, _ := FindFolderWithTrail(doc.Root, "b1"); found != nil {
		t.Error("FindFolderWithTrail() matched a bookmark id")
	}
	if found, _ := FindFolderWithTrail(doc.Root, "missing"); found != nil {
		t.Error("FindFolderWithTrail() matched an unknown id")
	}
}
