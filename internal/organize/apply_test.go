package organize

import (
	"testing"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
)

func applyDoc() *bookmarks.Document {
	root := &bookmarks.Node{
		Type: bookmarks.NodeFolder, ID: "root", Name: "All bookmarks",
		Children: []*bookmarks.Node{
			{Type: bookmarks.NodeBookmark, ID: "b1", Name: "Go", URL: "https://go.dev"},
			{Type: bookmarks.NodeBookmark, ID: "b2", Name: "News", URL: "https://news.test"},
			{Type: bookmarks.NodeBookmark, ID: "b3", Name: "Shop", URL: "https://shop.test"},
		},
	}
	return bookmarks.NewDocument(root, "test")
}

func applyInput() []InputBookmark {
	return []InputBookmark{
		{ID: "b1", Name: "Go"},
		{ID: "b2", Name: "News"},
		{ID: "b3", Name: "Shop"},
	}
}

func TestApplyPlan(t *testing.T) {
	doc := applyDoc()
	plan := &Plan{Groups: []PlanGroup{
		{Name: "Dev", Bookmarks: []PlanBookmark{{ID: "b1", Title: "Go homepage"}}},
		{Name: "Reading", Bookmarks: []PlanBookmark{{ID: "b2"}}},
	}}

	out := ApplyPlan(doc, applyInput(), plan, "")

	if out == doc {
		t.Fatal("ApplyPlan() must return a new document")
	}
	if len(doc.Root.Children) != 3 {
		t.Fatal("input document was mutated")
	}

	container := out.Root.Children[len(out.Root.Children)-1]
	if container.Name != "Organized bookmarks" {
		t.Errorf("container name = %q, want default", container.Name)
	}
	// Dev, Reading, plus the synthesized residual for b3.
	if len(container.Children) != 3 {
		t.Fatalf("got %d groups, want 3", len(container.Children))
	}

	dev := container.Children[0]
	if dev.Name != "Dev" || len(dev.Children) != 1 {
		t.Fatalf("dev group = %+v", dev)
	}
	clone := dev.Children[0]
	if clone.Name != "Go homepage" {
		t.Errorf("clone name = %q, want plan rename", clone.Name)
	}
	if clone.URL != "https://go.dev" {
		t.Errorf("clone url = %q, want original", clone.URL)
	}
	if clone.ID == "b1" {
		t.Error("clone must get a fresh id")
	}

	residual := container.Children[2]
	if residual.Name != ResidualGroupName {
		t.Errorf("residual group = %q, want %q", residual.Name, ResidualGroupName)
	}
	if len(residual.Children) != 1 || residual.Children[0].Name != "Shop" {
		t.Errorf("residual children = %+v, want the unclaimed Shop", residual.Children)
	}
}

func TestApplyPlanReusesRecognizedResidualGroup(t *testing.T) {
	doc := applyDoc()
	plan := &Plan{Groups: []PlanGroup{
		{Name: "Dev", Bookmarks: []PlanBookmark{{ID: "b1"}}},
		{Name: "Other", Bookmarks: []PlanBookmark{{ID: "b2"}}},
	}}

	out := ApplyPlan(doc, applyInput(), plan, "")
	container := out.Root.Children[len(out.Root.Children)-1]

	if len(container.Children) != 2 {
		t.Fatalf("got %d groups, want 2 (no synthesized residual)", len(container.Children))
	}
	other := container.Children[1]
	if len(other.Children) != 2 {
		t.Errorf("recognized catch-all should absorb the unclaimed bookmark, got %d children", len(other.Children))
	}
}

func TestApplyPlanUnrecognizedCatchAllName(t *testing.T) {
	doc := applyDoc()
	plan := &Plan{Groups: []PlanGroup{
		{Name: "Everything else", Bookmarks: []PlanBookmark{{ID: "b1"}}},
	}}

	out := ApplyPlan(doc, applyInput(), plan, "")
	container := out.Root.Children[len(out.Root.Children)-1]

	// Model-invented names outside the recognized set get their own group and a
	// separate residual is synthesized.
	if len(container.Children) != 2 {
		t.Fatalf("got %d groups, want 2", len(container.Children))
	}
	if container.Children[1].Name != ResidualGroupName {
		t.Errorf("second group = %q, want synthesized %q", container.Children[1].Name, ResidualGroupName)
	}
	if len(container.Children[1].Children) != 2 {
		t.Errorf("residual should hold b2 and b3, got %d", len(container.Children[1].Children))
	}
}

func TestApplyPlanNeverDropsInputs(t *testing.T) {
	doc := applyDoc()
	plan := &Plan{Groups: []PlanGroup{
		{Name: "Dev", Bookmarks: []PlanBookmark{{ID: "b1"}, {ID: "unknown-id"}}},
	}}

	out := ApplyPlan(doc, applyInput(), plan, "My container")
	container := out.Root.Children[len(out.Root.Children)-1]
	if container.Name != "My container" {
		t.Errorf("container name = %q, want caller override", container.Name)
	}

	total := 0
	for _, group := range container.Children {
		total += len(group.Children)
	}
	if total != 3 {
		t.Errorf("container holds %d bookmarks, want all 3 inputs", total)
	}
}

func TestApplyPlanRestamps(t *testing.T) {
	doc := applyDoc()
	plan := &Plan{Groups: []PlanGroup{
		{Name: "Dev", Bookmarks: []PlanBookmark{{ID: "b1"}}},
	}}

	out := ApplyPlan(doc, applyInput(), plan, "")

	// 3 originals plus 3 clones: b1 claimed, b2 and b3 in the residual group.
	want := doc.Statistics.TotalBookmarks * 2
	if out.Statistics.TotalBookmarks != want {
		t.Errorf("TotalBookmarks = %d, want %d after cloning", out.Statistics.TotalBookmarks, want)
	}
	if out.Statistics.TotalFolders != 3 {
		t.Errorf("TotalFolders = %d, want container + Dev + residual", out.Statistics.TotalFolders)
	}
}

func TestApplyPlanNilSafety(t *testing.T) {
	doc := applyDoc()
	if got := ApplyPlan(doc, applyInput(), nil, ""); got != doc {
		t.Error("nil plan should return the input document")
	}
	if got := ApplyPlan(nil, applyInput(), &Plan{}, ""); got != nil {
		t.Error("nil document should pass through")
	}
}
