package organize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MaxPlanGroups caps how many groups a plan may contain. Decoding stops
// accepting groups beyond the cap even if the model sent more.
const MaxPlanGroups = 30

// ErrEmptyPlan is returned when a decode yields zero usable groups after
// filtering. An empty plan is a failure, never an empty success.
var ErrEmptyPlan = errors.New("plan contains no usable groups")

// Plan is the classifier's proposed regrouping of the input bookmarks.
type Plan struct {
	Groups []PlanGroup `json:"groups"`
}

// PlanGroup is one proposed folder with its claimed bookmarks.
type PlanGroup struct {
	Name      string         `json:"name"`
	Bookmarks []PlanBookmark `json:"bookmarks"`
}

// PlanBookmark references one input bookmark, optionally renamed.
type PlanBookmark struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// DecodePlan extracts and validates a plan from raw model text. knownIDs is
// the set of input bookmark ids; unknown and duplicate references are silently
// dropped, groups without a name or without any surviving reference are
// dropped, and the group count is capped at MaxPlanGroups.
func DecodePlan(raw string, knownIDs map[string]bool) (*Plan, error) {
	msg, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var decoded Plan
	if err := json.Unmarshal(msg, &decoded); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if len(decoded.Groups) == 0 {
		return nil, ErrEmptyPlan
	}

	claimed := make(map[string]bool)
	plan := &Plan{}
	for _, group := range decoded.Groups {
		if len(plan.Groups) >= MaxPlanGroups {
			break
		}
		name := strings.TrimSpace(group.Name)
		if name == "" {
			continue
		}
		var kept []PlanBookmark
		for _, bm := range group.Bookmarks {
			if !knownIDs[bm.ID] || claimed[bm.ID] {
				continue
			}
			claimed[bm.ID] = true
			kept = append(kept, PlanBookmark{ID: bm.ID, Title: strings.TrimSpace(bm.Title)})
		}
		if len(kept) == 0 {
			continue
		}
		plan.Groups = append(plan.Groups, PlanGroup{Name: name, Bookmarks: kept})
	}

	if len(plan.Groups) == 0 {
		return nil, ErrEmptyPlan
	}
	return plan, nil
}
