package organize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// digestTier controls how verbose each bookmark digest is allowed to be. The
// tier shrinks as the input grows so the full prompt stays under a fixed token
// ceiling, and shrinks again on retry attempts.
type digestTier struct {
	maxName       int
	maxURL        int
	includeURL    bool
	includeDomain bool
	includeFolder bool
	includeTrail  bool
}

func tierFor(total, attempt int) digestTier {
	var t digestTier
	switch {
	case total <= 60:
		t = digestTier{maxName: 80, maxURL: 100, includeURL: true, includeDomain: true, includeFolder: true, includeTrail: true}
	case total <= 150:
		t = digestTier{maxName: 60, includeDomain: true, includeFolder: true, includeTrail: true}
	case total <= 300:
		t = digestTier{maxName: 40, includeDomain: true, includeFolder: true}
	default:
		t = digestTier{maxName: 24, includeDomain: true}
	}

	if attempt > 1 {
		// Stricter retry budget: drop the trail and tighten lengths.
		t.includeTrail = false
		t.includeURL = false
		if t.maxName > 32 {
			t.maxName = 32
		}
	}
	return t
}

// digestEntry is the compact per-bookmark record embedded in the prompt.
type digestEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Domain string `json:"domain,omitempty"`
	URL    string `json:"url,omitempty"`
	Folder string `json:"folder,omitempty"`
	Trail  string `json:"trail,omitempty"`
}

func buildDigests(input []InputBookmark, tier digestTier) []digestEntry {
	out := make([]digestEntry, 0, len(input))
	for _, bm := range input {
		entry := digestEntry{
			ID:   bm.ID,
			Name: truncate(bm.Name, tier.maxName),
		}
		if tier.includeDomain {
			entry.Domain = bm.Domain
		}
		if tier.includeURL {
			entry.URL = truncate(bm.URL, tier.maxURL)
		}
		if tier.includeFolder {
			entry.Folder = bm.ParentFolderName
		}
		if tier.includeTrail {
			entry.Trail = bm.Trail
		}
		out = append(out, entry)
	}
	return out
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

const retryNotice = "Your previous output was invalid JSON. Respond with JSON only, no prose, no code fences."

// BuildPrompt renders the user message for one attempt: strategy instructions,
// output contract, and the digest list sized for the attempt.
func BuildPrompt(strategy Strategy, locale string, input []InputBookmark, attempt int) string {
	tier := tierFor(len(input), attempt)
	digests := buildDigests(input, tier)
	payload, _ := json.Marshal(digests)

	var b strings.Builder
	b.WriteString("You are organizing a user's browser bookmarks into folders.\n\n")
	b.WriteString(strategy.Instructions)
	b.WriteString("\n\n")
	if locale != "" {
		fmt.Fprintf(&b, "Write all group names in the '%s' locale.\n", locale)
	}
	fmt.Fprintf(&b, "Use at most %d groups.\n", MaxPlanGroups)
	b.WriteString(`Respond with a single JSON object of the form
{"groups":[{"name":"Group name","bookmarks":[{"id":"<id>","title":"optional new title"}]}]}
Only use the bookmark ids listed below. Do not invent ids. Omit "title" to keep the current name.`)
	if attempt > 1 {
		b.WriteString("\n")
		b.WriteString(retryNotice)
	}
	b.WriteString("\n\nBookmarks:\n")
	b.Write(payload)
	return b.String()
}
