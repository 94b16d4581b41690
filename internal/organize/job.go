package organize

import "time"

// Status is the lifecycle state of a classification job.
//
//	pending -> running -> succeeded | failed | cancelled
//	pending -> cancelled (cancel before start)
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether a job can no longer change status.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusCancelled
}

// Snapshot is the externally visible record of one classification job.
// Callers never mutate snapshots; all updates go through the Manager as
// whole-record replacements.
type Snapshot struct {
	ID              string     `json:"id"`
	Status          Status     `json:"status"`
	Strategy        string     `json:"strategy"`
	StrategyLabel   string     `json:"strategyLabel"`
	Locale          string     `json:"locale"`
	TotalBookmarks  int        `json:"totalBookmarks"`
	CancelRequested bool       `json:"cancelRequested"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	FinishedAt      *time.Time `json:"finishedAt,omitempty"`
	Result          *Result    `json:"result,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// Result holds the validated plan of a succeeded job together with the raw
// model output it was extracted from.
type Result struct {
	Plan       *Plan  `json:"plan"`
	RawContent string `json:"rawContent"`
	Usage      *Usage `json:"usage,omitempty"`
}

// Usage mirrors the token accounting of the classification endpoint.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// InputBookmark is one leaf handed to a classification job. Only ID is
// required; the other fields feed the digest builder.
type InputBookmark struct {
	ID               string `json:"id"`
	Name             string `json:"name,omitempty"`
	URL              string `json:"url,omitempty"`
	Domain           string `json:"domain,omitempty"`
	Trail            string `json:"trail,omitempty"`
	ParentFolderName string `json:"parentFolderName,omitempty"`
}
