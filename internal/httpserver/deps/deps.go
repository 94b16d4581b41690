package deps

import (
	"time"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/logger"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/organize"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/store"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time    // for testing, defaults to time.Now
	Documents      store.DocumentStore // persistence port for bookmark documents
	Jobs           *organize.Manager   // classification job engine
	DefaultOwner   string              // owner used when no X-Owner-ID header is sent
	MaxImportBytes int64               // upload size ceiling for imports
	TrustProxy     bool                // true if running behind a trusted reverse proxy
	JobRateBurst   int                 // rate-limit burst for job creation
	JobRatePerMin  int                 // rate-limit refill for job creation
}
