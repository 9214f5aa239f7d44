package sink

import (
	"context"

	"github.com/probekit/headlessd/internal/report"
)

// Sink receives detection reports. Implementations must be safe for
// concurrent Enqueue calls.
type Sink interface {
	Start(ctx context.Context) error
	Enqueue(r report.Report) error
	Close() error
	Name() string // sink name for metrics and logging
}
