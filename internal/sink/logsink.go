package sink

import (
	"context"
	"encoding/json"
	"log"

	"github.com/probekit/headlessd/internal/report"
)

// LogSink writes each report as one JSON line to the standard logger.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

func (s *LogSink) Start(ctx context.Context) error { return nil }

func (s *LogSink) Enqueue(r report.Report) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	log.Printf("report %s", string(b))
	return nil
}

func (s *LogSink) Close() error { return nil }

func (s *LogSink) Name() string { return "log" }
