package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"github.com/probekit/headlessd/internal/report"
)

// PGSink batches reports and inserts them into a Postgres table as
// JSONB rows.
type PGSink struct {
	dsn        string
	table      string
	batchSize  int
	flushEvery time.Duration

	db *sql.DB

	mu    sync.Mutex
	buf   []report.Report
	done  chan struct{}
	wg    sync.WaitGroup
	began bool
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validateTableName rejects anything that could smuggle SQL through
// the identifier position.
func validateTableName(name string) error {
	if len(name) > 63 {
		return fmt.Errorf("table name %q exceeds the 63 character identifier limit", name)
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// NewPGSinkFromEnv creates a PGSink from environment variables.
func NewPGSinkFromEnv() *PGSink {
	return NewPGSink(
		os.Getenv("PG_DSN"),
		getEnvOr("PG_TABLE", "detection_reports"),
	)
}

func NewPGSink(dsn, table string) *PGSink {
	return &PGSink{
		dsn:        dsn,
		table:      table,
		batchSize:  100,
		flushEvery: 2 * time.Second,
		done:       make(chan struct{}),
	}
}

func (s *PGSink) Start(ctx context.Context) error {
	if err := validateTableName(s.table); err != nil {
		return err
	}
	if s.dsn == "" {
		return fmt.Errorf("pg sink: PG_DSN not set")
	}

	db, err := sql.Open("postgres", s.dsn)
	if err != nil {
		return fmt.Errorf("pg sink: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("pg sink: ping: %w", err)
	}
	s.db = db
	s.began = true

	s.wg.Add(1)
	go s.flushLoop(ctx)
	return nil
}

func (s *PGSink) Enqueue(r report.Report) error {
	s.mu.Lock()
	s.buf = append(s.buf, r)
	full := len(s.buf) >= s.batchSize
	s.mu.Unlock()

	if full {
		return s.flush()
	}
	return nil
}

func (s *PGSink) flushLoop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.flushEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.flush(); err != nil {
				log.Printf("pg sink: flush: %v", err)
			}
		}
	}
}

func (s *PGSink) flush() error {
	s.mu.Lock()
	batch := s.buf
	s.buf = nil
	s.mu.Unlock()

	if len(batch) == 0 || s.db == nil {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	// Table name is validated at Start; only values are parameterized.
	stmt, err := tx.Prepare(fmt.Sprintf(
		`INSERT INTO %s (report_id, ts, payload) VALUES ($1, $2, $3)`, s.table))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range batch {
		payload, err := json.Marshal(r)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("marshal report %s: %w", r.ReportID, err)
		}
		if _, err := stmt.Exec(r.ReportID, r.TS, payload); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert report %s: %w", r.ReportID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PGSink) Close() error {
	if !s.began {
		return nil
	}
	close(s.done)
	s.wg.Wait()
	err := s.flush()
	if s.db != nil {
		if cerr := s.db.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (s *PGSink) Name() string { return "postgres" }
