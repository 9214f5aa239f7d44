package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpx "github.com/probekit/headlessd/internal/http"
	"github.com/probekit/headlessd/internal/metrics"
	"github.com/probekit/headlessd/internal/report"
	"github.com/probekit/headlessd/internal/sink"
	"github.com/probekit/headlessd/pkg/config"
)

func buildSinks(outputs []string) []sink.Sink {
	var sinks []sink.Sink
	for _, out := range outputs {
		switch out {
		case "log":
			sinks = append(sinks, sink.NewLogSink())
		case "kafka":
			sinks = append(sinks, sink.NewKafkaSinkFromEnv())
		case "postgres":
			sinks = append(sinks, sink.NewPGSinkFromEnv())
		default:
			log.Printf("unknown output %q, skipping", out)
		}
	}
	return sinks
}

func main() {
	selftest := flag.Bool("selftest", false, "run canned snapshots through the detector and exit")
	flag.Parse()

	cfg := config.Load()
	m := metrics.InitMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sinks := buildSinks(cfg.Outputs)
	if len(sinks) == 0 {
		log.Printf("no outputs configured, falling back to log sink")
		sinks = []sink.Sink{sink.NewLogSink()}
	}
	for _, s := range sinks {
		if err := s.Start(ctx); err != nil {
			log.Fatalf("sink %s failed to start: %v", s.Name(), err)
		}
	}

	emit := func(r report.Report) {
		for _, s := range sinks {
			if err := s.Enqueue(r); err != nil {
				log.Printf("sink %s enqueue failed: %v", s.Name(), err)
				m.IncrementSinkErrors(s.Name(), "enqueue")
				continue
			}
			m.IncrementReportsIngested(s.Name())
		}
	}

	if *selftest {
		runSelftest(emit)
		for _, s := range sinks {
			_ = s.Close()
		}
		return
	}

	var auth *httpx.HMACAuth
	if cfg.HMACSecret != "" || cfg.RequireHMAC {
		auth = httpx.NewHMACAuth(cfg.HMACSecret, cfg.RequireHMAC)
	}

	env := httpx.Env{
		Cfg:      cfg,
		Emit:     emit,
		HMACAuth: auth,
		Tracker:  report.NewMemoryTimingTracker(),
		Metrics:  m,
	}

	metricsSrv := metrics.NewServer(metrics.LoadConfig())
	_ = metricsSrv.Start(ctx)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: httpx.NewMux(env),
	}

	go func() {
		log.Printf("headlessd listening on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)
	for _, s := range sinks {
		_ = s.Close()
	}
}
