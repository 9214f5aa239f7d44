package probe

import (
	"context"
	"time"
)

// WorkerResult is the outcome of the only asynchronous probe. A worker
// that never answers is not itself evidence of automation, so timeout
// and error resolve to Available:false with Suspicious:false; a worker
// that answers with a different navigator identity than the main
// thread is a strong signal.
type WorkerResult struct {
	Available         bool   `json:"available"`
	Suspicious        bool   `json:"suspicious"`
	UserAgentMismatch bool   `json:"user_agent_mismatch"`
	PlatformMismatch  bool   `json:"platform_mismatch"`
	UserAgent         string `json:"user_agent,omitempty"`
	Platform          string `json:"platform,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// WorkerTimeout bounds the wait for the worker echo.
const WorkerTimeout = 1000 * time.Millisecond

// Worker races the Env's worker echo against the fixed timeout and the
// caller's context. Exactly one branch wins; every branch returns a
// complete result and never an error.
func Worker(ctx context.Context, env Env) WorkerResult {
	type outcome struct {
		echo WorkerEcho
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		echo, err := env.WorkerEcho(ctx)
		ch <- outcome{echo, err}
	}()

	timer := time.NewTimer(WorkerTimeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		if out.err != nil {
			return WorkerResult{Reason: out.err.Error()}
		}
		return compareEcho(env.Navigator(), out.echo)
	case <-timer.C:
		return WorkerResult{Reason: "Worker timeout"}
	case <-ctx.Done():
		return WorkerResult{Reason: ctx.Err().Error()}
	}
}

func compareEcho(nav NavigatorInfo, echo WorkerEcho) WorkerResult {
	res := WorkerResult{
		Available: true,
		UserAgent: echo.UserAgent,
		Platform:  echo.Platform,
	}
	res.UserAgentMismatch = echo.UserAgent != nav.UserAgent
	res.PlatformMismatch = echo.Platform != nav.Platform
	res.Suspicious = res.UserAgentMismatch || res.PlatformMismatch
	return res
}
