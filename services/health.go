package services

import (
	"context"
	"net/http"
	"time"

	"ingest-keeper/internal/compose"
	"ingest-keeper/internal/logger"
	"ingest-keeper/internal/models"
	"ingest-keeper/internal/utils"
)

// HTTPDoer is the slice of http.Client the poller needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type SleepFunc func(time.Duration)

// ReadinessPoller is the bounded-retry readiness gate. TimedOut is returned
// as data, never as an error.
type ReadinessPoller interface {
	PollUntilReady(ctx context.Context, probe models.ReadinessProbe, maxAttempts int, interval time.Duration) models.PollOutcome
}

/**
 * Bounded-retry health poller
 * @description
 * - Retries a readiness probe up to maxAttempts times, sleeping interval
 *   between attempts; terminates after at most maxAttempts checks
 * - On exhaustion, dumps the last tailLines of aggregate service logs as a
 *   diagnostic before returning TimedOut
 * - The only component in the system with an internal retry loop
 */
type HealthPoller struct {
	client    HTTPDoer
	sleep     SleepFunc
	runner    compose.Runner
	tailLines int
	tailSink  func(string)
}

func NewHealthPoller(runner compose.Runner, tailLines int) *HealthPoller {
	return &HealthPoller{
		client:    &http.Client{Timeout: 5 * time.Second},
		sleep:     time.Sleep,
		runner:    runner,
		tailLines: tailLines,
	}
}

// SetTailSink redirects the timeout log dump, e.g. to the terminal printer.
func (p *HealthPoller) SetTailSink(sink func(string)) {
	p.tailSink = sink
}

func (p *HealthPoller) PollUntilReady(ctx context.Context, probe models.ReadinessProbe, maxAttempts int, interval time.Duration) models.PollOutcome {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result := models.HealthCheckResult{
			Attempt:   attempt,
			Timestamp: time.Now(),
			Outcome:   models.CheckNotReady,
		}
		if p.checkOnce(ctx, probe) {
			result.Outcome = models.CheckReady
			logger.Infof("Readiness check succeeded on attempt %d/%d", result.Attempt, maxAttempts)
			return models.PollReady
		}
		logger.Debugf("Readiness attempt %d/%d: not ready", result.Attempt, maxAttempts)
		if attempt < maxAttempts {
			p.sleep(interval)
		}
	}

	p.dumpLogs(ctx)
	return models.PollTimedOut
}

// checkOnce runs a single probe attempt. "Still starting" is an ordinary
// false, never an error.
func (p *HealthPoller) checkOnce(ctx context.Context, probe models.ReadinessProbe) bool {
	switch probe.Type {
	case models.ProbeHTTP:
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, probe.URL, nil)
		if err != nil {
			return false
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode >= 200 && resp.StatusCode < 300
	case models.ProbeTCP:
		return utils.CheckPortConnectable(probe.Port)
	case models.ProbeExec:
		if p.runner == nil || len(probe.Command) == 0 {
			return false
		}
		_, err := p.runner.Exec(ctx, probe.Service, probe.Command...)
		return err == nil
	case models.ProbeNone, "":
		return true
	default:
		logger.Warnf("Unknown probe type %q, treating as not ready", probe.Type)
		return false
	}
}

func (p *HealthPoller) dumpLogs(ctx context.Context) {
	if p.runner == nil || p.tailLines <= 0 {
		return
	}
	out, err := p.runner.Tail(ctx, p.tailLines)
	if err != nil {
		logger.Errorf("Failed to capture service logs after timeout: %v", err)
		return
	}
	logger.Errorf("Readiness polling exhausted, last %d log lines follow", p.tailLines)
	if p.tailSink != nil {
		p.tailSink(out)
	} else {
		logger.Error(out)
	}
}
