package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingest-keeper/internal/models"
)

func newTestPoller(doer HTTPDoer, runner *fakeRunner) (*HealthPoller, *[]time.Duration) {
	slept := []time.Duration{}
	p := &HealthPoller{
		client:    doer,
		runner:    runner,
		tailLines: 50,
		sleep: func(d time.Duration) {
			slept = append(slept, d)
		},
	}
	return p, &slept
}

func TestPollUntilReadyIsBounded(t *testing.T) {
	doer := &seqDoer{}
	runner := &fakeRunner{tailOut: "api | boom"}
	p, slept := newTestPoller(doer, runner)

	probe := models.ReadinessProbe{Type: models.ProbeHTTP, URL: "http://localhost:8000/health"}
	outcome := p.PollUntilReady(context.Background(), probe, 5, time.Second)

	assert.Equal(t, models.PollTimedOut, outcome)
	assert.Equal(t, 5, doer.calls, "must attempt exactly maxAttempts checks")
	// No sleep after the final attempt.
	require.Len(t, *slept, 4)
	for _, d := range *slept {
		assert.Equal(t, time.Second, d)
	}
	// Timeout dumps the bounded log window as a diagnostic.
	assert.Equal(t, 1, runner.countCalls("tail"))
}

func TestPollUntilReadySucceedsOnSecondAttempt(t *testing.T) {
	doer := &seqDoer{codes: []int{0, 200}}
	p, _ := newTestPoller(doer, &fakeRunner{})

	probe := models.ReadinessProbe{Type: models.ProbeHTTP, URL: "http://localhost:8000/health"}
	outcome := p.PollUntilReady(context.Background(), probe, 3, 0)

	assert.Equal(t, models.PollReady, outcome)
	assert.Equal(t, 2, doer.calls, "must stop polling once ready")
}

func TestPollUntilReadyNon2xxIsNotReady(t *testing.T) {
	doer := &seqDoer{codes: []int{503, 500, 201}}
	p, _ := newTestPoller(doer, &fakeRunner{})

	probe := models.ReadinessProbe{Type: models.ProbeHTTP, URL: "http://localhost:8000/health"}
	outcome := p.PollUntilReady(context.Background(), probe, 3, 0)

	assert.Equal(t, models.PollReady, outcome)
	assert.Equal(t, 3, doer.calls)
}

func TestPollExecProbe(t *testing.T) {
	runner := &fakeRunner{
		execOut: map[string]string{"postgres pg_isready": "accepting connections"},
	}
	p, _ := newTestPoller(&seqDoer{}, runner)

	probe := models.ReadinessProbe{
		Type:    models.ProbeExec,
		Service: "postgres",
		Command: []string{"pg_isready"},
	}
	outcome := p.PollUntilReady(context.Background(), probe, 1, 0)

	assert.Equal(t, models.PollReady, outcome)
	assert.Equal(t, 1, runner.countCalls("exec postgres pg_isready"))
}

func TestPollTailSink(t *testing.T) {
	runner := &fakeRunner{tailOut: "last lines"}
	p, _ := newTestPoller(&seqDoer{}, runner)

	var captured string
	p.SetTailSink(func(out string) { captured = out })

	probe := models.ReadinessProbe{Type: models.ProbeHTTP, URL: "http://localhost:8000/health"}
	p.PollUntilReady(context.Background(), probe, 1, 0)

	assert.Equal(t, "last lines", captured)
}
