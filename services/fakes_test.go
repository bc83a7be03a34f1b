package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ingest-keeper/internal/models"
)

// fakeRunner is a scriptable compose.Runner that records every call.
type fakeRunner struct {
	calls []string

	upErr    error
	stopErr  error
	buildErr error
	execOut  map[string]string
	execErr  map[string]error
	psStates []models.ContainerState
	psErr    error
	tailOut  string
	tailErr  error
	cpErr    error
	infoErr  error
	onExec   func(service string, command []string)
}

func (f *fakeRunner) record(format string, v ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, v...))
}

func (f *fakeRunner) Up(ctx context.Context, services ...string) error {
	f.record("up %s", strings.Join(services, ","))
	return f.upErr
}

func (f *fakeRunner) Stop(ctx context.Context) error {
	f.record("stop")
	return f.stopErr
}

func (f *fakeRunner) Build(ctx context.Context) error {
	f.record("build")
	return f.buildErr
}

func (f *fakeRunner) Ps(ctx context.Context) ([]models.ContainerState, error) {
	f.record("ps")
	return f.psStates, f.psErr
}

func (f *fakeRunner) Logs(ctx context.Context, services ...string) error {
	f.record("logs %s", strings.Join(services, ","))
	return nil
}

func (f *fakeRunner) Tail(ctx context.Context, lines int) (string, error) {
	f.record("tail %d", lines)
	return f.tailOut, f.tailErr
}

func (f *fakeRunner) Exec(ctx context.Context, service string, command ...string) (string, error) {
	key := service + " " + strings.Join(command, " ")
	f.record("exec %s", key)
	if f.onExec != nil {
		f.onExec(service, command)
	}
	if err, ok := f.execErr[key]; ok && err != nil {
		return "", err
	}
	return f.execOut[key], nil
}

func (f *fakeRunner) Cp(ctx context.Context, src, service, dst string) error {
	f.record("cp %s %s:%s", src, service, dst)
	return f.cpErr
}

func (f *fakeRunner) Info(ctx context.Context) error {
	f.record("info")
	return f.infoErr
}

func (f *fakeRunner) Prune(ctx context.Context) error {
	f.record("prune")
	return nil
}

func (f *fakeRunner) countCalls(prefix string) int {
	n := 0
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

// fakeDoer serves scripted HTTP responses per URL; unknown URLs fail.
type fakeDoer struct {
	status map[string]int
	errs   map[string]error
	hits   map[string]int
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	if f.hits == nil {
		f.hits = map[string]int{}
	}
	f.hits[url]++
	if err, ok := f.errs[url]; ok && err != nil {
		return nil, err
	}
	code, ok := f.status[url]
	if !ok {
		return nil, fmt.Errorf("connection refused: %s", url)
	}
	return &http.Response{StatusCode: code, Body: http.NoBody}, nil
}

// seqDoer answers with one scripted status per successive call.
type seqDoer struct {
	codes []int
	calls int
}

func (f *seqDoer) Do(req *http.Request) (*http.Response, error) {
	f.calls++
	if f.calls > len(f.codes) {
		return nil, fmt.Errorf("connection refused")
	}
	code := f.codes[f.calls-1]
	if code == 0 {
		return nil, fmt.Errorf("connection refused")
	}
	return &http.Response{StatusCode: code, Body: http.NoBody}, nil
}
