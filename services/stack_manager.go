package services

import (
	"context"
	"time"

	"ingest-keeper/internal/compose"
	"ingest-keeper/internal/config"
	"ingest-keeper/internal/logger"
	"ingest-keeper/internal/models"
)

// Collaborator surfaces, split so call ordering is assertable in tests.
type PreflightValidator interface {
	Validate() error
}

type ModelProvisioner interface {
	Provision(ctx context.Context) (models.ProvisionOutcome, error)
}

type ServiceOrchestrator interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
}

/**
 * Stack manager, the composition root behind the lifecycle commands.
 * @description
 * - start: preflight -> runtime environment check -> provision -> tiered
 *   start -> bounded API readiness gate; fail-fast, a failed phase stops
 *   everything after it
 * - Correctness precondition: at most one invocation runs at a time against
 *   a given deployment; nothing enforces this, concurrent invocations can
 *   race on provisioning and startup
 */
type StackManager struct {
	validator   PreflightValidator
	provisioner ModelProvisioner
	orch        ServiceOrchestrator
	poller      ReadinessPoller
	envCheck    func(ctx context.Context) error
	apiProbe    models.ReadinessProbe
	attempts    int
	interval    time.Duration
}

var stackManager *StackManager
var runner compose.Runner

// GetRunner returns the shared container runtime handle.
func GetRunner() compose.Runner {
	if runner == nil {
		runner = compose.NewDockerCompose(&config.Config.Compose)
	}
	return runner
}

func GetStackManager() *StackManager {
	if stackManager != nil {
		return stackManager
	}
	cfg := &config.Config
	r := GetRunner()
	poller := NewHealthPoller(r, cfg.Health.TailLines)

	stackManager = &StackManager{
		validator:   NewValidator(&cfg.Preflight),
		provisioner: NewProvisioner(r, cfg.Provision),
		orch:        NewOrchestrator(r, poller, cfg),
		poller:      poller,
		envCheck: func(ctx context.Context) error {
			if err := r.Info(ctx); err != nil {
				return &models.EnvironmentError{Reason: "container runtime is not available", Err: err}
			}
			return nil
		},
		apiProbe: models.ReadinessProbe{
			Type: models.ProbeHTTP,
			URL:  cfg.Endpoints.API + "/health",
		},
		attempts: cfg.Health.MaxAttempts,
		interval: time.Duration(cfg.Health.IntervalSeconds) * time.Second,
	}
	return stackManager
}

// SetDiagnosticSink routes the timeout log dump to the terminal printer.
// Keeps presentation out of the core packages.
func (sm *StackManager) SetDiagnosticSink(sink func(string)) {
	if hp, ok := sm.poller.(*HealthPoller); ok {
		hp.SetTailSink(sink)
	}
}

func (sm *StackManager) Start(ctx context.Context) error {
	if err := sm.validator.Validate(); err != nil {
		return err
	}
	if err := sm.envCheck(ctx); err != nil {
		return err
	}
	outcome, err := sm.provisioner.Provision(ctx)
	if err != nil {
		return err
	}
	logger.Infof("Provisioning outcome: %s", outcome)
	if err := sm.orch.Start(ctx); err != nil {
		return err
	}
	return sm.gate(ctx)
}

func (sm *StackManager) Stop(ctx context.Context) error {
	return sm.orch.Stop(ctx)
}

func (sm *StackManager) Restart(ctx context.Context) error {
	if err := sm.orch.Restart(ctx); err != nil {
		return err
	}
	return sm.gate(ctx)
}

// gate is the readiness gate higher-level commands rely on, as opposed to
// the orchestrator's per-tier barriers.
func (sm *StackManager) gate(ctx context.Context) error {
	if sm.poller.PollUntilReady(ctx, sm.apiProbe, sm.attempts, sm.interval) == models.PollTimedOut {
		return &models.HealthTimeoutError{Target: "api", Attempts: sm.attempts}
	}
	return nil
}
