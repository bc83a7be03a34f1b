package services

import (
	"context"
	"strings"
	"time"

	"ingest-keeper/internal/compose"
	"ingest-keeper/internal/config"
	"ingest-keeper/internal/logger"
	"ingest-keeper/internal/models"
)

/**
 * Idempotent model provisioner
 * @description
 * - Ensures the tuned model exists in the inference engine catalog exactly
 *   once: if the identifier is already listed, nothing mutating runs
 * - Starts the engine service first (prerequisite, owned by the
 *   orchestrator) and waits a fixed settle interval before querying it;
 *   there is deliberately no readiness polling here
 * - Creation transfers the Modelfile into the engine container and invokes
 *   the create command; a nonzero exit is fatal
 */
type Provisioner struct {
	runner compose.Runner
	cfg    config.ProvisionConfig
	sleep  SleepFunc
}

func NewProvisioner(runner compose.Runner, cfg config.ProvisionConfig) *Provisioner {
	return &Provisioner{
		runner: runner,
		cfg:    cfg,
		sleep:  time.Sleep,
	}
}

func (p *Provisioner) Provision(ctx context.Context) (models.ProvisionOutcome, error) {
	if err := p.runner.Up(ctx, p.cfg.Engine); err != nil {
		return "", &models.ProvisioningError{Model: p.cfg.Model, Err: err}
	}
	p.sleep(time.Duration(p.cfg.SettleSeconds) * time.Second)

	listing, err := p.runner.Exec(ctx, p.cfg.Engine, "ollama", "list")
	if err != nil {
		return "", &models.ProvisioningError{Model: p.cfg.Model, Err: err}
	}
	if catalogHasModel(listing, p.cfg.Model) {
		logger.Infof("Model [%s] already present, skipping creation", p.cfg.Model)
		return models.ProvisionAlreadyExists, nil
	}

	logger.Infof("Model [%s] not found, creating from %s", p.cfg.Model, p.cfg.Modelfile)
	if err := p.runner.Cp(ctx, p.cfg.Modelfile, p.cfg.Engine, p.cfg.RemotePath); err != nil {
		return "", &models.ProvisioningError{Model: p.cfg.Model, Err: err}
	}
	if _, err := p.runner.Exec(ctx, p.cfg.Engine, "ollama", "create", p.cfg.Model, "-f", p.cfg.RemotePath); err != nil {
		return "", &models.ProvisioningError{Model: p.cfg.Model, Err: err}
	}
	logger.Infof("Model [%s] created", p.cfg.Model)
	return models.ProvisionCreated, nil
}

// catalogHasModel matches the identifier by substring per listing line, the
// same contract a name/grep lookup gives.
func catalogHasModel(listing, model string) bool {
	for _, line := range strings.Split(listing, "\n") {
		if strings.Contains(line, model) {
			return true
		}
	}
	return false
}
