package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingest-keeper/internal/models"
)

type countingValidator struct {
	calls int
	err   error
}

func (c *countingValidator) Validate() error {
	c.calls++
	return c.err
}

type countingProvisioner struct {
	calls   int
	outcome models.ProvisionOutcome
	err     error
}

func (c *countingProvisioner) Provision(ctx context.Context) (models.ProvisionOutcome, error) {
	c.calls++
	return c.outcome, c.err
}

type countingOrch struct {
	startCalls   int
	stopCalls    int
	restartCalls int
	startErr     error
}

func (c *countingOrch) Start(ctx context.Context) error {
	c.startCalls++
	return c.startErr
}

func (c *countingOrch) Stop(ctx context.Context) error {
	c.stopCalls++
	return nil
}

func (c *countingOrch) Restart(ctx context.Context) error {
	c.restartCalls++
	return nil
}

type stackFixture struct {
	sm          *StackManager
	validator   *countingValidator
	provisioner *countingProvisioner
	orch        *countingOrch
	poller      *fakePoller
	envCalls    *int
}

func newStackFixture() *stackFixture {
	validator := &countingValidator{}
	provisioner := &countingProvisioner{outcome: models.ProvisionAlreadyExists}
	orch := &countingOrch{}
	poller := &fakePoller{}
	envCalls := 0

	sm := &StackManager{
		validator:   validator,
		provisioner: provisioner,
		orch:        orch,
		poller:      poller,
		envCheck: func(ctx context.Context) error {
			envCalls++
			return nil
		},
		apiProbe: models.ReadinessProbe{Type: models.ProbeHTTP, URL: "http://localhost:8000/health"},
		attempts: 3,
		interval: time.Second,
	}
	return &stackFixture{sm: sm, validator: validator, provisioner: provisioner, orch: orch, poller: poller, envCalls: &envCalls}
}

func TestStartHappyPath(t *testing.T) {
	fx := newStackFixture()

	require.NoError(t, fx.sm.Start(context.Background()))

	assert.Equal(t, 1, fx.validator.calls)
	assert.Equal(t, 1, *fx.envCalls)
	assert.Equal(t, 1, fx.provisioner.calls)
	assert.Equal(t, 1, fx.orch.startCalls)
	assert.Len(t, fx.poller.polled, 1, "readiness gate runs once")
}

func TestStartFailsFastOnValidation(t *testing.T) {
	fx := newStackFixture()
	fx.validator.err = &models.ValidationError{MissingFiles: []string{"backend/config.py"}}

	err := fx.sm.Start(context.Background())
	require.Error(t, err)

	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, *fx.envCalls, "environment check must not run after failed validation")
	assert.Zero(t, fx.provisioner.calls, "provisioning must not run after failed validation")
	assert.Zero(t, fx.orch.startCalls, "orchestration must not run after failed validation")
	assert.Empty(t, fx.poller.polled)
}

func TestStartFailsFastOnEnvironment(t *testing.T) {
	fx := newStackFixture()
	fx.sm.envCheck = func(ctx context.Context) error {
		return &models.EnvironmentError{Reason: "container runtime is not available"}
	}

	err := fx.sm.Start(context.Background())
	require.Error(t, err)
	assert.Zero(t, fx.provisioner.calls)
	assert.Zero(t, fx.orch.startCalls)
}

func TestStartFailsFastOnProvisioning(t *testing.T) {
	fx := newStackFixture()
	fx.provisioner.err = &models.ProvisioningError{Model: "codellama-q", Err: errors.New("exit status 1")}

	err := fx.sm.Start(context.Background())
	require.Error(t, err)
	assert.Zero(t, fx.orch.startCalls, "orchestration must not run after failed provisioning")
}

func TestStartReturnsHealthTimeoutAsError(t *testing.T) {
	fx := newStackFixture()
	fx.poller.timedOut = map[string]bool{"http://localhost:8000/health": true}

	err := fx.sm.Start(context.Background())
	require.Error(t, err)

	var herr *models.HealthTimeoutError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "api", herr.Target)
	assert.Equal(t, 3, herr.Attempts)
}

func TestRestartGatesOnHealth(t *testing.T) {
	fx := newStackFixture()

	require.NoError(t, fx.sm.Restart(context.Background()))
	assert.Equal(t, 1, fx.orch.restartCalls)
	assert.Len(t, fx.poller.polled, 1)

	fx.poller.timedOut = map[string]bool{"http://localhost:8000/health": true}
	err := fx.sm.Restart(context.Background())
	require.Error(t, err)
}

func TestStopDoesNotValidateOrProvision(t *testing.T) {
	fx := newStackFixture()

	require.NoError(t, fx.sm.Stop(context.Background()))
	assert.Equal(t, 1, fx.orch.stopCalls)
	assert.Zero(t, fx.validator.calls)
	assert.Zero(t, fx.provisioner.calls)
}
