package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ingest-keeper/internal/compose"
	"ingest-keeper/internal/config"
	"ingest-keeper/internal/logger"
	"ingest-keeper/internal/models"
)

const (
	BarrierSettle = "settle"
	BarrierPoll   = "poll"
)

/**
 * Dependency orchestrator
 * @description
 * - Starts services tier by tier, lower tiers first; a service is never
 *   started before every strictly lower tier has been issued its start
 * - Between tiers it waits on a barrier: "settle" blocks a fixed interval,
 *   "poll" (default) waits for each started service's readiness probe with
 *   the same bounded-retry loop the API gate uses
 * - Stop issues a single stop-all, shutdown order is not dependency-sensitive
 * - Keeps no in-process state between start and stop
 */
type Orchestrator struct {
	runner       compose.Runner
	poller       ReadinessPoller
	services     []models.ServiceSpecification
	barrier      string
	settle       time.Duration
	tierAttempts int
	tierInterval time.Duration
	sleep        SleepFunc
}

func NewOrchestrator(runner compose.Runner, poller ReadinessPoller, cfg *config.AppConfig) *Orchestrator {
	return &Orchestrator{
		runner:       runner,
		poller:       poller,
		services:     cfg.Services,
		barrier:      cfg.Orchestrator.Barrier,
		settle:       time.Duration(cfg.Orchestrator.SettleSeconds) * time.Second,
		tierAttempts: cfg.Orchestrator.TierMaxAttempts,
		tierInterval: time.Duration(cfg.Orchestrator.TierIntervalSeconds) * time.Second,
		sleep:        time.Sleep,
	}
}

// tiers groups the topology by ascending startup tier.
func (o *Orchestrator) tiers() [][]models.ServiceSpecification {
	byTier := map[int][]models.ServiceSpecification{}
	var ranks []int
	for _, svc := range o.services {
		if _, seen := byTier[svc.Tier]; !seen {
			ranks = append(ranks, svc.Tier)
		}
		byTier[svc.Tier] = append(byTier[svc.Tier], svc)
	}
	sort.Ints(ranks)

	var tiers [][]models.ServiceSpecification
	for _, rank := range ranks {
		tiers = append(tiers, byTier[rank])
	}
	return tiers
}

func (o *Orchestrator) Start(ctx context.Context) error {
	for _, tier := range o.tiers() {
		names := make([]string, 0, len(tier))
		for _, svc := range tier {
			names = append(names, svc.Name)
		}
		logger.Infof("Starting tier %d services: %s", tier[0].Tier, strings.Join(names, ", "))
		if err := o.runner.Up(ctx, names...); err != nil {
			return fmt.Errorf("start tier %d: %w", tier[0].Tier, err)
		}
		if err := o.barrierWait(ctx, tier); err != nil {
			return err
		}
	}
	return nil
}

// barrierWait blocks until the tier is considered started. The settle
// barrier trades correctness under slow starts for simplicity; the poll
// barrier removes that race.
func (o *Orchestrator) barrierWait(ctx context.Context, tier []models.ServiceSpecification) error {
	if o.barrier == BarrierSettle {
		logger.Debugf("Settling for %s after tier %d", o.settle, tier[0].Tier)
		o.sleep(o.settle)
		return nil
	}
	for _, svc := range tier {
		if svc.Probe.Type == models.ProbeNone || svc.Probe.Type == "" {
			continue
		}
		if o.poller.PollUntilReady(ctx, svc.Probe, o.tierAttempts, o.tierInterval) == models.PollTimedOut {
			return &models.HealthTimeoutError{Target: svc.Name, Attempts: o.tierAttempts}
		}
		logger.Infof("Service [%s] is ready", svc.Name)
	}
	return nil
}

func (o *Orchestrator) Stop(ctx context.Context) error {
	logger.Info("Stopping all services")
	return o.runner.Stop(ctx)
}

func (o *Orchestrator) Restart(ctx context.Context) error {
	if err := o.Stop(ctx); err != nil {
		return err
	}
	logger.Debugf("Settling for %s before restart", o.settle)
	o.sleep(o.settle)
	return o.Start(ctx)
}
