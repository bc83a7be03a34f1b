package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ingest-keeper/internal/compose"
	"ingest-keeper/internal/config"
	"ingest-keeper/internal/logger"
	"ingest-keeper/internal/models"
)

/**
 * Status reporter
 * @description
 * - Produces an as-of-now snapshot: exactly one check per subsystem, no
 *   retries, no blocking beyond each check's own network timeout
 * - Every field fails independently; one subsystem being down never
 *   prevents reporting on the others
 */
type StatusService struct {
	runner    compose.Runner
	client    HTTPDoer
	apiURL    string
	vectorURL string
	engine    string
	dbService string
	dbCommand []string
}

func NewStatusService(runner compose.Runner, cfg *config.AppConfig) *StatusService {
	ss := &StatusService{
		runner:    runner,
		client:    &http.Client{Timeout: 5 * time.Second},
		apiURL:    cfg.Endpoints.API + "/health",
		vectorURL: cfg.Endpoints.Qdrant + "/collections",
		engine:    cfg.Provision.Engine,
		dbService: "postgres",
		dbCommand: []string{"pg_isready"},
	}
	// Reuse the configured probe for the relational store when one exists.
	for _, svc := range cfg.Services {
		if svc.Probe.Type == models.ProbeExec && len(svc.Probe.Command) > 0 {
			ss.dbService = svc.Probe.Service
			ss.dbCommand = svc.Probe.Command
			break
		}
	}
	return ss
}

func (ss *StatusService) Snapshot(ctx context.Context) models.StatusReport {
	var report models.StatusReport

	containers, err := ss.runner.Ps(ctx)
	if err != nil {
		logger.Errorf("Container listing failed: %v", err)
	} else {
		report.Containers = containers
	}

	report.APIReachable = ss.httpOK(ctx, ss.apiURL)
	report.VectorStoreReachable = ss.httpOK(ctx, ss.vectorURL)

	if listing, err := ss.runner.Exec(ctx, ss.engine, "ollama", "list"); err != nil {
		logger.Errorf("Model catalog query failed: %v", err)
	} else {
		report.Models = parseModelListing(listing)
		report.ModelsListed = true
	}

	if _, err := ss.runner.Exec(ctx, ss.dbService, ss.dbCommand...); err != nil {
		logger.Errorf("Database readiness check failed: %v", err)
	} else {
		report.DBReady = true
	}

	return report
}

func (ss *StatusService) httpOK(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := ss.client.Do(req)
	if err != nil {
		logger.Debugf("GET %s failed: %v", url, err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// parseModelListing extracts model names from the engine's tabular listing.
func parseModelListing(listing string) []string {
	names := []string{}
	for i, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		// First line is the NAME/ID/SIZE header.
		if i == 0 && strings.EqualFold(fields[0], "name") {
			continue
		}
		names = append(names, fields[0])
	}
	return names
}
