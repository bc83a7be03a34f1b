package compose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"ingest-keeper/internal/config"
	"ingest-keeper/internal/logger"
	"ingest-keeper/internal/models"
)

/**
 * Runner is the command surface of the container runtime.
 * @description
 * - One method per runtime operation the orchestrator issues
 * - Implemented by DockerCompose in production, faked in tests
 */
type Runner interface {
	// Up issues start commands for the named services (all when empty) and
	// returns once the runtime has accepted them, not when they are ready.
	Up(ctx context.Context, services ...string) error
	// Stop stops every service of the project. No ordering requirement.
	Stop(ctx context.Context) error
	// Build rebuilds the project images without cache.
	Build(ctx context.Context) error
	// Ps returns the current container listing.
	Ps(ctx context.Context) ([]models.ContainerState, error)
	// Logs streams service logs to stdout until the context ends.
	Logs(ctx context.Context, services ...string) error
	// Tail captures the last n aggregate log lines.
	Tail(ctx context.Context, lines int) (string, error)
	// Exec runs a command inside a service and returns its combined output.
	Exec(ctx context.Context, service string, command ...string) (string, error)
	// Cp copies a host file into a service container.
	Cp(ctx context.Context, src, service, dst string) error
	// Info checks that the runtime daemon is present and answering.
	Info(ctx context.Context) error
	// Prune removes unused images, volumes and build cache.
	Prune(ctx context.Context) error
}

type DockerCompose struct {
	command []string
	file    string
	project string
}

func NewDockerCompose(cfg *config.ComposeConfig) *DockerCompose {
	return &DockerCompose{
		command: cfg.Command,
		file:    cfg.File,
		project: cfg.Project,
	}
}

// composeArgs builds the full argument list for one compose subcommand.
func (dc *DockerCompose) composeArgs(args ...string) (string, []string) {
	full := append([]string{}, dc.command[1:]...)
	if dc.file != "" {
		full = append(full, "-f", dc.file)
	}
	if dc.project != "" {
		full = append(full, "-p", dc.project)
	}
	full = append(full, args...)
	return dc.command[0], full
}

func (dc *DockerCompose) run(ctx context.Context, args ...string) (string, error) {
	bin, full := dc.composeArgs(args...)
	logger.Debugf("Running %s %s", bin, strings.Join(full, " "))

	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, full...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return buf.String(), fmt.Errorf("%s %s: %w: %s", bin, strings.Join(full, " "), err, strings.TrimSpace(buf.String()))
	}
	return buf.String(), nil
}

func (dc *DockerCompose) Up(ctx context.Context, services ...string) error {
	args := append([]string{"up", "-d"}, services...)
	_, err := dc.run(ctx, args...)
	return err
}

func (dc *DockerCompose) Stop(ctx context.Context) error {
	_, err := dc.run(ctx, "stop")
	return err
}

func (dc *DockerCompose) Build(ctx context.Context) error {
	bin, full := dc.composeArgs("build", "--no-cache")
	cmd := exec.CommandContext(ctx, bin, full...)
	// Build output is long-running and useful, stream it through.
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (dc *DockerCompose) Ps(ctx context.Context) ([]models.ContainerState, error) {
	out, err := dc.run(ctx, "ps", "-a", "--format", "json")
	if err != nil {
		return nil, err
	}
	return parseContainerList(out)
}

// parseContainerList handles the JSON-lines output of `compose ps`.
func parseContainerList(out string) ([]models.ContainerState, error) {
	var states []models.ContainerState
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		var row struct {
			Name   string `json:"Name"`
			State  string `json:"State"`
			Status string `json:"Status"`
		}
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, fmt.Errorf("parse container listing: %w", err)
		}
		states = append(states, models.ContainerState{
			Name:   row.Name,
			State:  row.State,
			Status: row.Status,
		})
	}
	return states, nil
}

func (dc *DockerCompose) Logs(ctx context.Context, services ...string) error {
	args := append([]string{"logs", "-f"}, services...)
	bin, full := dc.composeArgs(args...)
	cmd := exec.CommandContext(ctx, bin, full...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (dc *DockerCompose) Tail(ctx context.Context, lines int) (string, error) {
	return dc.run(ctx, "logs", "--no-color", fmt.Sprintf("--tail=%d", lines))
}

func (dc *DockerCompose) Exec(ctx context.Context, service string, command ...string) (string, error) {
	args := append([]string{"exec", "-T", service}, command...)
	return dc.run(ctx, args...)
}

func (dc *DockerCompose) Cp(ctx context.Context, src, service, dst string) error {
	_, err := dc.run(ctx, "cp", src, fmt.Sprintf("%s:%s", service, dst))
	return err
}

// dockerBin returns the docker CLI used for non-compose operations. The
// standalone docker-compose binary has no info/prune subcommands.
func (dc *DockerCompose) dockerBin() string {
	if strings.HasPrefix(dc.command[0], "docker-compose") {
		return "docker"
	}
	return dc.command[0]
}

func (dc *DockerCompose) Info(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, dc.dockerBin(), "info")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (dc *DockerCompose) Prune(ctx context.Context) error {
	for _, args := range [][]string{
		{"image", "prune", "-f"},
		{"volume", "prune", "-f"},
		{"builder", "prune", "-f"},
	} {
		cmd := exec.CommandContext(ctx, dc.dockerBin(), args...)
		if out, err := cmd.CombinedOutput(); err != nil {
			logger.Errorf("Prune %s failed: %v: %s", args[0], err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}
