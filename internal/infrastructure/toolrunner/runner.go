package toolrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/aha-designer/backend/config"
	"github.com/aha-designer/backend/internal/domain"
	"go.uber.org/zap"
)

// Runner invokes the thermal simulator and git on behalf of the designer
type Runner struct {
	python  string
	script  string
	git     string
	workDir string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRunner creates a runner. Git commands run inside workDir.
func NewRunner(sim config.SimulatorConfig, git config.GitConfig, workDir string, logger *zap.Logger) *Runner {
	timeout := sim.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Runner{
		python:  sim.Python,
		script:  sim.Script,
		git:     git.Binary,
		workDir: workDir,
		timeout: timeout,
		logger:  logger.Named("toolrunner"),
	}
}

// RunThermalSimulation writes graph to a temp file, runs the simulator
// script on it and returns the script's stdout
func (r *Runner) RunThermalSimulation(ctx context.Context, graph []byte, profile string) (string, error) {
	tmp, err := os.CreateTemp("", "aha_graph_"+profileSlug(profile)+"_*.json")
	if err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(graph); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	stdout, stderr, runErr := r.run(ctx, "", r.python, r.script, tmp.Name())
	if runErr != nil && isStartFailure(runErr) {
		return "", fmt.Errorf("%w: failed to start python process: %v", domain.ErrToolFailure, runErr)
	}

	if strings.TrimSpace(stdout) == "" {
		r.logger.Warn("simulation produced no output",
			zap.String("profile", profile),
			zap.String("stderr", stderr),
			zap.Error(runErr))
		return "", fmt.Errorf("%w: python script failed or returned no output. stderr: %s", domain.ErrToolFailure, stderr)
	}

	return stdout, nil
}

// ExecuteGit runs git with args in the work directory. A non-zero exit is
// reported with both output streams.
func (r *Runner) ExecuteGit(ctx context.Context, args []string) (string, error) {
	if err := os.MkdirAll(r.workDir, 0o755); err != nil {
		return "", fmt.Errorf("create git work directory: %w", err)
	}

	stdout, stderr, err := r.run(ctx, r.workDir, r.git, args...)
	if err != nil {
		if isStartFailure(err) {
			return "", fmt.Errorf("%w: failed to execute git command: %v", domain.ErrToolFailure, err)
		}
		r.logger.Debug("git command failed", zap.Strings("args", args), zap.Error(err))
		return "", fmt.Errorf("%w: git error: %s\n%s", domain.ErrToolFailure, stderr, stdout)
	}
	return stdout, nil
}

func (r *Runner) run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("tool finished",
		zap.String("tool", name),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))

	return stdout.String(), stderr.String(), err
}

// isStartFailure separates "could not launch" from "ran and exited non-zero"
func isStartFailure(err error) bool {
	var exitErr *exec.ExitError
	return !errors.As(err, &exitErr)
}

// profileSlug keeps a profile name safe for use inside a file name
func profileSlug(profile string) string {
	slug := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			return c
		}
		return -1
	}, profile)
	if slug == "" {
		return "default"
	}
	return slug
}
