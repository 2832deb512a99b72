// Package hooks runs user-defined shell commands after a listing was
// submitted, e.g. to upload the written JSON or notify a reviewer.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/listwiz/internal/logger"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = ".listwiz.hooks.yml"

// LoadConfig loads the hooks configuration from workDir.
// Returns nil if the config file doesn't exist (hooks are optional).
func LoadConfig(workDir string) (*Config, error) {
	configPath := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No hooks config found at %s", configPath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config: %w", err)
	}

	logger.Debug("Loaded hooks config from %s (%d post_submit hook(s))", configPath, len(cfg.Hooks.PostSubmit))
	return &cfg, nil
}

// Variables are expanded in hook commands as {{id}}, {{path}} and {{title}}.
type Variables struct {
	ID    string
	Path  string
	Title string
}

// Result is the outcome of one hook command.
type Result struct {
	Command string
	Output  string
	Err     error
}

// Failed reports whether the command did not exit cleanly.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Execute runs one hook. Command failures and timeouts land in
// Result.Err; the returned error is only set when ctx was cancelled.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (Result, error) {
	if hook == nil || hook.Command == "" {
		return Result{}, nil
	}

	command := expandVariables(hook.Command, vars)
	res := Result{Command: command}
	logger.Debug("Executing hook command: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		"LISTWIZ_LISTING_ID="+vars.ID,
		"LISTWIZ_LISTING_PATH="+vars.Path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return res, ctx.Err()
	}

	res.Output = stdout.String()
	if stderr.Len() > 0 {
		res.Output += "\n[stderr]\n" + stderr.String()
	}

	if execCtx.Err() == context.DeadlineExceeded {
		logger.Warn("Hook command timed out after %ds: %s", timeout, command)
		res.Err = fmt.Errorf("timed out after %ds", timeout)
		return res, nil
	}
	if err != nil {
		logger.Warn("Hook command failed: %v", err)
		res.Err = err
		return res, nil
	}

	logger.Debug("Hook executed successfully, output length: %d bytes", len(res.Output))
	return res, nil
}

// RunPostSubmit runs every post_submit hook in order. A failing hook does
// not stop the ones after it.
func RunPostSubmit(ctx context.Context, cfg *Config, workDir string, vars Variables) ([]Result, error) {
	if cfg == nil {
		return nil, nil
	}
	var results []Result
	for _, hook := range cfg.Hooks.PostSubmit {
		res, err := Execute(ctx, hook, workDir, vars)
		if err != nil {
			return results, err
		}
		if res.Command != "" {
			results = append(results, res)
		}
	}
	return results, nil
}

// expandVariables replaces {{variable}} placeholders in the command string.
func expandVariables(command string, vars Variables) string {
	replacements := map[string]string{
		"{{id}}":    vars.ID,
		"{{path}}":  vars.Path,
		"{{title}}": vars.Title,
	}

	result := command
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
