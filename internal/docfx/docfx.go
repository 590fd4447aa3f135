// Package docfx invokes the external documentation generator as a
// subprocess. Every invocation is blocking; a non-zero exit is fatal and
// the tool's exit code is carried on the returned error so the process
// can terminate with it verbatim.
package docfx

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"git.home.luguber.info/inful/polydocs/internal/errors"
)

// Tool wraps the external generator binary (docfx by default).
type Tool struct {
	binary string
}

// New creates a Tool for the given binary name or path.
func New(binary string) *Tool {
	if binary == "" {
		binary = "docfx"
	}
	return &Tool{binary: binary}
}

// Metadata generates API reference metadata against a build configuration.
func (t *Tool) Metadata(ctx context.Context, configPath string) error {
	return t.run(ctx, "metadata", "", "metadata", configPath)
}

// Build generates the site described by a build configuration.
func (t *Tool) Build(ctx context.Context, configPath string) error {
	return t.run(ctx, "build", "", "build", configPath)
}

// Serve serves the already-built site output with the subprocess working
// directory set to siteDir. Blocks until the server exits or ctx is
// canceled.
func (t *Tool) Serve(ctx context.Context, siteDir string, port int) error {
	args := []string{"serve"}
	if port > 0 {
		args = append(args, "-p", strconv.Itoa(port))
	}
	return t.run(ctx, "serve", siteDir, args...)
}

// run executes the binary with stdout/stderr passed through. dir, when
// non-empty, becomes the subprocess working directory.
func (t *Tool) run(ctx context.Context, operation, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, t.binary, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("Running external tool", "binary", t.binary, "operation", operation, "args", args)
	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return errors.ToolFailed(err, operation, exitErr.ExitCode())
	}
	return errors.ToolNotFound(err, t.binary)
}
