// Package serve launches the external tool's local server over the built
// site and, in watch mode, rebuilds languages when their sources change.
package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"git.home.luguber.info/inful/polydocs/internal/docfx"
)

// Launcher serves the already-built site output.
type Launcher struct {
	tool    *docfx.Tool
	siteDir string
	port    int
}

// NewLauncher creates a Launcher for the site output directory.
func NewLauncher(tool *docfx.Tool, siteDir string, port int) *Launcher {
	return &Launcher{tool: tool, siteDir: siteDir, port: port}
}

// Run serves the site and opens the default browser. Blocks until the
// server exits or ctx is canceled.
func (l *Launcher) Run(ctx context.Context) error {
	url := fmt.Sprintf("http://localhost:%d", l.port)
	slog.Info("Serving documentation site", "dir", l.siteDir, "url", url)

	// Give the server a moment to bind before pointing a browser at it.
	go func() {
		select {
		case <-time.After(time.Second):
			if err := openBrowser(url); err != nil {
				slog.Warn("Failed to open browser", "url", url, "error", err)
			}
		case <-ctx.Done():
		}
	}()

	return l.tool.Serve(ctx, l.siteDir, l.port)
}

// openBrowser attempts to open a URL in the default browser.
// Returns an error if it fails, but callers should not treat this as fatal.
func openBrowser(url string) error {
	return exec.Command("xdg-open", url).Start()
}
