package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/polydocs/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet  bool   `short:"q" help:"Quiet mode: only errors affect the exit code"`
}

// Run executes the lint command.
func (l *LintCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	linter := lint.NewLinter(cfg.Settings.DocsRoot, cfg)
	result, err := linter.Run()
	if err != nil {
		return fmt.Errorf("linting failed: %w", err)
	}

	formatter := lint.NewFormatter(l.Format)
	if err := formatter.Format(os.Stdout, result); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Determine exit code based on results
	if result.HasErrors() {
		os.Exit(2) // Errors found (blocks build)
	} else if result.HasWarnings() && !l.Quiet {
		os.Exit(1) // Warnings present
	}

	return nil
}
