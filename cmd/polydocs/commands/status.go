package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/polydocs/internal/errors"
	"git.home.luguber.info/inful/polydocs/internal/history"
)

// StatusCmd implements the 'status' command.
type StatusCmd struct {
	Limit int `short:"n" default:"10" help:"Number of recent builds to show"`
}

// Run executes the status command.
func (s *StatusCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	path := historyPath(cfg)
	if path == "" {
		return errors.New(errors.CategoryConfig, errors.SeverityError,
			"build history is not configured (set settings.history_db)")
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(context.Background(), s.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No builds recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tLANGUAGE\tOUTCOME\tDURATION")
	for _, rec := range records {
		outcome := string(rec.Outcome)
		if rec.Outcome == history.OutcomeFailed {
			outcome = fmt.Sprintf("%s (exit %d)", rec.Outcome, rec.ExitCode)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.Started.Local().Format("2006-01-02 15:04:05"),
			rec.Language, outcome, rec.Duration.Round(time.Millisecond))
	}
	return w.Flush()
}
