package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/executor"
)

// Run is the main execution function for the application. With Describe set
// it prints a type's property schema; otherwise it executes every rule,
// prints one `> Rule <name> <OUTCOME>` line per rule, then the model report.
// The returned error joins every rule failure.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if a.config.Describe != "" {
		return a.describe(ctx, a.config.Describe)
	}

	a.logger.Info("Starting rule execution.", "rules", len(a.rules), "workers", a.config.WorkerCount)
	exec := executor.New(a.factory, a.config.WorkerCount)
	outcomes := exec.Run(ctx, a.rules)

	var errs []error
	for _, o := range outcomes {
		fmt.Fprintf(a.outW, "> Rule %s %s\n", o.Rule, o.Status)
		if o.Status == executor.Failed {
			errs = append(errs, o.Err)
		}
	}

	report, err := a.buildReport(ctx, outcomes)
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}
	if err := writeReport(a.outW, a.config.ReportFormat, report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if len(errs) > 0 {
		a.logger.Error("Rule execution finished with failures.", "failed", len(errs))
		return errors.Join(errs...)
	}
	a.logger.Info("Rule execution finished.")
	return nil
}
