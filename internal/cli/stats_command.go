package cli

import (
	"context"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	app *App
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app}
}

// Execute prints the progress figures followed by the insight lines
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	dashboard, err := c.app.api.GetDashboard(ctx)
	if err != nil {
		return c.app.errors.Handle("compute stats", err)
	}

	s := dashboard.Stats
	c.app.printf("Total:   %d\n", s.Total)
	c.app.printf("Done:    %d (%d%%)\n", s.Done, s.DonePercent)
	c.app.printf("Overdue: %d (%d%%)\n", s.Overdue, s.OverduePercent)
	c.app.printf("Focus:   %d (%d%%)\n", s.Focus, s.FocusPercent)
	c.app.println()
	for _, line := range dashboard.Insights.Lines() {
		c.app.println(line)
	}
	return nil
}
