package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"focusflow/internal/api"
	"focusflow/internal/config"
	"focusflow/internal/logging"
	"focusflow/internal/services"
)

// Opener builds the business API once the configuration is known.
// out is where reminder notifications are written.
type Opener func(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger, out io.Writer) (api.API, error)

// DefaultOpener opens the configured store and loads the board from it
func DefaultOpener(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger, out io.Writer) (api.API, error) {
	store, err := config.CreateStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	instance, err := api.Open(ctx, store, cfg, logger, api.WithNotifier(services.NewWriterNotifier(out)))
	if err != nil {
		store.Close()
		return nil, err
	}
	return instance, nil
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	open   Opener
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	flags  globalFlags
	config *config.Config
	api    api.API
	app    *App
}

type globalFlags struct {
	configFile       string
	storageDriver    string
	storageDir       string
	storageFilename  string
	storageKey       string
	queryTimeout     time.Duration
	reminderInterval time.Duration
	reminderLeadTime time.Duration
	timeFormat       string
	appTimeout       time.Duration
	verbose          bool
	logLevel         string
	logEncoding      string
}

// NewRootCommand creates the root cobra command with global flags.
// A nil opener uses DefaultOpener.
func NewRootCommand(open Opener) *RootCommand {
	if open == nil {
		open = DefaultOpener
	}
	root := &RootCommand{
		open:   open,
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}

	root.cmd = &cobra.Command{
		Use:   "ff",
		Short: "A command-line task board",
		Long: `FocusFlow (ff) keeps a personal task board: prioritised tasks with due dates,
lists, tags, dependencies and recurrence, shown as a list or as status columns.

EXAMPLES:
  ff quick "Pay rent tomorrow 5pm #home high"
  ff add "Write design doc" --list Work --priority P1 --estimate 3
  ff list --due overdue --sort priority
  ff board
  ff done 0003
  ff stats
  ff export board.json

CONFIGURATION:
  Configuration follows this priority order:
    command-line flags > environment variables > config file > defaults

  The config file is JSON with comments, read from $FF_CONFIG or
  <storage dir>/config.json.

  Storage:
    FF_STORAGE_DRIVER                      sqlite or json (default: sqlite)
    FF_STORAGE_DIR                         Storage directory (default: ~/.focusflow)
    FF_STORAGE_FILENAME                    Storage filename (default: focusflow.db)
    FF_STORAGE_KEY                         Key of the board in the sqlite store (default: focusflow)
    FF_STORAGE_QUERY_TIMEOUT               Query timeout (default: 10s)

  Reminders:
    FF_REMINDERS_INTERVAL                  Scan interval (default: 1m)
    FF_REMINDERS_LEAD_TIME                 Upcoming window (default: 1m)

  Defaults:
    FF_DEFAULT_LIST                        List for new tasks (default: Inbox)
    FF_DEFAULT_PRIORITY                    Priority for new tasks (default: P3)
    FF_DEFAULT_QUICK_PRIORITY              Priority for quick adds (default: P2)

  Application:
    FF_DISPLAY_TIME_FORMAT                 Time layout (default: 2006-01-02 15:04)
    FF_APP_TIMEOUT                         Command timeout (default: 60s)
    FF_LOG_LEVEL, FF_LOG_ENCODING          Logging (default: info, console)
    FF_DEBUG                               Debug logging when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd.Context())
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// WithIO replaces the input and output streams
func (r *RootCommand) WithIO(in io.Reader, out io.Writer) *RootCommand {
	if in != nil {
		r.in = in
		r.cmd.SetIn(in)
	}
	if out != nil {
		r.out = out
		r.cmd.SetOut(out)
	}
	return r
}

// WithErrorOutput sets where logs are written
func (r *RootCommand) WithErrorOutput(w io.Writer) *RootCommand {
	if w != nil {
		r.errOut = w
		r.cmd.SetErr(w)
	}
	return r
}

// SetArgs sets the arguments used instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and closes the board afterwards
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) close() {
	if r.api == nil {
		return
	}
	r.api.Close()
	r.api = nil
}

// setup loads the configuration and opens the board
func (r *RootCommand) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.NewLoader().WithConfigFile(r.flags.configFile).LoadWithOverrides(r.overrides())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg

	logger := logging.Init(logging.ZapConfig{
		Level:    logging.EffectiveLevel(cfg.Application.LogLevel, cfg.Application.Verbose),
		Encoding: cfg.Application.LogEncoding,
		Output:   r.errOut,
	})
	logger.Debugw("configuration loaded", "source", cfg.Source, "driver", cfg.Storage.Driver, "path", cfg.GetStoragePath())

	instance, err := r.open(ctx, cfg, logger, r.out)
	if err != nil {
		return fmt.Errorf("failed to open board: %w", err)
	}
	r.api = instance
	r.app = NewApp(instance, cfg, logger).WithIO(r.in, r.out)
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()
	f := &r.flags

	flags.StringVar(&f.configFile, "config", "", "Config file (overrides FF_CONFIG)")

	// Storage configuration
	flags.StringVar(&f.storageDriver, "storage-driver", "", "Storage driver, sqlite or json (overrides FF_STORAGE_DRIVER)")
	flags.StringVar(&f.storageDir, "storage-dir", "", "Storage directory (overrides FF_STORAGE_DIR)")
	flags.StringVar(&f.storageFilename, "storage-filename", "", "Storage filename (overrides FF_STORAGE_FILENAME)")
	flags.StringVar(&f.storageKey, "storage-key", "", "Board key in the sqlite store (overrides FF_STORAGE_KEY)")
	flags.DurationVar(&f.queryTimeout, "query-timeout", 0, "Storage query timeout (overrides FF_STORAGE_QUERY_TIMEOUT)")

	// Reminder configuration
	flags.DurationVar(&f.reminderInterval, "reminder-interval", 0, "Reminder scan interval (overrides FF_REMINDERS_INTERVAL)")
	flags.DurationVar(&f.reminderLeadTime, "reminder-lead-time", 0, "Upcoming reminder window (overrides FF_REMINDERS_LEAD_TIME)")

	// Display configuration
	flags.StringVar(&f.timeFormat, "time-format", "", "Time display layout (overrides FF_DISPLAY_TIME_FORMAT)")

	// Application configuration
	flags.DurationVar(&f.appTimeout, "app-timeout", 0, "Command timeout (overrides FF_APP_TIMEOUT)")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging (overrides FF_APP_VERBOSE)")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level (overrides FF_LOG_LEVEL)")
	flags.StringVar(&f.logEncoding, "log-encoding", "", "Log encoding, console or json (overrides FF_LOG_ENCODING)")
}

// overrides collects the global flags that were set on the command line
func (r *RootCommand) overrides() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	f := r.flags
	o := &config.ConfigOverrides{}

	if flags.Changed("storage-driver") {
		o.StorageDriver = &f.storageDriver
	}
	if flags.Changed("storage-dir") {
		o.StorageDir = &f.storageDir
	}
	if flags.Changed("storage-filename") {
		o.StorageFilename = &f.storageFilename
	}
	if flags.Changed("storage-key") {
		o.StorageKey = &f.storageKey
	}
	if flags.Changed("query-timeout") {
		o.QueryTimeout = &f.queryTimeout
	}
	if flags.Changed("reminder-interval") {
		o.ReminderInterval = &f.reminderInterval
	}
	if flags.Changed("reminder-lead-time") {
		o.ReminderLeadTime = &f.reminderLeadTime
	}
	if flags.Changed("time-format") {
		o.TimeFormat = &f.timeFormat
	}
	if flags.Changed("app-timeout") {
		o.Timeout = &f.appTimeout
	}
	if flags.Changed("verbose") {
		o.Verbose = &f.verbose
	}
	if flags.Changed("log-level") {
		o.LogLevel = &f.logLevel
	}
	if flags.Changed("log-encoding") {
		o.LogEncoding = &f.logEncoding
	}
	return o
}

// commandContext bounds a command by the configured application timeout
func (r *RootCommand) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// run adapts a handler to a cobra RunE with the command timeout applied
func (r *RootCommand) run(handler func(app *App) func(context.Context, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := r.commandContext(cmd)
		defer cancel()
		return handler(r.app)(ctx, args)
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.addCommand(),
		r.quickCommand(),
		r.voiceCommand(),
		r.listCommand(),
		r.boardCommand(),
		r.showCommand(),
		r.editCommand(),
		r.doneCommand(),
		r.undoCommand(),
		r.toggleCommand(),
		r.moveCommand(),
		r.deleteCommand(),
		r.statsCommand(),
		r.exportCommand(),
		r.importCommand(),
		r.resetCommand(),
		r.remindersCommand(),
	)
}

func (r *RootCommand) addCommand() *cobra.Command {
	var opts AddOptions
	var estimate float64

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Create a task from a title and form fields",
		Long: `Create a task. The title may carry quick-add hints such as "tomorrow 5pm",
"#tag" or "high"; explicit flags take precedence over hints.

Examples:
  ff add "Renew passport" --due 2025-03-01 --priority P1
  ff add "Team sync" --repeat weekly --list Work --tags meetings,team`,
		Args: cobra.MinimumNArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		if c.Flags().Changed("estimate") {
			opts.Estimate = &estimate
		}
		ctx, cancel := r.commandContext(c)
		defer cancel()
		return NewAddCommand(r.app, opts).Execute(ctx, args)
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Description, "description", "d", "", "Task description")
	flags.StringVarP(&opts.List, "list", "l", "", "List name")
	flags.StringSliceVarP(&opts.Tags, "tags", "t", nil, "Comma separated tags")
	flags.StringVarP(&opts.Priority, "priority", "p", "", "Priority P0 (critical) to P3 (low)")
	flags.StringVar(&opts.Due, "due", "", "Due date, YYYY-MM-DD [HH:MM] or a phrase like 'tomorrow 5pm'")
	flags.Float64Var(&estimate, "estimate", 0, "Estimate in hours")
	flags.StringVar(&opts.Repeat, "repeat", "", "Recurrence: daily, weekly or monthly")
	flags.StringVar(&opts.Color, "color", "", "Display color")
	flags.StringSliceVar(&opts.Dependencies, "depends-on", nil, "Comma separated ids of prerequisite tasks")
	return cmd
}

func (r *RootCommand) quickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quick <phrase...>",
		Short: "Create a task from a natural-language phrase",
		Long: `Create a task from one phrase. Recognised hints:
  dates      today, tomorrow, next week, in 3 days, on 5th, mon..sun
  times      5pm, 17:30, 9

The first number in the phrase is read as the time, so write the
time before "in 3 days" or "on 5" ("Pay rent 5pm in 3 days").
  priority   critical, high, medium, low
  tags       #word

Use "ff add --repeat" for recurring tasks.

Examples:
  ff quick "Standup tomorrow 9:30 #work"`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewQuickCommand(app).Execute
		}),
	}
}

func (r *RootCommand) voiceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "voice",
		Short: "Quick-add one task per transcript line read from stdin",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewVoiceCommand(app).Execute
		}),
	}
}

func addQueryFlags(cmd *cobra.Command, opts *ListOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.List, "list", "l", "", "Only tasks in this list")
	flags.StringVarP(&opts.Priority, "priority", "p", "", "Only tasks with this priority")
	flags.StringVarP(&opts.Status, "status", "s", "", "Only tasks with this status")
	flags.StringVar(&opts.Due, "due", "", "Due window: overdue, today or this-week")
	flags.StringVar(&opts.Sort, "sort", "", "Order: priority, due-asc, due-desc or created")
}

func (r *RootCommand) listCommand() *cobra.Command {
	var opts ListOptions
	cmd := &cobra.Command{
		Use:   "list [text...]",
		Short: "List tasks matching the filters",
		Long: `List tasks. Free text matches title, description, list and tags.

Examples:
  ff list
  ff list rent --due overdue
  ff list --list Work --sort priority`,
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewListCommand(app, opts).Execute
		}),
	}
	addQueryFlags(cmd, &opts)
	return cmd
}

func (r *RootCommand) boardCommand() *cobra.Command {
	var opts ListOptions
	cmd := &cobra.Command{
		Use:   "board [text...]",
		Short: "Show tasks grouped into status columns",
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewBoardCommand(app, opts).Execute
		}),
	}
	addQueryFlags(cmd, &opts)
	return cmd
}

func (r *RootCommand) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a task",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewShowCommand(app).Execute
		}),
	}
}

func (r *RootCommand) editCommand() *cobra.Command {
	var (
		title, description, list, priority, due, repeat, color, status string
		tags, deps                                                     []string
		estimate                                                       float64
		clearDue, clearEstimate                                        bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Long: `Change fields of a task. Only the flags given are changed.

Examples:
  ff edit 0004 --due "next week" --priority P1
  ff edit 0004 --clear-due --tags ""`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		flags := c.Flags()
		opts := EditOptions{ClearDue: clearDue, ClearEstimate: clearEstimate}
		if flags.Changed("title") {
			opts.Title = &title
		}
		if flags.Changed("description") {
			opts.Description = &description
		}
		if flags.Changed("list") {
			opts.List = &list
		}
		if flags.Changed("tags") {
			opts.Tags = &tags
		}
		if flags.Changed("priority") {
			opts.Priority = &priority
		}
		if flags.Changed("due") {
			opts.Due = &due
		}
		if flags.Changed("estimate") {
			opts.Estimate = &estimate
		}
		if flags.Changed("repeat") {
			opts.Repeat = &repeat
		}
		if flags.Changed("color") {
			opts.Color = &color
		}
		if flags.Changed("depends-on") {
			opts.Dependencies = &deps
		}
		if flags.Changed("status") {
			opts.Status = &status
		}

		ctx, cancel := r.commandContext(c)
		defer cancel()
		return NewEditCommand(r.app, opts).Execute(ctx, args)
	}

	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "New title")
	flags.StringVarP(&description, "description", "d", "", "New description")
	flags.StringVarP(&list, "list", "l", "", "New list")
	flags.StringSliceVarP(&tags, "tags", "t", nil, "Replace the tags")
	flags.StringVarP(&priority, "priority", "p", "", "New priority")
	flags.StringVar(&due, "due", "", "New due date")
	flags.BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	flags.Float64Var(&estimate, "estimate", 0, "New estimate in hours")
	flags.BoolVar(&clearEstimate, "clear-estimate", false, "Remove the estimate")
	flags.StringVar(&repeat, "repeat", "", "New recurrence: none, daily, weekly or monthly")
	flags.StringVar(&color, "color", "", "New display color")
	flags.StringSliceVar(&deps, "depends-on", nil, "Replace the prerequisite ids")
	flags.StringVarP(&status, "status", "s", "", "New status")
	return cmd
}

func (r *RootCommand) doneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id...>",
		Short: "Complete tasks; recurring tasks get their next occurrence",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewDoneCommand(app).Execute
		}),
	}
}

func (r *RootCommand) undoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <id...>",
		Short: "Move tasks back to todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewUndoCommand(app).Execute
		}),
	}
}

func (r *RootCommand) toggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id...>",
		Short: "Flip tasks between done and todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewToggleCommand(app).Execute
		}),
	}
}

func (r *RootCommand) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another column (todo, doing, done, blocked)",
		Args:  cobra.ExactArgs(2),
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewMoveCommand(app).Execute
		}),
	}
}

func (r *RootCommand) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id...>",
		Aliases: []string{"rm"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewDeleteCommand(app).Execute
		}),
	}
}

func (r *RootCommand) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress figures and insights",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewStatsCommand(app).Execute
		}),
	}
}

func (r *RootCommand) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the board as JSON to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewExportCommand(app).Execute
		}),
	}
}

func (r *RootCommand) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the board with a JSON export",
		Long: `Replace every task with the contents of a JSON export. Use "-" to read
from stdin. A file that cannot be read leaves the board untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewImportCommand(app).Execute
		}),
	}
}

func (r *RootCommand) resetCommand() *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return NewResetCommand(app, confirm).Execute
		}),
	}
	cmd.Flags().BoolVarP(&confirm, "yes", "y", false, "Confirm the reset")
	return cmd
}

func (r *RootCommand) remindersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Show or change the reminder setting",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return func(ctx context.Context, _ []string) error {
				return NewRemindersCommand(app).Status(ctx)
			}
		}),
	}

	enableCmd := &cobra.Command{
		Use:   "enable",
		Short: "Ask for notification permission and turn reminders on",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return func(ctx context.Context, _ []string) error {
				return NewRemindersCommand(app).Enable(ctx)
			}
		}),
	}
	disableCmd := &cobra.Command{
		Use:   "disable",
		Short: "Turn reminders off",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return func(ctx context.Context, _ []string) error {
				return NewRemindersCommand(app).Disable(ctx)
			}
		}),
	}
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Notify about upcoming and overdue tasks once",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) func(context.Context, []string) error {
			return func(ctx context.Context, _ []string) error {
				return NewRemindersCommand(app).Scan(ctx)
			}
		}),
	}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Keep scanning on the configured interval until interrupted",
		Args:  cobra.NoArgs,
		// No command timeout: this runs until the context is cancelled.
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return NewRemindersCommand(r.app).Run(ctx)
		},
	}

	cmd.AddCommand(enableCmd, disableCmd, scanCmd, runCmd)
	return cmd
}
