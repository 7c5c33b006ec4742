package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"focusflow/internal/api"
	"focusflow/internal/config"
	"focusflow/internal/domain"
	"focusflow/internal/errors"
	"focusflow/internal/quickadd"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App carries what every command handler needs
type App struct {
	api    api.API
	config *config.Config
	in     io.Reader
	out    io.Writer
	errors *ErrorHandler
}

// NewApp creates a new CLI application bound to stdin and stdout
func NewApp(apiInstance api.API, cfg *config.Config, logger *zap.SugaredLogger) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		api:    apiInstance,
		config: cfg,
		in:     os.Stdin,
		out:    os.Stdout,
		errors: NewErrorHandler(logger),
	}
}

// WithIO replaces the input and output streams
func (a *App) WithIO(in io.Reader, out io.Writer) *App {
	if in != nil {
		a.in = in
	}
	if out != nil {
		a.out = out
	}
	return a
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// parseDue reads a --due value. Absolute dates use the display layout,
// "2006-01-02" or RFC3339; anything else goes through the quick-add
// phrase parser ("tomorrow 5pm", "5pm in 3 days").
func parseDue(value string, layout string, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.NewInvalidInputError("due", value, "must not be empty")
	}

	layouts := []string{layout, "2006-01-02 15:04", time.RFC3339}
	for _, l := range layouts {
		if l == "" {
			continue
		}
		if t, err := time.ParseInLocation(l, value, now.Location()); err == nil {
			return &t, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", value, now.Location()); err == nil {
		t = t.Add(quickadd.DefaultHour * time.Hour)
		return &t, nil
	}

	if parsed := quickadd.Parse(value, now); parsed.Due != nil {
		return parsed.Due, nil
	}
	return nil, errors.NewInvalidInputError("due", value, "use YYYY-MM-DD [HH:MM] or a phrase like 'tomorrow 5pm'")
}

func parsePriority(value string) (domain.Priority, error) {
	p, ok := domain.ParsePriority(value)
	if !ok {
		return "", errors.NewInvalidInputError("priority", value, "must be one of P0, P1, P2, P3")
	}
	return p, nil
}

func parseStatus(value string) (domain.Status, error) {
	s, ok := domain.ParseStatus(value)
	if !ok {
		return "", errors.NewInvalidInputError("status", value, "must be one of todo, doing, done, blocked")
	}
	return s, nil
}

func parseRepeat(value string) (domain.Repeat, error) {
	r, ok := domain.ParseRepeat(value)
	if !ok {
		return "", errors.NewInvalidInputError("repeat", value, "must be one of none, daily, weekly, monthly")
	}
	return r, nil
}

// splitList splits comma separated flag values and drops blanks
func splitList(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
