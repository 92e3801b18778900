package logger

import (
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	*slog.Logger
}

// New builds a JSON logger at the given level. Logs go to stderr so they
// never interleave with console progress output on stdout.
func New(logLevel string) *Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLogLevel(logLevel),
		AddSource: logLevel == "debug",
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)

	return &Logger{
		Logger: slog.New(handler),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", component),
	}
}

func (l *Logger) WithFields(fields ...interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.With(fields...),
	}
}

func (l *Logger) MonitorStart(interval, logFile, csvFile string) {
	l.Info("Route monitoring started",
		slog.String("poll_interval", interval),
		slog.String("log_file", logFile),
		slog.String("csv_file", csvFile))
}

func (l *Logger) MonitorStop(polls, batches, added, removed int64) {
	l.Info("Route monitoring stopped",
		slog.Int64("poll_cycles", polls),
		slog.Int64("change_batches", batches),
		slog.Int64("routes_added", added),
		slog.Int64("routes_removed", removed))
}

func (l *Logger) BaselineSeeded(total int, gateway string) {
	l.Info("Baseline snapshot established",
		slog.Int("total_routes", total),
		slog.String("default_gateway", gateway))
}

func (l *Logger) RouteChanges(added, removed int, gateway string) {
	l.Info("Routing changes detected",
		slog.Int("added", added),
		slog.Int("removed", removed),
		slog.String("default_gateway", gateway))
}

func (l *Logger) SourceError(err error) {
	l.Error("Failed to read routing table, treating as empty",
		slog.String("error", err.Error()))
}

func (l *Logger) RenderError(path string, err error) {
	l.Error("Failed to render topology graph",
		slog.String("path", path),
		slog.String("error", err.Error()))
}
