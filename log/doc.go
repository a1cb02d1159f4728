// Package log wraps [log/slog] with a leveled, concurrency-safe [Logger]
// configured by functional options.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339"))
//
//	logger.Info("compiled", slog.String("source", path))
//
// A [LevelTrace] below [LevelDebug] carries the compiler's step-by-step
// diagnostics. Pretty output colorizes keys and values and is enabled by
// default only when writing to a terminal.
//
// The package-level functions ([Info], [Warn], ...) log through a default
// logger writing to standard error, reconfigured with [Config].
package log
