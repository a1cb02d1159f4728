package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/quark/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithLevel(log.LevelInfo),
		log.WithTimeLayout("none"))

	logger.Info("compiled", slog.String("target", "html"))
	logger.Debug("suppressed")
	// Output:
	// level=INFO msg=compiled target=html
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"))

	logger.With(slog.String("call", "sum")).Warn("fallback")
	// Output:
	// {"level":"WARN","msg":"fallback","call":"sum"}
}
