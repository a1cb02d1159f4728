// Package cli contains the command line interface for quark.
//
// # Usage
//
// The default command compiles a document to HTML on stdout:
//
//	quark doc.qd
//	quark compile --target=markdown -o doc.md doc.qd
//	quark compile --watch --pretty -o doc.html doc.qd
//
// Other commands inspect a document or start an interactive session:
//
//	quark tokens --format=yaml doc.qd
//	quark ast --expand doc.qd
//	quark repl
//
// A source of "-" reads from stdin. A command that needs a source document
// but was given none logs "no source file passed" and exits with status 66.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory ($XDG_CONFIG_HOME/quark on Linux), which "quark init" writes
// from the current flag values. See [resolve] for the file format.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (Kitchen, RFC3339, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// Logs are written to stderr so that compiled output can be piped.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o quark .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/quark/pprof)
package cli
