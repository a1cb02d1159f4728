// Package profile starts optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	quark --pprof-mode=cpu doc.qd
//
// Without the tag every [Config] starts a no-op profiler and [Modes] is empty.
package profile

// Tag is the build tag that enables profiling. It also names the profile
// output directory under the user cache directory.
const Tag = "pprof"

// Config yields the profiler mode, output directory and quiet flag.
// An empty mode disables profiling.
type Config func() (mode, path string, quiet bool)

// Option transforms a Config.
type Option func(Config) Config

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Make returns a Config with all of opts applied to a disabled profiler.
func Make(opts ...Option) Config {
	c := Config(func() (string, string, bool) { return "", "", false })
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// Start begins profiling. Stop on the result is always safe to call,
// including when profiling is disabled.
func (c Config) Start() Stopper {
	mode, path, quiet := c()
	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

func WithMode(mode string) Option {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

func WithPath(path string) Option {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

type ignore struct{}

func (ignore) Stop() {}
