package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/quark/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads a YAML
// configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The document is a mapping from flag name to value. Flag names with
// hyphens may also be spelled with underscores, and a command's flags may
// be nested under the command name:
//
//	log-level: debug
//	log_format: json
//	compile:
//	  pretty: true
//	  search-path: [lib, ~/quark]
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	compile --pretty --search-path=lib,~/quark
//
// Command-line flags override config file values. A file that does not
// parse as a YAML mapping is ignored with a warning.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var m map[string]any

		if err := yaml.NewDecoder(r).DecodeContext(ctx, &m); err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignoring configuration file",
					slog.Any("error", err),
				)
			}

			return config{}, nil
		}

		return config(m), nil
	}
}

// config implements [kong.Resolver] for YAML configuration files.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	kctx *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Prefer a value nested under the selected command.
	if kctx != nil {
		if cmd := kctx.Selected(); cmd != nil {
			if sub, ok := r[cmd.Name].(map[string]any); ok {
				if value, ok := lookup(sub, flag.Name); ok {
					return value, nil
				}
			}
		}
	}

	if value, ok := lookup(r, flag.Name); ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// lookup finds name in m, trying the underscore variant of a hyphenated
// name. Values are converted to the textual form kong parses.
func lookup(m map[string]any, name string) (any, bool) {
	value, ok := m[name]
	if !ok {
		value, ok = m[strings.ReplaceAll(name, "-", "_")]
	}

	if !ok {
		return nil, false
	}

	return native(value), true
}

func native(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := native(item).(string); ok {
				items = append(items, s)
			} else {
				items = append(items, strings.TrimSpace(yamlString(item)))
			}
		}

		return strings.Join(items, ",")
	default:
		return v
	}
}

func yamlString(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}

	return string(data)
}
