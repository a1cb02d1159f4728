package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	keyColor    = color.New(color.FgHiBlack)
	stringColor = color.New(color.FgCyan)
	numberColor = color.New(color.FgYellow)
	trueColor   = color.New(color.FgGreen)
	falseColor  = color.New(color.FgRed)
	timeColor   = color.New(color.FgBlue)
	durColor    = color.New(color.FgMagenta)
)

func init() {
	// The handlers decide for themselves whether to colorize.
	for _, c := range []*color.Color{
		keyColor, stringColor, numberColor, trueColor, falseColor, timeColor, durColor,
	} {
		c.EnableColor()
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return falseColor
	case level >= slog.LevelWarn:
		return numberColor
	case level >= slog.LevelInfo:
		return trueColor
	default:
		return timeColor
	}
}

// prettyHandler holds the state shared by the pretty text and JSON handlers.
type prettyHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	group      string
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h prettyHandler) withAttrs(attrs []slog.Attr) prettyHandler {
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}

		h.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], a)
	}

	return h
}

func (h prettyHandler) withGroup(name string) prettyHandler {
	if h.group != "" {
		name = h.group + "." + name
	}

	h.group = name

	return h
}

// fields flattens a record into ordered key/value pairs.
func (h *prettyHandler) fields(r slog.Record) []slog.Attr {
	out := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		if s := h.formatTime(r.Time); s != "" {
			out = append(out, slog.String(slog.TimeKey, s))
		}
	}

	out = append(out, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			out = append(out, slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	out = append(out, slog.String(slog.MessageKey, r.Message))
	out = append(out, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}

		out = append(out, a)

		return true
	})

	return out
}

func (h *prettyHandler) flush(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		stringColor.Fprint(buf, v.String())
	case slog.KindInt64:
		numberColor.Fprint(buf, strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		numberColor.Fprint(buf, strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		numberColor.Fprint(buf, strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			trueColor.Fprint(buf, "true")
		} else {
			falseColor.Fprint(buf, "false")
		}
	case slog.KindDuration:
		durColor.Fprint(buf, v.Duration().String())
	case slog.KindTime:
		timeColor.Fprint(buf, v.Time().Format(time.RFC3339))
	case slog.KindGroup:
		buf.WriteByte('{')

		for i, a := range v.Group() {
			if i > 0 {
				buf.WriteByte(' ')
			}

			keyColor.Fprint(buf, a.Key)
			buf.WriteByte('=')
			writeValue(buf, a.Value)
		}

		buf.WriteByte('}')
	default:
		if level, ok := v.Any().(slog.Level); ok {
			levelColor(level).Fprint(buf, Level(level).String())

			return
		}

		stringColor.Fprint(buf, v.String())
	}
}

type prettyTextHandler struct{ prettyHandler }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{prettyHandler{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}}
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for i, a := range h.fields(r) {
		if i > 0 {
			buf.WriteByte(' ')
		}

		keyColor.Fprint(buf, a.Key)
		buf.WriteByte('=')
		writeValue(buf, a.Value)
	}

	return h.flush(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

type prettyJSONHandler struct{ prettyHandler }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{prettyHandler{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}}
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{\n")

	for i, a := range h.fields(r) {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		keyColor.Fprint(buf, strconv.Quote(a.Key))
		buf.WriteString(": ")
		writeValue(buf, a.Value)
	}

	buf.WriteString("\n}")

	return h.flush(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
