package lang

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Range is an interval of integers with optional bounds. Bounds are stored
// 0-based: the text "2..5" yields Start 1 and End 4.
type Range struct {
	Start *int
	End   *int
}

func bound(i int) *int { return &i }

// IsInfinite reports whether neither bound is set.
func (r Range) IsInfinite() bool { return r.Start == nil && r.End == nil }

// IsFinite reports whether both bounds are set.
func (r Range) IsFinite() bool { return r.Start != nil && r.End != nil }

// Collection enumerates a finite range as 1-based numbers. An open range
// is [ErrNotIterable], and one with more than [MaxCollection] members is
// [ErrCollectionTooLarge].
func (r Range) Collection() (IterableValue, error) {
	if !r.IsFinite() {
		return nil, ErrNotIterable.With(slog.String("range", r.String()))
	}

	return Sequence(int64(*r.Start)+1, int64(*r.End)+1)
}

// MaxCollection bounds the members of a generated collection.
const MaxCollection = 1 << 16

// Sequence returns the integers from through to, inclusive.
func Sequence(from, to int64) (IterableValue, error) {
	if to < from {
		return IterableValue{}, nil
	}

	if n := uint64(to - from); n >= MaxCollection {
		return nil, ErrCollectionTooLarge.With(
			slog.Int64("from", from), slog.Int64("to", to))
	}

	items := make(IterableValue, 0, to-from+1)
	for i := from; i <= to; i++ {
		items = append(items, Int(i))
	}

	return items, nil
}

// String formats the range the way it is written in source, 1-based.
func (r Range) String() string {
	var b strings.Builder

	if r.Start != nil {
		b.WriteString(strconv.Itoa(*r.Start + 1))
	}

	b.WriteString("..")

	if r.End != nil {
		b.WriteString(strconv.Itoa(*r.End + 1))
	}

	return b.String()
}

// SizeUnit is a length unit.
type SizeUnit string

const (
	UnitPixels      SizeUnit = "px"
	UnitPoints      SizeUnit = "pt"
	UnitCentimeters SizeUnit = "cm"
	UnitMillimeters SizeUnit = "mm"
	UnitInches      SizeUnit = "in"
)

// Size is a length with a unit.
type Size struct {
	Magnitude float64
	Unit      SizeUnit
}

func (s Size) String() string {
	return strconv.FormatFloat(s.Magnitude, 'f', -1, 64) + string(s.Unit)
}

// Sizes holds four lengths, one per side, in CSS order.
type Sizes struct {
	Top, Right, Bottom, Left Size
}

// Vertical returns the top size.
func (s Sizes) Vertical() Size { return s.Top }

// Horizontal returns the right size.
func (s Sizes) Horizontal() Size { return s.Right }

// String formats the sizes as a CSS shorthand.
func (s Sizes) String() string {
	return strings.Join([]string{
		s.Top.String(), s.Right.String(), s.Bottom.String(), s.Left.String(),
	}, " ")
}

// Color is an sRGB color with alpha.
type Color struct {
	R, G, B, A uint8
}

// String formats the color as a CSS hex color.
func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}

	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func parseColor(raw string) (Color, bool) {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "#") {
		alpha := uint8(0xff)

		if len(s) == 9 {
			a, err := strconv.ParseUint(s[7:], 16, 8)
			if err != nil {
				return Color{}, false
			}

			alpha, s = uint8(a), s[:7]
		}

		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, false
		}

		r, g, b := c.RGB255()

		return Color{R: r, G: g, B: b, A: alpha}, true
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{R: c.R, G: c.G, B: c.B, A: c.A}, true
	}

	return Color{}, false
}

// Enum is one of a fixed set of named choices.
type Enum struct {
	Name  string
	Index int
}

func (e Enum) String() string { return e.Name }

func normalizeEnum(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
}

// EvaluableString is text whose nested function calls have been evaluated.
type EvaluableString string

func (s EvaluableString) String() string { return string(s) }
