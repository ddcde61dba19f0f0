// Package terminal is the on-device text terminal used for operator-facing output.
//
// Lines may carry inline color markup. A '#' followed by a six digit hex color and a
// space opens a colored span, and the next '#' closes it:
//
//	Found motor 3 but #ff0000 could not find sensor#
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Marker delimits colored spans.
const Marker = '#'

// Colors used by the self-test.
const (
	Red    = "ff0000"
	Green  = "00ff00"
	Orange = "ff8000"
	Blue   = "0000ff"
)

// A Terminal prints formatted lines that may contain color markup.
type Terminal interface {
	Print(format string, args ...interface{})
}

// Colorize wraps text in markup for the given hex color.
func Colorize(hexColor, text string) string {
	return string(Marker) + hexColor + " " + text + string(Marker)
}

// Discard is a Terminal that drops everything.
var Discard Terminal = discard{}

type discard struct{}

func (discard) Print(format string, args ...interface{}) {}

// A Console renders markup to a writer, as 24-bit ANSI color when enabled and as plain
// text otherwise.
type Console struct {
	mu       sync.Mutex
	w        io.Writer
	useColor bool
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer, useColor bool) *Console {
	return &Console{w: w, useColor: useColor}
}

// Print formats and renders one line.
func (c *Console) Print(format string, args ...interface{}) {
	line := c.Render(fmt.Sprintf(format, args...))
	c.mu.Lock()
	defer c.mu.Unlock()
	//nolint:errcheck
	fmt.Fprintln(c.w, line)
}

// Render converts one line of markup to its on-screen form.
func (c *Console) Render(line string) string {
	var sb strings.Builder
	for _, seg := range Parse(line) {
		if seg.Color == "" || !c.useColor {
			sb.WriteString(seg.Text)
			continue
		}
		r, g, b := seg.RGB()
		col := color.RGB(r, g, b)
		col.EnableColor()
		sb.WriteString(col.Sprint(seg.Text))
	}
	return sb.String()
}

// A Recorder keeps every printed line with its markup intact.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Print records one formatted line.
func (r *Recorder) Print(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the recorded lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Segment is a run of text in a single color. Color is empty for the default color.
type Segment struct {
	Text  string
	Color string
}

// RGB returns the segment color's components. The default color is black.
func (seg Segment) RGB() (int, int, int) {
	if len(seg.Color) != 6 {
		return 0, 0, 0
	}
	//nolint:errcheck
	val, _ := strconv.ParseUint(seg.Color, 16, 32)
	return int(val >> 16 & 0xff), int(val >> 8 & 0xff), int(val & 0xff)
}

// Parse splits a line into segments. A marker that does not start a valid color is kept
// as literal text, and an unterminated span runs to the end of the line.
func Parse(line string) []Segment {
	var segs []Segment
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			segs = append(segs, Segment{Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(line); {
		hexColor, ok := colorAt(line, i)
		if !ok {
			plain.WriteByte(line[i])
			i++
			continue
		}
		flush()
		start := i + 1 + len(hexColor) + 1
		end := strings.IndexByte(line[start:], Marker)
		if end < 0 {
			segs = append(segs, Segment{Text: line[start:], Color: hexColor})
			return segs
		}
		segs = append(segs, Segment{Text: line[start : start+end], Color: hexColor})
		i = start + end + 1
	}
	flush()
	return segs
}

// Strip removes all color markup from line.
func Strip(line string) string {
	var sb strings.Builder
	for _, seg := range Parse(line) {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

func colorAt(line string, i int) (string, bool) {
	if line[i] != Marker || i+8 > len(line) || line[i+7] != ' ' {
		return "", false
	}
	hexColor := line[i+1 : i+7]
	for _, ch := range hexColor {
		if !strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			return "", false
		}
	}
	return strings.ToLower(hexColor), true
}
