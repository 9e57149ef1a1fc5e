package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// levelTokens are the abbreviations zerolog's console writer prints.
var levelTokens = map[string]zerolog.Level{
	"TRC": zerolog.TraceLevel,
	"DBG": zerolog.DebugLevel,
	"INF": zerolog.InfoLevel,
	"WRN": zerolog.WarnLevel,
	"ERR": zerolog.ErrorLevel,
	"FTL": zerolog.FatalLevel,
	"PNC": zerolog.PanicLevel,
}

// LineLevel finds the level token in a console-format line
// ("2026-01-02 15:04:05 INF message key=value").
func LineLevel(line string) (zerolog.Level, bool) {
	fields := strings.Fields(line)
	for i, f := range fields {
		if i > 3 {
			break
		}
		if lvl, ok := levelTokens[f]; ok {
			return lvl, true
		}
	}
	return zerolog.NoLevel, false
}

// Filter keeps lines at or above min. Lines without a level token (wrapped
// stack traces, blank lines) follow the line before them.
func Filter(lines []string, min zerolog.Level) []string {
	if min <= zerolog.TraceLevel {
		return lines
	}
	out := make([]string, 0, len(lines))
	keep := false
	for _, line := range lines {
		if lvl, ok := LineLevel(line); ok {
			keep = lvl >= min
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}

// Colorizer styles log lines for a terminal. Colors are dropped
// automatically when the renderer's output is not a terminal.
type Colorizer struct {
	time  lipgloss.Style
	level map[zerolog.Level]lipgloss.Style
}

// NewColorizer builds a Colorizer for renderer r.
func NewColorizer(r *lipgloss.Renderer) Colorizer {
	style := func(color string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	}
	return Colorizer{
		time: r.NewStyle().Foreground(lipgloss.Color("#808080")),
		level: map[zerolog.Level]lipgloss.Style{
			zerolog.TraceLevel: style("#666666"),
			zerolog.DebugLevel: style("#87CEEB"),
			zerolog.InfoLevel:  style("#5FD75F"),
			zerolog.WarnLevel:  style("#FFD700"),
			zerolog.ErrorLevel: style("#FF6B6B"),
			zerolog.FatalLevel: style("#FF6B6B"),
			zerolog.PanicLevel: style("#FF6B6B"),
		},
	}
}

// Line colors the timestamp and level of one line. Lines that do not
// parse are returned unchanged.
func (c Colorizer) Line(line string) string {
	fields := strings.SplitN(line, " ", 4)
	if len(fields) < 4 {
		return line
	}
	lvl, ok := levelTokens[fields[2]]
	if !ok {
		return line
	}
	stamp := fields[0] + " " + fields[1]
	return c.time.Render(stamp) + " " + c.level[lvl].Render(fields[2]) + " " + fields[3]
}

// Lines colors every line.
func (c Colorizer) Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = c.Line(line)
	}
	return out
}
