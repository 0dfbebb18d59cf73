// Package export renders an account statement into interchange formats.
// Every format sees the same Statement, so the owner fields and movement rows
// are traversed once and only the syntax differs per Renderer. Formats
// register themselves under a menu selector from their init function.
package export

import (
	"io"
	"sort"
	"strings"
)

// Statement is the read-only view of an account that every format renders.
type Statement struct {
	Holder Holder
	Rows   []Row
}

// Holder carries the owner fields of a statement.
type Holder struct {
	Name       string
	NationalID string
	Age        int
}

// Row is one movement, already formatted for output.
type Row struct {
	Label     string // INGRESO or RETIRADA
	Amount    string // exactly two decimals
	Timestamp string // 2006-01-02 15:04:05
}

// Renderer writes a Statement in one output syntax.
type Renderer interface {
	// Name returns a human-readable format name.
	Name() string

	// Extension returns the file extension, including the leading dot.
	Extension() string

	// Render writes s to w.
	Render(w io.Writer, s Statement) error
}

var registry = map[string]Renderer{}

// Register makes r available under selector. Call this from an init function.
func Register(selector string, r Renderer) {
	registry[selector] = r
}

// Lookup returns the renderer registered under selector.
func Lookup(selector string) (Renderer, bool) {
	r, ok := registry[strings.TrimSpace(selector)]
	return r, ok
}

// Selectors returns every registered selector in ascending order.
func Selectors() []string {
	out := make([]string, 0, len(registry))
	for s := range registry {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ParseSelectors splits a comma-separated selection, trimming entries and dropping empty ones.
func ParseSelectors(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SanitizeFilename replaces characters that are unsafe in file paths
// and strips control characters.
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1 // drop control characters
		}
		return r
	}, name)
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		name = strings.ReplaceAll(name, c, "_")
	}
	return name
}
