// Package debug provides helpers for producing human readable dumps of
// parsed document structures for the troubleshooting report.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates an indented textual tree. The zero value is ready
// to use.
type TreeWriter struct {
	sb strings.Builder
}

func (tw *TreeWriter) String() string {
	return tw.sb.String()
}

// Line writes a formatted line at the given depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.sb, format, args...)
	tw.sb.WriteByte('\n')
}

// Text writes a labeled text value, quoted so whitespace and control
// characters stay visible in the dump.
func (tw *TreeWriter) Text(depth int, label, value string) {
	tw.indent(depth)
	tw.sb.WriteString(label)
	tw.sb.WriteString(": ")
	if len(value) > 0 {
		tw.sb.WriteString(strconv.Quote(value))
	}
	tw.sb.WriteByte('\n')
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.sb.WriteString("  ")
	}
}
