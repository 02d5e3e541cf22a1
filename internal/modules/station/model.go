// README: Station and line definitions for the rail network.
package station

import (
	"slices"
	"strings"
)

type Line string

const (
	LineLRT1 Line = "LRT1"
	LineLRT2 Line = "LRT2"
	LineMRT3 Line = "MRT3"
)

// KnownLines is the closed set of lines, in display order.
var KnownLines = []Line{LineLRT1, LineLRT2, LineMRT3}

// ParseLine normalises a transport filter ("lrt-1", " MRT3 ") to a known line.
// The second return is false for anything outside KnownLines.
func ParseLine(v string) (Line, bool) {
	v = strings.ToUpper(strings.TrimSpace(v))
	v = strings.Replace(v, "-", "", 1)
	for _, l := range KnownLines {
		if Line(v) == l {
			return l, true
		}
	}
	return "", false
}

func (l Line) Known() bool {
	return slices.Contains(KnownLines, l)
}

type Station struct {
	ID    int
	Name  string
	Line  Line
	Order int // position along the line
}
