package sevenseg

import (
	"fmt"
	"strings"
)

// positions of segments, clockwise from the top with the middle bar last
const (
	SegA = iota // top
	SegB        // top right
	SegC        // bottom right
	SegD        // bottom
	SegE        // bottom left
	SegF        // top left
	SegG        // middle

	// Segments is the number of segment lines on a digit (no decimal point)
	Segments
)

// Pattern is the on/off state of segments A..G for one digit
type Pattern [Segments]bool

// translate digits to bitmasks, bit 0 is segment A
var digitMasks = [10]byte{
	0x3F, // 0
	0x06, // 1
	0x5B, // 2
	0x4F, // 3
	0x66, // 4
	0x6D, // 5
	0x7D, // 6
	0x07, // 7
	0x7F, // 8
	0x6F, // 9
}

var digitPatterns = func() [10]Pattern {
	var table [10]Pattern
	for d, mask := range digitMasks {
		table[d] = FromMask(mask)
	}
	return table
}()

// Mask returns the segment bitmask for decimal digit d
func Mask(d int) byte {
	checkDigit(d)
	return digitMasks[d]
}

// Digit returns the segment pattern for decimal digit d. Patterns are
// returned by value, the table itself can't be changed.
func Digit(d int) Pattern {
	checkDigit(d)
	return digitPatterns[d]
}

func checkDigit(d int) {
	if d < 0 || d > 9 {
		panic(fmt.Sprintf("sevenseg: bad digit %d", d))
	}
}

// FromMask expands a bitmask into a pattern
func FromMask(mask byte) Pattern {
	var p Pattern
	for seg := range p {
		p[seg] = mask&(1<<uint(seg)) != 0
	}
	return p
}

// Mask packs the pattern back into bit form
func (p Pattern) Mask() byte {
	var mask byte
	for seg, on := range p {
		if on {
			mask |= 1 << uint(seg)
		}
	}
	return mask
}

// String is the pattern as 1s and 0s, A first
func (p Pattern) String() string {
	var sb strings.Builder
	for _, on := range p {
		if on {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Render draws the patterns side by side as ascii art, five rows high
//
//	 -     -
//	| |   | |
//	 -     -
//	| |   | |
//	 -     -
func Render(digits []Pattern) []string {
	rows := make([]string, 5)
	for _, p := range digits {
		rows[0] += bar(p[SegA], "-")
		rows[1] += sides(p[SegF], p[SegB])
		rows[2] += bar(p[SegG], "-")
		rows[3] += sides(p[SegE], p[SegC])
		rows[4] += bar(p[SegD], "-")
	}
	return rows
}

func bar(on bool, c string) string {
	if on {
		return " " + c + "  "
	}
	return "    "
}

func sides(left bool, right bool) string {
	line := ""
	if left {
		line += "|"
	} else {
		line += " "
	}
	line += " "
	if right {
		line += "| "
	} else {
		line += "  "
	}
	return line
}
