package theme

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
)

// ApplyGradient renders text with a left-to-right color blend from
// start to end. Spaces are passed through unstyled.
func ApplyGradient(text, start, end string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(start)
	er, eg, eb := parseHex(end)

	var b strings.Builder
	steps := len(runes) - 1
	if steps == 0 {
		steps = 1
	}
	for i, r := range runes {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		t := float64(i) / float64(steps)
		c := hexString(lerp(sr, er, t), lerp(sg, eg, t), lerp(sb, eb, t))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(r)))
	}
	return b.String()
}

func parseHex(s string) (r, g, b int) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	rv, _ := strconv.ParseInt(s[0:2], 16, 32)
	gv, _ := strconv.ParseInt(s[2:4], 16, 32)
	bv, _ := strconv.ParseInt(s[4:6], 16, 32)
	return int(rv), int(gv), int(bv)
}

func lerp(a, b int, t float64) int {
	return a + int(float64(b-a)*t)
}

func hexString(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
