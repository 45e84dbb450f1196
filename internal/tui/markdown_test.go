package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapText_ShortLineUnchanged(t *testing.T) {
	require.Equal(t, "hello world", wrapText("hello world", 40))
}

func TestWrapText_BreaksAtWordBoundaries(t *testing.T) {
	out := wrapText("the quick brown fox jumps over the lazy dog", 15)
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, len(line), 15, "line %q too long", line)
	}
	require.Contains(t, out, "\n")

	// No words lost
	joined := strings.ReplaceAll(out, "\n", " ")
	require.Equal(t, "the quick brown fox jumps over the lazy dog", joined)
}

func TestWrapText_PreservesBlankLines(t *testing.T) {
	out := wrapText("first paragraph\n\nsecond paragraph", 40)
	require.Equal(t, "first paragraph\n\nsecond paragraph", out)
}

func TestWrapText_LongWordKeptWhole(t *testing.T) {
	out := wrapText("a pneumonoultramicroscopic word", 10)
	require.Contains(t, out, "pneumonoultramicroscopic")
}

func TestRenderMarkdown_NonEmpty(t *testing.T) {
	out := renderMarkdown("# Title\n\nSome body text.", 60)
	require.NotEmpty(t, out)
	require.Contains(t, out, "Title")
	require.Contains(t, out, "Some body text")
}
