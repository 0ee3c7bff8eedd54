package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode OutputMode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		name string
		mode OutputMode
		tty  bool
		want OutputMode
	}{
		{name: "auto on tty", mode: ModeAuto, tty: true, want: ModeText},
		{name: "auto piped", mode: ModeAuto, tty: false, want: ModeMarkdown},
		{name: "empty is auto", mode: "", tty: false, want: ModeMarkdown},
		{name: "explicit json", mode: ModeJSON, tty: true, want: ModeJSON},
		{name: "explicit text piped", mode: ModeText, tty: false, want: ModeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.tty)
			assert.Equal(t, tt.want, r.EffectiveMode())
			assert.Equal(t, tt.tty, r.IsTTY())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
}

func TestRenderer_Markdown(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeMarkdown, false)

	r.Header(1, "Risiko")
	r.Success("lagret")
	r.Warning("sjekk")
	r.Muted("fotnote")
	r.StatusLine("pbl", "success", "180 dager")
	r.Error("feil")

	got := out.String()
	assert.Contains(t, got, "# Risiko\n")
	assert.Contains(t, got, "- ✓ lagret")
	assert.Contains(t, got, "- ! sjekk")
	assert.Contains(t, got, "_fotnote_")
	assert.Contains(t, got, "- ✓ pbl  180 dager")
	assert.NotContains(t, got, "\x1b[")
	assert.Equal(t, "Error: feil\n", errOut.String())
}

func TestRenderer_TextWithoutColorProfile(t *testing.T) {
	// Piped text mode renders plain text with the ascii profile.
	r, out, _ := newTestRenderer(ModeText, false)
	r.Header(2, "Tidslinje")
	r.Success("ok")

	assert.Equal(t, "Tidslinje\n✓ ok\n", out.String())
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]int{"total": 21}))
	assert.Equal(t, "{\n  \"total\": 21\n}\n", out.String())
}

func TestStyles_RiskLevel(t *testing.T) {
	r, _, _ := newTestRenderer(ModeText, false)
	assert.Equal(t, "High", r.Styles().RiskLevel(core.RiskLevelHigh).Render("High"))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Plan", FormatHeader(2, "Plan"))
	assert.Equal(t, "# Plan", FormatHeader(0, "Plan"))
	assert.Equal(t, "**Total:** 21", FormatKeyValue("Total", 21))
	assert.Equal(t, "```sql\nSELECT 1\n```", FormatCodeBlock("sql", "SELECT 1\n"))

	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("░", 5), FormatBar(0.5, 10))
	assert.Equal(t, strings.Repeat("░", 10), FormatBar(-1, 10))
	assert.Equal(t, strings.Repeat("█", 10), FormatBar(2, 10))
}
