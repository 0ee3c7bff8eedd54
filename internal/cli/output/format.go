package output

import (
	"fmt"
	"strings"
)

// FormatHeader returns a markdown header.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a bold markdown key followed by its value.
func FormatKeyValue(key string, value any) string {
	return fmt.Sprintf("**%s:** %v", key, value)
}

// FormatCodeBlock wraps content in a fenced code block.
func FormatCodeBlock(lang, content string) string {
	return "```" + lang + "\n" + strings.TrimRight(content, "\n") + "\n```"
}

// FormatBar renders a score in [0,1] as a fixed-width bar.
func FormatBar(score float64, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	filled := int(score*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
