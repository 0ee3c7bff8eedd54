package common

import (
	"fmt"
	"html/template"
	"time"

	"github.com/leapstack-labs/planportal/internal/ui/resources"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// Percent formats a 0..1 score as a whole percentage.
func Percent(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}

// BarWidth clamps a 0..1 score to a CSS width.
func BarWidth(score float64) template.CSS {
	switch {
	case score < 0:
		score = 0
	case score > 1:
		score = 1
	}
	return template.CSS(fmt.Sprintf("width: %.1f%%", score*100))
}

// FormatTime renders timestamps the same way across pages.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02.01.2006 15:04")
}

// ComplianceLabel is the Norwegian label for a compliance status.
func ComplianceLabel(s core.ComplianceStatus) string {
	switch s {
	case core.ComplianceMandatory:
		return "Obligatorisk"
	case core.ComplianceConditional:
		return "Betinget"
	default:
		return string(s)
	}
}

// VerificationLabel is the Norwegian label for a document's verification status.
func VerificationLabel(s string) string {
	switch s {
	case "", "unverified":
		return "ikke verifisert"
	case "verified":
		return "verifisert"
	case "unreachable":
		return "utilgjengelig"
	default:
		return s
	}
}

// Funcs is the function map every feature template can use.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"static":       resources.StaticPath,
		"percent":      Percent,
		"barWidth":     BarWidth,
		"formatTime":   FormatTime,
		"typeLabel":    core.ProjectTypeLabel,
		"compliance":   ComplianceLabel,
		"verification": VerificationLabel,
		"levelColor": func(l core.RiskLevel) template.CSS {
			return template.CSS("color: " + l.Color())
		},
		"add": func(a, b int) int { return a + b },
		"printf2": func(f float64) string {
			return fmt.Sprintf("%.2f", f)
		},
		"nav": Nav,
	}
}
