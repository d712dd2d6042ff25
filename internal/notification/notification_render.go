package notification

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Render builds the inbox title and body for a notice.
func Render(kind string, payload map[string]any) (string, string) {
	switch kind {
	case KindSwapDecided:
		decision := strings.ToLower(stringValue(payload, "decision"))
		title := "Day swap request " + decision
		content := fmt.Sprintf("Your day swap request %s was %s at approval level %s.",
			stringValue(payload, "request_number"), decision, stringValue(payload, "approval_level"))
		if note := stringValue(payload, "note"); note != "" {
			content += " Note: " + note
		}
		return cases.Title(language.English).String(title), content
	case KindShiftSwapAdjustment:
		return "Shift calendar adjusted", fmt.Sprintf(
			"Your shifts for %s were adjusted (%s updated, %s created).",
			stringValue(payload, "period_label"),
			stringValue(payload, "updated_count"),
			stringValue(payload, "created_count"),
		)
	default:
		return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(kind), "_", " ")), ""
	}
}

func stringValue(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}
