package waterways

import (
	"fmt"
	"regexp"
	"strings"
)

// The message template is the single source of truth shared by FormatMessage
// and the detect/strip patterns below. Changing one side without the other
// breaks the idempotent-update guarantee.
const messageSuffix = "🌐 Powered by Kreuzungen World 🗺️"

var (
	messagePattern = regexp.MustCompile(`Crossed \d+ waterways? 🏞️ .*?` + messageSuffix)
	stripPattern   = regexp.MustCompile(`\n*Crossed \d+ waterways? 🏞️ .*?` + messageSuffix + `\s*`)
)

// FormatMessage renders the fixed-format annotation for a list of crossed
// waterway names.
func FormatMessage(names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("Crossed 1 waterway 🏞️ %s %s", names[0], messageSuffix)
	}
	return fmt.Sprintf("Crossed %d waterways 🏞️ %s %s", len(names), strings.Join(names, " | "), messageSuffix)
}

// ContainsMessage reports whether text already holds a formatted annotation,
// whatever its count or names.
func ContainsMessage(text string) bool {
	return messagePattern.MatchString(text)
}

// RemoveMessage strips any annotation from text, together with blank lines
// immediately before it, and trims the remainder.
func RemoveMessage(text string) string {
	return strings.TrimSpace(stripPattern.ReplaceAllString(text, ""))
}

// AppendOrUpdate inserts message into an activity description, replacing any
// annotation a previous run left behind. Repeated runs never accumulate
// duplicate annotations.
func AppendOrUpdate(existing, message string) string {
	if strings.TrimSpace(existing) == "" {
		return message
	}
	if ContainsMessage(existing) {
		rest := RemoveMessage(existing)
		if rest == "" {
			return message
		}
		return rest + "\n\n" + message
	}
	return existing + "\n\n" + message
}
