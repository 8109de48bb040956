package report

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName turns a stored module or sport key such as "base_running"
// into "Base Running".
func DisplayName(key string) string {
	if key == "" {
		return ""
	}
	// Casers are stateful, so each call gets its own
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
