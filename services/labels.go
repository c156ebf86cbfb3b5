package services

import (
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// composeLabel bringt ein Label in NFC-Form, damit ein zerlegtes "é" beim
// Kürzen nicht halbiert wird. Leerraum und Schreibweise bleiben unverändert.
func composeLabel(s string) string {
	composed, _, err := transform.String(norm.NFC, s)
	if err != nil {
		return s
	}
	return composed
}

// truncateLabel kürzt auf maxLen Zeichen (Runes) und hängt "..." an, wenn gekürzt wurde.
func truncateLabel(s string, maxLen int) string {
	s = composeLabel(s)
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}

// splitNames zerlegt eine ";"-getrennte Namensliste und verwirft leere Teile.
func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
