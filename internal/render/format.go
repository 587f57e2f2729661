package render

import (
	"fmt"
	"html"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FormatScore renders a score with one decimal and a percent suffix.
func FormatScore(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatRuntime renders a runtime in seconds with one decimal. Non-numeric
// input is passed through unchanged.
func FormatRuntime(raw string) string {
	var v float64
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%f", &v); err != nil {
		return raw
	}
	return fmt.Sprintf("%.1fs", v)
}

// FormatDate renders an ISO date as "Jan 2, 2006". Unparsable input falls
// back to the raw string unchanged.
func FormatDate(raw string) string {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return t.Format("Jan 2, 2006")
}

// Escape neutralizes HTML metacharacters in cell text.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Highlight escapes s and wraps case-insensitive occurrences of term in a
// highlight marker. Escaping happens per segment before any markup is
// added, so a term like "<script>" stays visible literal text and can
// never be injected as markup.
func Highlight(s, term string) string {
	if term == "" {
		return Escape(s)
	}
	lower := strings.ToLower(s)
	needle := strings.ToLower(term)

	var b strings.Builder
	i := 0
	for i < len(s) {
		j := strings.Index(lower[i:], needle)
		if j < 0 {
			b.WriteString(Escape(s[i:]))
			break
		}
		b.WriteString(Escape(s[i : i+j]))
		b.WriteString(`<mark class="hl">`)
		b.WriteString(Escape(s[i+j : i+j+len(needle)]))
		b.WriteString(`</mark>`)
		i += j + len(needle)
	}
	return b.String()
}

// capitalize uppercases the first byte of an ASCII label.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
