package extraction

import (
	"regexp"
	"strings"
	"time"
)

// duePhrasePattern finds an explicit due-date phrase inside a sentence,
// e.g. "by Friday", "before March 5", "due tomorrow".
var duePhrasePattern = regexp.MustCompile(`(?i)\b(?:by|before|until|due)\s+([a-z0-9][a-z0-9 ,/-]*)`)

// genericDateLayouts are tried in order when a phrase is not a known
// relative expression. Layouts without a year assume the current year.
var genericDateLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"2006-01-02", true},
	{"01/02/2006", true},
	{"1/2/2006", true},
	{"January 2, 2006", true},
	{"Jan 2, 2006", true},
	{"January 2 2006", true},
	{"January 2", false},
	{"Jan 2", false},
	{"01/02", false},
	{"1/2", false},
}

// ResolveDatePhrase maps a natural-language date phrase to an absolute time.
// Relative phrases resolve against now; anything else goes through generic
// date parsing and is accepted only when it lands in the future. Unparseable
// or past phrases resolve to nil rather than erroring.
func ResolveDatePhrase(phrase string, now time.Time) *time.Time {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	phrase = strings.Trim(phrase, ".,!?;:")
	if phrase == "" {
		return nil
	}

	switch {
	case phrase == "today":
		t := now
		return &t
	case phrase == "tomorrow":
		t := now.AddDate(0, 0, 1)
		return &t
	case phrase == "next week":
		t := now.AddDate(0, 0, 7)
		return &t
	case phrase == "end of week" || phrase == "end of the week" || phrase == "eow" ||
		phrase == "friday" || phrase == "this friday" || phrase == "on friday":
		t := nextFriday(now)
		return &t
	}

	for _, l := range genericDateLayouts {
		parsed, err := time.ParseInLocation(l.layout, normalizeDateText(phrase), now.Location())
		if err != nil {
			continue
		}
		if !l.hasYear {
			parsed = time.Date(now.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
		}
		if parsed.After(now) {
			return &parsed
		}
		// Past-referenced dates are dropped, matching the extraction
		// contract: a due date is only meaningful when it is ahead of us.
		return nil
	}

	return nil
}

// FindDuePhrase scans free text for a "(by|before|until|due) <phrase>"
// expression and resolves it. Returns nil when no phrase resolves.
func FindDuePhrase(text string, now time.Time) *time.Time {
	m := duePhrasePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	// The phrase capture is greedy; drop trailing words until one resolves
	// ("by friday we can ship" -> "friday").
	words := strings.Fields(m[1])
	for end := len(words); end > 0; end-- {
		if t := ResolveDatePhrase(strings.Join(words[:end], " "), now); t != nil {
			return t
		}
	}
	return nil
}

// nextFriday returns the upcoming Friday; if now is already Friday the
// following one is used.
func nextFriday(now time.Time) time.Time {
	daysAhead := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return now.AddDate(0, 0, daysAhead)
}

// normalizeDateText title-cases month names so time.Parse layouts match.
func normalizeDateText(phrase string) string {
	fields := strings.Fields(phrase)
	for i, f := range fields {
		if len(f) > 1 {
			fields[i] = strings.ToUpper(f[:1]) + f[1:]
		}
	}
	return strings.Join(fields, " ")
}
