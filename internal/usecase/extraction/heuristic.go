package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// MaxActions caps the number of items a single extraction run may produce
const MaxActions = 25

const minSentenceLen = 10

// namedPattern is one independently testable heuristic rule
type namedPattern struct {
	name string
	re   *regexp.Regexp
}

// nonActionPatterns reject sentences before intent matching runs.
// Order matters only for reporting; any match rejects.
var nonActionPatterns = []namedPattern{
	{"section-heading", regexp.MustCompile(`(?i)^#{1,6}\s|^(next steps?|action items?|summary|agenda|attendees|notes?|key points?|decisions?)\s*:?\s*$`)},
	{"wrap-up", regexp.MustCompile(`(?i)\b(wrap(ping)? up|that'?s (all|it) for today|thanks everyone|great meeting|see you (next|all))\b`)},
	{"interrogative-opener", regexp.MustCompile(`(?i)^(what|why|how|when|where|who|which|should we|can we|could we|do we|does|are we|is there|any)\b`)},
	{"filler", regexp.MustCompile(`(?i)^(ok(ay)?|yeah|yes|no|right|sure|um+|uh+|hmm+|so|well|alright)[.,!]?\s*$`)},
}

// actionIntentPatterns accept sentences; at least one must match.
var actionIntentPatterns = []namedPattern{
	{"explicit-marker", regexp.MustCompile(`(?i)\b(action item|todo|to-do|follow(-| )?up|reminder)\b|\[ASSIGNEE:`)},
	{"imperative-verb", regexp.MustCompile(`(?i)^(please\s+)?(send|schedule|review|fix|update|create|write|prepare|share|check|set up|follow up|email|call|book|draft|finish|complete|investigate|confirm|remind|submit|upload|organize|test|deploy|document|ping|sync|add|remove|merge|ship)\b`)},
	{"commitment", regexp.MustCompile(`(?i)\b(we should|we need to|we have to|needs? to|have to|must|let'?s|i'?ll|i will|i need to|let me|going to|by eod|by end of day)\b`)},
	{"delegation", regexp.MustCompile(`\b[A-Z][a-z]+\s+(?:will|should|is going to|has to)\b`)},
}

var (
	// Speaker-turn detection: "Name: content", "**Name**: content" and the
	// timestamped "[MM:SS Speaker A]: content" format
	speakerLine      = regexp.MustCompile(`^\*{0,2}([A-Za-z][A-Za-z .'-]{0,39}?)\*{0,2}:\s*(.*)$`)
	timestampSpeaker = regexp.MustCompile(`^\[\d{1,2}:\d{2}(?::\d{2})?\s+([^\]]+)\]:\s*(.*)$`)

	// A bare "**Name**" heading opens a pre-tagged summary section whose
	// items all belong to that person
	sectionNameLine = regexp.MustCompile(`^\*\*([A-Za-z][A-Za-z .'-]{0,39})\*\*$`)

	// Pure timestamp / chapter-heading lines carry no content
	timestampLine = regexp.MustCompile(`^[\[(]?\d{1,2}:\d{2}(?::\d{2})?[\])]?\s*([-–—]\s*.*)?$`)

	assigneeTag      = regexp.MustCompile(`\[ASSIGNEE:([^\]]+)\]`)
	mentionPattern   = regexp.MustCompile(`@([A-Za-z][\w.-]*\w)`)
	nameCommitment   = regexp.MustCompile(`\b([A-Z][a-z]+)\s+(?:will|should|needs? to|is going to|has to)\b`)
	firstPersonMark  = regexp.MustCompile(`(?i)\b(i'?ll|i will|i need to|i'?m going to|i am going to|let me|i have to|i can take)\b`)
	leadInPattern    = regexp.MustCompile(`(?i)^(i'?ll|i will|i need to|i'?m going to|i am going to|let me|let'?s|we should|we need to|we have to|please)\s+`)
	numberedScreenRe = regexp.MustCompile(`\[SCREENSHOT-(\d+)\]`)
)

// priorityKeywords are scanned in order; the first hit wins.
var priorityKeywords = []string{"urgent", "asap", "important", "high priority", "low priority", "whenever", "someday"}

// ExtractHeuristic finds action items in a transcript without any model
// call. It is deterministic and side-effect free: the same text and clock
// always yield the same items. Used standalone when no model credential is
// configured and as the safety net behind the AI path.
func ExtractHeuristic(text string, now time.Time) []*entities.ParsedActionItem {
	var items []*entities.ParsedActionItem
	seen := make(map[string]struct{})

	currentSpeaker := ""
	sectionMode := false // inside a "**Name**" pre-tagged summary section

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || timestampLine.MatchString(line) {
			continue
		}

		content := line
		if m := sectionNameLine.FindStringSubmatch(line); m != nil {
			currentSpeaker = strings.TrimSpace(m[1])
			sectionMode = true
			continue
		}
		if m := timestampSpeaker.FindStringSubmatch(line); m != nil {
			currentSpeaker = strings.TrimSpace(m[1])
			sectionMode = false
			content = m[2]
		} else if m := speakerLine.FindStringSubmatch(line); m != nil && looksLikeName(m[1]) {
			currentSpeaker = strings.TrimSpace(m[1])
			sectionMode = false
			content = m[2]
		}

		for _, sentence := range splitSentences(content) {
			if len(items) >= MaxActions {
				return items
			}
			item := scanSentence(sentence, currentSpeaker, sectionMode, now)
			if item == nil {
				continue
			}
			key := normalizeActionText(item.Text)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, item)
		}
	}

	return items
}

// scanSentence applies the rejection rules, then the intent rules, and
// builds an item from an accepted sentence. Returns nil when the sentence
// is not an action.
func scanSentence(sentence, currentSpeaker string, sectionMode bool, now time.Time) *entities.ParsedActionItem {
	sentence = strings.TrimSpace(sentence)
	if len(sentence) < minSentenceLen {
		return nil
	}
	if strings.HasSuffix(sentence, "?") {
		return nil
	}
	for _, p := range nonActionPatterns {
		if p.re.MatchString(sentence) {
			return nil
		}
	}
	matched := false
	for _, p := range actionIntentPatterns {
		if p.re.MatchString(sentence) {
			matched = true
			break
		}
	}
	if !matched {
		return nil
	}

	item := &entities.ParsedActionItem{Context: sentence}

	// Assignee: pre-tagged > @mention > "Name will ..." > first-person
	text := sentence
	if m := assigneeTag.FindStringSubmatch(text); m != nil {
		item.Assignee = strings.TrimSpace(m[1])
		text = assigneeTag.ReplaceAllString(text, "")
	} else if m := mentionPattern.FindStringSubmatch(text); m != nil {
		item.Assignee = m[1]
	} else if m := nameCommitment.FindStringSubmatch(text); m != nil {
		item.Assignee = m[1]
	} else if currentSpeaker != "" && (sectionMode || firstPersonMark.MatchString(text)) {
		item.Assignee = currentSpeaker
	}

	// Screenshot markers referenced by index
	for _, m := range numberedScreenRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			item.ScreenshotRefs = append(item.ScreenshotRefs, n)
		}
	}
	text = numberedScreenRe.ReplaceAllString(text, "")

	item.DueDate = FindDuePhrase(text, now)
	item.Priority = findPriority(text)
	item.Text = cleanActionText(text)
	if item.Text == "" {
		return nil
	}
	return item
}

// cleanActionText strips commitment lead-ins and terminal punctuation so
// the stored action reads as an imperative.
func cleanActionText(s string) string {
	s = strings.TrimSpace(s)
	s = leadInPattern.ReplaceAllString(s, "")
	s = strings.TrimRight(s, ".!, ")
	return strings.TrimSpace(s)
}

// findPriority returns the first priority keyword present in the text
func findPriority(s string) string {
	lower := strings.ToLower(s)
	for _, kw := range priorityKeywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

// normalizeActionText folds case and whitespace for duplicate detection
func normalizeActionText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// splitSentences breaks content into sentences, keeping the terminator so
// interrogative detection still works.
func splitSentences(s string) []string {
	var out []string
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if sentence := strings.TrimSpace(b.String()); sentence != "" {
				out = append(out, sentence)
			}
			b.Reset()
		}
	}
	if rest := strings.TrimSpace(b.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}

// looksLikeName rejects speaker-prefix false positives like long clauses
// before a colon.
func looksLikeName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	words := strings.Fields(s)
	if len(words) > 3 {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'Z'
}
