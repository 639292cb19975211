package extraction

import "strings"

// DefaultChunkSize bounds the text sent to the extraction model per request
const DefaultChunkSize = 4000

// Chunk splits transcript text into segments of at most maxChars characters,
// breaking only on line boundaries. A single line longer than maxChars is
// hard-split at the character boundary; that is the only case where a chunk
// breaks mid-line. Segments preserve input order and are never empty.
//
// Blank lines travel with their neighbors. The one lossy case is a blank
// line that would form a segment by itself, possible only when maxChars is
// no larger than the surrounding lines: it is dropped rather than emitted
// as an empty segment, so rejoining the chunks of such degenerate input
// can lose that blank line.
func Chunk(text string, maxChars int) []string {
	if text == "" || maxChars <= 0 {
		return nil
	}

	lines := strings.Split(text, "\n")
	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		segment := strings.Join(current, "\n")
		if segment != "" {
			chunks = append(chunks, segment)
		}
		current = current[:0]
		currentLen = 0
	}

	for _, line := range lines {
		if len(line) > maxChars {
			// Oversized line: flush what we have and hard-split the line
			flush()
			for start := 0; start < len(line); start += maxChars {
				end := start + maxChars
				if end > len(line) {
					end = len(line)
				}
				chunks = append(chunks, line[start:end])
			}
			continue
		}

		needed := len(line)
		if len(current) > 0 {
			needed++ // newline separator
		}
		if currentLen+needed > maxChars {
			flush()
			needed = len(line)
		}
		current = append(current, line)
		currentLen += needed
	}
	flush()

	return chunks
}
