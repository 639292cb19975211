package extraction

import (
	"strings"
	"testing"
)

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	text := "line one\nline two"
	chunks := Chunk(text, 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Fatalf("unexpected chunk content: %q", chunks[0])
	}
}

func TestChunk_EmptyText(t *testing.T) {
	if chunks := Chunk("", 100); chunks != nil {
		t.Fatalf("expected no chunks for empty text, got %v", chunks)
	}
}

func TestChunk_BreaksOnLineBoundaries(t *testing.T) {
	lines := []string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
	}
	text := strings.Join(lines, "\n")
	chunks := Chunk(text, 25)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	for i, c := range chunks {
		if len(c) > 25 {
			t.Fatalf("chunk %d exceeds limit: %d chars", i, len(c))
		}
		if strings.HasPrefix(c, "\n") || strings.HasSuffix(c, "\n") {
			t.Fatalf("chunk %d has dangling newline: %q", i, c)
		}
	}
	if chunks[0] != "aaaaaaaaaa\nbbbbbbbbbb" || chunks[1] != "cccccccccc" {
		t.Fatalf("unexpected split: %v", chunks)
	}
}

func TestChunk_OversizedLineHardSplit(t *testing.T) {
	line := strings.Repeat("x", 95)
	chunks := Chunk(line, 30)

	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	var total int
	for i, c := range chunks {
		if len(c) > 30 {
			t.Fatalf("chunk %d exceeds limit: %d chars", i, len(c))
		}
		total += len(c)
	}
	if total != 95 {
		t.Fatalf("characters lost in hard split: got %d, want 95", total)
	}
}

func TestChunk_NoEmptySegments(t *testing.T) {
	text := "first\n\n\nsecond"
	for _, c := range Chunk(text, 6) {
		if c == "" {
			t.Fatal("produced an empty chunk")
		}
	}
}

func TestChunk_PreservesOrder(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, strings.Repeat("w", 20))
	}
	chunks := Chunk(strings.Join(lines, "\n"), 100)
	joined := strings.Join(chunks, "\n")
	if strings.Count(joined, "w") != 50*20 {
		t.Fatalf("content altered across chunk boundary")
	}
}

func TestChunk_LoneBlankLineBetweenFullChunks(t *testing.T) {
	// maxChars equal to the line length forces the blank line into a
	// segment of its own, which is dropped instead of emitted empty
	chunks := Chunk("aaaaa\n\nbbbbb", 5)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %v", chunks)
	}
	if chunks[0] != "aaaaa" || chunks[1] != "bbbbb" {
		t.Fatalf("content lines lost: %v", chunks)
	}
	for _, c := range chunks {
		if c == "" {
			t.Fatal("produced an empty chunk")
		}
	}
}
