package chunker

import "strings"

const (
	// DefaultBudget is the target maximum token count per chunk
	DefaultBudget = 1000

	// TokensPerChar is the heuristic for estimating tokens (chars/4)
	TokensPerChar = 4
)

// Chunk is one bounded-size slice of a file's content, sized for a single
// enrichment request. Concatenating a file's chunks in index order
// reconstructs the original content exactly.
type Chunk struct {
	Index   int
	Content string
	Tokens  int
}

// Chunker splits file content into budget-bounded chunks
type Chunker struct {
	budget int
}

// New creates a Chunker with the given token budget per chunk. Non-positive
// budgets fall back to DefaultBudget.
func New(budget int) *Chunker {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Chunker{budget: budget}
}

// Budget returns the configured per-chunk token budget
func (c *Chunker) Budget() int {
	return c.budget
}

// Chunk splits content into an ordered sequence of chunks, each within the
// token budget. Splits land on line boundaries where possible; a single line
// exceeding the whole budget is hard-cut at the byte offset. Empty content
// yields no chunks; content within one budget yields exactly one.
func (c *Chunker) Chunk(content string) []Chunk {
	if content == "" {
		return nil
	}

	maxBytes := c.budget * TokensPerChar
	var chunks []Chunk
	var cur strings.Builder

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Index:   len(chunks),
			Content: cur.String(),
			Tokens:  EstimateTokens(cur.String()),
		})
		cur.Reset()
	}
	emit := func(s string) {
		chunks = append(chunks, Chunk{
			Index:   len(chunks),
			Content: s,
			Tokens:  EstimateTokens(s),
		})
	}

	for start := 0; start < len(content); {
		var line string
		if nl := strings.IndexByte(content[start:], '\n'); nl >= 0 {
			line = content[start : start+nl+1]
			start += nl + 1
		} else {
			line = content[start:]
			start = len(content)
		}

		if len(line) > maxBytes {
			// Oversized line: hard-cut at the budget boundary
			flush()
			for len(line) > maxBytes {
				emit(line[:maxBytes])
				line = line[maxBytes:]
			}
			cur.WriteString(line)
			continue
		}

		if cur.Len()+len(line) > maxBytes {
			flush()
		}
		cur.WriteString(line)
	}
	flush()

	return chunks
}

// Excerpt selects at most maxChunks representative chunks, always keeping the
// first and last so the enrichment backend sees how the file opens and ends.
// Intermediate picks are evenly spaced. maxChunks <= 0 keeps everything.
// The selection is deterministic for a given chunk sequence.
func Excerpt(chunks []Chunk, maxChunks int) []Chunk {
	if maxChunks <= 0 || len(chunks) <= maxChunks {
		return chunks
	}
	if maxChunks == 1 {
		return chunks[:1]
	}

	out := make([]Chunk, 0, maxChunks)
	seen := make(map[int]bool, maxChunks)
	for i := 0; i < maxChunks; i++ {
		idx := i * (len(chunks) - 1) / (maxChunks - 1)
		if !seen[idx] {
			seen[idx] = true
			out = append(out, chunks[idx])
		}
	}
	return out
}

// Join concatenates chunk contents in order
func Join(chunks []Chunk) string {
	var b strings.Builder
	for _, ch := range chunks {
		b.WriteString(ch.Content)
	}
	return b.String()
}

// EstimateTokens estimates the number of tokens in a string.
// Uses the chars/4 heuristic; close enough for budget enforcement.
func EstimateTokens(text string) int {
	return len(text) / TokensPerChar
}
