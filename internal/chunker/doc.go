// Package chunker divides file content into bounded-size chunks for
// enrichment requests.
//
// The chunker never sends content anywhere itself; it only partitions it so
// each piece fits a single request against the backend's token limit.
//
// # Basic Usage
//
//	c := chunker.New(1000)
//	chunks := c.Chunk(string(content))
//
//	for _, chunk := range chunks {
//	    fmt.Printf("chunk %d: %d tokens\n", chunk.Index, chunk.Tokens)
//	}
//
// # Splitting Policy
//
// Splits prefer line boundaries so structural units are not cut mid-line.
// A single line longer than the whole budget is hard-cut at the byte offset.
// Splitting is content-preserving: Join(c.Chunk(s)) == s for every input, so
// no tail is ever silently truncated.
//
// # Sizing
//
// Token estimation uses a simple heuristic (chars/4), the same unit the
// enrichment providers budget against. Every produced chunk's estimate is at
// most the configured budget.
//
// # Excerpts
//
// Very large files can be reduced with Excerpt, which keeps the first and
// last chunks plus evenly spaced picks in between, bounding prompt cost while
// still showing the backend how the file opens and ends.
package chunker
