package chunker

import (
	"strings"
	"unicode/utf8"
)

// CharacterChunker splits text into chunks of a target character length
// with overlap between consecutive chunks. Paragraph boundaries ("\n\n")
// are preferred split points; a paragraph longer than the chunk size is
// windowed by characters.
type CharacterChunker struct {
	chunkSize int
	overlap   int
}

// New creates a CharacterChunker. Invalid arguments fall back to the
// defaults of 1000 characters per chunk with 200 characters of overlap.
func New(chunkSize, overlap int) *CharacterChunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 200
		if overlap >= chunkSize {
			overlap = chunkSize / 5
		}
	}
	return &CharacterChunker{chunkSize: chunkSize, overlap: overlap}
}

// Split returns the chunks for the given text, in order. Empty input
// produces no chunks.
func (c *CharacterChunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= c.chunkSize {
		return []string{text}
	}

	var pieces []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		pieces = append(pieces, c.window(p)...)
	}

	var chunks []string
	cur := ""
	for _, piece := range pieces {
		switch {
		case cur == "":
			cur = piece
		case runeLen(cur)+2+runeLen(piece) <= c.chunkSize:
			cur = cur + "\n\n" + piece
		default:
			chunks = append(chunks, cur)
			tail := c.tail(cur)
			if tail != "" && runeLen(tail)+2+runeLen(piece) <= c.chunkSize {
				cur = tail + "\n\n" + piece
			} else {
				cur = piece
			}
		}
	}
	if cur != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

// window slices one oversized paragraph into chunk-sized spans stepping by
// chunkSize-overlap so consecutive spans share overlap characters.
func (c *CharacterChunker) window(p string) []string {
	runes := []rune(p)
	if len(runes) <= c.chunkSize {
		return []string{p}
	}
	step := c.chunkSize - c.overlap
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end >= len(runes) {
			out = append(out, strings.TrimSpace(string(runes[start:])))
			break
		}
		out = append(out, strings.TrimSpace(string(runes[start:end])))
	}
	return out
}

// tail returns the trailing overlap characters of a flushed chunk, used to
// seed the next one.
func (c *CharacterChunker) tail(s string) string {
	if c.overlap <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= c.overlap {
		return ""
	}
	return strings.TrimSpace(string(runes[len(runes)-c.overlap:]))
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
