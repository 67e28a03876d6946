// Package chunker splits document text into overlapping fixed-size spans.
package chunker

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// Span is one contiguous piece of the source text.
type Span struct {
	Index   int
	Content string
}

// Split cuts text into spans of at most size runes, each overlapping the
// previous one by overlap runes. Size must be positive; overlap is not
// required to be smaller than size, but the window always advances by at
// least one rune so the split terminates.
func Split(text string, size, overlap int) []Span {
	if text == "" || size <= 0 {
		return nil
	}

	runes := []rune(text)
	total := len(runes)

	step := size - overlap
	if step < 1 {
		step = 1
	}

	spans := make([]Span, 0, total/step+1)

	index := 0
	for start := 0; start < total; start += step {
		end := start + size
		if end > total {
			end = total
		}

		spans = append(spans, Span{
			Index:   index,
			Content: string(runes[start:end]),
		})
		index++

		if end == total {
			break
		}
	}

	return spans
}
