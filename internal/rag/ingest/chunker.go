package ingest

import (
	"fmt"
	"strings"

	"github.com/docuchat/docuchat/internal/domain/docmodel"
)

// Separators ordered from "best" to "worst" for semantic meaning. A chunk
// boundary prefers the latest separator within the size limit.
var separators = []string{"\n\n", "\n", ". ", " "}

// piece is a chunk before tagging: text plus the positional metadata the
// chunker can derive on its own.
type piece struct {
	text    string
	offset  int
	pageNum int
	order   int
}

// splitStream cuts text into pieces of at most size characters where
// consecutive pieces share exactly overlap characters. Boundaries prefer the
// nearest structural separator at or before the size limit. The split is
// positional: concatenating the pieces with each successor's first overlap
// characters dropped reconstructs text exactly.
func splitStream(text string, size int, overlap int) ([]piece, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", overlap, size)
	}
	if text == "" {
		return nil, nil
	}

	var pieces []piece
	start := 0
	order := 0
	for {
		end := start + size
		if end >= len(text) {
			pieces = append(pieces, piece{text: text[start:], offset: start, order: order})
			return pieces, nil
		}

		cut := end
		for _, sep := range separators {
			idx := strings.LastIndex(text[start:end], sep)
			if idx < 0 {
				continue
			}
			candidate := start + idx + len(sep)
			// The boundary must clear the overlap region or the next
			// chunk would not advance.
			if candidate > start+overlap {
				cut = candidate
				break
			}
		}

		pieces = append(pieces, piece{text: text[start:cut], offset: start, order: order})
		start = cut - overlap
		order++
	}
}

// joinPages flattens extracted pages into one logical stream so chunks keep
// continuity across page boundaries, and records where each page starts so
// pieces can be mapped back to a page number.
func joinPages(pages []docmodel.Page) (string, []int) {
	var builder strings.Builder
	starts := make([]int, len(pages))
	for i, page := range pages {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		starts[i] = builder.Len()
		builder.WriteString(page.Content)
	}
	return builder.String(), starts
}

func pageAtOffset(starts []int, pages []docmodel.Page, offset int) int {
	pageNum := 1
	for i, s := range starts {
		if offset >= s {
			pageNum = pages[i].Number
		}
	}
	return pageNum
}

// SplitPages chunks a whole document. Empty or whitespace-only documents
// yield zero chunks; the caller surfaces that as "no content", not an error.
func SplitPages(pages []docmodel.Page, size int, overlap int) ([]piece, error) {
	stream, starts := joinPages(pages)
	if strings.TrimSpace(stream) == "" {
		return nil, nil
	}

	pieces, err := splitStream(stream, size, overlap)
	if err != nil {
		return nil, err
	}
	for i := range pieces {
		pieces[i].pageNum = pageAtOffset(starts, pages, pieces[i].offset)
	}
	return pieces, nil
}
