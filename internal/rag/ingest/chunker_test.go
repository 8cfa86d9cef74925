package ingest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/docuchat/docuchat/internal/domain/docmodel"
)

func makeText(n int) string {
	var b strings.Builder
	sentence := "The quick brown fox jumps over the lazy dog. "
	for b.Len() < n {
		b.WriteString(sentence)
	}
	return b.String()[:n]
}

func TestSplitStream_CoverageAndOverlap(t *testing.T) {
	text := makeText(2500)
	size := 1000
	overlap := 200

	pieces, err := splitStream(text, size, overlap)
	if err != nil {
		t.Fatalf("splitStream failed: %v", err)
	}
	if len(pieces) < 3 {
		t.Fatalf("Expected at least 3 pieces for 2500 chars, got %d", len(pieces))
	}

	for i, p := range pieces {
		if len(p.text) > size {
			t.Errorf("Piece %d exceeds size limit: %d > %d", i, len(p.text), size)
		}
		if p.order != i {
			t.Errorf("Piece %d has order %d", i, p.order)
		}
		if text[p.offset:p.offset+len(p.text)] != p.text {
			t.Errorf("Piece %d does not sit at its recorded offset", i)
		}
	}

	// Consecutive pieces share exactly overlap characters.
	for i := 1; i < len(pieces); i++ {
		prevEnd := pieces[i-1].offset + len(pieces[i-1].text)
		if pieces[i].offset != prevEnd-overlap {
			t.Errorf("Piece %d starts at %d, want %d", i, pieces[i].offset, prevEnd-overlap)
		}
	}

	// Dropping each successor's first overlap characters reconstructs the text.
	var rebuilt strings.Builder
	rebuilt.WriteString(pieces[0].text)
	for i := 1; i < len(pieces); i++ {
		rebuilt.WriteString(pieces[i].text[overlap:])
	}
	if rebuilt.String() != text {
		t.Error("Reconstruction from pieces does not match the original text")
	}
}

func TestSplitStream_ShortText(t *testing.T) {
	pieces, err := splitStream("short document", 1000, 200)
	if err != nil {
		t.Fatalf("splitStream failed: %v", err)
	}
	if len(pieces) != 1 {
		t.Fatalf("Expected 1 piece, got %d", len(pieces))
	}
	if pieces[0].text != "short document" {
		t.Errorf("Single piece got %q", pieces[0].text)
	}
}

func TestSplitStream_EmptyText(t *testing.T) {
	pieces, err := splitStream("", 1000, 200)
	if err != nil {
		t.Fatalf("splitStream failed: %v", err)
	}
	if len(pieces) != 0 {
		t.Errorf("Expected 0 pieces for empty text, got %d", len(pieces))
	}
}

func TestSplitStream_InvalidConfig(t *testing.T) {
	if _, err := splitStream("text", 100, 100); err == nil {
		t.Error("Expected error when overlap equals size")
	}
	if _, err := splitStream("text", 100, 200); err == nil {
		t.Error("Expected error when overlap exceeds size")
	}
	if _, err := splitStream("text", 0, 0); err == nil {
		t.Error("Expected error for non-positive size")
	}
}

func TestSplitStream_Deterministic(t *testing.T) {
	text := makeText(3000)
	a, err := splitStream(text, 1000, 200)
	if err != nil {
		t.Fatalf("splitStream failed: %v", err)
	}
	b, err := splitStream(text, 1000, 200)
	if err != nil {
		t.Fatalf("splitStream failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Same input produced different chunkings")
	}
}

func TestSplitStream_PrefersStructuralBoundary(t *testing.T) {
	para := strings.Repeat("a", 600) + "\n\n" + strings.Repeat("b", 600)
	pieces, err := splitStream(para, 1000, 200)
	if err != nil {
		t.Fatalf("splitStream failed: %v", err)
	}
	if len(pieces) < 2 {
		t.Fatalf("Expected a split, got %d pieces", len(pieces))
	}
	if !strings.HasSuffix(pieces[0].text, "\n\n") {
		t.Errorf("First piece should end at the paragraph break, ends with %q", pieces[0].text[len(pieces[0].text)-5:])
	}
}

func TestSplitPages_PageAttribution(t *testing.T) {
	pages := []docmodel.Page{
		{Number: 1, Content: makeText(1200)},
		{Number: 2, Content: makeText(1200)},
		{Number: 3, Content: makeText(1500)},
	}

	pieces, err := SplitPages(pages, 1000, 200)
	if err != nil {
		t.Fatalf("SplitPages failed: %v", err)
	}
	if len(pieces) < 3 {
		t.Fatalf("Expected several pieces, got %d", len(pieces))
	}

	if pieces[0].pageNum != 1 {
		t.Errorf("First piece attributed to page %d, want 1", pieces[0].pageNum)
	}
	last := pieces[len(pieces)-1]
	if last.pageNum != 3 {
		t.Errorf("Last piece attributed to page %d, want 3", last.pageNum)
	}
	for i := 1; i < len(pieces); i++ {
		if pieces[i].pageNum < pieces[i-1].pageNum {
			t.Errorf("Page attribution went backwards at piece %d", i)
		}
	}
}

func TestSplitPages_WhitespaceOnly(t *testing.T) {
	pages := []docmodel.Page{
		{Number: 1, Content: "   \n\n  "},
		{Number: 2, Content: ""},
	}
	pieces, err := SplitPages(pages, 1000, 200)
	if err != nil {
		t.Fatalf("SplitPages failed: %v", err)
	}
	if len(pieces) != 0 {
		t.Errorf("Expected 0 pieces for whitespace-only pages, got %d", len(pieces))
	}
}
