package ingest

import (
	"github.com/docuchat/docuchat/internal/adapter/utils"
	"github.com/docuchat/docuchat/internal/domain/docmodel"
)

// PrepareChunks turns chunker pieces into untagged chunks, carrying over the
// positional metadata the extraction and chunking steps produced.
func PrepareChunks(pieces []piece) []docmodel.Chunk {
	chunks := make([]docmodel.Chunk, 0, len(pieces))
	for _, p := range pieces {
		chunks = append(chunks, docmodel.Chunk{
			ID:   utils.GetNewUUID(),
			Text: p.text,
			Metadata: map[string]any{
				"page_num":    p.pageNum,
				"chunk_order": p.order,
				"offset":      p.offset,
			},
		})
	}
	return chunks
}

// TagChunks merges documentID into each chunk's metadata map. Pre-existing
// keys are never overwritten; document_id is the tagger's sole
// responsibility and always wins on collision. Input chunks are not mutated.
func TagChunks(chunks []docmodel.Chunk, documentID string) []docmodel.Chunk {
	tagged := make([]docmodel.Chunk, len(chunks))
	for i, c := range chunks {
		metadata := make(map[string]any, len(c.Metadata)+1)
		for k, v := range c.Metadata {
			metadata[k] = v
		}
		metadata["document_id"] = documentID
		c.Metadata = metadata
		tagged[i] = c
	}
	return tagged
}
