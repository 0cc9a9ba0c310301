package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/loupe-labs/loupe-cli/internal/chunker"
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
	"github.com/loupe-labs/loupe-cli/internal/logger"
	"github.com/loupe-labs/loupe-cli/internal/ranking"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Service defaults applied when settings leave a value unset.
const (
	// DefaultTopK is the result count when neither the query nor the
	// settings specify one.
	DefaultTopK = 5

	// DefaultOversample is the internal candidate pool floor. Fetching
	// more candidates than requested leaves headroom for threshold and
	// dedup filtering.
	DefaultOversample = 20

	// rrfK dampens high ranks in reciprocal rank fusion.
	rrfK = 60
)

// SearchService ingests documents and answers similarity queries.
// The keyword engine, vector index, and embedding service are each
// optional; the effective search mode degrades to what is available.
type SearchService struct {
	docStore driven.DocumentStore
	keyword  driven.SearchEngine
	vectors  driven.VectorIndex
	embedder driven.EmbeddingService
	chunks   *chunker.Chunker
	settings domain.SearchSettings

	// degraded latches on the first embedding dimension mismatch.
	// Ingestion is refused until the process is reconfigured; Reset
	// does not clear it.
	degraded atomic.Bool
}

// NewSearchService creates a new search service.
// The keyword, vectors, and embedder parameters may be nil.
func NewSearchService(
	docStore driven.DocumentStore,
	keyword driven.SearchEngine,
	vectors driven.VectorIndex,
	embedder driven.EmbeddingService,
	chunks *chunker.Chunker,
	settings domain.SearchSettings,
) *SearchService {
	if chunks == nil {
		chunks = chunker.New()
	}
	if settings.TopK <= 0 {
		settings.TopK = DefaultTopK
	}
	if settings.Oversample <= 0 {
		settings.Oversample = DefaultOversample
	}
	return &SearchService{
		docStore: docStore,
		keyword:  keyword,
		vectors:  vectors,
		embedder: embedder,
		chunks:   chunks,
		settings: settings,
	}
}

// Ingest chunks, embeds, and indexes one document.
func (s *SearchService) Ingest(ctx context.Context, doc domain.Document) (*domain.IngestReceipt, error) {
	if s.degraded.Load() {
		return nil, domain.ErrServiceDegraded
	}
	if s.docStore == nil {
		return nil, errors.New("document store unavailable")
	}

	logger.Section("Ingest")

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	logger.Debug("Document: id=%s title=%q", doc.ID, doc.Title)

	spans := s.chunks.Chunk(doc.Content)
	logger.Debug("Chunked into %d spans", len(spans))

	chunks := make([]domain.Chunk, len(spans))
	for i, span := range spans {
		chunks[i] = domain.Chunk{
			ID:          fmt.Sprintf("%s:%d", doc.ID, i),
			DocumentID:  doc.ID,
			Content:     span.Text,
			Position:    i,
			StartOffset: span.Start,
			EndOffset:   span.End,
		}
	}

	// Embed before any state changes so an embedding failure leaves
	// the store and indexes untouched.
	mode := s.effectiveMode()
	if mode.RequiresEmbedding() && len(chunks) > 0 {
		if err := s.embedChunks(ctx, chunks); err != nil {
			return nil, err
		}
		// A cancelled context aborts here, before any mutation.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	if mode.RequiresEmbedding() && len(chunks) > 0 {
		entries := make([]driven.IndexEntry, len(chunks))
		for i, chunk := range chunks {
			entries[i] = driven.IndexEntry{ChunkID: chunk.ID, Embedding: chunk.Embedding}
		}
		if err := s.vectors.AddBatch(ctx, entries); err != nil {
			if errors.Is(err, domain.ErrDimensionMismatch) {
				s.degraded.Store(true)
			}
			return nil, fmt.Errorf("index vectors: %w", err)
		}
	}

	if mode.RequiresKeywordEngine() {
		for _, chunk := range chunks {
			if err := s.keyword.Index(ctx, chunk.ID, chunk.Content); err != nil {
				return nil, fmt.Errorf("index chunk %s: %w", chunk.ID, err)
			}
		}
	}

	logger.Info("Ingested %s: %d chunks", doc.ID, len(chunks))
	return &domain.IngestReceipt{
		DocumentID: doc.ID,
		ChunkCount: len(chunks),
	}, nil
}

// embedChunks fills each chunk's Embedding in place.
// Any provider failure or dimension mismatch fails the whole batch.
func (s *SearchService) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}
	if s.vectors == nil {
		return domain.ErrVectorIndexUnavailable
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	logger.Debug("Embedding %d chunks with %s", len(texts), s.embedder.ModelName())
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingUnavailable, len(vectors), len(chunks))
	}

	want := s.vectors.Dimensions()
	for i, vector := range vectors {
		if len(vector) != want {
			s.degraded.Store(true)
			return fmt.Errorf("%w: provider returned %d dimensions, index wants %d",
				domain.ErrDimensionMismatch, len(vector), want)
		}
		chunks[i].Embedding = vector
	}
	return nil
}

// Query returns ranked results for a query text.
func (s *SearchService) Query(ctx context.Context, query string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
	logger.Section("Query")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query text must not be empty", domain.ErrInvalidInput)
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.settings.TopK
	}
	// Oversample so threshold and dedup filtering still fill topK.
	poolSize := max(topK, s.settings.Oversample)

	mode := s.effectiveMode()
	logger.Info("Mode: %s, topK: %d, pool: %d", mode, topK, poolSize)

	var candidates []ranking.Candidate
	var err error

	switch mode {
	case domain.SearchModeSemantic:
		candidates, err = s.semanticSearch(ctx, query, poolSize)
	case domain.SearchModeKeyword:
		candidates, err = s.keywordSearch(ctx, query, poolSize)
	case domain.SearchModeHybrid:
		candidates, err = s.hybridSearch(ctx, query, poolSize)
	default:
		candidates, err = s.keywordSearch(ctx, query, poolSize)
	}
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Raw candidates: %d", len(candidates))

	ranked := ranking.Rank(candidates, ranking.Options{
		TopK:            topK,
		Threshold:       s.effectiveThreshold(mode, opts),
		DedupByDocument: opts.DedupByDocument || s.settings.DedupByDocument,
	})
	logger.Debug("Ranked candidates: %d", len(ranked))

	results, err := s.hydrate(ctx, ranked)
	if err != nil {
		return nil, fmt.Errorf("hydrate results: %w", err)
	}
	logger.Info("Final results: %d", len(results))
	return results, nil
}

// effectiveThreshold returns the score threshold to apply, or nil.
// Thresholds act on raw cosine scores, so only semantic mode uses
// them; keyword and fused scores live on different scales.
func (s *SearchService) effectiveThreshold(mode domain.SearchMode, opts domain.QueryOptions) *float64 {
	if mode != domain.SearchModeSemantic {
		return nil
	}
	if opts.Threshold != nil {
		return opts.Threshold
	}
	return s.settings.Threshold
}

// effectiveMode determines the search mode based on settings and
// available services, degrading gracefully when a dependency is absent.
func (s *SearchService) effectiveMode() domain.SearchMode {
	canVector := s.vectors != nil && s.embedder != nil
	canKeyword := s.keyword != nil

	mode := s.settings.Mode
	if !mode.IsValid() {
		mode = domain.SearchModeHybrid
	}

	switch mode {
	case domain.SearchModeSemantic:
		if canVector {
			return domain.SearchModeSemantic
		}
		if canKeyword {
			logger.Warn("Semantic search unavailable, degrading to keyword mode")
			return domain.SearchModeKeyword
		}
	case domain.SearchModeHybrid:
		if canVector && canKeyword {
			return domain.SearchModeHybrid
		}
		if canVector {
			logger.Warn("Keyword engine unavailable, degrading to semantic mode")
			return domain.SearchModeSemantic
		}
		if canKeyword {
			logger.Warn("Semantic search unavailable, degrading to keyword mode")
			return domain.SearchModeKeyword
		}
	}
	return mode
}

// semanticSearch embeds the query and asks the vector index.
func (s *SearchService) semanticSearch(ctx context.Context, query string, limit int) ([]ranking.Candidate, error) {
	if s.vectors == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Debug("Generating query embedding...")
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hits, err := s.vectors.Search(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector search: %d hits", len(hits))

	return s.toCandidates(ctx, hits)
}

// toCandidates resolves vector hits to ranking candidates. Hits whose
// chunk has disappeared from the store are skipped.
func (s *SearchService) toCandidates(ctx context.Context, hits []driven.VectorHit) ([]ranking.Candidate, error) {
	candidates := make([]ranking.Candidate, 0, len(hits))
	for _, hit := range hits {
		chunk, err := s.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", hit.ChunkID, err)
		}
		candidates = append(candidates, ranking.Candidate{
			ChunkID:    hit.ChunkID,
			DocumentID: chunk.DocumentID,
			Score:      hit.Score,
			Seq:        hit.Seq,
		})
	}
	return candidates, nil
}

// keywordSearch performs full-text search using the keyword engine.
func (s *SearchService) keywordSearch(ctx context.Context, query string, limit int) ([]ranking.Candidate, error) {
	if s.keyword == nil {
		return nil, domain.ErrSearchUnavailable
	}

	hits, err := s.keyword.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	logger.Debug("Keyword search: %d hits", len(hits))

	candidates := make([]ranking.Candidate, 0, len(hits))
	for i, hit := range hits {
		chunk, err := s.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", hit.ChunkID, err)
		}
		candidates = append(candidates, ranking.Candidate{
			ChunkID:    hit.ChunkID,
			DocumentID: chunk.DocumentID,
			Score:      hit.Score,
			Seq:        i,
		})
	}
	return candidates, nil
}

// hybridSearch runs keyword and semantic searches in parallel and
// fuses the rankings. A single failing leg degrades to the other.
func (s *SearchService) hybridSearch(ctx context.Context, query string, limit int) ([]ranking.Candidate, error) {
	var keywordResults, vectorResults []ranking.Candidate
	var keywordErr, vectorErr error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		keywordResults, keywordErr = s.keywordSearch(ctx, query, limit)
	}()

	go func() {
		defer wg.Done()
		vectorResults, vectorErr = s.semanticSearch(ctx, query, limit)
	}()

	wg.Wait()

	if keywordErr != nil && vectorErr != nil {
		logger.Warn("Hybrid search: both legs failed")
		return nil, fmt.Errorf("hybrid search: keyword=%w, vector=%w", keywordErr, vectorErr)
	}
	if keywordErr != nil {
		logger.Warn("Hybrid search: keyword leg failed, using vector results only: %v", keywordErr)
		return vectorResults, nil
	}
	if vectorErr != nil {
		logger.Warn("Hybrid search: vector leg failed, using keyword results only: %v", vectorErr)
		return keywordResults, nil
	}

	logger.Debug("Hybrid search: fusing %d keyword + %d vector results",
		len(keywordResults), len(vectorResults))
	return reciprocalRankFusion(keywordResults, vectorResults, rrfK), nil
}

// reciprocalRankFusion merges two ranked lists. k dampens the
// contribution of high ranks (typically 60). The fused order is
// deterministic: equal fused scores tie-break on first appearance
// across the two input lists.
func reciprocalRankFusion(list1, list2 []ranking.Candidate, k int) []ranking.Candidate {
	scores := make(map[string]float64)
	docIDs := make(map[string]string)
	var order []string

	accumulate := func(list []ranking.Candidate) {
		for rank, cand := range list {
			if _, seen := scores[cand.ChunkID]; !seen {
				order = append(order, cand.ChunkID)
				docIDs[cand.ChunkID] = cand.DocumentID
			}
			scores[cand.ChunkID] += 1.0 / float64(k+rank+1)
		}
	}
	accumulate(list1)
	accumulate(list2)

	fused := make([]ranking.Candidate, 0, len(order))
	for seq, chunkID := range order {
		fused = append(fused, ranking.Candidate{
			ChunkID:    chunkID,
			DocumentID: docIDs[chunkID],
			Score:      scores[chunkID],
			Seq:        seq,
		})
	}
	return fused
}

// Similar returns chunks most similar to a document's content,
// excluding the document itself.
func (s *SearchService) Similar(ctx context.Context, documentID string, topK int) ([]domain.QueryResult, error) {
	if s.docStore == nil {
		return nil, errors.New("document store unavailable")
	}
	if topK <= 0 {
		topK = s.settings.TopK
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get chunks for %s: %w", documentID, err)
	}
	if len(chunks) == 0 {
		return []domain.QueryResult{}, nil
	}

	var candidates []ranking.Candidate
	if s.vectors != nil && chunksHaveEmbeddings(chunks) {
		candidates, err = s.similarByVector(ctx, documentID, chunks, topK)
	} else {
		candidates, err = s.similarByKeyword(ctx, documentID, doc, topK)
	}
	if err != nil {
		return nil, err
	}

	ranked := ranking.Rank(candidates, ranking.Options{
		TopK:            topK,
		DedupByDocument: s.settings.DedupByDocument,
	})
	return s.hydrate(ctx, ranked)
}

// similarByVector searches the vector index with the centroid of the
// document's chunk embeddings.
func (s *SearchService) similarByVector(
	ctx context.Context, documentID string, chunks []domain.Chunk, topK int,
) ([]ranking.Candidate, error) {
	centroid := make([]float32, len(chunks[0].Embedding))
	for _, chunk := range chunks {
		for i, v := range chunk.Embedding {
			centroid[i] += v
		}
	}
	for i := range centroid {
		centroid[i] /= float32(len(chunks))
	}

	// Fetch past the document's own chunks so topK foreign chunks remain.
	poolSize := max(topK+len(chunks), s.settings.Oversample)
	hits, err := s.vectors.Search(ctx, centroid, poolSize)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	candidates, err := s.toCandidates(ctx, hits)
	if err != nil {
		return nil, err
	}
	return excludeDocument(candidates, documentID), nil
}

// similarByKeyword falls back to a keyword query built from the
// document itself, for indexes without embeddings.
func (s *SearchService) similarByKeyword(
	ctx context.Context, documentID string, doc *domain.Document, topK int,
) ([]ranking.Candidate, error) {
	words := strings.Fields(doc.Content)
	if len(words) > 50 {
		words = words[:50]
	}
	query := strings.TrimSpace(doc.Title + " " + strings.Join(words, " "))
	if query == "" {
		return nil, nil
	}

	poolSize := max(topK*3, s.settings.Oversample)
	candidates, err := s.keywordSearch(ctx, query, poolSize)
	if err != nil {
		return nil, err
	}
	return excludeDocument(candidates, documentID), nil
}

// excludeDocument drops candidates belonging to the given document.
func excludeDocument(candidates []ranking.Candidate, documentID string) []ranking.Candidate {
	kept := make([]ranking.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if cand.DocumentID != documentID {
			kept = append(kept, cand)
		}
	}
	return kept
}

// chunksHaveEmbeddings reports whether every chunk carries a vector.
func chunksHaveEmbeddings(chunks []domain.Chunk) bool {
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			return false
		}
	}
	return true
}

// hydrate converts ranked candidates to full query results. Candidates
// whose chunk or document has disappeared are skipped.
func (s *SearchService) hydrate(ctx context.Context, candidates []ranking.Candidate) ([]domain.QueryResult, error) {
	results := make([]domain.QueryResult, 0, len(candidates))
	for _, cand := range candidates {
		chunk, err := s.docStore.GetChunk(ctx, cand.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", cand.ChunkID, err)
		}

		doc, err := s.docStore.GetDocument(ctx, chunk.DocumentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get document %s: %w", chunk.DocumentID, err)
		}

		results = append(results, domain.QueryResult{
			ChunkID:    chunk.ID,
			DocumentID: doc.ID,
			Score:      cand.Score,
			Content:    chunk.Content,
			Title:      doc.Title,
			Origin:     doc.Origin,
		})
	}
	return results, nil
}

// Reset discards every document, chunk, and index entry. A degraded
// service stays degraded: the mismatched provider is still configured.
func (s *SearchService) Reset(ctx context.Context) error {
	logger.Section("Reset")

	if s.docStore != nil {
		if err := s.docStore.Clear(ctx); err != nil {
			return fmt.Errorf("clear document store: %w", err)
		}
	}
	if s.vectors != nil {
		s.vectors.Clear()
	}
	if s.keyword != nil {
		if err := s.keyword.Reset(); err != nil {
			return fmt.Errorf("reset keyword engine: %w", err)
		}
	}

	logger.Info("Reset complete")
	return nil
}

// Stats reports a snapshot of the corpus and index.
func (s *SearchService) Stats(ctx context.Context) (*domain.IndexStats, error) {
	stats := &domain.IndexStats{
		Mode: s.effectiveMode(),
	}

	if s.docStore != nil {
		docs, chunks, err := s.docStore.Counts(ctx)
		if err != nil {
			return nil, fmt.Errorf("count documents: %w", err)
		}
		stats.Documents = docs
		stats.Chunks = chunks
	}
	if s.vectors != nil {
		stats.IndexEntries = s.vectors.Len()
		stats.Dimensions = s.vectors.Dimensions()
	}
	if s.embedder != nil {
		stats.Model = s.embedder.ModelName()
	}
	return stats, nil
}
