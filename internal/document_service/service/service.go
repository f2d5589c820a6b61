package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"

	"docuchat/internal/embedding"
	"docuchat/internal/models"
	"docuchat/internal/rag/interfaces"
	"docuchat/internal/rag/loaders"
	"docuchat/internal/rag/splitters"
	"docuchat/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DocumentRepository is the persistence contract the ingestion pipeline
// depends on.
type DocumentRepository interface {
	GetByHash(ctx context.Context, hash string) (*models.Document, error)
	CreateDocument(ctx context.Context, doc *models.Document) error
	CreateChunks(ctx context.Context, chunks []*models.TextChunk) error
}

// Archiver stores the raw uploaded bytes. Optional; failures are logged
// and never fail ingestion.
type Archiver interface {
	Archive(ctx context.Context, objectName string, data []byte, contentType string) error
}

// EventSink publishes domain events. Optional, best-effort.
type EventSink interface {
	Publish(ctx context.Context, eventType string, payload map[string]interface{}) error
}

// Service runs the ingestion pipeline: dedup by content hash, text
// extraction, chunking, embedding, vector upserts and chunk persistence.
type Service struct {
	repo     DocumentRepository
	embedder embedding.Embedding
	vectors  interfaces.VectorStore
	archive  Archiver
	events   EventSink
	log      *logger.Logger
}

// NewService creates a new ingestion Service. archive and events may be
// nil when the corresponding backends are disabled.
func NewService(
	repo DocumentRepository,
	embedder embedding.Embedding,
	vectors interfaces.VectorStore,
	archive Archiver,
	events EventSink,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		embedder: embedder,
		vectors:  vectors,
		archive:  archive,
		events:   events,
		log:      log,
	}
}

// Ingest processes one uploaded file and returns its Document row.
// Re-uploading identical bytes returns the existing row untouched: no
// re-chunking, no duplicate vectors. The Document row is persisted
// before chunking so a partially chunked state is already visible to
// later dedup checks. A failure mid-loop can leave vectors without
// committed chunk rows; that window is accepted and not repaired.
func (s *Service) Ingest(ctx context.Context, data []byte, filename, strategy string, chunkSize, chunkOverlap int) (*models.Document, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	existing, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing document: %w", err)
	}
	if existing != nil {
		s.log.Info(fmt.Sprintf("Document with hash %s already ingested as id %d, returning existing row", hash, existing.ID))
		return existing, nil
	}

	text, err := loaders.Extract(filename, data)
	if err != nil {
		return nil, err
	}

	metaBytes, err := json.Marshal(map[string]interface{}{
		"original_filename": filename,
		"file_size":         len(data),
		"chunking_strategy": strategy,
		"chunk_size":        chunkSize,
		"chunk_overlap":     chunkOverlap,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document metadata: %w", err)
	}

	doc := &models.Document{
		Filename:         filename,
		ContentHash:      hash,
		ChunkingStrategy: models.ChunkingStrategy(strategy),
		ChunkSize:        chunkSize,
		ChunkOverlap:     chunkOverlap,
		Metadata:         datatypes.JSON(metaBytes),
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to persist document: %w", err)
	}

	splitter, err := splitters.New(strategy, chunkSize, chunkOverlap)
	if err != nil {
		return nil, err
	}
	spans := splitter.Split(text)
	s.log.Info(fmt.Sprintf("Split document %d into %d chunks (strategy=%s)", doc.ID, len(spans), strategy))

	var embeddings [][]float32
	if len(spans) > 0 {
		embeddings, err = s.embedder.EmbedBatch(ctx, spans)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(embeddings) != len(spans) {
			return nil, fmt.Errorf("got %d embeddings for %d chunks", len(embeddings), len(spans))
		}
	}

	chunks := make([]*models.TextChunk, 0, len(spans))
	for i, span := range spans {
		vectorID := uuid.New().String()
		if err := s.vectors.Upsert(ctx, vectorID, embeddings[i], span, doc.ID); err != nil {
			return nil, fmt.Errorf("failed to upsert vector for chunk %d: %w", i, err)
		}

		chunkMeta, err := json.Marshal(map[string]interface{}{
			"document_id":   doc.ID,
			"chunk_index":   i,
			"vector_id":     vectorID,
			"chunk_size":    chunkSize,
			"chunk_overlap": chunkOverlap,
			"strategy":      strategy,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal chunk metadata: %w", err)
		}

		chunks = append(chunks, &models.TextChunk{
			DocumentID: doc.ID,
			ChunkIndex: i,
			Content:    span,
			VectorID:   vectorID,
			Metadata:   datatypes.JSON(chunkMeta),
		})
	}

	if err := s.repo.CreateChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("failed to persist chunks: %w", err)
	}

	if s.archive != nil {
		contentType := mime.TypeByExtension(filepath.Ext(filename))
		if err := s.archive.Archive(ctx, hash, data, contentType); err != nil {
			s.log.Warn(fmt.Sprintf("Failed to archive raw upload %s: %v", filename, err))
		}
	}

	if s.events != nil {
		err := s.events.Publish(ctx, "document.ingested", map[string]interface{}{
			"document_id": doc.ID,
			"filename":    filename,
			"chunks":      len(chunks),
		})
		if err != nil {
			s.log.Warn(fmt.Sprintf("Failed to publish document.ingested event: %v", err))
		}
	}

	return doc, nil
}
