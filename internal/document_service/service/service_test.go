package service

import (
	"context"
	"errors"
	"testing"

	"docuchat/internal/models"
	"docuchat/internal/rag/loaders"
	"docuchat/internal/rag/schema"
	"docuchat/internal/rag/splitters"
	"docuchat/pkg/logger"
)

type fakeRepo struct {
	byHash map[string]*models.Document
	docs   []*models.Document
	chunks []*models.TextChunk
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byHash: make(map[string]*models.Document)}
}

func (f *fakeRepo) GetByHash(_ context.Context, hash string) (*models.Document, error) {
	return f.byHash[hash], nil
}

func (f *fakeRepo) CreateDocument(_ context.Context, doc *models.Document) error {
	doc.ID = uint(len(f.docs) + 1)
	f.docs = append(f.docs, doc)
	f.byHash[doc.ContentHash] = doc
	return nil
}

func (f *fakeRepo) CreateChunks(_ context.Context, chunks []*models.TextChunk) error {
	f.chunks = append(f.chunks, chunks...)
	return nil
}

type countingEmbedder struct {
	batchCalls int
	embedded   []string
}

func (e *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.embedded = append(e.embedded, text)
	return []float32{1, 2, 3}, nil
}

func (e *countingEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.batchCalls++
	e.embedded = append(e.embedded, texts...)
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 2, 3}
	}
	return out, nil
}

type recordingVectorStore struct {
	upserted []string
}

func (v *recordingVectorStore) Upsert(_ context.Context, id string, _ []float32, _ string, _ uint) error {
	v.upserted = append(v.upserted, id)
	return nil
}

func (v *recordingVectorStore) Search(_ context.Context, _ []float32, _ int) ([]*schema.ScoredChunk, error) {
	return nil, nil
}

func newTestService(repo *fakeRepo, embedder *countingEmbedder, vectors *recordingVectorStore) *Service {
	return NewService(repo, embedder, vectors, nil, nil, logger.New("test"))
}

func TestIngest_PersistsDocumentAndChunks(t *testing.T) {
	repo := newFakeRepo()
	embedder := &countingEmbedder{}
	vectors := &recordingVectorStore{}
	svc := newTestService(repo, embedder, vectors)

	data := []byte("First paragraph.\n\nSecond paragraph.\n\nThird paragraph.")
	doc, err := svc.Ingest(context.Background(), data, "notes.txt", "recursive", 20, 0)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if doc.ID == 0 {
		t.Error("document was not assigned an id")
	}
	if doc.Filename != "notes.txt" || doc.ChunkingStrategy != models.ChunkingStrategy("recursive") {
		t.Errorf("unexpected document row: %+v", doc)
	}

	if len(repo.chunks) == 0 {
		t.Fatal("no chunk rows were persisted")
	}
	if embedder.batchCalls != 1 {
		t.Errorf("spans embedded in %d batches, want 1", embedder.batchCalls)
	}
	if len(embedder.embedded) != len(repo.chunks) {
		t.Errorf("embedded %d spans for %d chunks", len(embedder.embedded), len(repo.chunks))
	}
	if len(vectors.upserted) != len(repo.chunks) {
		t.Errorf("%d vector upserts for %d chunks", len(vectors.upserted), len(repo.chunks))
	}

	for i, chunk := range repo.chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, chunk.ChunkIndex)
		}
		if chunk.DocumentID != doc.ID {
			t.Errorf("chunk %d belongs to document %d, want %d", i, chunk.DocumentID, doc.ID)
		}
		if chunk.VectorID != vectors.upserted[i] {
			t.Errorf("chunk %d vector id %q does not match upsert %q", i, chunk.VectorID, vectors.upserted[i])
		}
	}
}

func TestIngest_DuplicateUploadIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	embedder := &countingEmbedder{}
	vectors := &recordingVectorStore{}
	svc := newTestService(repo, embedder, vectors)

	data := []byte("Same content both times.")
	first, err := svc.Ingest(context.Background(), data, "a.txt", "recursive", 100, 0)
	if err != nil {
		t.Fatalf("first Ingest() error = %v", err)
	}

	embedsBefore := len(embedder.embedded)
	upsertsBefore := len(vectors.upserted)

	second, err := svc.Ingest(context.Background(), data, "b.txt", "sentence", 50, 5)
	if err != nil {
		t.Fatalf("second Ingest() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("duplicate upload created document %d, want existing %d", second.ID, first.ID)
	}
	if len(repo.docs) != 1 {
		t.Errorf("repo holds %d documents, want 1", len(repo.docs))
	}
	if len(embedder.embedded) != embedsBefore || len(vectors.upserted) != upsertsBefore {
		t.Error("duplicate upload must not embed or upsert again")
	}
}

func TestIngest_UnsupportedFileType(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &countingEmbedder{}, &recordingVectorStore{})

	_, err := svc.Ingest(context.Background(), []byte("content"), "report.docx", "recursive", 100, 0)
	if !errors.Is(err, loaders.ErrUnsupportedFileType) {
		t.Errorf("Ingest() error = %v, want ErrUnsupportedFileType", err)
	}
	if len(repo.docs) != 0 {
		t.Error("no document row should exist for a rejected file")
	}
}

func TestIngest_InvalidStrategy(t *testing.T) {
	repo := newFakeRepo()
	vectors := &recordingVectorStore{}
	svc := newTestService(repo, &countingEmbedder{}, vectors)

	_, err := svc.Ingest(context.Background(), []byte("some text"), "a.txt", "semantic", 100, 0)
	if !errors.Is(err, splitters.ErrInvalidStrategy) {
		t.Errorf("Ingest() error = %v, want ErrInvalidStrategy", err)
	}
	if len(vectors.upserted) != 0 {
		t.Error("no vectors should be upserted for an invalid strategy")
	}
}
