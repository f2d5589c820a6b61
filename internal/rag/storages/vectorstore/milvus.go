package vectorstore

import (
	"context"
	"fmt"

	"docuchat/internal/database/milvus"
	"docuchat/internal/rag/interfaces"
	"docuchat/internal/rag/schema"
	"docuchat/pkg/logger"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const (
	// Schema fields of the chunk collection.
	FieldID        = "id"
	FieldText      = "text"
	FieldDocID     = "doc_id"
	FieldEmbedding = "embedding"
)

// MilvusStore is an adapter for the existing Milvus client to implement
// the VectorStore interface. Each entry carries the chunk text and the
// owning document id as payload, so retrieval needs no second lookup.
type MilvusStore struct {
	log        *logger.Logger
	client     client.Client // The raw client from the MilvusClient wrapper
	collection string
}

// NewMilvusStore creates a new MilvusStore adapter.
// It takes the project's MilvusClient wrapper and the collection to use.
func NewMilvusStore(milvusClient *milvus.MilvusClient, collectionName string, log *logger.Logger) (interfaces.VectorStore, error) {
	if milvusClient == nil || milvusClient.Client == nil {
		return nil, fmt.Errorf("milvus client is not initialized")
	}
	return &MilvusStore{
		log:        log,
		client:     milvusClient.Client,
		collection: collectionName,
	}, nil
}

// Upsert writes one vector entry with its text and document payload.
func (s *MilvusStore) Upsert(ctx context.Context, id string, vector []float32, text string, documentID uint) error {
	idCol := entity.NewColumnVarChar(FieldID, []string{id})
	textCol := entity.NewColumnVarChar(FieldText, []string{text})
	docIDCol := entity.NewColumnInt64(FieldDocID, []int64{int64(documentID)})
	embeddingCol := entity.NewColumnFloatVector(FieldEmbedding, len(vector), [][]float32{vector})

	_, err := s.client.Upsert(ctx, s.collection, "" /* default partition */, idCol, textCol, docIDCol, embeddingCol)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to upsert vector %s into Milvus: %v", id, err))
		return fmt.Errorf("failed to upsert data into Milvus: %w", err)
	}

	return nil
}

// Search performs a vector similarity search and returns the hits best
// match first, payload included.
func (s *MilvusStore) Search(ctx context.Context, vector []float32, topK int) ([]*schema.ScoredChunk, error) {
	if err := s.client.LoadCollection(ctx, s.collection, false); err != nil {
		return nil, fmt.Errorf("failed to load collection '%s': %w", s.collection, err)
	}

	searchParams, _ := entity.NewIndexIvfFlatSearchParam(10)
	outputFields := []string{FieldID, FieldText, FieldDocID}

	searchResults, err := s.client.Search(
		ctx, s.collection, []string{}, "", outputFields,
		[]entity.Vector{entity.FloatVector(vector)},
		FieldEmbedding, entity.L2, topK, searchParams,
	)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to search in Milvus: %v", err))
		return nil, fmt.Errorf("failed to search in Milvus: %w", err)
	}

	var results []*schema.ScoredChunk
	for _, res := range searchResults {
		findColumn := func(name string) entity.Column {
			for _, field := range res.Fields {
				if field.Name() == name {
					return field
				}
			}
			return nil
		}

		idCol, ok := findColumn(FieldID).(*entity.ColumnVarChar)
		if !ok {
			s.log.Warn("Search result is missing ID field or has wrong type, skipping.")
			continue
		}
		idData := idCol.Data()

		var textData []string
		if textCol, ok := findColumn(FieldText).(*entity.ColumnVarChar); ok {
			textData = textCol.Data()
		}
		var docIDData []int64
		if docIDCol, ok := findColumn(FieldDocID).(*entity.ColumnInt64); ok {
			docIDData = docIDCol.Data()
		}

		for i := 0; i < res.ResultCount; i++ {
			hit := &schema.ScoredChunk{
				VectorID: idData[i],
				Score:    res.Scores[i],
			}
			if textData != nil {
				hit.Text = textData[i]
			}
			if docIDData != nil {
				hit.DocumentID = uint(docIDData[i])
			}
			results = append(results, hit)
		}
	}

	return results, nil
}

// compile-time check to ensure MilvusStore implements the VectorStore interface
var _ interfaces.VectorStore = (*MilvusStore)(nil)
