package service

import (
	"context"
	"fmt"
	"strings"

	"docuchat/internal/chat_service/store"
	"docuchat/internal/rag/interfaces"
	"docuchat/internal/rag/schema"
	"docuchat/pkg/logger"
)

// bookingKeywords is the fixed phrase list that routes a turn into the
// booking flow. Substring matching is a known-coarse heuristic; keep it.
var bookingKeywords = []string{
	"book interview",
	"schedule interview",
	"interview booking",
	"book an interview",
	"schedule an interview",
	"interview appointment",
	"interview",
}

const systemInstruction = "You are a helpful assistant with access to a document database. " +
	"Use the provided context to answer questions accurately and cite your sources. " +
	"If you're unsure or the context doesn't contain the information, say so. " +
	"Maintain conversation context for follow-up questions."

const (
	noContextMarker = "No relevant context available."
	fallbackAnswer  = "Error generating response"
)

// HistoryStore is the conversation history contract the orchestrator
// depends on. RecentMessages returns the newest entries first.
type HistoryStore interface {
	PushMessage(ctx context.Context, conversationID, role, content string) error
	RecentMessages(ctx context.Context, conversationID string, maxPairs int) ([]store.Message, error)
}

// BookingFlow is the side-channel form collection the orchestrator can
// delegate a turn to.
type BookingFlow interface {
	Active(ctx context.Context, conversationID string) (bool, error)
	HandleTurn(ctx context.Context, conversationID, text string) (string, error)
}

// Source is one retrieved context entry backing an answer.
type Source struct {
	Content  string                 `json:"content"`
	Score    float32                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ChatResult is the outcome of one query turn.
type ChatResult struct {
	Answer         string   `json:"answer"`
	Sources        []Source `json:"sources"`
	ConversationID string   `json:"conversation_id"`
}

// Service is the query-time orchestrator: it routes turns between the
// booking flow and standard retrieval plus generation, and persists both
// sides of every exchange. All cross-turn state lives in the external
// stores, so the orchestrator itself is stateless between calls.
type Service struct {
	history    HistoryStore
	booking    BookingFlow
	embedder   interfaces.EmbeddingModel
	vectors    interfaces.VectorStore
	generator  interfaces.Generator
	maxHistory int
	topK       int
	log        *logger.Logger
}

// NewService creates a new chat Service.
func NewService(
	history HistoryStore,
	booking BookingFlow,
	embedder interfaces.EmbeddingModel,
	vectors interfaces.VectorStore,
	generator interfaces.Generator,
	maxHistory, topK int,
	log *logger.Logger,
) *Service {
	return &Service{
		history:    history,
		booking:    booking,
		embedder:   embedder,
		vectors:    vectors,
		generator:  generator,
		maxHistory: maxHistory,
		topK:       topK,
		log:        log,
	}
}

// Answer handles one query turn for the given conversation.
// The user turn is recorded before routing resolves, so booking-flow
// turns land in history too. Backend failures degrade to a fixed
// fallback answer; the conversation is never corrupted by them.
func (s *Service) Answer(ctx context.Context, query, conversationID string) (*ChatResult, error) {
	if err := s.history.PushMessage(ctx, conversationID, "user", query); err != nil {
		return nil, fmt.Errorf("failed to record user turn: %w", err)
	}

	active, err := s.booking.Active(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to check booking state: %w", err)
	}
	if containsBookingKeyword(query) || active {
		answer, err := s.booking.HandleTurn(ctx, conversationID, query)
		if err != nil {
			return nil, err
		}
		return &ChatResult{Answer: answer, Sources: []Source{}, ConversationID: conversationID}, nil
	}

	history, err := s.history.RecentMessages(ctx, conversationID, s.maxHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation history: %w", err)
	}

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	retrieved, err := s.vectors.Search(ctx, queryVector, s.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector index: %w", err)
	}

	prompt := buildPrompt(history, retrieved, query)
	s.log.WithPayload(map[string]interface{}{
		"conversation_id": conversationID,
		"prompt_length":   len(prompt),
		"retrieved":       len(retrieved),
	}).Debug("Prompt assembled")

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.log.Error(fmt.Sprintf("Generation failed for conversation %s: %v", conversationID, err))
		return &ChatResult{Answer: fallbackAnswer, Sources: []Source{}, ConversationID: conversationID}, nil
	}

	if err := s.history.PushMessage(ctx, conversationID, "assistant", answer); err != nil {
		return nil, fmt.Errorf("failed to record assistant turn: %w", err)
	}

	sources := make([]Source, 0, len(retrieved))
	for _, hit := range retrieved {
		sources = append(sources, Source{
			Content:  hit.Text,
			Score:    hit.Score,
			Metadata: map[string]interface{}{"doc_id": hit.DocumentID},
		})
	}

	return &ChatResult{Answer: answer, Sources: sources, ConversationID: conversationID}, nil
}

// containsBookingKeyword reports whether the query matches the booking
// phrase list, case-insensitively.
func containsBookingKeyword(query string) bool {
	lower := strings.ToLower(query)
	for _, keyword := range bookingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// buildPrompt flattens the system instruction, the history window
// (oldest first) and the retrieved context into a single prompt string.
func buildPrompt(history []store.Message, retrieved []*schema.ScoredChunk, query string) string {
	parts := []string{systemInstruction}

	// History arrives newest first; the prompt wants it in reading order.
	for i := len(history) - 1; i >= 0; i-- {
		parts = append(parts, history[i].Content)
	}

	texts := make([]string, 0, len(retrieved))
	for _, hit := range retrieved {
		texts = append(texts, hit.Text)
	}
	contextText := strings.Join(texts, "\n\n")
	if strings.TrimSpace(contextText) == "" {
		contextText = noContextMarker
	}

	parts = append(parts, fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextText, query))
	return strings.Join(parts, "\n")
}
