package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChunkingStrategy names one of the supported text splitting algorithms.
type ChunkingStrategy string

const (
	StrategyRecursive ChunkingStrategy = "recursive" // 分隔符优先级递归切分
	StrategySentence  ChunkingStrategy = "sentence"  // 句子边界切分
)

// Document represents one ingested file, deduplicated by content hash.
// A re-upload of identical bytes resolves to the existing row.
type Document struct {
	ID               uint   `gorm:"primaryKey"`
	Filename         string `gorm:"not null;size:512"`
	ContentHash      string `gorm:"uniqueIndex;not null;size:64"` // sha256 hex of the raw bytes
	ChunkingStrategy ChunkingStrategy
	ChunkSize        int
	ChunkOverlap     int
	Metadata         datatypes.JSON
	CreatedAt        time.Time
}

// TextChunk is one ordered span of a Document, cross-referencing its
// vector entry in Milvus by VectorID.
type TextChunk struct {
	ID         uint   `gorm:"primaryKey"`
	DocumentID uint   `gorm:"index;not null"`
	ChunkIndex int    `gorm:"not null"` // ordinal position within the document
	Content    string `gorm:"type:text"`
	VectorID   string `gorm:"size:36;not null"` // ID in Milvus
	Metadata   datatypes.JSON
	CreatedAt  time.Time
}

func (Document) TableName() string {
	return "documents"
}

func (TextChunk) TableName() string {
	return "text_chunks"
}
