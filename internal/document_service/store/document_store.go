package store

import (
	"context"
	"errors"

	"docuchat/internal/models"

	"gorm.io/gorm"
)

// DocumentStore 封装了文档及其切分块的持久化操作。
type DocumentStore struct {
	DB *gorm.DB
}

// NewDocumentStore 创建一个新的 DocumentStore。
func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{DB: db}
}

// GetByHash 通过内容哈希查找已存在的文档。未找到时返回 (nil, nil)。
func (s *DocumentStore) GetByHash(ctx context.Context, hash string) (*models.Document, error) {
	var doc models.Document
	err := s.DB.WithContext(ctx).Where("content_hash = ?", hash).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// CreateDocument 在数据库中创建一条新的文档记录。
func (s *DocumentStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	return s.DB.WithContext(ctx).Create(doc).Error
}

// CreateChunks 在单个批量操作中写入一个文档的全部切分块。
func (s *DocumentStore) CreateChunks(ctx context.Context, chunks []*models.TextChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Create(chunks).Error
}
