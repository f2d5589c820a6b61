package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// ArchiveStore 将上传的原始文件字节归档到 MinIO 对象存储。
type ArchiveStore struct {
	client *minio.Client
	bucket string
}

// NewArchiveStore 创建一个新的 ArchiveStore。
func NewArchiveStore(client *minio.Client, bucket string) *ArchiveStore {
	return &ArchiveStore{client: client, bucket: bucket}
}

// Archive 以内容哈希为对象名保存原始文件，重复上传会覆盖为相同内容。
func (s *ArchiveStore) Archive(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("归档对象 '%s' 失败: %w", objectName, err)
	}
	return nil
}
