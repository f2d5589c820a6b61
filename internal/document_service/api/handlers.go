package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"docuchat/internal/config"
	"docuchat/internal/document_service/service"
	"docuchat/internal/rag/loaders"
	"docuchat/internal/rag/splitters"

	"github.com/gin-gonic/gin"
)

// Handler 封装了文档 API endpoint 的处理函数。
type Handler struct {
	service  *service.Service
	chunking *config.ChunkingConfig
}

// NewHandler 创建一个新的 Handler 实例。
func NewHandler(s *service.Service, chunking *config.ChunkingConfig) *Handler {
	return &Handler{service: s, chunking: chunking}
}

// DocumentResponse 定义了上传接口的 JSON 响应结构。
type DocumentResponse struct {
	DocumentID       string `json:"document_id"`
	Filename         string `json:"filename"`
	ChunkingStrategy string `json:"chunking_strategy"`
}

// Upload 处理文档上传请求。只接受 .pdf 和 .txt 文件；
// 可通过查询参数覆盖切分策略与参数。
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	filename := fileHeader.Filename
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".pdf") && !strings.HasSuffix(lower, ".txt") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF and TXT files are supported"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	strategy := c.DefaultQuery("chunking_strategy", h.chunking.DefaultStrategy)
	chunkSize := queryInt(c, "chunk_size", h.chunking.ChunkSize)
	chunkOverlap := queryInt(c, "chunk_overlap", h.chunking.ChunkOverlap)

	doc, err := h.service.Ingest(c.Request.Context(), data, filename, strategy, chunkSize, chunkOverlap)
	if err != nil {
		if errors.Is(err, loaders.ErrUnsupportedFileType) || errors.Is(err, splitters.ErrInvalidStrategy) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{
		DocumentID:       strconv.FormatUint(uint64(doc.ID), 10),
		Filename:         doc.Filename,
		ChunkingStrategy: string(doc.ChunkingStrategy),
	})
}

// queryInt 读取一个整型查询参数，缺失或非法时返回默认值。
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
