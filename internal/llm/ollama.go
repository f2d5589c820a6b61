package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"docuchat/internal/rag/interfaces"
	"docuchat/pkg/logger"
)

// Ollama 是一个直接访问 Ollama /api/generate 接口的生成客户端。
// 响应是换行分隔的 JSON 片段流；无法解析的行会被跳过而不是中断整个流。
type Ollama struct {
	httpClient  *http.Client
	generateURL string
	model       string
	log         *logger.Logger
}

// NewOllama 创建一个新的 Ollama 生成客户端。
//
// 参数:
//
//	model: 要使用的模型名称。
//	baseURL: Ollama 服务的基准 URL。如果为空，则默认为 "http://localhost:11434"。
//	timeout: 单次生成请求的整体超时。
//	log: 结构化日志记录器。
func NewOllama(model, baseURL string, timeout time.Duration, log *logger.Logger) *Ollama {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &Ollama{
		httpClient:  &http.Client{Timeout: timeout},
		generateURL: strings.TrimRight(baseURL, "/") + "/api/generate",
		model:       model,
		log:         log,
	}
}

// generateRequest 是 /api/generate 的请求体。
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// generateFragment 是流中单个 JSON 片段里我们关心的部分。
type generateFragment struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate 发送提示词并把流式片段拼接成完整回答。
// 传输错误或非 2xx 状态码作为错误返回，由调用方决定降级策略。
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: o.model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("序列化生成请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.generateURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("构建生成请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("调用 Ollama 失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("Ollama 返回状态码 %d", resp.StatusCode)
	}

	var sb strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var frag generateFragment
		if err := json.Unmarshal([]byte(line), &frag); err != nil {
			// 跳过无法解析的片段，保留已解析的部分。
			o.log.Warn(fmt.Sprintf("Skipping malformed line from Ollama: %s", line))
			continue
		}
		sb.WriteString(frag.Response)
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("读取 Ollama 响应流失败: %w", err)
	}

	return sb.String(), nil
}

// 编译期检查，确保 Ollama 实现了 Generator 接口。
var _ interfaces.Generator = (*Ollama)(nil)
