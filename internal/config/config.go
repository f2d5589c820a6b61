package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo 对应 'app' 部分，包含应用程序的基本信息。
type AppInfo struct {
	Name        string `yaml:"name"`        // 应用程序名称
	Version     string `yaml:"version"`     // 应用程序版本
	Environment string `yaml:"environment"` // 运行环境 (例如: "development", "production")
}

// ServerConfig 定义了 HTTP 服务器的配置。
type ServerConfig struct {
	Address string `yaml:"address"` // 监听地址 (例如: ":8080")
}

// LoggerConfig 定义了日志记录器的配置。
type LoggerConfig struct {
	Level string `yaml:"level"` // 日志级别 (例如: "info", "debug", "warn", "error")
}

// MySQLConfig 定义了 MySQL 数据库的连接配置。
type MySQLConfig struct {
	Address         string `yaml:"address"`         // MySQL 服务器地址
	Username        string `yaml:"username"`        // 用户名
	Password        string `yaml:"password"`        // 密码
	Database        string `yaml:"database"`        // 数据库名称
	MaxOpenConns    int    `yaml:"maxOpenConns"`    // 最大打开连接数
	MaxIdleConns    int    `yaml:"maxIdleConns"`    // 最大空闲连接数
	ConnMaxLifetime int    `yaml:"connMaxLifetime"` // 连接最大生命周期 (秒)
}

// RedisConfig 定义了 Redis 数据库的连接配置。
type RedisConfig struct {
	Address  string `yaml:"address"`  // Redis 服务器地址 (例如: "localhost:6379")
	Password string `yaml:"password"` // Redis 密码
	DB       int    `yaml:"db"`       // Redis 数据库编号
}

// MilvusConfig 定义了 Milvus 向量数据库的连接和集合配置。
type MilvusConfig struct {
	Address    string `yaml:"address"`    // Milvus 服务地址
	Collection string `yaml:"collection"` // 集合名称
	Dim        int    `yaml:"dim"`        // 向量维度
}

// MinIOConfig 定义了 MinIO 对象存储的连接配置。
type MinIOConfig struct {
	Enabled   bool   `yaml:"enabled"`   // 是否启用原始文件归档
	Endpoint  string `yaml:"endpoint"`  // MinIO 服务端点
	AccessKey string `yaml:"accessKey"` // 访问密钥
	SecretKey string `yaml:"secretKey"` // Secret 密钥
	Bucket    string `yaml:"bucket"`    // 默认存储桶名称
	Secure    bool   `yaml:"secure"`    // 是否使用HTTPS
}

// KafkaConfig 定义了 Kafka 消息队列的连接配置。
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"` // 是否启用领域事件发布
	Brokers []string `yaml:"brokers"` // Kafka Broker 地址列表
	Topic   string   `yaml:"topic"`   // 领域事件主题
}

// DatabaseConfigs 包含所有外部存储的配置。
type DatabaseConfigs struct {
	MySQL  MySQLConfig  `yaml:"mysql"`  // MySQL 数据库配置
	Redis  RedisConfig  `yaml:"redis"`  // Redis 数据库配置
	Milvus MilvusConfig `yaml:"milvus"` // Milvus 向量数据库配置
	MinIO  MinIOConfig  `yaml:"minio"`  // MinIO 对象存储配置
	Kafka  KafkaConfig  `yaml:"kafka"`  // Kafka 消息队列配置
}

// OllamaConfig 包含了 Ollama 服务的配置。
type OllamaConfig struct {
	BaseURL string `yaml:"baseURL"` // Ollama 服务地址 (例如: "http://localhost:11434")
	Model   string `yaml:"model"`   // 模型名称
}

// LLMConfig 包含了生成模型提供商的配置。
type LLMConfig struct {
	Provider string       `yaml:"provider"` // LLM提供商 (目前仅支持 "ollama")
	Ollama   OllamaConfig `yaml:"ollama"`   // Ollama 模型配置
}

// EmbeddingConfig 包含了 Embedding 提供商的配置。
type EmbeddingConfig struct {
	Provider string       `yaml:"provider"` // Embedding提供商 (目前仅支持 "ollama")
	Ollama   OllamaConfig `yaml:"ollama"`   // Ollama 模型配置
}

// ChunkingConfig 定义了文档切分的默认参数。
type ChunkingConfig struct {
	DefaultStrategy string `yaml:"defaultStrategy"` // 默认切分策略 ("recursive" 或 "sentence")
	ChunkSize       int    `yaml:"chunkSize"`       // 切分块大小 (字符数)
	ChunkOverlap    int    `yaml:"chunkOverlap"`    // 相邻块之间的重叠大小
}

// ChatConfig 定义了对话流程的参数。
type ChatConfig struct {
	MaxHistory    int `yaml:"maxHistory"`    // 读取的最近对话轮数 (成对计)
	TopK          int `yaml:"topK"`          // 向量检索返回的条数
	HistoryTTL    int `yaml:"historyTTL"`    // 对话历史的过期时间 (秒)
	BookingTTL    int `yaml:"bookingTTL"`    // 预约状态的过期时间 (秒)
	GenTimeoutSec int `yaml:"genTimeoutSec"` // 生成请求的整体超时 (秒)
}

// AppConfig 是整个 YAML 文件的根结构，包含了应用程序的所有配置。
type AppConfig struct {
	App       AppInfo         `yaml:"app"`       // 应用程序信息
	Server    ServerConfig    `yaml:"server"`    // HTTP 服务器配置
	Logger    LoggerConfig    `yaml:"logger"`    // 日志记录器配置
	Databases DatabaseConfigs `yaml:"databases"` // 数据库配置
	LLM       LLMConfig       `yaml:"llm"`       // LLM 配置部分
	Embedding EmbeddingConfig `yaml:"embedding"` // Embedding 配置部分
	Chunking  ChunkingConfig  `yaml:"chunking"`  // 文档切分配置
	Chat      ChatConfig      `yaml:"chat"`      // 对话流程配置
}

// LoadConfig 函数从指定路径加载并解析 YAML 配置文件。
//
// 参数:
//
//	path: YAML 配置文件的路径。
//
// 返回值:
//
//	*AppConfig: 解析后的应用程序配置结构体。
//	error: 如果文件读取或解析失败，则返回错误。
func LoadConfig(path string) (*AppConfig, error) {
	// 读取 YAML 文件内容。
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取 YAML 文件 '%s': %w", path, err)
	}
	var cfg AppConfig
	// 将 YAML 内容解析到 cfg 结构体中。
	err = yaml.Unmarshal(yamlFile, &cfg)
	if err != nil {
		return nil, fmt.Errorf("解析 YAML 文件失败: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults 为未在配置文件中给出的字段填充默认值。
func (c *AppConfig) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Chunking.DefaultStrategy == "" {
		c.Chunking.DefaultStrategy = "recursive"
	}
	if c.Chunking.ChunkSize == 0 {
		c.Chunking.ChunkSize = 1500
	}
	if c.Chunking.ChunkOverlap == 0 {
		c.Chunking.ChunkOverlap = 150
	}
	if c.Chat.MaxHistory == 0 {
		c.Chat.MaxHistory = 5
	}
	if c.Chat.TopK == 0 {
		c.Chat.TopK = 3
	}
	if c.Chat.HistoryTTL == 0 {
		c.Chat.HistoryTTL = 3600
	}
	if c.Chat.BookingTTL == 0 {
		c.Chat.BookingTTL = 3600
	}
	if c.Chat.GenTimeoutSec == 0 {
		c.Chat.GenTimeoutSec = 120
	}
}
