package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"lesson-rag/internal/models"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Paths      PathsConfig      `yaml:"paths"`
	Index      IndexConfig      `yaml:"index"`
	EmbedLLM   LLMConfig        `yaml:"embed_llm"`
	AnswerLLM  GenerationConfig `yaml:"answer_llm"`
	RewriteLLM GenerationConfig `yaml:"rewrite_llm"`
	RAG        RAGConfig        `yaml:"rag"`
	Database   DatabaseConfig   `yaml:"database"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

type PathsConfig struct {
	VectorDB string `yaml:"vector_db"`
	PDF      string `yaml:"pdf"`
}

type IndexConfig struct {
	// Backend is chromem or pgvector.
	Backend    string `yaml:"backend"`
	Collection string `yaml:"collection"`
	Compress   bool   `yaml:"compress"`
	CacheSize  int    `yaml:"cache_size"`
	TopK       int    `yaml:"top_k"`
}

// LLMConfig describes an embedding endpoint.
type LLMConfig struct {
	// Provider is ollama or openai.
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

// GenerationConfig describes a text-generation endpoint and its sampling parameters.
type GenerationConfig struct {
	// API is chat (chat-completions) or completion (legacy text completions).
	API         string  `yaml:"api"`
	BaseURL     string  `yaml:"base_url"`
	Key         string  `yaml:"key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

func (g GenerationConfig) ModelConfig() models.ModelConfig {
	return models.ModelConfig{
		ModelID:     g.Model,
		Temperature: g.Temperature,
		MaxTokens:   g.MaxTokens,
	}
}

type RAGConfig struct {
	ChunkSize     int    `yaml:"chunk_size"`
	ChunkOverlap  int    `yaml:"chunk_overlap"`
	EncryptionKey string `yaml:"encryption_key"`
}

type DatabaseConfig struct {
	// Driver is pgdriver or postgres (lib/pq).
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

const (
	defaultAddr           = ":8000"
	defaultChunkSize      = 500
	defaultChunkOverlap   = 100
	defaultTogetherURL    = "https://api.together.xyz/v1"
	defaultOllamaURL      = "http://localhost:11434"
	defaultEmbeddingModel = "nomic-embed-text"
	defaultAnswerModel    = "meta-llama/Llama-3.3-70B-Instruct-Turbo"
	defaultRewriteModel   = "NousResearch/Nous-Hermes-2-Mixtral-8x7B-DPO"
	defaultRewriteTemp    = 0.8
)

// LoadConfig reads the YAML config at path. A missing file yields the defaults.
// Environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Log:        LogConfig{Console: true},
		RewriteLLM: GenerationConfig{Temperature: defaultRewriteTemp},
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}
	applyDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "debug"
	}
	if cfg.Paths.VectorDB == "" {
		cfg.Paths.VectorDB = models.DefaultVectorDBPath
	}
	if cfg.Paths.PDF == "" {
		cfg.Paths.PDF = models.DefaultPDFPath
	}
	if cfg.Index.Backend == "" {
		cfg.Index.Backend = "chromem"
	}
	if cfg.Index.Collection == "" {
		cfg.Index.Collection = models.DefaultCollection
	}
	if cfg.Index.TopK <= 0 {
		cfg.Index.TopK = models.DefaultTopK
	}
	if cfg.EmbedLLM.Provider == "" {
		cfg.EmbedLLM.Provider = "ollama"
	}
	if cfg.EmbedLLM.BaseURL == "" && cfg.EmbedLLM.Provider == "ollama" {
		cfg.EmbedLLM.BaseURL = defaultOllamaURL
	}
	if cfg.EmbedLLM.Model == "" {
		cfg.EmbedLLM.Model = defaultEmbeddingModel
	}
	generationDefaults(&cfg.AnswerLLM, defaultAnswerModel, 512)
	generationDefaults(&cfg.RewriteLLM, defaultRewriteModel, 2048)
	if cfg.RAG.ChunkSize <= 0 {
		cfg.RAG.ChunkSize = defaultChunkSize
	}
	if cfg.RAG.ChunkOverlap < 0 || cfg.RAG.ChunkOverlap >= cfg.RAG.ChunkSize {
		cfg.RAG.ChunkOverlap = defaultChunkOverlap
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "pgdriver"
	}
}

func generationDefaults(g *GenerationConfig, model string, maxTokens int) {
	if g.API == "" {
		g.API = "completion"
	}
	if g.BaseURL == "" {
		g.BaseURL = defaultTogetherURL
	}
	if g.Model == "" {
		g.Model = model
	}
	if g.MaxTokens <= 0 {
		g.MaxTokens = maxTokens
	}
}

func applyEnv(cfg *Config) {
	if key := os.Getenv("TOGETHER_API_KEY"); key != "" {
		cfg.AnswerLLM.Key = key
		cfg.RewriteLLM.Key = key
	}
	if url := os.Getenv("LLM_BASE_URL"); url != "" {
		cfg.AnswerLLM.BaseURL = url
		cfg.RewriteLLM.BaseURL = url
	}
	if url := os.Getenv("EMBED_BASE_URL"); url != "" {
		cfg.EmbedLLM.BaseURL = url
	}
	if key := os.Getenv("EMBED_API_KEY"); key != "" {
		cfg.EmbedLLM.Key = key
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if pw := os.Getenv("DATABASE_PASSWORD"); pw != "" {
		cfg.Database.Password = pw
	}
	if key := os.Getenv("RAG_ENCRYPTION_KEY"); key != "" {
		cfg.RAG.EncryptionKey = key
	}
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err == nil {
			cfg.Server.Addr = ":" + port
		}
	}
}
