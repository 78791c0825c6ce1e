package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	PostgresDSN    string `env:"POSTGRES-DSN" ini:"postgres_dsn"`
	AnthropicModel string `env:"ANTHROPIC-MODEL" ini:"anthropic_model"`
	EmbeddingModel string `env:"EMBEDDING-MODEL" ini:"embedding_model"`
	CourseDocsDir  string `env:"COURSE-DOCS-DIR" ini:"course_docs_dir"`

	ChunkSize            int     `ini:"chunk_size"`
	ChunkOverlap         int     `ini:"chunk_overlap"`
	CourseMatchThreshold float64 `ini:"course_match_threshold"`
	SearchTopK           int     `ini:"search_top_k"`
	MaxExchanges         int     `ini:"max_exchanges"`
	MaxTokens            int     `ini:"max_tokens"`
}
