package embedding

import (
	"context"
	"math"
	"time"

	"github.com/ollama/ollama/api"
)

const DefaultModel = "nomic-embed-text"

// Embedder turns text into a dense vector. Implementations must return unit
// length vectors so pgvector cosine distance stays well behaved.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OllamaEmbedder embeds text with a local ollama model.
type OllamaEmbedder struct {
	cli   *api.Client
	model string
}

func ProvideOllamaEmbedder(cli *api.Client, model string) *OllamaEmbedder {
	if model == "" {
		model = DefaultModel
	}
	return &OllamaEmbedder{cli: cli, model: model}
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	req := &api.EmbeddingRequest{
		Model:     e.model,
		Prompt:    text,
		KeepAlive: &api.Duration{Duration: 60 * time.Minute}, // keep model loaded across calls
	}
	resp, err := e.cli.Embeddings(ctx, req) // blocking, non-streaming
	if err != nil {
		return nil, err
	}

	emb64 := resp.Embedding // []float64
	emb32 := make([]float32, len(emb64))
	for i, v := range emb64 {
		emb32[i] = float32(v)
	}
	return Normalize(emb32), nil
}

// Normalize scales a vector to unit length. A zero vector is returned
// unchanged.
func Normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
