package inference

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultEmbeddingModel is the model used for catalog embeddings.
	DefaultEmbeddingModel = openai.AdaEmbeddingV2
	// DefaultEmbeddingDimensions is the dimension ada-002 produces.
	DefaultEmbeddingDimensions = 1536
)

var (
	ErrEmptyText       = errors.New("text cannot be empty")
	ErrWrongDimensions = errors.New("embedding has wrong dimensions, expected 1536")
)

// EmbeddingAPI is the upstream call an Embedder depends on.
type EmbeddingAPI interface {
	CreateEmbeddings(ctx context.Context, text string) ([]float32, error)
}

// Embedder generates vector embeddings for catalog records.
type Embedder struct {
	api        EmbeddingAPI
	dimensions int
}

type openAIEmbeddingAdapter struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func (a *openAIEmbeddingAdapter) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: a.model,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned")
	}
	return resp.Data[0].Embedding, nil
}

// NewEmbedder creates an Embedder backed by the OpenAI embeddings API.
func NewEmbedder(apiKey string) *Embedder {
	return &Embedder{
		api: &openAIEmbeddingAdapter{
			client: openai.NewClient(apiKey),
			model:  DefaultEmbeddingModel,
		},
		dimensions: DefaultEmbeddingDimensions,
	}
}

// NewEmbedderWithAPI creates an Embedder over a custom upstream, for tests.
func NewEmbedderWithAPI(api EmbeddingAPI, dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	return &Embedder{api: api, dimensions: dimensions}
}

// GenerateEmbedding returns the embedding vector for the given text.
func (e *Embedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	embedding, err := e.api.CreateEmbeddings(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}

	if len(embedding) != e.dimensions {
		return nil, ErrWrongDimensions
	}
	return embedding, nil
}
