package llm

import (
	"context"

	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/Veraticus/client-pulse/internal/service"
)

// Client defines the interface for LLM providers.
type Client interface {
	Analyze(ctx context.Context, req service.AnalysisRequest) (model.Analysis, error)
}

// Config holds LLM provider configuration.
type Config struct {
	Provider          string
	APIKey            string
	Model             string
	Temperature       float64
	MaxTokens         int
	RequestsPerMinute int
}
