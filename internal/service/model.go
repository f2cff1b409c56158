package service

import (
	"context"
	"errors"

	"github.com/nutriweek/backend/pkg/localmodel"
)

type localModelClient struct {
	client *localmodel.Client
}

// NewLocalModelClient wraps the HTTP client for the on-device model runtime.
func NewLocalModelClient(client *localmodel.Client) ModelClient {
	return &localModelClient{client: client}
}

func (c *localModelClient) Status(ctx context.Context) ModelStatus {
	switch c.client.Status(ctx) {
	case localmodel.StatusReady:
		return ModelReady
	case localmodel.StatusLoading:
		return ModelLoading
	default:
		return ModelError
	}
}

func (c *localModelClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return c.client.Generate(ctx, prompt, maxTokens)
}

type disabledModelClient struct{}

// NewDisabledModelClient returns a client for deployments without a model
// runtime. Every narrative takes the template path.
func NewDisabledModelClient() ModelClient {
	return disabledModelClient{}
}

func (disabledModelClient) Status(ctx context.Context) ModelStatus {
	return ModelUnsupported
}

func (disabledModelClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return "", errors.New("model generation is disabled")
}
