// Package hfinference is a client for the Hugging Face Inference API.
//
// It is shared by the embedding, generation and extractive QA adapters,
// which differ only in the payload they send to a model endpoint.
package hfinference

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/httpjson"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://router.huggingface.co/hf-inference"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the inference client.
type Config struct {
	// Token is the Hugging Face access token. Empty sends anonymous requests.
	Token string

	// BaseURL is the inference endpoint (default: the hf-inference router).
	BaseURL string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Client calls hosted models.
type Client struct {
	api     *httpjson.Client
	baseURL string
}

// New creates an inference client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	header := http.Header{}
	if cfg.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Token)
	}

	return &Client{
		api: &httpjson.Client{
			HTTP:     &http.Client{Timeout: cfg.Timeout},
			Provider: "huggingface",
			Header:   header,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Infer posts payload to the model and decodes the response into out.
// A non-empty pipeline selects an explicit task endpoint.
func (c *Client) Infer(ctx context.Context, model, pipeline string, payload, out any) error {
	url := c.baseURL + "/models/" + model
	if pipeline != "" {
		url += "/pipeline/" + pipeline
	}
	return c.api.Post(ctx, url, payload, out)
}
