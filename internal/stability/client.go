package stability

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"relay/internal/domain"
	"relay/internal/infra"
)

const generatePath = "/v2beta/stable-image/generate/ultra"

// Options configures the Stability AI client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Stability AI image generation API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

type generateResponse struct {
	Image        string      `json:"image"`
	FinishReason string      `json:"finish_reason"`
	Seed         json.Number `json:"seed"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.stability.ai"
	}
	logger := opts.Logger
	if logger == nil {
		discard := infra.Logger(zerolog.New(io.Discard))
		logger = &discard
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Generate submits a prepared multipart payload and returns the base64 image
// from the response. One request, one response: no retries, no partial
// results.
func (c *Client) Generate(ctx context.Context, body []byte, contentType string) (string, error) {
	if !c.HasCredentials() {
		return "", domain.Configurationf("STABILITY_API_KEY environment variable is required")
	}
	endpoint := c.baseURL + generatePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", domain.WrapUpstream("Stability API request failed: "+err.Error(), err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.WrapUpstream("Stability API request failed: "+err.Error(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.WrapUpstream("Stability API request failed: "+err.Error(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", domain.Upstreamf("Stability API error: %d - %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", domain.WrapUpstream("No image data received from Stability API", err)
	}
	if decoded.Image == "" {
		return "", domain.Upstreamf("No image data received from Stability API")
	}
	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("finish_reason", decoded.FinishReason).
		Str("seed", decoded.Seed.String()).
		Msg("stability: image generated")
	return decoded.Image, nil
}
