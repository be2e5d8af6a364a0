// Package genai wraps the remote image model behind two single-shot
// operations: prompt-driven edits and enhancement passes. There is no
// retry; failures carry the upstream message verbatim.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const enhancePrompt = "Enhance this photo: improve sharpness, dynamic range and " +
	"color balance without changing the composition or subject."

// GenerationError is returned when a prompt-driven edit fails.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return "image generation failed: " + e.Message
}

// EnhancementError is returned when an enhancement pass fails.
type EnhancementError struct {
	Message string
}

func (e *EnhancementError) Error() string {
	return "image enhancement failed: " + e.Message
}

type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// SourceImage is the raster handed to the remote model.
type SourceImage struct {
	Data []byte
	MIME string
}

// EditedImage is the model's response, decoded enough to know its shape.
type EditedImage struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("genai: API key is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash-image"
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Generate asks the model for an edited version of src driven by prompt.
func (c *Client) Generate(ctx context.Context, src SourceImage, prompt string) (*EditedImage, error) {
	img, err := c.generateContent(ctx, src, prompt)
	if err != nil {
		return nil, &GenerationError{Message: err.Error()}
	}
	return img, nil
}

// Enhance asks the model for an enhancement pass over src.
func (c *Client) Enhance(ctx context.Context, src SourceImage) (*EditedImage, error) {
	img, err := c.generateContent(ctx, src, enhancePrompt)
	if err != nil {
		return nil, &EnhancementError{Message: err.Error()}
	}
	return img, nil
}

func (c *Client) generateContent(ctx context.Context, src SourceImage, prompt string) (*EditedImage, error) {
	if len(src.Data) == 0 {
		return nil, fmt.Errorf("source image is empty")
	}
	if prompt == "" {
		return nil, fmt.Errorf("prompt is empty")
	}

	payload := generateContentRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: src.MIME,
					Data:     base64.StdEncoding.EncodeToString(src.Data),
				}},
			},
		}},
		GenerationConfig: &generationConfig{ResponseModalities: []string{"IMAGE"}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Model call finished",
		zap.String("model", c.model),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(started)))

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	for _, cand := range parsed.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode image payload: %w", err)
			}
			edited := &EditedImage{Data: data, MIME: p.InlineData.MimeType}
			if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
				edited.Width = cfg.Width
				edited.Height = cfg.Height
			}
			return edited, nil
		}
	}

	return nil, fmt.Errorf("model returned no image")
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts,omitempty"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason,omitempty"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}
