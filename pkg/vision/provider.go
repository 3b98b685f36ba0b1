package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// VisionProvider extracts text from an image with a multimodal model.
type VisionProvider interface {
	ExtractText(ctx context.Context, imagePNG []byte, prompt string) (string, error)
}

// DashScopeVisionProvider calls a qwen-vl model through the DashScope
// OpenAI-compatible endpoint.
type DashScopeVisionProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

var _ VisionProvider = &DashScopeVisionProvider{}

func NewDashScopeVisionProvider(baseURL, apiKey, model string) *DashScopeVisionProvider {
	if model == "" {
		model = "qwen-vl-max"
	}
	return &DashScopeVisionProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type visionContentPart struct {
	Type     string           `json:"type"`
	Text     string           `json:"text,omitempty"`
	ImageURL *visionImageURL  `json:"image_url,omitempty"`
}

type visionImageURL struct {
	URL string `json:"url"`
}

type visionMessage struct {
	Role    string              `json:"role"`
	Content []visionContentPart `json:"content"`
}

type visionChatRequest struct {
	Model    string          `json:"model"`
	Messages []visionMessage `json:"messages"`
}

type visionChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *DashScopeVisionProvider) ExtractText(ctx context.Context, imagePNG []byte, prompt string) (string, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(imagePNG)

	reqPayload := visionChatRequest{
		Model: p.Model,
		Messages: []visionMessage{
			{
				Role: "user",
				Content: []visionContentPart{
					{Type: "image_url", ImageURL: &visionImageURL{URL: dataURL}},
					{Type: "text", Text: prompt},
				},
			},
		},
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var visionResp visionChatResponse
	if err := json.Unmarshal(bodyBytes, &visionResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if visionResp.Error != nil {
		return "", fmt.Errorf("vision error: %s", visionResp.Error.Message)
	}
	if len(visionResp.Choices) == 0 {
		return "", fmt.Errorf("vision returned no choices")
	}

	return visionResp.Choices[0].Message.Content, nil
}
