package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DashScopeProvider implements EmbeddingProvider against the DashScope
// OpenAI-compatible /embeddings endpoint.
type DashScopeProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

func NewDashScopeProvider(baseURL, apiKey, model string) EmbeddingProvider {
	if baseURL == "" {
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	}
	if model == "" {
		model = "text-embedding-v1"
	}
	return &DashScopeProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type dashScopeEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type dashScopeEmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *DashScopeProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	// TaskType has no DashScope equivalent, kept for interface compatibility

	reqBody := dashScopeEmbeddingRequest{
		Model: p.Model,
		Input: text,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/embeddings", p.BaseURL)
	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dashscope embedding error: %s", string(bodyBytes))
	}

	var dsResp dashScopeEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &dsResp); err != nil {
		return nil, err
	}
	if dsResp.Error != nil {
		return nil, fmt.Errorf("dashscope embedding error: %s", dsResp.Error.Message)
	}
	if len(dsResp.Data) == 0 {
		return nil, fmt.Errorf("dashscope embedding returned no data")
	}

	values := make([]float32, len(dsResp.Data[0].Embedding))
	for i, v := range dsResp.Data[0].Embedding {
		values[i] = float32(v)
	}

	normalizedValues := normalizeVector(values)

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizedValues,
		},
	}, nil
}
