package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go-greenhouse-autopilot/internal/profile"
	"go-greenhouse-autopilot/internal/retry"
)

const llmMaxRetries = 2

type openaiClient struct {
	apiKey      string
	baseURL     string
	optionModel string
	answerModel string
	policy      Policy
	httpClient  *http.Client
}

// NewOpenAIClient creates a chat-completions client against an
// OpenAI-compatible endpoint. baseURL must not end with a slash.
func NewOpenAIClient(apiKey, baseURL, optionModel, answerModel string, policy Policy) Client {
	return &openaiClient{
		apiKey:      apiKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		optionModel: optionModel,
		answerModel: answerModel,
		policy:      policy,
		httpClient:  &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SelectOption uses temperature 0 so the same question and options
// always produce the same choice.
func (c *openaiClient) SelectOption(ctx context.Context, question string, options []string, cand *profile.ApplicationProfile) (string, error) {
	return c.complete(ctx, c.optionModel, 0,
		buildSelectionSystemPrompt(cand, c.policy),
		buildSelectionUserPrompt(question, options))
}

func (c *openaiClient) GenerateAnswer(ctx context.Context, question string, cand *profile.ApplicationProfile) (string, error) {
	return c.complete(ctx, c.answerModel, 0.7,
		buildAnswerSystemPrompt(cand),
		buildAnswerUserPrompt(question))
}

// complete performs one chat-completions round trip with bounded retries.
func (c *openaiClient) complete(ctx context.Context, model string, temperature float64, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	return retry.Value(ctx, llmMaxRetries, func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
		if err != nil {
			return "", retry.Permanent(fmt.Errorf("failed to create http request: %w", err))
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("http request failed: %w", err)
		}
		defer resp.Body.Close()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, string(bodyBytes))
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return "", retry.Permanent(err)
			}
			return "", err
		}

		var chatResp chatResponse
		if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}

		if chatResp.Error != nil {
			return "", retry.Permanent(fmt.Errorf("API error: %s", chatResp.Error.Message))
		}

		if len(chatResp.Choices) == 0 {
			return "", fmt.Errorf("no choices returned from chat API")
		}

		return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
	})
}
