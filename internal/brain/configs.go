package brain

import (
	"encoding/json"
	"strings"
	"time"
)

// OpenAICompatible configures a provider for any /chat/completions API,
// e.g. https://api.groq.com/openai/v1 or https://api.openai.com/v1.
func OpenAICompatible(baseURL, apiKey, model string, timeout time.Duration) *HTTPProvider {
	base := strings.TrimRight(baseURL, "/")
	return NewHTTPProvider(&ProviderConfig{
		Name:          ProviderName(base),
		Endpoint:      base + "/chat/completions",
		BaseURL:       base,
		APIKey:        apiKey,
		Model:         model,
		AuthHeader:    "Authorization",
		AuthPrefix:    "Bearer ",
		Timeout:       timeout,
		BuildBody:     buildChatBody,
		ParseResponse: parseChatResponse,
	})
}

// ProviderName labels a base URL: "groq" for Groq, "other" otherwise.
func ProviderName(baseURL string) string {
	if strings.Contains(baseURL, "groq.com") {
		return "groq"
	}
	return "other"
}

func buildChatBody(cfg *ProviderConfig, req Request) map[string]any {
	messages := []map[string]string{}
	if req.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.UserPrompt})

	body := map[string]any{
		"model":       cfg.Model,
		"temperature": req.Temperature,
		"messages":    messages,
	}
	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}
	if req.JSONMode {
		body["response_format"] = map[string]string{"type": "json_object"}
	}
	return body
}

func parseChatResponse(body []byte) (string, string, error) {
	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Model string `json:"model"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", err
	}
	if len(resp.Choices) > 0 {
		return resp.Choices[0].Message.Content, resp.Model, nil
	}
	return "", resp.Model, nil
}
