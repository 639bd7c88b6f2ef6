// services/poster_service.go
package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eventix-backend/utils"
)

// geminiResponse is the subset of the generateContent reply we read.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// PosterService proxies poster design prompts to the Gemini API.
type PosterService struct {
	Client *http.Client
}

func NewPosterService() *PosterService {
	return &PosterService{
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *PosterService) generate(prompt string) (string, error) {
	apiKey := strings.TrimSpace(utils.EnvOrDefault("GEMINI_API_KEY", ""))
	if apiKey == "" {
		return "", errors.New("GEMINI_API_KEY is not set")
	}

	endpoint := utils.EnvOrDefault(
		"GEMINI_ENDPOINT",
		"https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent",
	)

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", endpoint+"?key="+apiKey, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var gr geminiResponse
	if err := json.Unmarshal(bodyBytes, &gr); err != nil {
		return "", fmt.Errorf("JSON parse error: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned: %s", string(bodyBytes))
	}

	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// GeneratePosterSuggestions asks for color, typography, and layout guidance
// for an event poster.
func (s *PosterService) GeneratePosterSuggestions(title, description, eventType, theme string) (string, error) {
	if eventType == "" {
		eventType = "General"
	}
	if theme == "" {
		theme = "Professional"
	}

	prompt := fmt.Sprintf(`Generate creative poster design suggestions for an event with the following details:
Title: %s
Description: %s
Type: %s
Theme: %s

Provide:
1. Color scheme suggestions (3-4 colors with hex codes)
2. Typography recommendations
3. Layout suggestions
4. Key visual elements to include
5. Text hierarchy and placement

Format the response as JSON.`, title, description, eventType, theme)

	return s.generate(prompt)
}

// GenerateTaglines asks for five short taglines for the event.
func (s *PosterService) GenerateTaglines(title, description string) (string, error) {
	prompt := fmt.Sprintf(`Generate 5 creative and catchy taglines for an event:
Title: %s
Description: %s

Provide short, memorable taglines that capture the essence of the event.`, title, description)

	return s.generate(prompt)
}
