package summary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const defaultModelURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

// HuggingFaceSummarizer condenses text through the Hugging Face inference
// API using the bart-large-cnn summarization model.
type HuggingFaceSummarizer struct {
	client   *http.Client
	apiToken string
	modelURL string
}

func NewHuggingFaceSummarizer(client *http.Client, apiToken string) (*HuggingFaceSummarizer, error) {
	if apiToken == "" {
		return nil, errors.New("summarizer api token is not configured")
	}
	return &HuggingFaceSummarizer{
		client:   client,
		apiToken: apiToken,
		modelURL: defaultModelURL,
	}, nil
}

func (s *HuggingFaceSummarizer) Summarize(text string, maxLen, minLen int) (string, error) {
	payload := struct {
		Inputs     string `json:"inputs"`
		Parameters struct {
			MaxLength int  `json:"max_length"`
			MinLength int  `json:"min_length"`
			DoSample  bool `json:"do_sample"`
		} `json:"parameters"`
	}{Inputs: text}
	payload.Parameters.MaxLength = maxLen
	payload.Parameters.MinLength = minLen

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.modelURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarization request failed with status %d", resp.StatusCode)
	}

	var out []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out) == 0 || out[0].SummaryText == "" {
		return "", errors.New("empty summarization response")
	}
	return out[0].SummaryText, nil
}
