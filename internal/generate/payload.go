package generate

import (
	"encoding/json"
	"errors"
)

// MissingInputMessage is the client-facing text for ErrMissingInput.
const MissingInputMessage = `Missing "prompt" or Gemini "contents" in request body`

var ErrMissingInput = errors.New("request has neither prompt nor contents")

const (
	promptMaxOutputTokens = 200
	promptTemperature     = 0.7
	blockMediumAndAbove   = "BLOCK_MEDIUM_AND_ABOVE"
)

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type Payload struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
	SafetySettings   []SafetySetting  `json:"safetySettings"`
}

var defaultSafetySettings = []SafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: blockMediumAndAbove},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: blockMediumAndAbove},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: blockMediumAndAbove},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: blockMediumAndAbove},
}

// PromptPayload wraps a single user prompt with the default generation and
// safety settings.
func PromptPayload(prompt string) Payload {
	return Payload{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: GenerationConfig{
			MaxOutputTokens: promptMaxOutputTokens,
			Temperature:     promptTemperature,
		},
		SafetySettings: defaultSafetySettings,
	}
}

// BuildPayload accepts either {"prompt": "..."} or a complete request with
// "contents", which is forwarded untouched.
func BuildPayload(body []byte) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if len(body) > 0 {
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, ErrMissingInput
		}
	}

	if raw, ok := fields["prompt"]; ok {
		var prompt string
		if err := json.Unmarshal(raw, &prompt); err == nil {
			return json.Marshal(PromptPayload(prompt))
		}
	}

	if raw, ok := fields["contents"]; ok && isTruthy(raw) {
		return json.RawMessage(body), nil
	}

	return nil, ErrMissingInput
}

func isTruthy(raw json.RawMessage) bool {
	switch string(raw) {
	case "null", "false", "0", `""`:
		return false
	}
	return len(raw) > 0
}
