package geminiservice

import "encoding/json"

// Known response shapes, decoded once at the network boundary instead of
// walking untyped maps. Providers answer with one of: a direct "text"
// field, a string "output" field, a "candidates" array, or a "choices"
// array; anything else is passed through verbatim.

type responseEnvelope struct {
	Text       string            `json:"text"`
	Output     json.RawMessage   `json:"output"`
	Candidates []json.RawMessage `json:"candidates"`
	Choices    []json.RawMessage `json:"choices"`
}

// geminiCandidate covers both the native nested shape
// (content.parts[].text) and the flat content/text variant.
type geminiCandidate struct {
	Content json.RawMessage `json:"content"`
	Text    string          `json:"text"`
}

type candidateContent struct {
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

// chatChoice covers OpenAI-style choices: a direct text field, a nested
// message object, or a bare content string.
type chatChoice struct {
	Text    string          `json:"text"`
	Message json.RawMessage `json:"message"`
	Content string          `json:"content"`
}

type chatMessage struct {
	Content string `json:"content"`
	Text    string `json:"text"`
}

// extractText normalizes a provider response body into plain answer text.
// Unknown shapes fall through to the raw payload so the formatter's
// preformatted-text path can still show something.
func extractText(body []byte) string {
	var env responseEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return string(body)
	}

	if env.Text != "" {
		return env.Text
	}

	if len(env.Output) > 0 {
		var out string
		if err := json.Unmarshal(env.Output, &out); err == nil && out != "" {
			return out
		}
	}

	if len(env.Candidates) > 0 {
		if text := candidateText(env.Candidates[0]); text != "" {
			return text
		}
	}

	if len(env.Choices) > 0 {
		if text := choiceText(env.Choices[0]); text != "" {
			return text
		}
	}

	return string(body)
}

func candidateText(raw json.RawMessage) string {
	var cand geminiCandidate
	if err := json.Unmarshal(raw, &cand); err == nil {
		if len(cand.Content) > 0 {
			var nested candidateContent
			if err := json.Unmarshal(cand.Content, &nested); err == nil && len(nested.Parts) > 0 {
				return nested.Parts[0].Text
			}
			var flat string
			if err := json.Unmarshal(cand.Content, &flat); err == nil {
				return flat
			}
		}
		if cand.Text != "" {
			return cand.Text
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func choiceText(raw json.RawMessage) string {
	var choice chatChoice
	if err := json.Unmarshal(raw, &choice); err == nil {
		if choice.Text != "" {
			return choice.Text
		}
		if len(choice.Message) > 0 {
			var msg chatMessage
			if err := json.Unmarshal(choice.Message, &msg); err == nil {
				if msg.Content != "" {
					return msg.Content
				}
				if msg.Text != "" {
					return msg.Text
				}
			}
			var s string
			if err := json.Unmarshal(choice.Message, &s); err == nil {
				return s
			}
		}
		if choice.Content != "" {
			return choice.Content
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
