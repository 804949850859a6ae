/*
Package geminiservice talks to a generative-language endpoint and returns
the model's raw text. When no API key is configured, or when a call
fails, it degrades to the deterministic offline generator in the plan
package, so the application always has something to render.
*/
package geminiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"

	"vietfit/internal/config"
	"vietfit/internal/plan"
)

const (
	// Native generateContent endpoint, used when no custom URL is configured.
	nativeAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-preview-09-2025:generateContent?key="

	// cloudPlatformScope is requested for the service-account flow.
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

	nativeTimeout  = 20 * time.Second
	googleTimeout  = 20 * time.Second
	genericTimeout = 10 * time.Second

	genericMaxTokens = 800
)

// --- Structs for the native Gemini API request/response ---

type GeminiPayload struct {
	Contents []GeminiContent `json:"contents"`
}

type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text,omitempty"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client issues model calls with an immutable configuration captured at
// construction. Identical prompts are served from an LRU cache, and
// concurrent identical prompts share one in-flight request.
type Client struct {
	cfg        config.Config
	log        zerolog.Logger
	httpClient *http.Client
	cache      *lru.Cache[string, string]
	group      singleflight.Group
}

// NewClient builds a Client from the given configuration.
func NewClient(cfg config.Config) *Client {
	cache, _ := lru.New[string, string](cfg.PlanCacheSize)
	return &Client{
		cfg:        cfg,
		log:        log.With().Str("component", "geminiservice").Logger(),
		httpClient: &http.Client{},
		cache:      cache,
	}
}

// Generate returns the model's response text for the prompt. The offline
// generator serves the request when no key is configured and backs every
// failing branch, so the returned error is nil today; the error return is
// kept so the transport can surface hard failures without an API break.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.cfg.GeminiAPIKey == "" {
		return plan.MockResponse(prompt), nil
	}

	if cached, ok := c.cache.Get(prompt); ok {
		return cached, nil
	}

	text, err, _ := c.group.Do(prompt, func() (interface{}, error) {
		out := c.generate(ctx, prompt)
		c.cache.Add(prompt, out)
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return text.(string), nil
}

// generate walks the priority chain: native endpoint, recognized Google
// endpoint, then generic endpoint. Every branch falls back to the mock
// generator on failure.
func (c *Client) generate(ctx context.Context, prompt string) string {
	var (
		text string
		err  error
	)
	switch {
	case c.cfg.GeminiAPIURL == "":
		text, err = c.callNative(ctx, prompt)
	case strings.Contains(c.cfg.GeminiAPIURL, "googleapis.com"):
		text, err = c.callGoogleEndpoint(ctx, prompt)
	default:
		text, err = c.callGeneric(ctx, prompt)
	}

	if err != nil || text == "" {
		c.log.Warn().Err(err).Msg("model call failed, falling back to offline generator")
		return plan.MockResponse(prompt)
	}
	return text
}

// callNative posts to the Gemini generateContent API with the key as a
// query parameter and the typed payload/response structs.
func (c *Client) callNative(ctx context.Context, prompt string) (string, error) {
	payload := GeminiPayload{
		Contents: []GeminiContent{
			{Parts: []GeminiPart{{Text: prompt}}},
		},
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, nativeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, nativeAPIURL+c.cfg.GeminiAPIKey, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned non-200 status: %s, Body: %s", resp.Status, string(body))
	}

	var geminiResp GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content found in Gemini response")
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// callGoogleEndpoint handles a custom googleapis.com URL. A key without
// dots is sent as a query parameter; a key naming a readable file is
// treated as service-account JSON and exchanged for a Bearer token; any
// other key is sent as a plain Bearer header.
func (c *Client) callGoogleEndpoint(ctx context.Context, prompt string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, googleTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	key := c.cfg.GeminiAPIKey
	url := c.cfg.GeminiAPIURL
	httpClient := c.httpClient
	bearer := ""

	switch {
	case !strings.Contains(key, "."):
		url = url + "?key=" + key
	default:
		if data, readErr := os.ReadFile(key); readErr == nil {
			creds, credErr := google.CredentialsFromJSON(reqCtx, data, cloudPlatformScope)
			if credErr != nil {
				return "", fmt.Errorf("failed to load service account credentials: %w", credErr)
			}
			httpClient = oauth2.NewClient(reqCtx, creds.TokenSource)
		} else {
			bearer = key
		}
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("API returned non-2xx status: %s, Body: %s", resp.Status, string(respBody))
	}
	return extractText(respBody), nil
}

// callGeneric posts to an arbitrary endpoint with a Bearer header and a
// prompt/max_tokens body, then normalizes whatever shape comes back.
func (c *Client) callGeneric(ctx context.Context, prompt string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, genericTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]interface{}{
		"prompt":     prompt,
		"max_tokens": genericMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.GeminiAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.GeminiAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("API returned non-2xx status: %s, Body: %s", resp.Status, string(respBody))
	}
	return extractText(respBody), nil
}
