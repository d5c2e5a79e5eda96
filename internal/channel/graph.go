package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// graphClient posts JSON to the Meta Graph API. WhatsApp Cloud, Messenger and
// Instagram messaging share its transport and error envelope.
type graphClient struct {
	baseURL    string
	version    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newGraphClient(baseURL, version, token string, httpClient *http.Client) *graphClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &graphClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		version:    version,
		token:      token,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(50*time.Millisecond), 20),
	}
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (c *graphClient) post(ctx context.Context, provider, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.version, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := &ProviderError{Provider: provider, StatusCode: resp.StatusCode}
		var ge graphError
		if json.Unmarshal(raw, &ge) == nil {
			perr.Message = ge.Error.Message
			perr.Code = ge.Error.Code
		}
		return perr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
