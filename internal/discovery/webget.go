package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultHTTPClient is the client connectors use unless a test injects its
// own.
func DefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 20 * time.Second}
}

// GetJSON performs a GET against base with the given query parameters and
// decodes the JSON response into v.
func GetJSON(ctx context.Context, client *http.Client, base string, params url.Values, headers map[string]string, v any) error {
	body, err := get(ctx, client, base, params, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode response from %s: %w", base, err)
	}
	return nil
}

// GetText performs a GET and returns the response body as a string.
func GetText(ctx context.Context, client *http.Client, base string, headers map[string]string) (string, error) {
	body, err := get(ctx, client, base, nil, headers)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read response from %s: %w", base, err)
	}
	return string(data), nil
}

func get(ctx context.Context, client *http.Client, base string, params url.Values, headers map[string]string) (io.ReadCloser, error) {
	endpoint, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse url %s: %w", base, err)
	}
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", base, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("request %s: unexpected status %s", base, resp.Status)
	}
	return resp.Body, nil
}
