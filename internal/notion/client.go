// Package notion is a minimal client for the Notion pages API, covering
// just what the importer needs: creating catalog pages in the tracking
// database and soft-deleting them again.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"radar/internal/catalog"
	"radar/internal/textutil"
)

const (
	apiVersion = "2022-06-28"

	// Notion property limits.
	maxTitleLen    = 200
	maxRichTextLen = 2000
)

// categoryCovers maps a category to its default page cover.
var categoryCovers = map[catalog.Category]string{
	catalog.CategoryGeneration:     "https://raw.githubusercontent.com/Bisnis3d/img_notion/main/cat_Generacin.png",
	catalog.CategoryControl:        "https://raw.githubusercontent.com/Bisnis3d/img_notion/main/cat_Control.png",
	catalog.CategoryMotion:         "https://raw.githubusercontent.com/Bisnis3d/img_notion/main/cat_Motion.png",
	catalog.CategoryLoRAAdapter:    "https://raw.githubusercontent.com/Bisnis3d/img_notion/main/cat_LoRA___Adapter.png",
	catalog.CategoryPostprocessing: "https://raw.githubusercontent.com/Bisnis3d/img_notion/main/cat_Postproceso.png",
	catalog.CategoryWorkflowNode:   "https://raw.githubusercontent.com/Bisnis3d/img_notion/main/cat_Workflow___Node.png",
	catalog.CategoryTooling:        "https://raw.githubusercontent.com/Bisnis3d/img_notion/main/cat_Tooling.png",
	catalog.CategoryKnowledge:      "https://raw.githubusercontent.com/Bisnis3d/img_notion/main/cat_Conocimiento.png",
}

// Page is the material for one tracking database entry.
type Page struct {
	Title        string
	URL          string
	Image        string
	Summary      string
	UseCase      string
	Requirements string
	Impact       string
	Category     catalog.Category
	Source       catalog.Source
	Ecosystem    catalog.Ecosystem
	Signal       bool
}

// Client talks to the Notion API.
type Client struct {
	token      string
	databaseID string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for property truncation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Notion client.
func New(token, databaseID, baseURL string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("notion token required")
	}
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, errors.New("notion database id required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("notion base url required")
	}
	client := &Client{
		token:      token,
		databaseID: databaseID,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// CreatePage creates one database entry and returns the new page id. The
// title is truncated to the API limit, rich text fields likewise.
func (c *Client) CreatePage(ctx context.Context, page Page) (string, error) {
	title := page.Title
	if len([]rune(title)) > maxTitleLen {
		c.logger.Warn("title truncated for tracking page",
			"title", textutil.Truncate(title, 60))
		title = textutil.Truncate(title, maxTitleLen)
	}

	properties := map[string]any{
		"Name": map[string]any{
			"title": []any{textContent(title)},
		},
		"Category":     selectProp(string(page.Category)),
		"Source":       selectProp(string(page.Source)),
		"Ecosystem":    selectProp(string(page.Ecosystem)),
		"Summary":      richText(page.Summary),
		"Use case":     richText(page.UseCase),
		"Requirements": richText(page.Requirements),
		"Impact":       richText(page.Impact),
		"Date": map[string]any{
			"date": map[string]any{"start": time.Now().Format("2006-01-02")},
		},
		"Status":   selectProp("To review"),
		"Priority": selectProp("Low"),
		"Signal":   map[string]any{"checkbox": page.Signal},
	}
	// a null URL breaks the API, omit the property instead
	if url := strings.TrimSpace(page.URL); url != "" {
		properties["URL"] = map[string]any{"url": url}
	}

	payload := map[string]any{
		"parent":     map[string]any{"database_id": c.databaseID},
		"properties": properties,
	}
	cover := strings.TrimSpace(page.Image)
	if cover == "" {
		cover = categoryCovers[page.Category]
	}
	if cover != "" {
		payload["cover"] = map[string]any{
			"type":     "external",
			"external": map[string]any{"url": cover},
		}
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/pages", payload, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// ArchivePage sets the archived flag on an existing page. Archiving is
// Notion's soft delete.
func (c *Client) ArchivePage(ctx context.Context, pageID string, archived bool) error {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return errors.New("page id required")
	}
	payload := map[string]any{"archived": archived}
	return c.do(ctx, http.MethodPatch, "/pages/"+pageID, payload, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("notion %s %s: status %s: %s", method, path, resp.Status, strings.TrimSpace(string(detail)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode notion response: %w", err)
	}
	return nil
}

func textContent(text string) map[string]any {
	return map[string]any{
		"text": map[string]any{"content": text},
	}
}

func selectProp(name string) map[string]any {
	return map[string]any{
		"select": map[string]any{"name": name},
	}
}

// richText builds a rich text property, empty when there is no value.
func richText(text string) map[string]any {
	text = strings.TrimSpace(text)
	if text == "" {
		return map[string]any{"rich_text": []any{}}
	}
	return map[string]any{
		"rich_text": []any{textContent(textutil.Truncate(text, maxRichTextLen))},
	}
}
