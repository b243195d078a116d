// Package ragapi provides the HTTP gateway to the document store service
// and the answering service.
package ragapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driven"
	"github.com/custodia-labs/ragdesk/internal/logger"
)

// Ensure Client implements the gateway interfaces.
var (
	_ driven.DocumentGateway = (*Client)(nil)
	_ driven.AnswerGateway   = (*Client)(nil)
)

// RequestIDHeader carries a per-request id for correlating logs.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for the HTTP gateway.
type Config struct {
	// EmbedURL is the document store and search service base URL.
	EmbedURL string

	// LLMURL is the answering service base URL.
	LLMURL string

	// Timeout bounds each request. Zero leaves it to the transport.
	Timeout time.Duration

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client talks JSON over HTTP to both backend services. Every call is a
// single attempt with no retry.
type Client struct {
	client   *http.Client
	embedURL string
	llmURL   string
}

// listResponse is the paged list format.
type listResponse struct {
	Items     []domain.Document `json:"items"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
	TotalHint *int64            `json:"total_hint"`
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type searchResponse struct {
	Hits []domain.Hit `json:"hits"`
}

type askRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

// NewClient creates a gateway client. Empty URLs fall back to the defaults.
func NewClient(cfg Config) *Client {
	if cfg.EmbedURL == "" {
		cfg.EmbedURL = domain.DefaultEmbedAPIURL
	}
	if cfg.LLMURL == "" {
		cfg.LLMURL = domain.DefaultLLMAPIURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		client:   client,
		embedURL: strings.TrimRight(cfg.EmbedURL, "/"),
		llmURL:   strings.TrimRight(cfg.LLMURL, "/"),
	}
}

// ListDocuments fetches one page of documents.
func (c *Client) ListDocuments(ctx context.Context, offset, limit int) ([]domain.Document, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var resp listResponse
	if err := c.do(ctx, domain.OpList, http.MethodGet, c.embedURL+"/v1/docs?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []domain.Document{}
	}
	return resp.Items, nil
}

// GetDocument fetches a single document.
func (c *Client) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	var doc domain.Document
	endpoint := c.embedURL + "/v1/docs/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, domain.OpList, http.MethodGet, endpoint, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpsertDocuments inserts documents; ids are assigned by the service.
func (c *Client) UpsertDocuments(ctx context.Context, req domain.UpsertRequest) (*domain.UpsertResult, error) {
	var result domain.UpsertResult
	if err := c.do(ctx, domain.OpUpsert, http.MethodPost, c.embedURL+"/upsert", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteDocument removes a single document.
func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	endpoint := c.embedURL + "/v1/docs/" + strconv.FormatInt(id, 10)
	return c.do(ctx, domain.OpDelete, http.MethodDelete, endpoint, nil, nil)
}

// DeleteAllDocuments removes every document. The service refuses the call
// without confirm=true.
func (c *Client) DeleteAllDocuments(ctx context.Context) (*domain.DeleteAllResult, error) {
	var result domain.DeleteAllResult
	if err := c.do(ctx, domain.OpDelete, http.MethodDelete, c.embedURL+"/v1/docs?confirm=true", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats fetches collection metadata.
func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := c.do(ctx, domain.OpStats, http.MethodGet, c.embedURL+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Search runs a similarity search.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]domain.Hit, error) {
	var resp searchResponse
	body := searchRequest{Query: query, TopK: topK}
	if err := c.do(ctx, domain.OpList, http.MethodPost, c.embedURL+"/search", body, &resp); err != nil {
		return nil, err
	}
	if resp.Hits == nil {
		resp.Hits = []domain.Hit{}
	}
	return resp.Hits, nil
}

// Ask sends a question to the answering service.
func (c *Client) Ask(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	var answer domain.Answer
	body := askRequest{Question: question, TopK: topK}
	if err := c.do(ctx, domain.OpAsk, http.MethodPost, c.llmURL+"/ask", body, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// do sends one request. A non-2xx status becomes a *domain.UpstreamError;
// out may be nil when the body is not needed.
func (c *Client) do(ctx context.Context, op domain.Operation, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	logger.Debug("%s %s %s request_id=%s", op, method, endpoint, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debug("%s failed status=%d request_id=%s", op, resp.StatusCode, requestID)
		return &domain.UpstreamError{
			Operation: op,
			Status:    resp.StatusCode,
			Detail:    ExtractDetail(raw),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ExtractDetail returns the human-readable failure text of a response body:
// the "detail" field, else the "message" field, else the body itself.
// Non-string fields are returned as their raw JSON.
func ExtractDetail(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"detail", "message"} {
			field := gjson.GetBytes(body, path)
			if !field.Exists() || field.Type == gjson.Null {
				continue
			}
			if field.Type == gjson.String {
				return field.String()
			}
			return field.Raw
		}
	}
	return strings.TrimSpace(string(body))
}
