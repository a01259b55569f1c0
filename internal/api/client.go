package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"paintpick/internal/domain"
)

// Client talks to the image search and color extraction endpoints
type Client interface {
	Search(ctx context.Context, query domain.SearchQuery) (SearchOutcome, error)
	ExtractColor(ctx context.Context, imageURL string) (ExtractOutcome, error)
}

const (
	opSearch  = "search"
	opExtract = "extract-color"
)

// TransportError is returned when an endpoint answers with a non-success status
type TransportError struct {
	Op         string
	StatusCode int
}

// transportPrefixes names each operation in transport error texts
var transportPrefixes = map[string]string{
	opSearch:  "Error en la búsqueda",
	opExtract: "Error en la extracción",
}

func (e *TransportError) Error() string {
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if prefix, ok := transportPrefixes[e.Op]; ok {
		return prefix + ": " + status
	}
	if e.Op != "" {
		return e.Op + ": " + status
	}
	return status
}

// searchRequest is the wire body of POST /search
type searchRequest struct {
	Brand     string   `json:"brand"`
	ColorCode string   `json:"color_code"`
	UsedURLs  []string `json:"used_urls"`
}

type searchResponse struct {
	Error  string               `json:"error"`
	Images []domain.ImageResult `json:"images"`
}

// extractRequest is the wire body of POST /extract-color
type extractRequest struct {
	ImageURL string `json:"image_url"`
}

type extractResponse struct {
	Success bool   `json:"success"`
	Hex     string `json:"hex"`
	RGB     []int  `json:"rgb"`
	Error   string `json:"error"`
}

// HTTPClient is a Client backed by the fiber client agent
type HTTPClient struct {
	client     *fiber.Client
	searchURL  string
	extractURL string
	timeout    time.Duration
}

// NewHTTPClient creates a client for the given endpoint URLs
func NewHTTPClient(searchURL, extractURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:     &fiber.Client{UserAgent: "paintpick"},
		searchURL:  searchURL,
		extractURL: extractURL,
		timeout:    timeout,
	}
}

// Search asks the backend for images of the given paint, excluding URLs already shown
func (c *HTTPClient) Search(ctx context.Context, query domain.SearchQuery) (SearchOutcome, error) {
	used := query.ExcludedURLs
	if used == nil {
		used = []string{}
	}

	var resp searchResponse
	err := c.post(ctx, opSearch, c.searchURL, searchRequest{
		Brand:     query.Brand,
		ColorCode: query.ColorCode,
		UsedURLs:  used,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return decodeSearch(resp), nil
}

// ExtractColor asks the backend for the dominant color of an image
func (c *HTTPClient) ExtractColor(ctx context.Context, imageURL string) (ExtractOutcome, error) {
	var resp extractResponse
	if err := c.post(ctx, opExtract, c.extractURL, extractRequest{ImageURL: imageURL}, &resp); err != nil {
		return nil, err
	}

	return decodeExtract(resp)
}

// post sends body as JSON and decodes a successful response into out
func (c *HTTPClient) post(ctx context.Context, op, url string, body interface{}, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := c.client.Post(url).JSON(body)
	if timeout := c.effectiveTimeout(ctx); timeout > 0 {
		agent = agent.Timeout(timeout)
	}

	code, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s request failed: %w", op, errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return &TransportError{Op: op, StatusCode: code}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

// effectiveTimeout is the configured timeout, shortened by the context deadline if any
func (c *HTTPClient) effectiveTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if timeout == 0 || remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

func decodeSearch(resp searchResponse) SearchOutcome {
	if resp.Error != "" {
		return SearchFailed{Message: resp.Error}
	}
	if len(resp.Images) == 0 {
		return SearchEmpty{}
	}
	return SearchFound{Images: resp.Images}
}

func decodeExtract(resp extractResponse) (ExtractOutcome, error) {
	if !resp.Success {
		return ExtractFailed{Message: resp.Error}, nil
	}
	if len(resp.RGB) != 3 {
		return nil, fmt.Errorf("malformed rgb value: expected 3 channels, got %d", len(resp.RGB))
	}
	if !strings.HasPrefix(resp.Hex, "#") {
		return nil, fmt.Errorf("malformed hex value %q", resp.Hex)
	}
	return ExtractSucceeded{Color: domain.ExtractedColor{
		Hex: resp.Hex,
		RGB: [3]int{resp.RGB[0], resp.RGB[1], resp.RGB[2]},
	}}, nil
}
