package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	uploadEndpoint = "/upload"
	chatEndpoint   = "/chat"
	pdfEndpoint    = "/pdf/"

	uploadFieldName = "pdf"
	requestIDHeader = "X-Request-ID"
)

type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

// Ensure HTTPClient implements Backend
var _ Backend = &HTTPClient{}

// NewHTTPClient creates a client for the backend at baseURL. A zero timeout
// means requests run until the backend or the context ends them.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPClient) Upload(ctx context.Context, name string, data []byte) Result[UploadResponse] {
	// 1. Build multipart body
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(uploadFieldName, name)
	if err != nil {
		return TransportError[UploadResponse](fmt.Errorf("create form file: %w", err))
	}
	if _, err := part.Write(data); err != nil {
		return TransportError[UploadResponse](fmt.Errorf("write form file: %w", err))
	}
	if err := mw.Close(); err != nil {
		return TransportError[UploadResponse](fmt.Errorf("close multipart writer: %w", err))
	}

	// 2. Send
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+uploadEndpoint, &body)
	if err != nil {
		return TransportError[UploadResponse](fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return do[UploadResponse](c, req)
}

func (c *HTTPClient) Chat(ctx context.Context, query string) Result[ChatResponse] {
	payloadBytes, err := json.Marshal(ChatRequest{Query: query})
	if err != nil {
		return TransportError[ChatResponse](fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+chatEndpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return TransportError[ChatResponse](fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	return do[ChatResponse](c, req)
}

func (c *HTTPClient) FetchPDF(ctx context.Context, filename string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PDFURL(filename), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend error: status %d", resp.StatusCode)
	}
	return data, nil
}

func (c *HTTPClient) PDFURL(filename string) string {
	return c.BaseURL + pdfEndpoint + url.PathEscape(filename)
}

// do sends req and sorts the outcome into a Result. A body that cannot be
// decoded counts as a transport failure whatever the status code was.
func do[T any](c *HTTPClient, req *http.Request) Result[T] {
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.Client.Do(req)
	if err != nil {
		return TransportError[T](fmt.Errorf("backend request failed: %w", err))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportError[T](fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if err := json.Unmarshal(bodyBytes, &errResp); err != nil {
			return TransportError[T](fmt.Errorf("unmarshal error response (status %d): %w", resp.StatusCode, err))
		}
		return HTTPError[T](resp.StatusCode, errResp.Error)
	}

	var payload T
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return TransportError[T](fmt.Errorf("unmarshal response: %w", err))
	}
	return Ok(resp.StatusCode, payload)
}
