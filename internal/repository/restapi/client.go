package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/apperror"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// Client talks JSON to the WFH backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP uses a caller-supplied http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)

	op := method + " " + path
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("api call failed", "op", op, "request_id", reqID, "error", err)
		return &apperror.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	slog.Debug("api call", "op", op, "request_id", reqID, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &apperror.ServerError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode %s response: %w", op, err)
		}
	}
	return nil
}

// errorMessage pulls {"error"} or {"message"} out of an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

func rangeQuery(from, to time.Time) url.Values {
	return url.Values{
		"start_date": {from.Format(dateLayout)},
		"end_date":   {to.Format(dateLayout)},
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
