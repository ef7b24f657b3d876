package backend

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/microhire/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	maxBodyLogLen   = 200
	requestIDHeader = "X-Request-Id"
)

// getItems makes GET request and returns the response as a list of loosely typed items.
// A response that is not a JSON array yields no items, matching how the web client
// treats unexpected payloads.
func (c *Client) getItems(url string, q url.Values) ([]any, error) {
	var payload any
	if err := c.getJSON(url, q, &payload); err != nil {
		return nil, err
	}

	items, ok := payload.([]any)
	if !ok {
		c.logger.Debug("expected a list in response", zap.String("url", url))
		return []any{}, nil
	}

	return items, nil
}

func (c *Client) getJSON(url string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	return c.do(req, target)
}

func (c *Client) postJSON(url string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	return c.do(req, target)
}

func (c *Client) do(req *http.Request, target any) error {
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	log := c.logger.With(zap.String("request_id", requestID))
	log.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Debug("bad response from backend",
			zap.Int("status", resp.StatusCode),
			zap.String("body_preview", utils.TruncateForLog(string(data), maxBodyLogLen)),
		)
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if target == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Accept", contentType)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

// decode converts loosely typed JSON into typed structs. Weak typing lets numeric
// ids arrive as strings and vice versa.
func decode(input, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status: %s", e.Status)
}
