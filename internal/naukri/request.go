package naukri

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// StatusError is returned when the job index answers with a non-200 status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status: %s", e.Status)
}

// DecodeError is returned when the job index answers with a body that is not
// the expected JSON document.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type searchResponse struct {
	JobDetails []map[string]any `json:"jobDetails"`
	NoOfJobs   int              `json:"noOfJobs"`
}

// fetch makes a single GET request to the search endpoint.
func (c *Client) fetch(ctx context.Context, q url.Values) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+SearchPath, nil)
	if err != nil {
		return nil, err
	}

	c.setHeaders(req)
	req.URL.RawQuery = q.Encode()

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &response, nil
}

// setHeaders copies the configured headers onto req. Accept-Encoding is left
// to the transport, which then decompresses the body itself.
func (c *Client) setHeaders(req *http.Request) {
	for key, values := range c.Headers {
		if http.CanonicalHeaderKey(key) == "Accept-Encoding" {
			continue
		}
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
}
