// Package restclient performs outbound JSON calls to third-party REST APIs.
//
// Requests advertise gzip support explicitly, so net/http leaves the body
// untouched and Decode sniffs the payload: gzip streams are recognised by
// their magic bytes and inflated before the JSON is parsed.
package restclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tweetql/internal/metrics"

	"github.com/klauspost/compress/gzip"
)

const maxErrorBody = 512

var gzipMagic = []byte{0x1f, 0x8b}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	Upstream string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Upstream, e.Code, e.Body)
}

// DecodeError is returned when the payload cannot be inflated or parsed.
type DecodeError struct {
	Upstream string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Upstream, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type Client struct {
	name string
	http *http.Client
}

// New создает клиента с таймаутом на весь запрос. 0 - без таймаута
func New(name string, timeout time.Duration) *Client {
	return &Client{name: name, http: &http.Client{Timeout: timeout}}
}

// GetJSON fetches rawURL and decodes the (possibly gzipped) JSON body into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.name, err)
	}
	return c.do(req, out)
}

// PostJSON sends in as a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, rawURL string, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", c.name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.name, "error").Inc()
		// в URL может быть api-key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%s: %s: %w", c.name, req.Method, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(c.name, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := readBody(resp.Body)
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return &StatusError{Upstream: c.name, Code: resp.StatusCode, Body: string(raw)}
	}

	if err := Decode(resp.Body, out); err != nil {
		return &DecodeError{Upstream: c.name, Err: err}
	}
	return nil
}

// Decode buffers r into memory, inflating it first when it is a gzip
// stream, and unmarshals the JSON document into out.
func Decode(r io.Reader, out any) error {
	raw, err := readBody(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return io.ErrUnexpectedEOF
	}
	return json.Unmarshal(raw, out)
}

func readBody(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(gzipMagic))
	if !bytes.Equal(head, gzipMagic) {
		return io.ReadAll(br)
	}

	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer gz.Close()

	raw, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return raw, nil
}
