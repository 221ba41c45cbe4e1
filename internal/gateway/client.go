package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hotel-checkout/internal/pkg/errs"

	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

// Client is the transport shared by adapters. Every call waits on a token
// bucket so a burst of callbacks cannot trip an acquirer's throttling.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL string, timeout time.Duration, rps float64, burst int) *Client {
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostForm sends form and decodes the JSON answer into out. The raw body is
// returned for auditing.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errs.Wrap(err, "build form request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) PostJSON(ctx context.Context, path string, body, out any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Wrap(err, "marshal request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errs.Wrap(err, "build json request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) (json.RawMessage, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, errs.Wrap(ErrReconciliation, "rate limiter: "+err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Wrapf(ErrReconciliation, "%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errs.Wrapf(ErrReconciliation, "read %s: %v", req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.Wrapf(ErrReconciliation, "%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return nil, errs.Wrapf(ErrReconciliation, "decode %s: %v", req.URL.Path, err)
		}
	}
	return json.RawMessage(body), nil
}

// FlexString decodes a JSON string or number. Acquirers are not consistent
// about which one they send for codes.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = FlexString(strings.TrimSpace(string(b)))
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
