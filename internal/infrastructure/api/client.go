package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/storefront-service/internal/pkg/generator"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
	"github.com/yuzvak/storefront-service/internal/pkg/requestid"
)

const maxErrorBody = 64 << 10

// Client talks to the external storefront REST API. It never retries.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	ids     generator.IDGenerator
	log     *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, ids generator.IDGenerator, log *logger.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: scheme and host are required", baseURL)
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		ids:     ids,
		log:     log,
	}, nil
}

type call struct {
	op       string
	method   string
	path     []string
	token    string
	body     interface{}
	out      interface{}
	notFound error
}

func (c *Client) do(ctx context.Context, cl call) error {
	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL.JoinPath(cl.path...).String(), body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", cl.op, err)
	}

	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		reqID = c.ids.RequestID()
	}
	req.Header.Set(requestid.Header, reqID)

	observe := monitoring.TimeAPIRequest(cl.op)

	resp, err := c.http.Do(req)
	if err != nil {
		observe("error")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Warn("Storefront API unreachable", "operation", cl.op, "error", err, "request_id", reqID)
		return &Error{Op: cl.op, Message: err.Error(), Err: domainErrors.ErrAPIUnavailable}
	}
	defer resp.Body.Close()

	observe(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		notFound := cl.notFound
		if notFound == nil {
			notFound = domainErrors.ErrOrderNotFound
		}

		apiErr := &Error{
			Op:         cl.op,
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
			Err:        sentinelForStatus(resp.StatusCode, notFound),
		}
		c.log.Warn("Storefront API request failed",
			"operation", cl.op,
			"status", resp.StatusCode,
			"message", apiErr.Message,
			"request_id", reqID,
		)
		return apiErr
	}

	if cl.out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &Error{
			Op:         cl.op,
			StatusCode: resp.StatusCode,
			Message:    "malformed response: " + err.Error(),
			Err:        domainErrors.ErrAPIUnavailable,
		}
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body errorResponse
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return string(bytes.TrimSpace(data))
}

func missingField(op, field string) error {
	return &Error{
		Op:      op,
		Message: "response has no " + field,
		Err:     domainErrors.ErrAPIUnavailable,
	}
}
