package wizishop

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

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/JWebCreation/wizishop-sdk/internal/metrics"
)

const (
	requestIDHeader = "X-Request-Id"
	acceptJSON      = "application/json"
	acceptDocument  = "application/pdf, */*"
)

// response is a fully read API response.
type response struct {
	status    int
	header    http.Header
	body      []byte
	requestID string
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// fetch performs a GET on route and decodes a 2xx body into dst. A 404 is
// the API's "no result" answer on read routes: found is false and err nil.
func (c *Client) fetch(
	ctx context.Context,
	route string,
	query url.Values,
	dst any,
) (found bool, err error) {
	resp, err := c.read(ctx, route, query, acceptJSON)
	if err != nil || resp == nil {
		return false, err
	}

	if err := decodeBody(resp.body, dst); err != nil {
		return false, c.apiError(http.MethodGet, route, resp, fmt.Errorf("parsing response: %w", err))
	}
	return true, nil
}

// fetchRaw is fetch for binary documents; it returns the body untouched.
func (c *Client) fetchRaw(
	ctx context.Context,
	route string,
	query url.Values,
) ([]byte, error) {
	resp, err := c.read(ctx, route, query, acceptDocument)
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.body, nil
}

// read runs a GET and applies the read-path conventions: nil response
// without error on 404, APIError on any other failure, throttle on success.
func (c *Client) read(
	ctx context.Context,
	route string,
	query url.Values,
	accept string,
) (*response, error) {
	resp, err := c.do(ctx, http.MethodGet, route, query, nil, accept)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusNotFound {
		c.log.DebugContext(ctx, "no result", "route", route)
		return nil, nil
	}
	if !resp.ok() {
		return nil, c.apiError(http.MethodGet, route, resp, nil)
	}

	c.observe(ctx, resp.header)
	return resp, nil
}

// mutate sends a write (POST, PUT, PATCH, DELETE) with an optional JSON
// payload and decodes a 2xx body into dst. A 404 is an error here. The
// response is returned for callers that distinguish between 2xx codes.
func (c *Client) mutate(
	ctx context.Context,
	method, route string,
	payload, dst any,
) (*response, error) {
	resp, err := c.do(ctx, method, route, nil, payload, acceptJSON)
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		return nil, c.apiError(method, route, resp, nil)
	}

	c.observe(ctx, resp.header)

	if err := decodeBody(resp.body, dst); err != nil {
		return nil, c.apiError(method, route, resp, fmt.Errorf("parsing response: %w", err))
	}
	return resp, nil
}

// do executes one HTTP exchange against the session's base URI and reads
// the whole body. Only transport failures are returned as errors; status
// classification is left to the caller.
func (c *Client) do(
	ctx context.Context,
	method, route string,
	query url.Values,
	payload any,
	accept string,
) (*response, error) {
	requestID := uuid.NewString()

	if err := c.throttle.Wait(ctx); err != nil {
		return nil, &APIError{Method: method, Route: route, RequestID: requestID, Err: err}
	}

	ctx, span := c.tracer.Start(ctx, "wizishop "+method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("wizishop.route", route),
			attribute.String("wizishop.request_id", requestID),
		),
	)
	defer span.End()

	u := c.baseURI + route
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &APIError{
				Method:    method,
				Route:     route,
				RequestID: requestID,
				Err:       fmt.Errorf("marshaling request body: %w", err),
			}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &APIError{
			Method:    method,
			Route:     route,
			RequestID: requestID,
			Err:       fmt.Errorf("creating request: %w", err),
		}
	}

	req.Header.Set("Authorization", "Bearer "+c.token.String())
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return nil, &APIError{
			Method:    method,
			Route:     route,
			RequestID: requestID,
			Err:       fmt.Errorf("executing request: %w", err),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reading body")
		return nil, &APIError{
			Method:     method,
			Route:      route,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			RequestID:  requestID,
			Err:        fmt.Errorf("reading response body: %w", err),
		}
	}

	elapsed := time.Since(start)
	status := strconv.Itoa(resp.StatusCode)
	metrics.APIRequestsTotal.WithLabelValues(method, status).Inc()
	metrics.APIRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusNotFound {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}

	c.log.DebugContext(ctx, "wizishop request",
		"method", method,
		"route", route,
		"status", resp.StatusCode,
		"duration", elapsed,
		"request_id", requestID,
	)

	return &response{
		status:    resp.StatusCode,
		header:    resp.Header,
		body:      respBody,
		requestID: requestID,
	}, nil
}

// observe feeds the rate-limit header to the throttle, pausing if needed.
func (c *Client) observe(ctx context.Context, h http.Header) {
	if c.throttle.Observe(ctx, h) {
		remaining, _ := c.throttle.Remaining()
		c.log.WarnContext(ctx, "rate limit low, cooled down",
			"remaining", remaining,
			"floor", c.throttle.Floor(),
			"cooldown", c.throttle.Cooldown(),
		)
	}
}

func (c *Client) apiError(method, route string, resp *response, err error) *APIError {
	return &APIError{
		Method:     method,
		Route:      route,
		StatusCode: resp.status,
		Header:     resp.header,
		Body:       resp.body,
		RequestID:  resp.requestID,
		Err:        err,
	}
}

func decodeBody(body []byte, dst any) error {
	if dst == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}
