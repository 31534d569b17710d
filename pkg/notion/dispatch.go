package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mehmetymw/notion-go/pkg/logger"
	"github.com/mehmetymw/notion-go/pkg/tracing"
)

// Request is a partially built API call: method, path relative to the base
// URL, optional query and optional body.
type Request struct {
	method string
	path   string
	query  url.Values
	body   []byte
	isJSON bool
	stream io.Reader
	err    error
}

func NewRequest(method, path string) *Request {
	return &Request{method: method, path: path}
}

func (r *Request) WithQuery(q url.Values) *Request {
	r.query = q
	return r
}

// WithJSON attaches v encoded as JSON. An encoding error is reported when
// the request is dispatched.
func (r *Request) WithJSON(v any) *Request {
	body, err := json.Marshal(v)
	if err != nil {
		r.err = fmt.Errorf("encode request body: %w", err)
		return r
	}
	r.body = body
	r.isJSON = true
	r.stream = nil
	return r
}

// WithBytes attaches a raw body. It is shown in diagnostics only when it is
// valid UTF-8.
func (r *Request) WithBytes(body []byte, contentType string) *Request {
	r.body = body
	r.isJSON = contentType == "application/json"
	r.stream = nil
	return r
}

// WithBody attaches a streamed body. Diagnostics record a note instead of
// its content.
func (r *Request) WithBody(body io.Reader) *Request {
	r.stream = body
	r.body = nil
	r.isJSON = false
	return r
}

func (r *Request) bodyInfo() BodyInfo {
	switch {
	case r.stream != nil:
		return BodyInfo{Kind: BodyStream}
	case r.body == nil:
		return BodyInfo{Kind: BodyNone}
	case utf8.Valid(r.body):
		return BodyInfo{Kind: BodyText, Text: string(r.body)}
	default:
		return BodyInfo{Kind: BodyBinary}
	}
}

func (c *Client) build(ctx context.Context, r *Request) (*http.Request, error) {
	if r.err != nil {
		return nil, r.err
	}

	u, err := url.Parse(c.baseURL + "/" + strings.TrimPrefix(r.path, "/"))
	if err != nil {
		return nil, fmt.Errorf("build request url: %w", err)
	}
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	switch {
	case r.stream != nil:
		body = r.stream
	case r.body != nil:
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for _, h := range c.headers {
		req.Header.Set(h.Name, h.Value.raw())
	}
	if r.isJSON {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(HeaderCorrelationID, id)
	}

	return req, nil
}

// headerFieldsOf lists the request headers in name order, carrying over the
// sensitivity of the client's fixed headers.
func (c *Client) headerFieldsOf(h http.Header) []HeaderField {
	sensitive := make(map[string]bool, len(c.headers))
	for _, f := range c.headers {
		if f.Value.sensitive {
			sensitive[http.CanonicalHeaderKey(f.Name)] = true
		}
	}

	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []HeaderField
	for _, name := range names {
		for _, v := range h[name] {
			value := NewHeaderValue(v)
			if sensitive[name] {
				value = sensitiveHeaderValue(v)
			}
			fields = append(fields, HeaderField{Name: name, Value: value})
		}
	}
	return fields
}

// Do executes r and decodes the response envelope. Transport, read and
// decode failures and error envelopes are returned as *Error; nothing is
// retried. The HTTP status code does not affect the outcome.
func (c *Client) Do(ctx context.Context, r *Request) (Object, error) {
	ctx, span := c.tracer.Start(ctx, "notion.request", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := c.build(ctx, r)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(tracing.RequestAttrs(req.Method, req.URL.Path)...)

	observeRequest(ctx, c.observer, RequestInfo{
		Method:  req.Method,
		URL:     req.URL.String(),
		Headers: c.headerFieldsOf(req.Header),
		Body:    r.bodyInfo(),
	})

	resp, err := c.http.Do(req)
	if err != nil {
		nerr := newError(KindRequestFailed, err)
		tracing.RecordError(span, nerr)
		return nil, nerr
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		nerr := newError(KindResponseIO, err)
		tracing.RecordError(span, nerr)
		return nil, nerr
	}

	observeResponse(ctx, c.observer, ResponseInfo{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       string(data),
	})

	obj, err := DecodeObject(data)
	if err != nil {
		nerr := newError(KindJSONParse, err)
		tracing.RecordError(span, nerr)
		return nil, nerr
	}
	span.SetAttributes(attribute.String("notion.object", string(obj.ObjectType())))
	if eo, ok := obj.(*ErrorObject); ok {
		span.SetAttributes(tracing.ErrorObjectAttrs(eo.Status, string(eo.Code))...)
	}

	obj, err = classify(obj)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return obj, nil
}

func classify(obj Object) (Object, error) {
	switch o := obj.(type) {
	case *ErrorObject:
		return nil, newError(KindAPI, o)
	case *User, *Page, *Database, *Block, *Comment, *List:
		return obj, nil
	default:
		return nil, newError(KindJSONParse, fmt.Errorf("%w: %T", ErrUnknownObject, obj))
	}
}

// expect narrows a dispatched envelope to the variant an endpoint returns.
func expect[T Object](obj Object, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	v, ok := obj.(T)
	if !ok {
		return zero, newError(KindUnexpectedObject, fmt.Errorf("want %T, got %s", zero, obj.ObjectType()))
	}
	return v, nil
}
