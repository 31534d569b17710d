// Package notion is a typed client for the Notion REST API.
//
// A Client is created once from an integration token and is safe for
// concurrent use. Every call goes through the same pipeline: the request is
// finalized with the fixed Notion-Version and Authorization headers, handed
// to the Observer for diagnostics, sent, read in full, and decoded into the
// Object envelope. An envelope whose "object" is "error" is returned as an
// *Error of KindAPI carrying the *ErrorObject, whatever the HTTP status.
package notion

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/net/http/httpguts"

	"github.com/mehmetymw/notion-go/pkg/tracing"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	APIVersion     = "2022-02-22"

	HeaderNotionVersion = "Notion-Version"
	HeaderAuthorization = "Authorization"
	HeaderCorrelationID = "X-Correlation-ID"
)

// Client is an authenticated handle on the Notion API. It is immutable once
// built.
type Client struct {
	baseURL  string
	http     *http.Client
	headers  []HeaderField
	observer Observer
	tracer   trace.Tracer
}

type options struct {
	baseURL        string
	httpClient     *http.Client
	transport      http.RoundTripper
	rootCAs        []byte
	tlsConfig      *tls.Config
	observer       Observer
	tracerProvider trace.TracerProvider
}

type Option func(*options)

func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient uses hc's timeout, redirect policy, cookie jar and
// transport. hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithRootCAs trusts the PEM encoded certificates in pem instead of the
// system pool.
func WithRootCAs(pem []byte) Option {
	return func(o *options) { o.rootCAs = pem }
}

func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) { o.tlsConfig = cfg }
}

func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger installs a ZapObserver writing to log.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.observer = NewZapObserver(log) }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// NewClient builds a client authenticating with token. It fails with
// KindInvalidAPIToken if the token cannot be sent as a header value and with
// KindBuildClient if the transport cannot be configured.
func NewClient(token string, opts ...Option) (*Client, error) {
	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	auth := "Bearer " + token
	if !validHeaderValue(auth) {
		return nil, newError(KindInvalidAPIToken, errors.New("token contains characters not allowed in a header value"))
	}

	headers := []HeaderField{
		{Name: HeaderNotionVersion, Value: NewHeaderValue(APIVersion)},
		{Name: HeaderAuthorization, Value: sensitiveHeaderValue(auth)},
	}

	baseURL, err := parseBaseURL(o.baseURL)
	if err != nil {
		return nil, newError(KindBuildClient, err)
	}

	hc, err := buildHTTPClient(o)
	if err != nil {
		return nil, newError(KindBuildClient, err)
	}

	observer := o.observer
	if observer == nil {
		observer = NewZapObserver(zap.NewNop())
	}

	tracer := tracing.Tracer()
	if o.tracerProvider != nil {
		tracer = o.tracerProvider.Tracer(tracing.TracerName)
	}

	return &Client{
		baseURL:  baseURL,
		http:     hc,
		headers:  headers,
		observer: observer,
		tracer:   tracer,
	}, nil
}

// String renders the base URL and fixed headers, sensitive values redacted.
func (c Client) String() string {
	var b strings.Builder
	b.WriteString("notion.Client{baseURL: ")
	b.WriteString(c.baseURL)
	b.WriteString(", headers: [")
	for i, h := range c.headers {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(h.Name)
		b.WriteString(": ")
		b.WriteString(h.Value.String())
	}
	b.WriteString("]}")
	return b.String()
}

func (c Client) GoString() string {
	return c.String()
}

// Headers returns a copy of the headers sent with every request.
func (c *Client) Headers() []HeaderField {
	out := make([]HeaderField, len(c.headers))
	copy(out, c.headers)
	return out
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func validHeaderValue(v string) bool {
	for i := 0; i < len(v); i++ {
		if v[i] >= 0x7f {
			return false
		}
	}
	return httpguts.ValidHeaderFieldValue(v)
}

func parseBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base url must use http or https scheme, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base url has no host: %q", raw)
	}
	return strings.TrimSuffix(u.String(), "/"), nil
}

func buildHTTPClient(o options) (*http.Client, error) {
	base := o.transport
	if base == nil && o.httpClient != nil {
		base = o.httpClient.Transport
	}

	if o.rootCAs != nil || o.tlsConfig != nil {
		var t *http.Transport
		switch b := base.(type) {
		case nil:
			t = http.DefaultTransport.(*http.Transport).Clone()
		case *http.Transport:
			t = b.Clone()
		default:
			return nil, fmt.Errorf("tls options need an *http.Transport, got %T", base)
		}

		cfg := &tls.Config{MinVersion: tls.VersionTLS12}
		if o.tlsConfig != nil {
			cfg = o.tlsConfig.Clone()
		}
		if o.rootCAs != nil {
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(o.rootCAs) {
				return nil, errors.New("no certificates found in root CA PEM")
			}
			cfg.RootCAs = pool
		}
		t.TLSClientConfig = cfg
		base = t
	}

	if base == nil {
		base = http.DefaultTransport
	}

	var otelOpts []otelhttp.Option
	if o.tracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(o.tracerProvider))
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		hc.Timeout = o.httpClient.Timeout
		hc.CheckRedirect = o.httpClient.CheckRedirect
		hc.Jar = o.httpClient.Jar
	}
	hc.Transport = otelhttp.NewTransport(base, otelOpts...)
	return hc, nil
}
