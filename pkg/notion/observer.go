package notion

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const redacted = "[REDACTED]"

// HeaderValue holds a header value that may be marked sensitive. Sensitive
// values render as [REDACTED] in every textual form; the cleartext is only
// reachable from inside this package. The value sits behind a pointer so
// reflective dumps of an enclosing struct print an address, not the text.
type HeaderValue struct {
	value     *string
	sensitive bool
}

func NewHeaderValue(value string) HeaderValue {
	return HeaderValue{value: &value}
}

func sensitiveHeaderValue(value string) HeaderValue {
	return HeaderValue{value: &value, sensitive: true}
}

func (v HeaderValue) raw() string {
	if v.value == nil {
		return ""
	}
	return *v.value
}

func (v HeaderValue) Sensitive() bool { return v.sensitive }

func (v HeaderValue) String() string {
	if v.sensitive {
		return redacted
	}
	return v.raw()
}

func (v HeaderValue) GoString() string {
	return `"` + v.String() + `"`
}

func (v HeaderValue) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

type HeaderField struct {
	Name  string      `json:"name"`
	Value HeaderValue `json:"value"`
}

type BodyKind string

const (
	BodyNone   BodyKind = "none"
	BodyText   BodyKind = "text"
	BodyBinary BodyKind = "binary"
	BodyStream BodyKind = "stream"
)

// BodyInfo describes a request body for diagnostics. Text is set only for
// BodyText.
type BodyInfo struct {
	Kind BodyKind
	Text string
}

func (b BodyInfo) note() string {
	switch b.Kind {
	case BodyNone:
		return "no request body"
	case BodyBinary:
		return "request body is not valid UTF-8 and cannot be displayed as text"
	case BodyStream:
		return "request body is not accessible as raw bytes (possibly streamed)"
	default:
		return ""
	}
}

type RequestInfo struct {
	Method  string
	URL     string
	Headers []HeaderField
	Body    BodyInfo
}

type ResponseInfo struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Observer receives diagnostic records from the dispatcher. It is called
// synchronously; implementations must not block. Panics are recovered.
type Observer interface {
	ObserveRequest(ctx context.Context, info RequestInfo)
	ObserveResponse(ctx context.Context, info ResponseInfo)
}

// ZapObserver writes diagnostics to a zap logger.
type ZapObserver struct {
	log *zap.Logger
}

func NewZapObserver(log *zap.Logger) *ZapObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapObserver{log: log}
}

func (o *ZapObserver) ObserveRequest(_ context.Context, info RequestInfo) {
	o.log.Debug("notion request method", zap.String("method", info.Method))
	o.log.Info("notion request",
		zap.String("url", info.URL),
		zap.Array("headers", headerFields(info.Headers)),
	)

	if info.Body.Kind == BodyText {
		o.log.Info("notion request body", zap.String("body", info.Body.Text))
		return
	}
	o.log.Info(info.Body.note())
}

func (o *ZapObserver) ObserveResponse(_ context.Context, info ResponseInfo) {
	o.log.Info("notion response",
		zap.String("url", info.URL),
		zap.Int("status", info.StatusCode),
		zap.String("body", info.Body),
	)
}

type headerFields []HeaderField

func (h headerFields) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, f := range h {
		if err := enc.AppendObject(f); err != nil {
			return err
		}
	}
	return nil
}

func (f HeaderField) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", f.Name)
	enc.AddString("value", f.Value.String())
	return nil
}

func observeRequest(ctx context.Context, o Observer, info RequestInfo) {
	defer func() { _ = recover() }()
	o.ObserveRequest(ctx, info)
}

func observeResponse(ctx context.Context, o Observer, info ResponseInfo) {
	defer func() { _ = recover() }()
	o.ObserveResponse(ctx, info)
}
