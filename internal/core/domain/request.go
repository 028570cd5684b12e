package domain

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 30 * time.Second

// Param is one query parameter. Order is preserved on the wire.
type Param struct {
	Key   string
	Value string
}

// Request describes one upstream call. It is built by a tool operation and
// not modified afterwards.
type Request struct {
	Method   string
	Endpoint string
	Params   []Param
	Body     *Value
	Timeout  time.Duration
}

// NewRequest returns a GET request for endpoint with the default timeout.
func NewRequest(endpoint string, params ...Param) Request {
	return Request{
		Method:   http.MethodGet,
		Endpoint: endpoint,
		Params:   params,
		Timeout:  DefaultTimeout,
	}
}

// P is shorthand for a Param.
func P(key, value string) Param { return Param{Key: key, Value: value} }

// PInt builds an integer Param.
func PInt(key string, value int) Param { return Param{Key: key, Value: strconv.Itoa(value)} }

// EffectiveMethod returns Method, defaulting to GET.
func (r Request) EffectiveMethod() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.Method)
}

// EffectiveTimeout returns Timeout, defaulting to DefaultTimeout.
func (r Request) EffectiveTimeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

// Fingerprint identifies the request for caching. Params are query-escaped
// the way they go on the wire. The endpoint stays readable so entries can be
// cleared by prefix.
func (r Request) Fingerprint() string {
	var b strings.Builder
	for _, p := range r.Params {
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
		b.WriteByte('&')
	}
	if r.Body != nil {
		b.WriteString(r.Body.Text())
	}
	return r.EffectiveMethod() + " " + r.Endpoint + "#" + strconv.FormatUint(xxh3.HashString(b.String()), 16)
}
