package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest("/search/issues", P("q", "bug"), PInt("per_page", 5))

	assert.Equal(t, "GET", req.EffectiveMethod())
	assert.Equal(t, DefaultTimeout, req.EffectiveTimeout())
	assert.Equal(t, []Param{{Key: "q", Value: "bug"}, {Key: "per_page", Value: "5"}}, req.Params)
}

func TestRequest_Defaults(t *testing.T) {
	req := Request{Endpoint: "/x", Method: "post"}

	assert.Equal(t, "POST", req.EffectiveMethod())
	assert.Equal(t, DefaultTimeout, req.EffectiveTimeout())

	req.Timeout = time.Second
	assert.Equal(t, time.Second, req.EffectiveTimeout())
}

func TestRequest_Fingerprint(t *testing.T) {
	a := NewRequest("/search/issues", P("q", "bug"), P("sort", "created"))
	b := NewRequest("/search/issues", P("q", "bug"), P("sort", "created"))
	c := NewRequest("/search/issues", P("q", "bug"), P("sort", "updated"))
	swapped := NewRequest("/search/issues", P("sort", "created"), P("q", "bug"))

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), swapped.Fingerprint())
	assert.True(t, len(a.Fingerprint()) > len("GET /search/issues#"))
	assert.Contains(t, a.Fingerprint(), "GET /search/issues#")

	joined := NewRequest("/search/issues", P("q", "a&b=c"))
	split := NewRequest("/search/issues", P("q", "a"), P("b", "c"))
	assert.NotEqual(t, joined.Fingerprint(), split.Fingerprint())

	// The timeout does not take part.
	b.Timeout = time.Minute
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	body := String("payload")
	post := Request{Method: "POST", Endpoint: "/markdown", Body: &body}
	assert.Contains(t, post.Fingerprint(), "POST /markdown#")
}
