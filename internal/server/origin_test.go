package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func requestWithOrigin(origin string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	return r
}

func TestIsOriginAllowed(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })
	SetConfig(&Config{AllowedOrigins: []string{"http://chat.example.com"}})

	assert.True(t, isOriginAllowed(requestWithOrigin("http://chat.example.com")))
	assert.True(t, isOriginAllowed(requestWithOrigin("HTTP://CHAT.Example.com")))
	assert.False(t, isOriginAllowed(requestWithOrigin("http://evil.example.com")))
	assert.False(t, isOriginAllowed(requestWithOrigin("chat.example.com"))) // no scheme
	assert.False(t, isOriginAllowed(requestWithOrigin("")))
}

func TestWildcardOriginAllowsEverything(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })
	SetConfig(&Config{AllowedOrigins: []string{"*"}})

	assert.True(t, isOriginAllowed(requestWithOrigin("http://anything.example.com")))
	assert.False(t, isOriginAllowed(requestWithOrigin(""))) // still needs a header
}

func TestNormalizeOrigins(t *testing.T) {
	normalized, allowAll := normalizeOrigins([]string{
		"  http://a.example.com  ",
		"*",
		"not a url",
		"",
		"HTTPS://B.Example.com",
	})

	assert.True(t, allowAll)
	assert.Equal(t, []string{"http://a.example.com", "https://b.example.com"}, normalized)
}

func TestNormalizeOriginsEmpty(t *testing.T) {
	normalized, allowAll := normalizeOrigins(nil)
	assert.Nil(t, normalized)
	assert.False(t, allowAll)
}
