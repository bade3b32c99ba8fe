package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	pkghttp "github.com/meridareporta/backend/pkg/http"
)

func TestExtractClientIP_DirectConnection(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.5:51234"

	ip := pkghttp.ExtractClientIP(req, nil)
	assert.Equal(t, "203.0.113.5", ip)
}

func TestExtractClientIP_SpoofedHeaderIgnored(t *testing.T) {
	// Headers from untrusted sources must never override RemoteAddr.
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.5:51234"
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	req.Header.Set("X-Real-IP", "10.0.0.2")

	ip := pkghttp.ExtractClientIP(req, nil)
	assert.Equal(t, "203.0.113.5", ip)
}

func TestExtractClientIP_TrustedProxyForwardedFor(t *testing.T) {
	cfg := &pkghttp.IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")

	ip := pkghttp.ExtractClientIP(req, cfg)
	assert.Equal(t, "198.51.100.7", ip)
}

func TestExtractClientIP_TrustedProxyRealIP(t *testing.T) {
	cfg := &pkghttp.IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:443"
	req.Header.Set("X-Real-IP", "198.51.100.7")

	ip := pkghttp.ExtractClientIP(req, cfg)
	assert.Equal(t, "198.51.100.7", ip)
}

func TestExtractClientIP_UntrustedProxy(t *testing.T) {
	cfg := &pkghttp.IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.10:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.7")

	ip := pkghttp.ExtractClientIP(req, cfg)
	assert.Equal(t, "192.0.2.10", ip)
}

func TestExtractClientIP_InvalidForwardedEntriesSkipped(t *testing.T) {
	cfg := &pkghttp.IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:443"
	req.Header.Set("X-Forwarded-For", "not-an-ip, 198.51.100.7")

	ip := pkghttp.ExtractClientIP(req, cfg)
	assert.Equal(t, "198.51.100.7", ip)
}

func TestExtractClientIP_IPv6(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "[2001:db8::1]:51234"

	ip := pkghttp.ExtractClientIP(req, nil)
	assert.Equal(t, "2001:db8::1", ip)
}

func TestExtractClientIP_MalformedRemoteAddr(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.5"

	ip := pkghttp.ExtractClientIP(req, nil)
	assert.Equal(t, "203.0.113.5", ip)
}
