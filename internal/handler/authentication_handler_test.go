package handler

import (
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExtractDeviceContext_TruncatesLongUserAgent(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/auth/login", nil)
	r.Header.Set("User-Agent", strings.Repeat("a", 600))

	device := extractDeviceContext(r)
	assert.Len(t, device.DeviceInfo, maxDeviceInfoLength)
	assert.Len(t, device.UserAgent, 600, "исходный User-Agent не обрезается")
}

// обрезка не должна разрезать многобайтовую руну: битый UTF-8
// отвергается Postgres при вставке токена
func TestExtractDeviceContext_TruncatesOnRuneBoundary(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/auth/login", nil)
	r.Header.Set("User-Agent", strings.Repeat("я", 600))

	device := extractDeviceContext(r)
	assert.True(t, utf8.ValidString(device.DeviceInfo))
	assert.Equal(t, maxDeviceInfoLength, utf8.RuneCountInString(device.DeviceInfo))
}

func TestExtractDeviceContext_ShortUserAgentUntouched(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/auth/login", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0")

	device := extractDeviceContext(r)
	assert.Equal(t, "Mozilla/5.0", device.DeviceInfo)
}

func TestExtractDeviceContext_ForwardedForFirstHop(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/auth/login", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.10, 10.0.0.1")

	device := extractDeviceContext(r)
	assert.Equal(t, "203.0.113.10", device.IpAddress)
}
