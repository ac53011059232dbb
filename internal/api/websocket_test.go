package api

import "testing"

func TestWebSocketRateLimiter_EnforcesPerIPCap(t *testing.T) {
	wrl := NewWebSocketRateLimiter(2)
	if !wrl.Allow("9.9.9.9") || !wrl.Allow("9.9.9.9") {
		t.Fatal("first two connections should be allowed")
	}
	if wrl.Allow("9.9.9.9") {
		t.Fatal("third connection should be rejected")
	}
	wrl.Release("9.9.9.9")
	if !wrl.Allow("9.9.9.9") {
		t.Fatal("connection should be allowed again after release")
	}
}

func TestIsAllowedOrigin(t *testing.T) {
	if !IsAllowedOrigin("http://localhost:5173") {
		t.Fatal("expected localhost with any port to be allowed")
	}
	if IsAllowedOrigin("https://evil.example.com") {
		t.Fatal("expected an unrelated origin to be rejected")
	}
	if IsAllowedOrigin("") {
		t.Fatal("expected empty origin to be rejected")
	}
}
