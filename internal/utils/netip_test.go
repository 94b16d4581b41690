package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseHostNoPort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "10.0.0.1:8080", want: "10.0.0.1"},
		{in: "10.0.0.1", want: "10.0.0.1"},
		{in: "[::1]:443", want: "::1"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := ParseHostNoPort(tt.in); got != tt.want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstForwardedFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1.2.3.4, 5.6.7.8", want: "1.2.3.4"},
		{in: " 1.2.3.4 ", want: "1.2.3.4"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := FirstForwardedFor(tt.in); got != tt.want {
			t.Errorf("FirstForwardedFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")

	if got := ClientIP(r, false); got != "10.0.0.1" {
		t.Errorf("ClientIP(untrusted) = %q, want RemoteAddr host", got)
	}
	if got := ClientIP(r, true); got != "1.2.3.4" {
		t.Errorf("ClientIP(trusted) = %q, want first forwarded hop", got)
	}

	r.Header.Set("CF-Connecting-IP", "9.9.9.9")
	if got := ClientIP(r, true); got != "9.9.9.9" {
		t.Errorf("ClientIP(trusted) = %q, CF header should win", got)
	}
}
