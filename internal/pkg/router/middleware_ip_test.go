package router

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		trust   bool
		want    string
	}{
		{name: "remote addr only", want: "192.0.2.1"},
		{name: "forwarded for first hop", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, trust: true, want: "203.0.113.7"},
		{name: "real ip preferred over forwarded", headers: map[string]string{"X-Real-IP": "203.0.113.9", "X-Forwarded-For": "203.0.113.7"}, trust: true, want: "203.0.113.9"},
		{name: "garbage header falls through", headers: map[string]string{"X-Real-IP": "not-an-ip"}, trust: true, want: "192.0.2.1"},
		{name: "untrusted proxy headers ignored", headers: map[string]string{"X-Real-IP": "203.0.113.9"}, want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := clientIP(r, tt.trust); got != tt.want {
				t.Fatalf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
