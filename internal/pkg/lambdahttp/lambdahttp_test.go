package lambdahttp

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func TestHandle(t *testing.T) {
	var got struct {
		method, path, query, body, contentType, remote, requestID string
	}
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.Query().Get("lang")
		got.body = string(b)
		got.contentType = r.Header.Get("Content-Type")
		got.remote = r.RemoteAddr
		got.requestID = r.Header.Get("X-Request-ID")

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	ev := events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodPost,
		Path:                  "/api/send-email",
		QueryStringParameters: map[string]string{"lang": "en"},
		Headers:               map[string]string{"content-type": "application/json"},
		Body:                  base64.StdEncoding.EncodeToString([]byte(`{"name":"Jane"}`)),
		IsBase64Encoded:       true,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: "c6af9ac6-7b61-11e6-9a41-93e8deadbeef",
			Identity:  events.APIGatewayRequestIdentity{SourceIP: "198.51.100.7"},
		},
	}

	resp, err := New(h).Handle(context.Background(), ev)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if got.method != http.MethodPost || got.path != "/api/send-email" || got.query != "en" {
		t.Fatalf("request = %+v", got)
	}
	if got.body != `{"name":"Jane"}` || got.contentType != "application/json" {
		t.Fatalf("body = %q content-type = %q", got.body, got.contentType)
	}
	if got.remote != "198.51.100.7" {
		t.Fatalf("remote = %q", got.remote)
	}
	if got.requestID != "c6af9ac6-7b61-11e6-9a41-93e8deadbeef" {
		t.Fatalf("X-Request-ID = %q", got.requestID)
	}

	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("StatusCode = %d", resp.StatusCode)
	}
	if resp.IsBase64Encoded || resp.Body != `{"success":true}` {
		t.Fatalf("Body = %q base64 = %v", resp.Body, resp.IsBase64Encoded)
	}
	if resp.Headers["Content-Type"] != "application/json; charset=utf-8" {
		t.Fatalf("Headers = %v", resp.Headers)
	}
}

func TestHandleBinaryAndDefaults(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte{0xff, 0x00})
	})

	resp, err := New(h).Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK || !resp.IsBase64Encoded {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Body != base64.StdEncoding.EncodeToString([]byte{0xff, 0x00}) {
		t.Fatalf("Body = %q", resp.Body)
	}
}

func TestHandleBadBase64(t *testing.T) {
	_, err := New(http.NotFoundHandler()).Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            "%%%",
		IsBase64Encoded: true,
	})
	if err == nil {
		t.Fatal("expected decode error")
	}
}
