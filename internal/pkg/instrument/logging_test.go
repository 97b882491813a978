package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	return out
}

func TestLogHandlerShape(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(&buf, "contactrelay", nil, nil))

	ctx := SetCorrelationID(context.Background(), "cid-123")
	logger.InfoContext(ctx, "hello", "k", "v")

	line := decodeLine(t, &buf)
	for _, key := range []string{"ts", "severity", "msg"} {
		if _, ok := line[key]; !ok {
			t.Fatalf("missing %q in %v", key, line)
		}
	}
	if line["_cID"] != "cid-123" {
		t.Fatalf("_cID = %v", line["_cID"])
	}
	if line["service"] != "contactrelay" {
		t.Fatalf("service = %v", line["service"])
	}
	if line["k"] != "v" {
		t.Fatalf("k = %v", line["k"])
	}
}

func TestLogHandlerMasks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(&buf, "", nil, []string{"Password", " email_pass "}))

	logger.Info("masking",
		"password", "hunter2",
		"body", `{"user":"a","email_pass":"secret"}`,
		"data", map[string]any{"nested": map[string]any{"PASSWORD": "x"}},
		slog.Group("creds", slog.String("password", "y"), slog.String("user", "u")),
	)

	line := decodeLine(t, &buf)
	if line["password"] != masked {
		t.Fatalf("password = %v", line["password"])
	}
	if line["body"] != `{"email_pass":"***","user":"a"}` {
		t.Fatalf("body = %v", line["body"])
	}
	nested := line["data"].(map[string]any)["nested"].(map[string]any)
	if nested["PASSWORD"] != masked {
		t.Fatalf("nested = %v", nested)
	}
	creds := line["creds"].(map[string]any)
	if creds["password"] != masked || creds["user"] != "u" {
		t.Fatalf("creds = %v", creds)
	}
	if _, ok := line["service"]; ok {
		t.Fatal("empty service name should not be logged")
	}
}

func TestLogHandlerMasksJSONErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(&buf, "", nil, []string{"value"}))

	logger.Warn("invalid submission", "error", errors.New(`[{"path":"email","value":"jane@"}]`))

	line := decodeLine(t, &buf)
	if line["error"] != `[{"path":"email","value":"***"}]` {
		t.Fatalf("error = %v", line["error"])
	}

	buf.Reset()
	logger.Warn("plain", "error", errors.New("dial tcp: connection refused"))
	if line := decodeLine(t, &buf); line["error"] != "dial tcp: connection refused" {
		t.Fatalf("plain error = %v", line["error"])
	}
}

func TestCorrelationID(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Fatalf("GetCorrelationID() = %q, want empty", got)
	}
	ctx := SetCorrelationID(context.Background(), "abc")
	if got := GetCorrelationID(ctx); got != "abc" {
		t.Fatalf("GetCorrelationID() = %q, want abc", got)
	}
}

func TestNewDisabledReturnsNoop(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	ins, err := New(context.Background(), &Config{Enabled: false, ServiceName: "contactrelay"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := ins.(*noopInstrumentation); !ok {
		t.Fatalf("expected noop instrumentation, got %T", ins)
	}
	if err := ins.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if _, ok := slog.Default().Handler().(*contextHandler); !ok {
		t.Fatalf("JSON logging should be installed, got %T", slog.Default().Handler())
	}
}
