package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/shandysiswandi/contactrelay/internal/contact"
	"github.com/shandysiswandi/contactrelay/internal/pkg/config"
	"github.com/shandysiswandi/contactrelay/internal/pkg/credential"
	"github.com/shandysiswandi/contactrelay/internal/pkg/mail"
)

type fakeSSM struct {
	values map[string]string
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	v, ok := f.values[aws.ToString(in.Name)]
	if !ok {
		return nil, &types.ParameterNotFound{Message: aws.String("not found")}
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: in.Name, Value: aws.String(v)}}, nil
}

type fakeMail struct {
	mu     sync.Mutex
	sent   []mail.Message
	err    error
	closed bool
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeMail) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeMail) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeMail) messages() []mail.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mail.Message(nil), f.sent...)
}

func newConfig(t *testing.T, yaml string) config.Config {
	t.Helper()
	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func keepLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

const baseConfig = `
credential:
  mode: local
  local:
    username: relay@gmail.com
    password: app-password
mail:
  destination: owner@example.com
`

func TestNewAbortsOnUnknownMode(t *testing.T) {
	keepLogger(t)
	m := &fakeMail{}

	_, err := New(newConfig(t, "credential:\n  mode: production\nmail:\n  destination: owner@example.com\n"), WithMail(m))
	if !errors.Is(err, credential.ErrUnknownMode) {
		t.Fatalf("New() error = %v, want ErrUnknownMode", err)
	}
	if len(m.messages()) != 0 {
		t.Fatal("nothing may be sent when startup fails")
	}
}

func TestNewAbortsOnMissingSSMParameter(t *testing.T) {
	keepLogger(t)

	cfg := newConfig(t, `
credential:
  mode: ssm
  ssm:
    username_param: /relay/user
    password_param: /relay/pass
mail:
  destination: owner@example.com
`)
	_, err := New(cfg, WithSSMClient(&fakeSSM{values: map[string]string{"/relay/user": "relay@gmail.com"}}), WithMail(&fakeMail{}))
	if !errors.Is(err, credential.ErrParameterMissing) {
		t.Fatalf("New() error = %v, want ErrParameterMissing", err)
	}
}

func TestNewRequiresDestination(t *testing.T) {
	keepLogger(t)
	t.Setenv("DESTINATION_EMAIL", "")
	t.Setenv("MAIL_DESTINATION", "")

	_, err := New(newConfig(t, "credential:\n  mode: local\n"), WithMail(&fakeMail{}))
	if !errors.Is(err, contact.ErrDestinationRequired) {
		t.Fatalf("New() error = %v, want ErrDestinationRequired", err)
	}
}

func TestNewRequiresRedisForRedisLimiter(t *testing.T) {
	keepLogger(t)
	t.Setenv("REDIS_URL", "")

	_, err := New(newConfig(t, baseConfig+"app:\n  ratelimit:\n    driver: redis\n"), WithMail(&fakeMail{}))
	if !errors.Is(err, errRedisRequired) {
		t.Fatalf("New() error = %v, want errRedisRequired", err)
	}
}

func TestNewRejectsEmptyCORSOrigins(t *testing.T) {
	keepLogger(t)
	t.Setenv("APP_SERVER_CORS", "")

	_, err := New(newConfig(t, baseConfig+"app:\n  server:\n    cors: \" , \"\n"), WithMail(&fakeMail{}))
	if !errors.Is(err, errCORSNoOrigins) {
		t.Fatalf("New() error = %v, want errCORSNoOrigins", err)
	}
}

func TestServeEndToEnd(t *testing.T) {
	keepLogger(t)

	m := &fakeMail{}
	cfg := newConfig(t, `
credential:
  mode: ssm
  ssm:
    username_param: /relay/user
    password_param: /relay/pass
mail:
  destination: owner@example.com
`)
	a, err := New(cfg,
		WithSSMClient(&fakeSSM{values: map[string]string{"/relay/user": "relay@gmail.com", "/relay/pass": "pw"}}),
		WithMail(m),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.creds.Username != "relay@gmail.com" {
		t.Fatalf("credentials = %v", a.creds)
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	errChan := a.Serve(l)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Stop(ctx)
		<-errChan
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.closed {
			t.Error("mail transport should be closed on Stop")
		}
	})

	base := fmt.Sprintf("http://%s", l.Addr().String())
	client := &http.Client{Timeout: 5 * time.Second}

	do := func(body string) (int, string) {
		t.Helper()
		resp, err := client.Post(base+"/api/send-email", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, strings.TrimSpace(string(b))
	}

	code, body := do(`{"name":"Jane","email":"jane@example.com","message":"Hello"}`)
	if code != http.StatusOK || body != `{"success":true}` {
		t.Fatalf("valid: %d %s", code, body)
	}
	sent := m.messages()
	if len(sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sent))
	}
	msg := sent[0]
	if msg.To[0] != "owner@example.com" || msg.ReplyTo != "jane@example.com" || msg.Subject != "Message from Jane" {
		t.Fatalf("message = %+v", msg)
	}
	if msg.Headers["X-Priority"] != "1" {
		t.Fatalf("headers = %v", msg.Headers)
	}

	code, body = do(`{"name":"","email":"jane@example.com","message":"Hello"}`)
	if code != http.StatusBadRequest || !strings.Contains(body, `"path":"name"`) {
		t.Fatalf("invalid: %d %s", code, body)
	}
	if len(m.messages()) != 1 {
		t.Fatal("invalid submissions must not be sent")
	}

	m.setErr(errors.New("535 bad credentials"))
	code, body = do(`{"name":"Jane","email":"jane@example.com","message":"Hello"}`)
	if code != http.StatusInternalServerError || body != `{"error":"Something went wrong"}` {
		t.Fatalf("transport failure: %d %s", code, body)
	}

	req, _ := http.NewRequest(http.MethodOptions, base+"/api/send-email", nil)
	req.Header.Set("Origin", "https://edward-codes.tez")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Access-Control-Allow-Origin") != "https://edward-codes.tez" {
		t.Fatalf("preflight: %d %v", resp.StatusCode, resp.Header)
	}
}
