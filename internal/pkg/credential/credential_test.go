package credential

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

type fakeSSM struct {
	values map[string]string
	err    error
	calls  []*ssm.GetParameterInput
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}

	v, ok := f.values[aws.ToString(in.Name)]
	if !ok {
		return nil, &types.ParameterNotFound{Message: aws.String("not found")}
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: in.Name, Value: aws.String(v)}}, nil
}

func ssmOptions(client SSMAPI) Options {
	return Options{SSM: SSMOptions{
		UsernameParam: "/relay/user",
		PasswordParam: "/relay/pass",
		Client:        client,
	}}
}

func TestLoadLocal(t *testing.T) {
	got, err := Load(context.Background(), "local", Options{Local: LocalOptions{Username: "u@gmail.com", Password: "pw"}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Username != "u@gmail.com" || got.Password != "pw" {
		t.Fatalf("Load() = %+v", got)
	}
}

func TestLoadUnknownMode(t *testing.T) {
	for _, mode := range []string{"", "staging", "parameter-store"} {
		_, err := Load(context.Background(), mode, Options{})
		if !errors.Is(err, ErrUnknownMode) {
			t.Fatalf("mode %q: expected ErrUnknownMode, got %v", mode, err)
		}
	}
}

func TestLoadSSM(t *testing.T) {
	client := &fakeSSM{values: map[string]string{"/relay/user": "u@gmail.com", "/relay/pass": "secret"}}

	got, err := Load(context.Background(), "SSM", ssmOptions(client))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != (Credentials{Username: "u@gmail.com", Password: "secret"}) {
		t.Fatalf("Load() = %+v", got)
	}

	if len(client.calls) != 2 {
		t.Fatalf("expected 2 GetParameter calls, got %d", len(client.calls))
	}
	for _, in := range client.calls {
		if !aws.ToBool(in.WithDecryption) {
			t.Fatalf("expected decryption for %s", aws.ToString(in.Name))
		}
	}
}

func TestLoadSSMMissingParameter(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{name: "username absent", values: map[string]string{"/relay/pass": "secret"}},
		{name: "password absent", values: map[string]string{"/relay/user": "u@gmail.com"}},
		{name: "password empty", values: map[string]string{"/relay/user": "u@gmail.com", "/relay/pass": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), ModeSSM, ssmOptions(&fakeSSM{values: tt.values}))
			if !errors.Is(err, ErrParameterMissing) {
				t.Fatalf("expected ErrParameterMissing, got %v", err)
			}
		})
	}
}

func TestLoadSSMClientError(t *testing.T) {
	boom := errors.New("AccessDeniedException")
	_, err := Load(context.Background(), ModeSSM, ssmOptions(&fakeSSM{err: boom}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}

func TestNewSSMRequiresParameterNames(t *testing.T) {
	_, err := NewSSM(context.Background(), SSMOptions{Client: &fakeSSM{}})
	if !errors.Is(err, ErrParameterMissing) {
		t.Fatalf("expected ErrParameterMissing, got %v", err)
	}
}

func TestCredentialsMasking(t *testing.T) {
	c := Credentials{Username: "u@gmail.com", Password: "hunter2"}

	if s := c.String(); strings.Contains(s, "hunter2") {
		t.Fatalf("String() leaks secret: %q", s)
	}

	var sb strings.Builder
	slog.New(slog.NewTextHandler(&sb, nil)).Info("loaded", "credentials", c)
	if strings.Contains(sb.String(), "hunter2") {
		t.Fatalf("log output leaks secret: %q", sb.String())
	}
}
