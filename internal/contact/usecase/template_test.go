package usecase

import (
	"strings"
	"testing"

	"github.com/shandysiswandi/contactrelay/internal/contact/entity"
)

func TestRenderNotification(t *testing.T) {
	sub := entity.Submission{Name: "Jane", Email: "jane@example.com", Message: "Hello"}

	n, err := renderNotification(sub)
	if err != nil {
		t.Fatalf("renderNotification() error = %v", err)
	}
	if n.Subject != "Message from Jane" {
		t.Fatalf("Subject = %q", n.Subject)
	}
	for _, want := range []string{
		"<strong>Name:</strong> Jane</p>",
		"<strong>Email:</strong> jane@example.com</p>",
		`<p class="message">Hello</p>`,
		"New Message from Your Website",
		"This is an automated email.",
	} {
		if !strings.Contains(n.HTMLBody, want) {
			t.Errorf("HTMLBody missing %q", want)
		}
	}

	again, err := renderNotification(sub)
	if err != nil {
		t.Fatalf("renderNotification() error = %v", err)
	}
	if again != n {
		t.Fatal("rendering must be deterministic")
	}
}

func TestRenderNotificationEscapes(t *testing.T) {
	n, err := renderNotification(entity.Submission{
		Name:    "<b>Mallory</b>",
		Email:   "m@example.com",
		Message: `<script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("renderNotification() error = %v", err)
	}

	if strings.Contains(n.HTMLBody, "<script>") || strings.Contains(n.HTMLBody, "<b>Mallory") {
		t.Fatal("user values must not inject markup")
	}
	if !strings.Contains(n.HTMLBody, `&lt;script&gt;alert("x")&lt;/script&gt;`) {
		t.Fatalf("escaped message not found in body")
	}
	if n.Subject != "Message from <b>Mallory</b>" {
		t.Fatalf("subject is plain text and should be unescaped, got %q", n.Subject)
	}
}

func TestRenderNotificationKeepsLiteralValues(t *testing.T) {
	sub := entity.Submission{
		Name:    "Conan O'Brien",
		Email:   "jane+news@example.com",
		Message: `Price is "5 + 3" & it's fine`,
	}

	n, err := renderNotification(sub)
	if err != nil {
		t.Fatalf("renderNotification() error = %v", err)
	}

	for _, want := range []string{
		"<strong>Name:</strong> Conan O'Brien</p>",
		"<strong>Email:</strong> jane+news@example.com</p>",
		`<p class="message">Price is "5 + 3" &amp; it's fine</p>`,
	} {
		if !strings.Contains(n.HTMLBody, want) {
			t.Errorf("HTMLBody missing %q", want)
		}
	}
}
