package mail

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime"
	"slices"
	"strings"
	"time"
)

// reserved headers are always written by buildRaw and cannot be overridden
// through Message.Headers.
var reserved = map[string]struct{}{
	"from":         {},
	"to":           {},
	"cc":           {},
	"bcc":          {},
	"reply-to":     {},
	"subject":      {},
	"date":         {},
	"mime-version": {},
	"content-type": {},
}

// headerValue strips CR and LF so user-controlled text (subject, reply-to)
// cannot start a new header line.
func headerValue(v string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(v)
}

func encodeSubject(s string) string {
	return mime.QEncoding.Encode("UTF-8", headerValue(s))
}

// buildRaw renders msg as an RFC 5322 message sent by from.
func buildRaw(msg Message, from string, now time.Time) []byte {
	body, contentType := buildBody(msg)

	headers := []string{
		"From: " + headerValue(from),
		"To: " + headerValue(strings.Join(msg.To, ", ")),
	}
	if len(msg.Cc) > 0 {
		headers = append(headers, "Cc: "+headerValue(strings.Join(msg.Cc, ", ")))
	}
	if msg.ReplyTo != "" {
		headers = append(headers, "Reply-To: "+headerValue(msg.ReplyTo))
	}
	headers = append(headers,
		"Subject: "+encodeSubject(msg.Subject),
		"Date: "+now.Format(time.RFC1123Z),
	)

	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		if _, skip := reserved[strings.ToLower(k)]; skip {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		headers = append(headers, fmt.Sprintf("%s: %s", headerValue(k), headerValue(msg.Headers[k])))
	}

	headers = append(headers,
		"MIME-Version: 1.0",
		"Content-Type: "+contentType,
	)

	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)
}

func buildBody(msg Message) (body string, contentType string) {
	if msg.HTMLBody != "" && msg.TextBody != "" {
		boundary := multipartBoundary()
		var sb strings.Builder
		sb.WriteString("This is a multipart message in MIME format.\r\n")
		fmt.Fprintf(&sb, "--%s\r\n", boundary)
		sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		sb.WriteString("\r\n")
		sb.WriteString(msg.TextBody)
		sb.WriteString("\r\n")
		fmt.Fprintf(&sb, "--%s\r\n", boundary)
		sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		sb.WriteString("\r\n")
		sb.WriteString(msg.HTMLBody)
		sb.WriteString("\r\n")
		fmt.Fprintf(&sb, "--%s--", boundary)
		return sb.String(), fmt.Sprintf("multipart/alternative; boundary=%s", boundary)
	}

	if msg.HTMLBody != "" {
		return msg.HTMLBody, "text/html; charset=UTF-8"
	}

	return msg.TextBody, "text/plain; charset=UTF-8"
}

func multipartBoundary() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "contactrelay-boundary-fallback"
	}
	return "contactrelay-boundary-" + hex.EncodeToString(b[:])
}

func recipients(msg Message) []string {
	all := make([]string, 0, len(msg.To)+len(msg.Cc)+len(msg.Bcc))
	all = append(all, msg.To...)
	all = append(all, msg.Cc...)
	all = append(all, msg.Bcc...)
	return all
}
