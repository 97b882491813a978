package usecase

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/shandysiswandi/contactrelay/internal/contact/entity"
)

const subjectPrefix = "Message from "

// textEscaper neutralizes markup in element text. Every field is interpolated
// as element text, so other characters (quotes, '+') are kept verbatim.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var notificationTemplate = template.Must(template.New("notification").Funcs(template.FuncMap{
	"text": textEscaper.Replace,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>New Message Notification</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; color: #333333; }
        .email-container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; }
        .header { background-color: #4a90d9; color: #ffffff; padding: 20px; text-align: center; font-size: 22px; }
        .content { padding: 20px; line-height: 1.6; }
        .details { background-color: #f9f9f9; border-left: 4px solid #4a90d9; padding: 10px 15px; margin: 15px 0; }
        .message { white-space: pre-wrap; }
        .footer { background-color: #eeeeee; padding: 10px; text-align: center; font-size: 12px; color: #777777; }
    </style>
</head>
<body>
    <div class="email-container">
        <div class="header">
            New Message from Your Website
        </div>
        <div class="content">
            <p>Received a new message from {{text .Name}}.</p>
            <p>You've received a new message from your website's contact form:</p>
            <div class="details">
                <p><strong>Name:</strong> {{text .Name}}</p>
                <p><strong>Email:</strong> {{text .Email}}</p>
                <p><strong>Message:</strong></p>
                <p class="message">{{text .Message}}</p>
            </div>
            <p>Make sure to respond as soon as possible.</p>
        </div>
        <div class="footer">
            This is an automated email. Please do not reply directly.
        </div>
    </div>
</body>
</html>
`))

// renderNotification is pure: the same submission always renders the same
// notification. Values without '&', '<' or '>' appear byte-for-byte.
func renderNotification(sub entity.Submission) (entity.Notification, error) {
	var buf bytes.Buffer
	if err := notificationTemplate.Execute(&buf, sub); err != nil {
		return entity.Notification{}, err
	}

	return entity.Notification{
		Subject:  subjectPrefix + sub.Name,
		HTMLBody: buf.String(),
	}, nil
}
