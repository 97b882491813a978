// Package mail defines the contracts for sending email messages.
//
// The main purpose is to keep the rest of the application independent from a
// specific email provider. Use cases work with the Mail interface and Message
// payload; the concrete delivery mechanisms (SMTP, Amazon SES v2) are
// implemented in this package and share one MIME encoder, so a message looks
// the same on the wire whichever driver sends it.
package mail
