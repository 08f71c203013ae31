// Package mailer renders markdown email templates and delivers them through a
// pluggable Sender.
//
// # Architecture
//
//   - Sender: transport interface (SMTP in mailer/smtp, Resend in mailer/resend)
//   - Verifier: optional connection check implemented by transports that can dial
//   - Renderer: markdown + YAML front matter to plain text and HTML
//   - Mailer: ties the two together and bounds every call with a timeout
//
// # Templates
//
// Templates are markdown files with optional YAML front matter:
//
//	---
//	Subject: Appointment Confirmation — {{.ClinicName}}
//	---
//	Dear {{esc .FullName}},
//
//	{{b "Service:"}} {{esc .Service}}
//
//	{{button "Call the clinic" .PhoneURL}}
//
// Each template is executed twice. The plain-text pass prints values as they
// are and bold labels as *Label*. The markdown pass escapes every value passed
// through esc, then goldmark converts it to HTML, bluemonday sanitizes it and
// the layout wraps it. Always pass user input through esc.
//
// # Errors
//
// Transports wrap failures with ErrAuth, ErrConnection or ErrTimeout. ErrorCode
// maps any error to a short code (EAUTH, ECONNECTION, ETIMEDOUT, ECONFIG, ESEND)
// suitable for API responses and logs.
package mailer
