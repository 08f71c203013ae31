// Package notify composes and sends the clinic's emails: the appointment
// notification and acknowledgement, the contact message and the transport
// test. Templates are embedded markdown rendered by pkg/mailer.
package notify
