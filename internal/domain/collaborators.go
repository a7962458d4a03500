package domain

import "context"

// ImageStore is the blob storage collaborator. Upload stores raw image
// bytes and returns a publicly addressable URL.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (url string, err error)
}

// Mailer sends transactional email. Implementations are best-effort
// collaborators; callers decide whether a send failure is fatal.
type Mailer interface {
	Send(to, subject, html, text string) error
}
