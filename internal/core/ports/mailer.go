package ports

import "context"

// Mailer delivers transactional email. Delivery is synchronous: a failure
// aborts the calling flow.
type Mailer interface {
	SendVerification(ctx context.Context, to, username, link string) error
	SendPasswordReset(ctx context.Context, to, username, link string) error
}
