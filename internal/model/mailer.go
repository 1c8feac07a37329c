package model

import "context"

// Mailer is the outbound-mail collaborator. Implementations carry their own
// timeout policy; callers treat a failure as fail-fast and never retry.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
