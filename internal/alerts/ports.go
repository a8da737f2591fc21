package alerts

import "context"

// Notificator pushes operational errors to the admin channel. Implementations
// must be safe to call from request handlers; failures to deliver are logged,
// never returned to the caller's flow.
type Notificator interface {
	Notify(ctx context.Context, err error, details string)
}
