// File: internal/notification/sender.go
package notification

import "context"

// Sender delivers a verification code to a destination address. The reason
// string selects the message wording.
type Sender interface {
	Send(ctx context.Context, destination, code, reason string) error
}
