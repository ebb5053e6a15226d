package applications

import "context"

// Repo persists application records. Records are only ever appended.
type Repo interface {
	Append(ctx context.Context, rec Record) error
}
