package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	db Pinger
}

// NewService constructs a health service. db may be nil when records are
// kept on disk.
func NewService(db Pinger) *Service {
	return &Service{db: db}
}

// Status returns the health payload and whether every check passed.
func (s *Service) Status(ctx context.Context) (map[string]bool, bool) {
	status := map[string]bool{"ok": true}
	if s == nil || s.db == nil {
		return status, true
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	dbOK := s.db.PingContext(pingCtx) == nil
	status["db"] = dbOK
	status["ok"] = dbOK
	return status, dbOK
}
