package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Channel is the NOTIFY channel written by the venues table trigger.
const Channel = "venues_changed"

const (
	minReconnect = 10 * time.Second
	maxReconnect = time.Minute
	pingInterval = 90 * time.Second
)

// Notifier receives change signals.
type Notifier interface {
	Notify()
}

// PQSource listens for catalog changes made by anyone writing to the
// database, including other instances and direct SQL.
type PQSource struct {
	dsn    string
	target Notifier
	logger *zap.SugaredLogger
}

func NewPQSource(dsn string, target Notifier, logger *zap.SugaredLogger) *PQSource {
	return &PQSource{dsn: dsn, target: target, logger: logger}
}

// Run listens until ctx ends. The listener reconnects on its own; after a
// reconnect a change may have been missed, so a refresh is signalled.
func (s *PQSource) Run(ctx context.Context) error {
	listener := pq.NewListener(s.dsn, minReconnect, maxReconnect, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed:
			s.logger.Warnw("venue change listener failed to connect", "error", err)
		case pq.ListenerEventDisconnected:
			s.logger.Warnw("venue change listener disconnected", "error", err)
		case pq.ListenerEventReconnected:
			s.logger.Infow("venue change listener reconnected")
		}
	})
	defer listener.Close()

	if err := listener.Listen(Channel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", Channel, err)
	}
	s.logger.Infow("listening for venue changes", "channel", Channel)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			if n != nil {
				s.logger.Debugw("venue change received", "op", n.Extra)
			}
			s.target.Notify()
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					s.logger.Warnw("venue change listener ping failed", "error", err)
				}
			}()
		}
	}
}
