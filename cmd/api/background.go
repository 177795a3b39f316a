package main

import (
	"context"
	"time"

	"github.com/fatihreha/Miro-sub002/internal/realtime"
)

const listenerRetry = 30 * time.Second

// startBackground runs the change hub and, for the postgres backend, the
// database change listener until ctx ends.
func (app *application) startBackground(ctx context.Context) {
	go app.hub.Run(ctx)

	if app.config.backend != backendPostgres {
		return
	}

	source := realtime.NewPQSource(app.config.db.addr, app.hub, app.logger)
	go func() {
		ticker := time.NewTicker(listenerRetry)
		defer ticker.Stop()

		for {
			err := source.Run(ctx)
			if ctx.Err() != nil {
				return
			}
			app.logger.Errorw("venue change listener stopped, retrying", "error", err, "retry_in", listenerRetry)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
