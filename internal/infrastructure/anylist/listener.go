// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package anylist

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/errors"
	"github.com/pantrysync/listsync/pkg/utils"
)

// Listener holds a realtime connection to AnyList and turns every
// lists-changed push into a ListsUpdatedEvent
type Listener struct {
	client ClientInterface
	config Config
	dialer *websocket.Dialer
}

var _ port.ListListener = (*Listener)(nil)

// NewListener creates a listener using client for authentication and list lookups
func NewListener(client ClientInterface, cfg Config) *Listener {
	return &Listener{
		client: client,
		config: cfg,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.Timeout,
		},
	}
}

// Listen connects and delivers events to handle until ctx is cancelled or the
// connection cannot be re-established. Events are handled one at a time.
func (l *Listener) Listen(ctx context.Context, handle func(context.Context, model.ListsUpdatedEvent)) error {
	if l.config.HeartbeatInterval <= 0 {
		return errors.NewConfiguration("ANYLIST_HEARTBEAT_INTERVAL must be positive")
	}

	// initial list fetch, so credential and network problems fail fast
	if _, err := l.client.ShoppingLists(ctx); err != nil {
		return errors.NewSource("failed to fetch lists from AnyList", err)
	}

	conn, err := l.dial(ctx)
	if err != nil {
		return errors.NewSource("failed to connect to AnyList", err)
	}

	for {
		err := l.serve(ctx, conn, handle)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		slog.WarnContext(ctx, "AnyList connection lost", "error", err)
		if l.config.ReconnectMaxAttempts == 0 {
			return errors.NewSource("AnyList connection lost", err)
		}

		retryConfig := utils.NewRetryConfig(l.config.ReconnectMaxAttempts,
			constants.ListenerReconnectBaseDelay, constants.ListenerReconnectMaxDelay)
		err = utils.RetryWithExponentialBackoff(ctx, retryConfig, func() error {
			c, dialErr := l.dial(ctx)
			if dialErr != nil {
				return dialErr
			}
			conn = c
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.NewSource("failed to reconnect to AnyList", err)
		}
		slog.InfoContext(ctx, "reconnected to AnyList")
	}
}

// dial opens an authenticated connection. Rejected credentials are permanent,
// transient login failures are retried.
func (l *Listener) dial(ctx context.Context) (*websocket.Conn, error) {
	headers, err := l.client.ListenerHeaders(ctx)
	if err != nil {
		if isRejected(err) {
			return nil, utils.Permanent(err)
		}
		return nil, fmt.Errorf("failed to authenticate listener: %w", err)
	}

	slog.DebugContext(ctx, "setting up AnyList connection", "url", l.config.WSURL)

	conn, resp, err := l.dialer.DialContext(ctx, l.config.WSURL, headers)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, utils.Permanent(fmt.Errorf("connection rejected with status %d: %w", resp.StatusCode, err))
		}
		return nil, err
	}
	return conn, nil
}

// isRejected reports whether AnyList refused the credentials or the request
func isRejected(err error) bool {
	var unauthorized errors.Unauthorized
	var validation errors.Validation
	return stderrors.As(err, &unauthorized) || stderrors.As(err, &validation)
}

// serve runs the heartbeat, the read loop and the event handler until the
// connection fails or ctx is cancelled. It always closes conn.
func (l *Listener) serve(ctx context.Context, conn *websocket.Conn, handle func(context.Context, model.ListsUpdatedEvent)) error {
	g, gctx := errgroup.WithContext(ctx)
	events := make(chan model.ListsUpdatedEvent)

	slog.InfoContext(ctx, "AnyList listener connected")

	// closing the socket unblocks the read loop
	g.Go(func() error {
		<-gctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		return conn.Close()
	})

	g.Go(func() error {
		ticker := time.NewTicker(l.config.HeartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.TextMessage, []byte(constants.ListenerHeartbeatMessage)); err != nil {
					return fmt.Errorf("heartbeat failed: %w", err)
				}
			}
		}
	})

	g.Go(func() error {
		defer close(events)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("read failed: %w", err)
			}

			if string(data) != constants.ListsChangedMessage {
				slog.DebugContext(gctx, "ignoring AnyList message", "message", string(data))
				continue
			}

			event := l.newEvent(gctx)
			select {
			case events <- event:
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		for event := range events {
			handle(ctx, event)
		}
		return nil
	})

	err := g.Wait()
	if err == nil {
		err = stderrors.New("connection closed")
	}
	return err
}

// newEvent re-fetches the lists so the event carries the updated list names.
// A failed fetch yields an event without names, which concerns every list.
func (l *Listener) newEvent(ctx context.Context) model.ListsUpdatedEvent {
	event := model.ListsUpdatedEvent{
		EventID:    uuid.NewString(),
		ReceivedAt: time.Now().UTC(),
	}

	lists, err := l.client.ShoppingLists(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to re-fetch lists after update", "error", err)
		return event
	}
	event.ListNames = listNames(lists)
	return event
}
