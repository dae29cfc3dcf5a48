// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
)

// FakeListener replays a fixed sequence of events, then returns Err or waits for ctx
type FakeListener struct {
	Events []model.ListsUpdatedEvent
	Err    error
}

var _ port.ListListener = (*FakeListener)(nil)

// Listen delivers every event in order
func (l *FakeListener) Listen(ctx context.Context, handle func(context.Context, model.ListsUpdatedEvent)) error {
	for _, event := range l.Events {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		handle(ctx, event)
	}

	if l.Err != nil {
		return l.Err
	}
	<-ctx.Done()
	return ctx.Err()
}
