// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/infrastructure/mock"
	internalService "github.com/pantrysync/listsync/internal/service"
	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/errors"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"sync", "export", "listen", "worker", "schema"}, names)
}

func TestExecute_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", want: 0},
		{name: "aborted on a failed record", err: errors.NewRecord("Bananas", "update failed", stderrors.New("503")), want: 1},
		{name: "invalid configuration", err: errors.NewConfiguration("NOTION_TOKEN is not defined"), want: 1},
		{name: "source failure", err: errors.NewSource("list not found"), want: 1},
		{name: "other failure", err: stderrors.New("boom"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{
				Use:           "listsync",
				SilenceUsage:  true,
				SilenceErrors: true,
				RunE: func(*cobra.Command, []string) error {
					return tt.err
				},
			}
			cmd.SetArgs([]string{})

			assert.Equal(t, tt.want, execute(context.Background(), cmd))
		})
	}
}

func TestExecute_RecordErrorPolicy(t *testing.T) {
	tests := []struct {
		policy model.RecordErrorPolicy
		want   int
	}{
		{policy: model.OnRecordErrorAbort, want: 1},
		{policy: model.OnRecordErrorSkip, want: 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			dest := mock.NewMemoryDestination()
			dest.FailOn(mock.OpQuery, "Eggs", stderrors.New("503 service unavailable"))

			opts := model.DefaultSyncOptions()
			opts.OnRecordError = tt.policy
			engine, err := internalService.NewUpsertEngine(dest, opts)
			require.NoError(t, err)

			pipeline := internalService.NewSyncPipeline(mock.NewStaticSource(
				model.NewRawItem("Milk", "1"),
				model.NewRawItem("Eggs", "12"),
				model.NewRawItem("Rice", "2"),
			), engine)

			cmd := &cobra.Command{
				Use:           "sync",
				SilenceUsage:  true,
				SilenceErrors: true,
				RunE: func(cmd *cobra.Command, _ []string) error {
					_, err := pipeline.Run(cmd.Context())
					return err
				},
			}
			cmd.SetArgs([]string{})

			assert.Equal(t, tt.want, execute(context.Background(), cmd))
		})
	}
}

func TestSyncCommand_Defaults(t *testing.T) {
	cmd := NewSyncCommand()

	source, err := cmd.Flags().GetString("source")
	require.NoError(t, err)
	assert.Equal(t, constants.SourceAnyList, source)

	file, err := cmd.Flags().GetString("file")
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultExportFile, file)
}

func TestWriteSchema(t *testing.T) {
	raw := []byte(`{"object":"database","properties":{"Name":{"id":"title","type":"title"}}}`)

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{
			name:   "json is indented",
			format: formatJSON,
			want: `{
  "object": "database",
  "properties": {
    "Name": {
      "id": "title",
      "type": "title"
    }
  }
}
`,
		},
		{
			name:   "yaml",
			format: formatYAML,
			want: `object: database
properties:
  Name:
    id: title
    type: title
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, writeSchema(&out, raw, tt.format))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestWriteSchema_InvalidJSON(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, writeSchema(&out, []byte(`{not json`), formatJSON))
	assert.Error(t, writeSchema(&out, []byte(`{not json`), formatYAML))
}

func TestSchemaCommand_RejectsUnknownFormat(t *testing.T) {
	cmd := NewSchemaCommand()
	cmd.SetArgs([]string{"--format", "xml"})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

// fakeSubscriber keeps the handler so tests can deliver messages directly
type fakeSubscriber struct {
	subject string
	queue   string
	handler nats.MsgHandler
	err     error
}

func (f *fakeSubscriber) QueueSubscribe(subject, queue string, handler nats.MsgHandler) (*nats.Subscription, error) {
	f.subject, f.queue, f.handler = subject, queue, handler
	return &nats.Subscription{}, f.err
}

type fakeHandler struct {
	mu       sync.Mutex
	messages []*nats.Msg
	deadline bool
	err      error
}

func (f *fakeHandler) HandleMessage(ctx context.Context, msg *nats.Msg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	_, f.deadline = ctx.Deadline()
	return f.err
}

func TestHandleListsUpdated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subscriber := &fakeSubscriber{}
	handler := &fakeHandler{}

	require.NoError(t, handleListsUpdated(ctx, subscriber, handler, time.Minute))
	assert.Equal(t, constants.ListsUpdatedSubject, subscriber.subject)
	assert.Equal(t, constants.WorkerQueue, subscriber.queue)

	msg := &nats.Msg{Subject: constants.ListsUpdatedSubject, Data: []byte(`{"event_id":"e1"}`)}
	subscriber.handler(msg)

	require.Len(t, handler.messages, 1)
	assert.Same(t, msg, handler.messages[0])
	assert.True(t, handler.deadline)

	t.Run("handler errors do not panic without a reply subject", func(t *testing.T) {
		handler.err = stderrors.New("boom")
		subscriber.handler(msg)
		assert.Len(t, handler.messages, 2)
	})

	t.Run("messages after shutdown are not handled", func(t *testing.T) {
		cancel()
		subscriber.handler(msg)
		assert.Len(t, handler.messages, 2)
	})
}

func TestHandleListsUpdated_SubscribeError(t *testing.T) {
	subscriber := &fakeSubscriber{err: stderrors.New("connection closed")}

	err := handleListsUpdated(context.Background(), subscriber, &fakeHandler{}, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), constants.ListsUpdatedSubject)
}
