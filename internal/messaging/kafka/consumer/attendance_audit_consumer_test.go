package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	auditerrors "go-presence/internal/audit/errors"
	"go-presence/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	queue     []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
	trace     *[]string
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.queue) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	if r.trace != nil {
		*r.trace = append(*r.trace, fmt.Sprintf("fetch %d", msg.Offset))
	}
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

// fakeRecorder returns the queued errors for an event id in order, then nil.
type fakeRecorder struct {
	results map[string][]error
	seen    []string
	trace   *[]string
}

func (f *fakeRecorder) RecordAttendanceClocked(_ context.Context, event events.AttendanceClockedEvent) error {
	f.seen = append(f.seen, event.EventID)
	if f.trace != nil {
		*f.trace = append(*f.trace, "record "+event.EventID)
	}
	queued := f.results[event.EventID]
	if len(queued) == 0 {
		return nil
	}
	f.results[event.EventID] = queued[1:]
	return queued[0]
}

func fastRetry(t *testing.T) {
	t.Helper()
	base, ceiling := retryBaseDelay, retryMaxDelay
	retryBaseDelay, retryMaxDelay = time.Millisecond, 2*time.Millisecond
	t.Cleanup(func() { retryBaseDelay, retryMaxDelay = base, ceiling })
}

func message(t *testing.T, offset int64, eventID string) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(events.AttendanceClockedEvent{
		EventID:   eventID,
		EventType: events.AttendanceClockedEventType,
		Action:    "CLOCK_IN",
	})
	require.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: payload}
}

func TestConsumeAttendanceClocked(t *testing.T) {
	fastRetry(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		queue: []kafkago.Message{
			message(t, 1, "ok"),
			{Offset: 2, Value: []byte("{not json")},
			message(t, 3, "dup"),
			message(t, 4, "db-down"),
			{Offset: 5, Value: []byte(`{"event_type":"something.else"}`)},
			message(t, 6, "ok-2"),
		},
	}
	recorder := &fakeRecorder{results: map[string][]error{
		"dup":     {auditerrors.ErrDuplicateEvent},
		"db-down": {errors.New("connection refused"), errors.New("connection refused")},
	}}

	ConsumeAttendanceClocked(ctx, reader, recorder, zap.NewNop())

	assert.Equal(t, []string{"ok", "dup", "db-down", "db-down", "db-down", "ok-2"}, recorder.seen)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, reader.committed)
}

func TestConsumeAttendanceClocked_RetriesBeforeNextFetch(t *testing.T) {
	fastRetry(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var trace []string
	reader := &fakeReader{
		cancel: cancel,
		trace:  &trace,
		queue:  []kafkago.Message{message(t, 7, "flaky"), message(t, 8, "next")},
	}
	recorder := &fakeRecorder{
		trace:   &trace,
		results: map[string][]error{"flaky": {errors.New("connection reset")}},
	}

	ConsumeAttendanceClocked(ctx, reader, recorder, zap.NewNop())

	assert.Equal(t, []string{
		"fetch 7",
		"record flaky",
		"record flaky",
		"fetch 8",
		"record next",
	}, trace)
	assert.Equal(t, []int64{7, 8}, reader.committed)
}

func TestConsumeAttendanceClocked_StopsWithoutCommitWhenCancelledMidRetry(t *testing.T) {
	fastRetry(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		queue:  []kafkago.Message{message(t, 9, "down"), message(t, 10, "never")},
	}
	recorder := &cancellingRecorder{cancel: cancel}

	ConsumeAttendanceClocked(ctx, reader, recorder, zap.NewNop())

	assert.Equal(t, 1, recorder.calls)
	assert.Empty(t, reader.committed)
	assert.Len(t, reader.queue, 1)
}

type cancellingRecorder struct {
	cancel context.CancelFunc
	calls  int
}

func (r *cancellingRecorder) RecordAttendanceClocked(context.Context, events.AttendanceClockedEvent) error {
	r.calls++
	r.cancel()
	return errors.New("db down")
}
