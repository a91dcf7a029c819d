package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	auditerrors "go-presence/internal/audit/errors"
	"go-presence/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type AttendanceAuditRecorder interface {
	RecordAttendanceClocked(ctx context.Context, event events.AttendanceClockedEvent) error
}

// Backoff between attempts to record the same message.
var (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 10 * time.Second
)

// ConsumeAttendanceClocked writes one audit entry per attendance.clocked
// message. Undecodable and already-recorded messages are committed and
// skipped. A storage failure retries the same message with backoff until it
// is recorded or ctx is done; the next message is not fetched before that.
func ConsumeAttendanceClocked(
	ctx context.Context,
	reader MessageReader,
	recorder AttendanceAuditRecorder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_audit")
	log.Info("attendance audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance audit consumer stopped")
				return
			}
			log.Error("fetch attendance message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceClockedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventType != events.AttendanceClockedEventType {
			log.Error("skip undecodable attendance message",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		duplicate, ok := recordWithRetry(ctx, recorder, event, log)
		if !ok {
			log.Info("attendance audit consumer stopped",
				zap.String("pending_event_id", event.EventID),
			)
			return
		}
		if duplicate {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance message failed", zap.Error(err))
			continue
		}

		log.Info("attendance event audited",
			zap.String("event_id", event.EventID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("action", event.Action),
		)
	}
}

// recordWithRetry returns ok=false only when ctx ends before the event is
// stored. The message then stays uncommitted and is redelivered.
func recordWithRetry(
	ctx context.Context,
	recorder AttendanceAuditRecorder,
	event events.AttendanceClockedEvent,
	log *zap.Logger,
) (duplicate, ok bool) {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		err := recorder.RecordAttendanceClocked(ctx, event)
		if err == nil {
			return false, true
		}
		if errors.Is(err, auditerrors.ErrDuplicateEvent) {
			log.Warn("attendance event already audited, skipping",
				zap.String("event_id", event.EventID),
				zap.String("attendance_id", event.AttendanceID),
			)
			return true, true
		}

		log.Error("record attendance audit failed, retrying",
			zap.String("event_id", event.EventID),
			zap.String("company_id", event.CompanyID),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return false, false
		case <-time.After(delay):
		}
		delay = min(delay*2, retryMaxDelay)
	}
}
