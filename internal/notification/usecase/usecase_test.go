package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

type fakeRepoDB struct {
	createWithIdempotencyFn func(ctx context.Context, key string, keyExpiresAt time.Time, data entity.CreateNotification) (*entity.Notification, bool, error)
	getNotificationFn       func(ctx context.Context, id string) (*entity.Notification, error)
	listDetailsFn           func(ctx context.Context, limit, offset int32) ([]entity.NotificationDetail, error)
	listLogsFn              func(ctx context.Context, notificationID string) ([]entity.DeliveryLog, error)
	listFinishedFn          func(ctx context.Context, before time.Time) ([]entity.DeliveryLog, error)
	getRecipientFn          func(ctx context.Context, userID string) (*entity.Recipient, error)
	userExistsFn            func(ctx context.Context, userID string) (bool, error)
	updateStatusFn          func(ctx context.Context, id string, from, to entity.Status) (bool, error)
	deleteExpiredFn         func(ctx context.Context) (int64, error)

	savedLogs    []entity.DeliveryLog
	savedSingles []entity.DeliveryLog
}

func (f *fakeRepoDB) CreateWithIdempotency(ctx context.Context, key string, keyExpiresAt time.Time, data entity.CreateNotification) (*entity.Notification, bool, error) {
	return f.createWithIdempotencyFn(ctx, key, keyExpiresAt, data)
}

func (f *fakeRepoDB) GetNotificationByID(ctx context.Context, id string) (*entity.Notification, error) {
	return f.getNotificationFn(ctx, id)
}

func (f *fakeRepoDB) ListNotificationDetails(ctx context.Context, limit, offset int32) ([]entity.NotificationDetail, error) {
	return f.listDetailsFn(ctx, limit, offset)
}

func (f *fakeRepoDB) ListDeliveryLogs(ctx context.Context, notificationID string) ([]entity.DeliveryLog, error) {
	return f.listLogsFn(ctx, notificationID)
}

func (f *fakeRepoDB) ListFinishedDeliveryLogs(ctx context.Context, before time.Time) ([]entity.DeliveryLog, error) {
	return f.listFinishedFn(ctx, before)
}

func (f *fakeRepoDB) GetRecipient(ctx context.Context, userID string) (*entity.Recipient, error) {
	return f.getRecipientFn(ctx, userID)
}

func (f *fakeRepoDB) UserExists(ctx context.Context, userID string) (bool, error) {
	return f.userExistsFn(ctx, userID)
}

func (f *fakeRepoDB) CreateDeliveryLogs(_ context.Context, logs []entity.DeliveryLog) error {
	f.savedLogs = append(f.savedLogs, logs...)
	return nil
}

func (f *fakeRepoDB) CreateDeliveryLog(_ context.Context, l entity.DeliveryLog) error {
	f.savedSingles = append(f.savedSingles, l)
	return nil
}

func (f *fakeRepoDB) UpdateNotificationStatus(ctx context.Context, id string, from, to entity.Status) (bool, error) {
	return f.updateStatusFn(ctx, id, from, to)
}

func (f *fakeRepoDB) DeleteExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	return f.deleteExpiredFn(ctx)
}

type emittedEvent struct {
	lane    string
	pattern string
	payload any
}

type fakeMessaging struct {
	events []emittedEvent
	err    error
}

func (f *fakeMessaging) emit(lane, pattern string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, emittedEvent{lane: lane, pattern: pattern, payload: payload})
	return nil
}

func (f *fakeMessaging) EmitHigh(_ context.Context, pattern string, payload any) error {
	return f.emit("high", pattern, payload)
}

func (f *fakeMessaging) EmitMedium(_ context.Context, pattern string, payload any) error {
	return f.emit("medium", pattern, payload)
}

func (f *fakeMessaging) EmitLow(_ context.Context, pattern string, payload any) error {
	return f.emit("low", pattern, payload)
}

func (f *fakeMessaging) Emit(_ context.Context, pattern string, payload any) error {
	return f.emit("medium", pattern, payload)
}

type fakeSender struct {
	channel entity.Channel
	err     error
	sent    []string
}

func (f *fakeSender) Channel() entity.Channel { return f.channel }

func (f *fakeSender) Send(_ context.Context, _ entity.Recipient, n entity.Notification) error {
	f.sent = append(f.sent, n.ID)
	return f.err
}

type fakeArchive struct {
	written []entity.DeliveryLog
	key     string
	err     error
}

func (f *fakeArchive) WriteDeliveryLogs(_ context.Context, _ time.Time, logs []entity.DeliveryLog) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.written = append(f.written, logs...)
	return f.key, nil
}

type fakeLocker struct {
	held       bool
	acquireErr error
	acquired   []string
	released   []string
}

func (f *fakeLocker) Acquire(_ context.Context, name string, _ time.Duration) (bool, error) {
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	f.acquired = append(f.acquired, name)
	return f.held, nil
}

func (f *fakeLocker) Release(_ context.Context, name string) error {
	f.released = append(f.released, name)
	return nil
}

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

type stubConfig struct {
	durations map[string]time.Duration
}

func (stubConfig) Close() error { return nil }
func (s stubConfig) GetSecond(k string) time.Duration { return s.durations[k] }
func (s stubConfig) GetMinute(k string) time.Duration { return s.durations[k] }
func (s stubConfig) GetHour(k string) time.Duration { return s.durations[k] }
func (s stubConfig) GetDay(k string) time.Duration { return s.durations[k] }
func (stubConfig) GetInt(string) int { return 0 }
func (stubConfig) GetInt32(string) int32 { return 0 }
func (stubConfig) GetInt64(string) int64 { return 0 }
func (stubConfig) GetUint(string) uint { return 0 }
func (stubConfig) GetUint16(string) uint16 { return 0 }
func (stubConfig) GetUint32(string) uint32 { return 0 }
func (stubConfig) GetUint64(string) uint64 { return 0 }
func (stubConfig) GetFloat32(string) float32 { return 0 }
func (stubConfig) GetFloat64(string) float64 { return 0 }
func (stubConfig) GetBool(string) bool { return false }
func (stubConfig) GetString(string) string { return "" }
func (stubConfig) GetBinary(string) []byte { return nil }
func (stubConfig) GetArray(string) []string { return nil }
func (stubConfig) GetMap(string) map[string]string { return nil }

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type fixedStringID struct{ id string }

func (f fixedStringID) Generate() string { return f.id }

type testDeps struct {
	repo    *fakeRepoDB
	msg     *fakeMessaging
	archive *fakeArchive
	locker  *fakeLocker
	cfg     stubConfig
	now     time.Time
	senders []ChannelSender
}

func newTestUsecase(t *testing.T, deps testDeps) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	if deps.now.IsZero() {
		deps.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	return NewNotification(Dependency{
		RepoDB:        deps.repo,
		RepoMessaging: deps.msg,
		Senders:       deps.senders,
		Archive:       deps.archive,
		Locker:        deps.locker,
		Config:        deps.cfg,
		UID:           &seqNumberID{},
		UUID:          fixedStringID{id: "3f0a7c6e-92b4-4a38-9c41-2a1f5f8b7d90"},
		Clock:         fixedClock{t: deps.now},
		Validator:     v,
		Instrument:    instrument.NewNoop(),
	})
}
