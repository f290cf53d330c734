package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/ptr"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type fakeRepo struct {
	reservations []*domain.SlotReservation

	deleteBySessionCalls        int
	deleteBySessionAndSlotCalls int
	deleteExpiredCalls          int
}

func (f *fakeRepo) ListBySession(_ context.Context, sessionID string) ([]*domain.SlotReservation, error) {
	var out []*domain.SlotReservation
	for _, res := range f.reservations {
		if res.SessionID == sessionID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteBySession(_ context.Context, sessionID string) error {
	f.deleteBySessionCalls++
	kept := f.reservations[:0]
	for _, res := range f.reservations {
		if res.SessionID != sessionID {
			kept = append(kept, res)
		}
	}
	f.reservations = kept
	return nil
}

func (f *fakeRepo) DeleteBySessionAndSlot(_ context.Context, sessionID string, staffID int64, date time.Time, start types.TimeString) error {
	f.deleteBySessionAndSlotCalls++
	kept := f.reservations[:0]
	for _, res := range f.reservations {
		if res.SessionID == sessionID && res.StaffID == staffID && res.Date.Equal(date) && res.StartTime == start {
			continue
		}
		kept = append(kept, res)
	}
	f.reservations = kept
	return nil
}

func (f *fakeRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.deleteExpiredCalls++
	var purged int64
	kept := f.reservations[:0]
	for _, res := range f.reservations {
		if res.IsExpired(now) {
			purged++
			continue
		}
		kept = append(kept, res)
	}
	f.reservations = kept
	return purged, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newReservation(sessionID string, staffID int64, start types.TimeString, expiresAt time.Time) *domain.SlotReservation {
	return &domain.SlotReservation{
		SessionID: sessionID,
		StaffID:   staffID,
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		ExpiresAt: expiresAt,
	}
}

func TestRelease_AllSessionReservations(t *testing.T) {
	repo := &fakeRepo{reservations: []*domain.SlotReservation{
		newReservation("sess-1", 10, "10:00", testNow.Add(5*time.Minute)),
		newReservation("sess-1", 11, "11:00", testNow.Add(5*time.Minute)),
		newReservation("sess-2", 10, "12:00", testNow.Add(5*time.Minute)),
	}}
	svc := NewService(repo, &fixedTime{now: testNow}, nopLogger{})

	require.NoError(t, svc.Release(context.Background(), "sess-1", nil, nil, nil))

	assert.Equal(t, 1, repo.deleteBySessionCalls)
	require.Len(t, repo.reservations, 1)
	assert.Equal(t, "sess-2", repo.reservations[0].SessionID)
}

func TestRelease_SpecificSlot(t *testing.T) {
	repo := &fakeRepo{reservations: []*domain.SlotReservation{
		newReservation("sess-1", 10, "10:00", testNow.Add(5*time.Minute)),
		newReservation("sess-1", 11, "11:00", testNow.Add(5*time.Minute)),
	}}
	svc := NewService(repo, &fixedTime{now: testNow}, nopLogger{})

	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	err := svc.Release(context.Background(), "sess-1", ptr.Ptr(int64(10)), &date, ptr.Ptr("10:00"))
	require.NoError(t, err)

	assert.Equal(t, 1, repo.deleteBySessionAndSlotCalls)
	assert.Equal(t, 0, repo.deleteBySessionCalls)
	require.Len(t, repo.reservations, 1)
	assert.Equal(t, types.TimeString("11:00"), repo.reservations[0].StartTime)
}

func TestRelease_PartialSlotParamsFallBackToSession(t *testing.T) {
	repo := &fakeRepo{reservations: []*domain.SlotReservation{
		newReservation("sess-1", 10, "10:00", testNow.Add(5*time.Minute)),
	}}
	svc := NewService(repo, &fixedTime{now: testNow}, nopLogger{})

	// Без startTime слот не идентифицируется, снимаются все резервы сессии
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	err := svc.Release(context.Background(), "sess-1", ptr.Ptr(int64(10)), &date, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.deleteBySessionCalls)
	assert.Empty(t, repo.reservations)
}

func TestRelease_InvalidInput(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fixedTime{now: testNow}, nopLogger{})

	err := svc.Release(context.Background(), "", nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	err = svc.Release(context.Background(), "sess-1", ptr.Ptr(int64(10)), &date, ptr.Ptr("25:99"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListBySession_FiltersExpired(t *testing.T) {
	repo := &fakeRepo{reservations: []*domain.SlotReservation{
		newReservation("sess-1", 10, "10:00", testNow.Add(5*time.Minute)),
		newReservation("sess-1", 11, "11:00", testNow.Add(-time.Minute)),
	}}
	svc := NewService(repo, &fixedTime{now: testNow}, nopLogger{})

	live, err := svc.ListBySession(context.Background(), "sess-1")
	require.NoError(t, err)

	require.Len(t, live, 1)
	assert.Equal(t, types.TimeString("10:00"), live[0].StartTime)
}

func TestPurgeExpired(t *testing.T) {
	repo := &fakeRepo{reservations: []*domain.SlotReservation{
		newReservation("sess-1", 10, "10:00", testNow.Add(-time.Minute)),
		newReservation("sess-2", 11, "11:00", testNow.Add(-time.Hour)),
		newReservation("sess-3", 12, "12:00", testNow.Add(time.Hour)),
	}}
	svc := NewService(repo, &fixedTime{now: testNow}, nopLogger{})

	purged, err := svc.PurgeExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), purged)
	require.Len(t, repo.reservations, 1)
	assert.Equal(t, "sess-3", repo.reservations[0].SessionID)
}
