package get_bulk_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

var (
	testNow  = time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type fakeAvailability struct {
	days  map[int64]*domain.DayAvailability
	calls int
}

func (f *fakeAvailability) ResolveForStaffIDs(_ context.Context, _ int64, staffIDs []int64, _ time.Time) (map[int64]*domain.DayAvailability, error) {
	f.calls++
	result := make(map[int64]*domain.DayAvailability, len(staffIDs))
	for _, id := range staffIDs {
		if day, ok := f.days[id]; ok {
			result[id] = day
		}
	}
	return result, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	calls        int
}

func (f *fakeAppointmentRepo) ListByStaffIDs(_ context.Context, staffIDs []int64, _ time.Time) ([]*domain.Appointment, error) {
	f.calls++
	idSet := make(map[int64]bool, len(staffIDs))
	for _, id := range staffIDs {
		idSet[id] = true
	}
	var result []*domain.Appointment
	for _, a := range f.appointments {
		if idSet[a.StaffID] && a.IsActive() {
			result = append(result, a)
		}
	}
	return result, nil
}

type fakeReservationRepo struct {
	reservations []*domain.SlotReservation
	calls        int
}

func (f *fakeReservationRepo) ListLiveByStaffIDs(_ context.Context, staffIDs []int64, _ time.Time, excludeSessionID string, now time.Time) ([]*domain.SlotReservation, error) {
	f.calls++
	idSet := make(map[int64]bool, len(staffIDs))
	for _, id := range staffIDs {
		idSet[id] = true
	}
	var result []*domain.SlotReservation
	for _, r := range f.reservations {
		if idSet[r.StaffID] && r.SessionID != excludeSessionID && !r.IsExpired(now) {
			result = append(result, r)
		}
	}
	return result, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func openDay(from, to string) *domain.DayAvailability {
	return &domain.DayAvailability{
		Available: true,
		StartTime: types.TimeString(from),
		EndTime:   types.TimeString(to),
	}
}

func newTestUseCase(av *fakeAvailability, apptRepo *fakeAppointmentRepo, resRepo *fakeReservationRepo) *UseCase {
	uc := NewUseCase(av, apptRepo, resRepo, noopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func TestExecute_OneQueryPerEntityType(t *testing.T) {
	av := &fakeAvailability{days: map[int64]*domain.DayAvailability{
		10: openDay("09:00", "18:00"),
		11: openDay("09:00", "18:00"),
		12: openDay("09:00", "18:00"),
	}}
	apptRepo := &fakeAppointmentRepo{}
	resRepo := &fakeReservationRepo{}
	uc := newTestUseCase(av, apptRepo, resRepo)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID:  1,
		StaffIDs: []int64{10, 11, 12},
		Date:     testDate,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, av.calls)
	assert.Equal(t, 1, apptRepo.calls)
	assert.Equal(t, 1, resRepo.calls)
}

func TestExecute_GroupsIntervalsByStaff(t *testing.T) {
	av := &fakeAvailability{days: map[int64]*domain.DayAvailability{
		10: openDay("09:00", "12:00"),
		11: openDay("09:00", "12:00"),
	}}
	apptRepo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{ID: 1, StaffID: 10, Date: testDate, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		},
	}
	resRepo := &fakeReservationRepo{
		reservations: []*domain.SlotReservation{
			{ID: 1, StaffID: 11, Date: testDate, StartTime: "10:00", DurationMinutes: 60, SessionID: "session-x", ExpiresAt: testNow.Add(5 * time.Minute)},
		},
	}
	uc := newTestUseCase(av, apptRepo, resRepo)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:         1,
		StaffIDs:        []int64{10, 11},
		Date:            testDate,
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 2)

	first := resp.Staff[0]
	assert.Equal(t, int64(10), first.StaffID)
	require.Len(t, first.Booked, 1)
	assert.Empty(t, first.Held)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, first.FreeSlots)

	second := resp.Staff[1]
	assert.Equal(t, int64(11), second.StaffID)
	assert.Empty(t, second.Booked)
	require.Len(t, second.Held, 1)
	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, second.FreeSlots)
}

func TestExecute_OwnSessionHoldNotShownAsHeld(t *testing.T) {
	av := &fakeAvailability{days: map[int64]*domain.DayAvailability{
		10: openDay("09:00", "12:00"),
	}}
	resRepo := &fakeReservationRepo{
		reservations: []*domain.SlotReservation{
			{ID: 1, StaffID: 10, Date: testDate, StartTime: "10:00", DurationMinutes: 60, SessionID: "session-mine", ExpiresAt: testNow.Add(5 * time.Minute)},
		},
	}
	uc := newTestUseCase(av, &fakeAppointmentRepo{}, resRepo)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:       "session-mine",
		SalonID:         1,
		StaffIDs:        []int64{10},
		Date:            testDate,
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Staff[0].Held)
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, resp.Staff[0].FreeSlots)
}

func TestExecute_MissingScheduleMeansNotConfigured(t *testing.T) {
	av := &fakeAvailability{days: map[int64]*domain.DayAvailability{}}
	uc := newTestUseCase(av, &fakeAppointmentRepo{}, &fakeReservationRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:  1,
		StaffIDs: []int64{10},
		Date:     testDate,
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.False(t, resp.Staff[0].Available)
	assert.Equal(t, domain.ReasonNotConfigured, resp.Staff[0].Reason)
	assert.Empty(t, resp.Staff[0].FreeSlots)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeAvailability{}, &fakeAppointmentRepo{}, &fakeReservationRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "no staff", req: &Request{SalonID: 1, Date: testDate}},
		{name: "zero salon", req: &Request{StaffIDs: []int64{10}, Date: testDate}},
		{name: "zero date", req: &Request{SalonID: 1, StaffIDs: []int64{10}}},
		{name: "negative staff id", req: &Request{SalonID: 1, StaffIDs: []int64{-1}, Date: testDate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_TooManyStaff(t *testing.T) {
	uc := newTestUseCase(&fakeAvailability{}, &fakeAppointmentRepo{}, &fakeReservationRepo{})

	ids := make([]int64, MaxStaffPerRequest+1)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	_, err := uc.Execute(context.Background(), &Request{SalonID: 1, StaffIDs: ids, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
