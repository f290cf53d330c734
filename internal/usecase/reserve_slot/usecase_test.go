package reserve_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	reservationRepo "github.com/kmlvnk/SLN-BookingService/internal/infra/storage/reservation"
	"github.com/kmlvnk/SLN-BookingService/pkg/timerange"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

var (
	testNow  = time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
)

// ==========================================================
// Фейки
// ==========================================================

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAvailability struct {
	day *domain.DayAvailability
}

func (f *fakeAvailability) ResolveForDate(_ context.Context, _, _ int64, _ time.Time) (*domain.DayAvailability, error) {
	return f.day, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) ListOverlapping(_ context.Context, staffID int64, date time.Time, start, end types.TimeString) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appointments {
		if a.StaffID != staffID || !sameDay(a.Date, date) || !a.IsActive() {
			continue
		}
		aEnd, err := a.EndTime()
		if err != nil {
			return nil, err
		}
		if timerange.Overlaps(a.StartTime, aEnd, start, end) {
			result = append(result, a)
		}
	}
	return result, nil
}

type fakeReservationRepo struct {
	reservations []*domain.SlotReservation
	nextID       int64
	failCreate   error
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.SlotReservation) (*domain.SlotReservation, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	for _, existing := range f.reservations {
		if existing.StaffID == res.StaffID && sameDay(existing.Date, res.Date) && existing.StartTime == res.StartTime {
			return nil, reservationRepo.ErrDuplicateSlot
		}
	}
	f.nextID++
	res.ID = f.nextID
	f.reservations = append(f.reservations, res)
	return res, nil
}

func (f *fakeReservationRepo) ListOverlapping(_ context.Context, staffID int64, date time.Time, start, end types.TimeString, excludeSessionID string, now time.Time) ([]*domain.SlotReservation, error) {
	var result []*domain.SlotReservation
	for _, r := range f.reservations {
		if r.StaffID != staffID || !sameDay(r.Date, date) || r.SessionID == excludeSessionID || r.IsExpired(now) {
			continue
		}
		rEnd, err := r.EndTime()
		if err != nil {
			return nil, err
		}
		if timerange.Overlaps(r.StartTime, rEnd, start, end) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) DeleteBySession(_ context.Context, sessionID string) error {
	kept := f.reservations[:0]
	for _, r := range f.reservations {
		if r.SessionID != sessionID {
			kept = append(kept, r)
		}
	}
	f.reservations = kept
	return nil
}

func (f *fakeReservationRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var purged int64
	kept := f.reservations[:0]
	for _, r := range f.reservations {
		if r.IsExpired(now) {
			purged++
			continue
		}
		kept = append(kept, r)
	}
	f.reservations = kept
	return purged, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// ==========================================================
// Хелперы
// ==========================================================

func openDay() *domain.DayAvailability {
	return &domain.DayAvailability{
		Available: true,
		StartTime: "09:00",
		EndTime:   "18:00",
	}
}

func newTestUseCase(resRepo *fakeReservationRepo, apptRepo *fakeAppointmentRepo, day *domain.DayAvailability) *UseCase {
	uc := NewUseCase(
		resRepo,
		apptRepo,
		&fakeAvailability{day: day},
		&fakeTxManager{},
		10*time.Minute,
		noopLogger{},
	)
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func validRequest(sessionID string) *Request {
	return &Request{
		SessionID:       sessionID,
		SalonID:         1,
		StaffID:         10,
		Date:            testDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
	}
}

// ==========================================================
// Тесты
// ==========================================================

func TestExecute_ReservesSlot(t *testing.T) {
	resRepo := &fakeReservationRepo{}
	uc := newTestUseCase(resRepo, &fakeAppointmentRepo{}, openDay())

	resp, err := uc.Execute(context.Background(), validRequest("session-a"))

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.StaffID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, testNow.Add(10*time.Minute), resp.ExpiresAt)
	require.Len(t, resRepo.reservations, 1)
}

func TestExecute_DefaultDuration(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeAppointmentRepo{}, openDay())

	req := validRequest("session-a")
	req.DurationMinutes = 0

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, resp.DurationMinutes)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "empty session", mutate: func(r *Request) { r.SessionID = "" }},
		{name: "zero salon", mutate: func(r *Request) { r.SalonID = 0 }},
		{name: "zero staff", mutate: func(r *Request) { r.StaffID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "25:99" }},
		{name: "negative duration", mutate: func(r *Request) { r.DurationMinutes = -30 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeReservationRepo{}, &fakeAppointmentRepo{}, openDay())

			req := validRequest("session-a")
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeAppointmentRepo{}, openDay())

	req := validRequest("session-a")
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SlotEndBeyondMidnight(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeAppointmentRepo{}, openDay())

	req := validRequest("session-a")
	req.StartTime = "23:30"
	req.DurationMinutes = 60

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StaffUnavailable(t *testing.T) {
	day := &domain.DayAvailability{Available: false, Reason: domain.ReasonDayOff}
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeAppointmentRepo{}, day)

	_, err := uc.Execute(context.Background(), validRequest("session-a"))
	assert.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	tests := []struct {
		name      string
		startTime types.TimeString
		duration  int
	}{
		{name: "before opening", startTime: "08:00", duration: 60},
		{name: "crosses closing", startTime: "17:30", duration: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeReservationRepo{}, &fakeAppointmentRepo{}, openDay())

			req := validRequest("session-a")
			req.StartTime = tt.startTime
			req.DurationMinutes = tt.duration

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrOutsideWorkingHours)
		})
	}
}

func TestExecute_SlotTouchingWindowEdgesAllowed(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeAppointmentRepo{}, openDay())

	req := validRequest("session-a")
	req.StartTime = "17:00"
	req.DurationMinutes = 60

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_SlotHitsExcludeRange(t *testing.T) {
	day := openDay()
	day.ExcludeRanges = []domain.TimeRange{{StartTime: "12:00", EndTime: "14:00"}}
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeAppointmentRepo{}, day)

	req := validRequest("session-a")
	req.StartTime = "13:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_SlotAlreadyBooked(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				StaffID:         10,
				Date:            testDate,
				StartTime:       "10:30",
				DurationMinutes: 30,
				Status:          domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(&fakeReservationRepo{}, apptRepo, openDay())

	_, err := uc.Execute(context.Background(), validRequest("session-a"))
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				StaffID:         10,
				Date:            testDate,
				StartTime:       "10:30",
				DurationMinutes: 30,
				Status:          domain.StatusCancelled,
			},
		},
	}
	uc := newTestUseCase(&fakeReservationRepo{}, apptRepo, openDay())

	_, err := uc.Execute(context.Background(), validRequest("session-a"))
	assert.NoError(t, err)
}

func TestExecute_BackToBackSlotsDoNotConflict(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				StaffID:         10,
				Date:            testDate,
				StartTime:       "11:00",
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(&fakeReservationRepo{}, apptRepo, openDay())

	// Слот 10:00-11:00 заканчивается ровно там, где начинается запись
	_, err := uc.Execute(context.Background(), validRequest("session-a"))
	assert.NoError(t, err)
}

func TestExecute_SlotHeldByAnotherSession(t *testing.T) {
	resRepo := &fakeReservationRepo{}
	uc := newTestUseCase(resRepo, &fakeAppointmentRepo{}, openDay())

	_, err := uc.Execute(context.Background(), validRequest("session-a"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest("session-b"))
	assert.ErrorIs(t, err, ErrSlotHeld)
}

func TestExecute_ExpiredHoldDoesNotBlock(t *testing.T) {
	resRepo := &fakeReservationRepo{
		reservations: []*domain.SlotReservation{
			{
				ID:              1,
				StaffID:         10,
				Date:            testDate,
				StartTime:       "10:00",
				DurationMinutes: 60,
				SessionID:       "session-old",
				ExpiresAt:       testNow.Add(-time.Minute),
			},
		},
	}
	uc := newTestUseCase(resRepo, &fakeAppointmentRepo{}, openDay())

	_, err := uc.Execute(context.Background(), validRequest("session-b"))

	require.NoError(t, err)
	// Истекший резерв вычищен, остался только новый
	require.Len(t, resRepo.reservations, 1)
	assert.Equal(t, "session-b", resRepo.reservations[0].SessionID)
}

func TestExecute_NewReservationReleasesPrevious(t *testing.T) {
	resRepo := &fakeReservationRepo{}
	uc := newTestUseCase(resRepo, &fakeAppointmentRepo{}, openDay())

	_, err := uc.Execute(context.Background(), validRequest("session-a"))
	require.NoError(t, err)

	req := validRequest("session-a")
	req.StartTime = "14:00"

	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resRepo.reservations, 1)
	assert.Equal(t, types.TimeString("14:00"), resRepo.reservations[0].StartTime)
}

func TestExecute_UniqueIndexRaceLoserGetsSlotHeld(t *testing.T) {
	// Проверки не увидели чужой резерв, но вставка уперлась в уникальный индекс
	resRepo := &fakeReservationRepo{failCreate: reservationRepo.ErrDuplicateSlot}
	uc := newTestUseCase(resRepo, &fakeAppointmentRepo{}, openDay())

	_, err := uc.Execute(context.Background(), validRequest("session-b"))
	assert.ErrorIs(t, err, ErrSlotHeld)
}
