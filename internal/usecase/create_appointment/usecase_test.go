package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/internal/integrations/catalogservice"
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

type fakeCatalog struct {
	service *catalogservice.Service
	staff   *catalogservice.Staff
}

func (f *fakeCatalog) GetService(_ context.Context, _, serviceID int64) (*catalogservice.Service, error) {
	if f.service == nil || f.service.ID != serviceID {
		return nil, catalogservice.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeCatalog) GetStaff(_ context.Context, _, staffID int64) (*catalogservice.Staff, error) {
	if f.staff == nil || f.staff.ID != staffID {
		return nil, catalogservice.ErrStaffNotFound
	}
	return f.staff, nil
}

type fakeDiscountRepo struct {
	discounts []*domain.Discount
}

func (f *fakeDiscountRepo) ListBySalon(_ context.Context, _ int64, _ bool) ([]*domain.Discount, error) {
	return f.discounts, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	appt.ID = f.nextID
	appt.CreatedAt = testNow
	f.appointments = append(f.appointments, appt)
	return appt, nil
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

type fixture struct {
	uc       *UseCase
	apptRepo *fakeAppointmentRepo
	resRepo  *fakeReservationRepo
	discRepo *fakeDiscountRepo
}

func newFixture() *fixture {
	apptRepo := &fakeAppointmentRepo{}
	resRepo := &fakeReservationRepo{}
	discRepo := &fakeDiscountRepo{}
	catalog := &fakeCatalog{
		service: &catalogservice.Service{
			ID:              100,
			SalonID:         1,
			Name:            "Haircut",
			Price:           1000,
			DurationMinutes: 60,
			IsActive:        true,
		},
		staff: &catalogservice.Staff{ID: 10, SalonID: 1, Name: "Anna", IsActive: true},
	}
	day := &domain.DayAvailability{Available: true, StartTime: "09:00", EndTime: "18:00"}

	uc := NewUseCase(
		apptRepo,
		resRepo,
		discRepo,
		catalog,
		&fakeAvailability{day: day},
		&fakeTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fixedTime{now: testNow}

	return &fixture{uc: uc, apptRepo: apptRepo, resRepo: resRepo, discRepo: discRepo}
}

func validRequest(sessionID string) *Request {
	return &Request{
		SessionID:     sessionID,
		SalonID:       1,
		StaffID:       10,
		ServiceID:     100,
		Date:          testDate,
		StartTime:     "10:00",
		CustomerName:  "Мария",
		CustomerPhone: "+79990001122",
	}
}

// ==========================================================
// Тесты
// ==========================================================

func TestExecute_CreatesAppointment(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest("session-a"))

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, float64(1000), resp.ListPrice)
	assert.Equal(t, float64(1000), resp.FinalPrice)
	assert.Nil(t, resp.DiscountPercent)
	require.Len(t, f.apptRepo.appointments, 1)
}

func TestExecute_AppliesDiscountServerSide(t *testing.T) {
	f := newFixture()
	f.discRepo.discounts = []*domain.Discount{
		{
			ID:              1,
			SalonID:         1,
			Title:           "Morning discount",
			DiscountPercent: 20,
			StartTime:       "09:00",
			EndTime:         "12:00",
			DaysOfWeek:      []int{int(testDate.Weekday())},
			ServiceIDs:      []int64{100},
			IsActive:        true,
		},
	}

	resp, err := f.uc.Execute(context.Background(), validRequest("session-a"))

	require.NoError(t, err)
	assert.Equal(t, float64(1000), resp.ListPrice)
	assert.Equal(t, float64(800), resp.FinalPrice)
	require.NotNil(t, resp.DiscountPercent)
	assert.Equal(t, float64(20), *resp.DiscountPercent)
}

func TestExecute_DiscountForOtherStaffNotApplied(t *testing.T) {
	f := newFixture()
	f.discRepo.discounts = []*domain.Discount{
		{
			ID:              1,
			SalonID:         1,
			DiscountPercent: 20,
			StartTime:       "09:00",
			EndTime:         "12:00",
			DaysOfWeek:      []int{int(testDate.Weekday())},
			ServiceIDs:      []int64{100},
			StaffIDs:        []int64{99},
			IsActive:        true,
		},
	}

	resp, err := f.uc.Execute(context.Background(), validRequest("session-a"))

	require.NoError(t, err)
	assert.Equal(t, float64(1000), resp.FinalPrice)
	assert.Nil(t, resp.DiscountPercent)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest("session-a")
	req.ServiceID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveStaff(t *testing.T) {
	f := newFixture()
	f.uc.catalog.(*fakeCatalog).staff.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest("session-a"))
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_SlotAlreadyBooked(t *testing.T) {
	f := newFixture()
	f.apptRepo.appointments = []*domain.Appointment{
		{
			StaffID:         10,
			Date:            testDate,
			StartTime:       "10:30",
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest("session-a"))
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestExecute_SlotHeldByAnotherSession(t *testing.T) {
	f := newFixture()
	f.resRepo.reservations = []*domain.SlotReservation{
		{
			StaffID:         10,
			Date:            testDate,
			StartTime:       "10:00",
			DurationMinutes: 60,
			SessionID:       "session-b",
			ExpiresAt:       testNow.Add(5 * time.Minute),
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest("session-a"))
	assert.ErrorIs(t, err, ErrSlotHeld)
}

func TestExecute_OwnHoldDoesNotBlockAndIsReleased(t *testing.T) {
	f := newFixture()
	f.resRepo.reservations = []*domain.SlotReservation{
		{
			StaffID:         10,
			Date:            testDate,
			StartTime:       "10:00",
			DurationMinutes: 60,
			SessionID:       "session-a",
			ExpiresAt:       testNow.Add(5 * time.Minute),
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest("session-a"))

	require.NoError(t, err)
	assert.Empty(t, f.resRepo.reservations)
}

func TestExecute_ExpiredForeignHoldDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.resRepo.reservations = []*domain.SlotReservation{
		{
			StaffID:         10,
			Date:            testDate,
			StartTime:       "10:00",
			DurationMinutes: 60,
			SessionID:       "session-b",
			ExpiresAt:       testNow.Add(-time.Minute),
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest("session-a"))
	assert.NoError(t, err)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture()

	req := validRequest("session-a")
	req.StartTime = "17:30"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture()

	req := validRequest("session-a")
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "empty session", mutate: func(r *Request) { r.SessionID = "" }},
		{name: "empty customer name", mutate: func(r *Request) { r.CustomerName = "" }},
		{name: "empty customer phone", mutate: func(r *Request) { r.CustomerPhone = "" }},
		{name: "zero service", mutate: func(r *Request) { r.ServiceID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			req := validRequest("session-a")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
