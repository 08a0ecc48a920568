package cancel_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	appointmentRepo "github.com/salonhub/SH-AppointmentService/internal/infra/storage/appointment"
	"github.com/salonhub/SH-AppointmentService/internal/integrations/notifier"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

type mockAppointmentRepo struct {
	appointment *domain.Appointment
	getErr      error
	cancelErr   error

	cancelledID     int64
	cancelledActor  domain.CancelActor
	cancelledReason *string
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.appointment, nil
}

func (m *mockAppointmentRepo) Cancel(_ context.Context, id int64, actor domain.CancelActor, reason *string) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	m.cancelledID = id
	m.cancelledActor = actor
	m.cancelledReason = reason
	return nil
}

type mockNotifier struct {
	events []*notifier.Event
}

func (m *mockNotifier) DispatchAsync(event *notifier.Event) {
	m.events = append(m.events, event)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeAppointment(date time.Time, start types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		ID:           10,
		ShopID:       1,
		StaffID:      2,
		ServiceID:    3,
		Date:         date,
		StartTime:    start,
		Status:       domain.StatusConfirmed,
		CustomerName: "Max Mustermann",
		ServiceName:  "Haarschnitt",
		StaffName:    "Anna",
	}
}

func newTestUseCase(repo *mockAppointmentRepo, n *mockNotifier, now time.Time) *UseCase {
	uc := NewUseCase(repo, n, 5, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecute_CustomerCancelsWithinWindow(t *testing.T) {
	// Запись 14:00, сейчас 08:00 - до начала шесть часов
	now := time.Date(2025, 10, 14, 8, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{
		appointment: activeAppointment(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), "14:00"),
	}
	notifierMock := &mockNotifier{}

	uc := newTestUseCase(repo, notifierMock, now)

	reason := "personal"
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         domain.CancelledByCustomer,
		Reason:        &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, "customer", resp.CancelledBy)
	assert.Equal(t, int64(10), repo.cancelledID)
	assert.Equal(t, domain.CancelledByCustomer, repo.cancelledActor)
	require.NotNil(t, repo.cancelledReason)
	assert.Equal(t, "personal", *repo.cancelledReason)

	require.Len(t, notifierMock.events, 1)
	assert.Equal(t, notifier.EventAppointmentCancelled, notifierMock.events[0].Type)
}

func TestExecute_CustomerCancelExactlyAtBoundary(t *testing.T) {
	// Запись 14:00, сейчас 09:00 - ровно пять часов, отмена ещё допустима
	now := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{
		appointment: activeAppointment(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), "14:00"),
	}

	uc := newTestUseCase(repo, &mockNotifier{}, now)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Actor: domain.CancelledByCustomer})
	assert.NoError(t, err)
}

func TestExecute_CustomerCancelWindowClosed(t *testing.T) {
	// Запись 14:00, сейчас 09:01 - меньше пяти часов
	now := time.Date(2025, 10, 14, 9, 1, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{
		appointment: activeAppointment(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), "14:00"),
	}

	uc := newTestUseCase(repo, &mockNotifier{}, now)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Actor: domain.CancelledByCustomer})
	assert.ErrorIs(t, err, ErrCancellationWindowClosed)
}

func TestExecute_StaffBypassesWindow(t *testing.T) {
	// Меньше часа до начала: персонал всё равно может отменить
	now := time.Date(2025, 10, 14, 13, 30, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{
		appointment: activeAppointment(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), "14:00"),
	}

	uc := newTestUseCase(repo, &mockNotifier{}, now)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Actor: domain.CancelledByStaff})
	assert.NoError(t, err)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	now := time.Date(2025, 10, 14, 8, 0, 0, 0, time.UTC)
	cancelled := activeAppointment(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), "14:00")
	cancelled.Status = domain.StatusCancelled

	uc := newTestUseCase(&mockAppointmentRepo{appointment: cancelled}, &mockNotifier{}, now)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Actor: domain.CancelledByStaff})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_ConcurrentCancelLosesAsAlreadyCancelled(t *testing.T) {
	now := time.Date(2025, 10, 14, 8, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{
		appointment: activeAppointment(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), "14:00"),
		cancelErr:   appointmentRepo.ErrAlreadyCancelled,
	}

	uc := newTestUseCase(repo, &mockNotifier{}, now)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Actor: domain.CancelledByStaff})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	uc := newTestUseCase(
		&mockAppointmentRepo{getErr: appointmentRepo.ErrAppointmentNotFound},
		&mockNotifier{},
		time.Now(),
	)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 99, Actor: domain.CancelledByCustomer})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_InvalidActor(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockNotifier{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Actor: domain.CancelActor("robot")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
