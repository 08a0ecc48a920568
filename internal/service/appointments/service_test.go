package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	appointmentRepo "github.com/salonhub/SH-AppointmentService/internal/infra/storage/appointment"
	"github.com/salonhub/SH-AppointmentService/internal/service/appointments/models"
	"github.com/salonhub/SH-AppointmentService/pkg/ptr"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

type mockAppointmentRepo struct {
	appointments map[int64]*domain.Appointment

	lastCustomerStatus *domain.AppointmentStatus
	lastShopFilter     domain.ShopAppointmentsFilter
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appointment, ok := m.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appointment, nil
}

func (m *mockAppointmentRepo) GetByCustomer(_ context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	m.lastCustomerStatus = status

	result := make([]*domain.Appointment, 0)
	for _, a := range m.appointments {
		if a.CustomerID == nil || *a.CustomerID != customerID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockAppointmentRepo) GetByShopWithFilter(_ context.Context, filter domain.ShopAppointmentsFilter) ([]*domain.Appointment, error) {
	m.lastShopFilter = filter

	result := make([]*domain.Appointment, 0)
	for _, a := range m.appointments {
		if a.ShopID != filter.ShopID {
			continue
		}
		if !filter.IncludeCancelled && a.IsCancelled() {
			continue
		}
		if filter.StaffID != nil && a.StaffID != *filter.StaffID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment(id, shopID, staffID int64, customerID *int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:                id,
		ShopID:            shopID,
		StaffID:           staffID,
		ServiceID:         7,
		CustomerID:        customerID,
		Date:              time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:         types.TimeString("10:00"),
		Status:            status,
		Source:            domain.SourceOnline,
		CustomerName:      "Petra Müller",
		ServiceName:       "Haarschnitt",
		ServicePriceCents: 3500,
		DurationMinutes:   45,
		StaffName:         "Anna",
	}
}

func TestGetByID(t *testing.T) {
	repo := &mockAppointmentRepo{appointments: map[int64]*domain.Appointment{
		42: testAppointment(42, 1, 2, ptr.Ptr(int64(100)), domain.StatusConfirmed),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "Haarschnitt", resp.ServiceName)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockAppointmentRepo{appointments: map[int64]*domain.Appointment{}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_InvalidID(t *testing.T) {
	svc := NewService(&mockAppointmentRepo{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCustomerAppointments(t *testing.T) {
	repo := &mockAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: testAppointment(1, 1, 2, ptr.Ptr(int64(100)), domain.StatusConfirmed),
		2: testAppointment(2, 1, 2, ptr.Ptr(int64(100)), domain.StatusCancelled),
		3: testAppointment(3, 1, 2, ptr.Ptr(int64(200)), domain.StatusConfirmed),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: 100,
	})
	require.NoError(t, err)

	// История клиента включает и отменённые записи
	assert.Len(t, resp.Appointments, 2)
	assert.Nil(t, repo.lastCustomerStatus)
}

func TestGetCustomerAppointments_StatusFilter(t *testing.T) {
	repo := &mockAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: testAppointment(1, 1, 2, ptr.Ptr(int64(100)), domain.StatusConfirmed),
		2: testAppointment(2, 1, 2, ptr.Ptr(int64(100)), domain.StatusCancelled),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: 100,
		Status:     ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "cancelled", resp.Appointments[0].Status)
	require.NotNil(t, repo.lastCustomerStatus)
	assert.Equal(t, domain.StatusCancelled, *repo.lastCustomerStatus)
}

func TestGetCustomerAppointments_InvalidStatus(t *testing.T) {
	svc := NewService(&mockAppointmentRepo{}, nopLogger{})

	_, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: 100,
		Status:     ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetShopAppointments_ExcludesCancelledByDefault(t *testing.T) {
	repo := &mockAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: testAppointment(1, 1, 2, ptr.Ptr(int64(100)), domain.StatusConfirmed),
		2: testAppointment(2, 1, 2, ptr.Ptr(int64(100)), domain.StatusCancelled),
		3: testAppointment(3, 9, 2, ptr.Ptr(int64(100)), domain.StatusConfirmed),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetShopAppointments(context.Background(), &models.GetShopAppointmentsRequest{
		ShopID: 1,
	})
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)
	assert.False(t, repo.lastShopFilter.IncludeCancelled)
}

func TestGetShopAppointments_StaffFilter(t *testing.T) {
	repo := &mockAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: testAppointment(1, 1, 2, ptr.Ptr(int64(100)), domain.StatusConfirmed),
		2: testAppointment(2, 1, 5, ptr.Ptr(int64(100)), domain.StatusConfirmed),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetShopAppointments(context.Background(), &models.GetShopAppointmentsRequest{
		ShopID:  1,
		StaffID: ptr.Ptr(int64(5)),
	})
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(2), resp.Appointments[0].ID)
}

func TestGetShopAppointments_InvalidShopID(t *testing.T) {
	svc := NewService(&mockAppointmentRepo{}, nopLogger{})

	_, err := svc.GetShopAppointments(context.Background(), &models.GetShopAppointmentsRequest{ShopID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
