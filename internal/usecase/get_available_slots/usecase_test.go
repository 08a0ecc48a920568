package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	"github.com/salonhub/SH-AppointmentService/internal/integrations/directory"
	"github.com/salonhub/SH-AppointmentService/pkg/ptr"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

type mockAppointmentRepo struct {
	booked []types.TimeString
}

func (m *mockAppointmentRepo) GetBookedSlots(_ context.Context, _, _ int64, _ time.Time) ([]types.TimeString, error) {
	return m.booked, nil
}

type mockScheduleRepo struct {
	schedule *domain.ShopSchedule
	catalog  []domain.TimeSlot
	timeOff  []domain.StaffTimeOff
	series   []domain.RecurringSeries
}

func (m *mockScheduleRepo) GetSchedule(_ context.Context, _ int64, _, _ time.Time) (*domain.ShopSchedule, error) {
	return m.schedule, nil
}

func (m *mockScheduleRepo) GetActiveTimeSlots(_ context.Context, _ int64) ([]domain.TimeSlot, error) {
	return m.catalog, nil
}

func (m *mockScheduleRepo) GetTimeOffForDate(_ context.Context, _ int64, _ time.Time) ([]domain.StaffTimeOff, error) {
	return m.timeOff, nil
}

func (m *mockScheduleRepo) GetActiveSeries(_ context.Context, _ int64) ([]domain.RecurringSeries, error) {
	return m.series, nil
}

type mockDirectory struct {
	shop     *directory.Shop
	staff    *directory.Staff
	shopErr  error
	staffErr error
}

func (m *mockDirectory) GetShop(_ context.Context, _ int64) (*directory.Shop, error) {
	if m.shopErr != nil {
		return nil, m.shopErr
	}
	return m.shop, nil
}

func (m *mockDirectory) GetStaff(_ context.Context, _, _ int64) (*directory.Staff, error) {
	if m.staffErr != nil {
		return nil, m.staffErr
	}
	return m.staff, nil
}

type mockHolidays struct {
	names map[string]string // ключ YYYY-MM-DD
}

func (m *mockHolidays) HolidayName(_ string, date time.Time) (string, bool) {
	name, ok := m.names[date.Format(domain.DateFormat)]
	return name, ok
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

// расписание: вт-сб 10:00-19:00, воскресенье и понедельник закрыты
func openSchedule() *domain.ShopSchedule {
	hours := make(map[time.Weekday]domain.OpeningHours)
	for wd := time.Tuesday; wd <= time.Saturday; wd++ {
		hours[wd] = domain.OpeningHours{
			Weekday:   wd,
			OpenTime:  types.TimeString("10:00"),
			CloseTime: types.TimeString("19:00"),
		}
	}
	hours[time.Sunday] = domain.OpeningHours{Weekday: time.Sunday, IsClosed: true}
	hours[time.Monday] = domain.OpeningHours{Weekday: time.Monday, IsClosed: true}

	return &domain.ShopSchedule{
		Hours:       hours,
		ClosedDates: map[string]domain.ClosedDate{},
		OpenSundays: map[string]domain.OpenSundayException{},
	}
}

func hourlyCatalog(times ...string) []domain.TimeSlot {
	catalog := make([]domain.TimeSlot, 0, len(times))
	for i, ts := range times {
		catalog = append(catalog, domain.TimeSlot{
			ID:        int64(i + 1),
			ShopID:    1,
			StartTime: types.TimeString(ts),
			SortOrder: i,
			Active:    true,
		})
	}
	return catalog
}

func newTestUseCase(appointments *mockAppointmentRepo, schedules *mockScheduleRepo, dir *mockDirectory, holidays *mockHolidays, now time.Time) *UseCase {
	uc := NewUseCase(appointments, schedules, dir, holidays, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func defaultDirectory() *mockDirectory {
	return &mockDirectory{
		shop:  &directory.Shop{ID: 1, Name: "Salon Mitte", Region: "BE", Active: true},
		staff: &directory.Staff{ID: 2, ShopID: 1, Name: "Anna", Active: true},
	}
}

func TestExecute_FreeSlotsExcludeBookedAndSeries(t *testing.T) {
	// 2025-10-14 - вторник
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	series := domain.RecurringSeries{
		ID:        1,
		ShopID:    1,
		StaffID:   2,
		Weekday:   2, // вторник
		StartTime: types.TimeString("12:00"),
		Interval:  domain.IntervalWeekly,
		StartDate: time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}

	uc := newTestUseCase(
		&mockAppointmentRepo{booked: []types.TimeString{"10:00", "14:00"}},
		&mockScheduleRepo{
			schedule: openSchedule(),
			catalog:  hourlyCatalog("10:00", "11:00", "12:00", "13:00", "14:00"),
			series:   []domain.RecurringSeries{series},
		},
		defaultDirectory(),
		&mockHolidays{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StaffID: 2, Date: date})
	require.NoError(t, err)

	assert.Nil(t, resp.Reason)
	assert.Equal(t, []types.TimeString{"11:00", "13:00"}, resp.Slots)
}

func TestExecute_StaffDayOffWinsOverShopClosed(t *testing.T) {
	// 2025-10-19 - воскресенье: и выходной мастера, и закрытый день магазина
	date := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	dir := defaultDirectory()
	dir.staff.FreeDay = ptr.Ptr(0) // воскресенье

	uc := newTestUseCase(
		&mockAppointmentRepo{},
		&mockScheduleRepo{schedule: openSchedule(), catalog: hourlyCatalog("10:00")},
		dir,
		&mockHolidays{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StaffID: 2, Date: date})
	require.NoError(t, err)

	require.NotNil(t, resp.Reason)
	assert.Equal(t, ReasonStaffDayOff, *resp.Reason)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ShopClosedOnSunday(t *testing.T) {
	date := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&mockAppointmentRepo{},
		&mockScheduleRepo{schedule: openSchedule(), catalog: hourlyCatalog("10:00")},
		defaultDirectory(),
		&mockHolidays{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StaffID: 2, Date: date})
	require.NoError(t, err)

	require.NotNil(t, resp.Reason)
	assert.Equal(t, ReasonShopClosed, *resp.Reason)
}

func TestExecute_StaffOnLeave(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&mockAppointmentRepo{},
		&mockScheduleRepo{
			schedule: openSchedule(),
			catalog:  hourlyCatalog("10:00"),
			timeOff: []domain.StaffTimeOff{{
				StaffID:   2,
				StartDate: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
			}},
		},
		defaultDirectory(),
		&mockHolidays{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StaffID: 2, Date: date})
	require.NoError(t, err)

	require.NotNil(t, resp.Reason)
	assert.Equal(t, ReasonStaffOnLeave, *resp.Reason)
}

func TestExecute_PastDateReturnsEmptyWithoutReason(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&mockAppointmentRepo{},
		&mockScheduleRepo{schedule: openSchedule(), catalog: hourlyCatalog("10:00")},
		defaultDirectory(),
		&mockHolidays{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StaffID: 2, Date: date})
	require.NoError(t, err)

	assert.Nil(t, resp.Reason)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SameDayCutoffExcludesStartedSlots(t *testing.T) {
	// Запрос на сегодня в 13:00: слот 13:00 уже начался и недоступен
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 14, 13, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&mockAppointmentRepo{},
		&mockScheduleRepo{
			schedule: openSchedule(),
			catalog:  hourlyCatalog("10:00", "12:00", "13:00", "15:00", "18:00"),
		},
		defaultDirectory(),
		&mockHolidays{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StaffID: 2, Date: date})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"15:00", "18:00"}, resp.Slots)
}

func TestExecute_HolidayIsInformationalOnly(t *testing.T) {
	// 2025-10-03 - пятница, День германского единства: магазин работает
	date := time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	schedule := openSchedule()
	schedule.Hours[time.Friday] = domain.OpeningHours{
		Weekday:   time.Friday,
		OpenTime:  types.TimeString("10:00"),
		CloseTime: types.TimeString("19:00"),
	}

	uc := newTestUseCase(
		&mockAppointmentRepo{},
		&mockScheduleRepo{schedule: schedule, catalog: hourlyCatalog("10:00", "11:00")},
		defaultDirectory(),
		&mockHolidays{names: map[string]string{"2025-10-03": "Tag der Deutschen Einheit"}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StaffID: 2, Date: date})
	require.NoError(t, err)

	require.NotNil(t, resp.Holiday)
	assert.Equal(t, "Tag der Deutschen Einheit", *resp.Holiday)
	assert.Nil(t, resp.Reason)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, resp.Slots)
}

func TestExecute_ShopNotFound(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&mockAppointmentRepo{},
		&mockScheduleRepo{schedule: openSchedule()},
		&mockDirectory{shopErr: directory.ErrShopNotFound},
		&mockHolidays{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		ShopID:  99,
		StaffID: 2,
		Date:    time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestExecute_InactiveStaffTreatedAsNotFound(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	dir := defaultDirectory()
	dir.staff.Active = false

	uc := newTestUseCase(
		&mockAppointmentRepo{},
		&mockScheduleRepo{schedule: openSchedule()},
		dir,
		&mockHolidays{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		ShopID:  1,
		StaffID: 2,
		Date:    time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&mockAppointmentRepo{},
		&mockScheduleRepo{},
		defaultDirectory(),
		&mockHolidays{},
		time.Now(),
	)

	_, err := uc.Execute(context.Background(), &Request{ShopID: 0, StaffID: 2, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ResolutionIsIdempotent(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&mockAppointmentRepo{booked: []types.TimeString{"11:00"}},
		&mockScheduleRepo{
			schedule: openSchedule(),
			catalog:  hourlyCatalog("10:00", "11:00", "12:00"),
		},
		defaultDirectory(),
		&mockHolidays{},
		now,
	)

	req := &Request{ShopID: 1, StaffID: 2, Date: date}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, []types.TimeString{"10:00", "12:00"}, first.Slots)
}
