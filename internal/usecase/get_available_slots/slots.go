package get_available_slots

import (
	"time"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// resolveFreeSlots вычисляет свободные слоты дня: каталог магазина минус
// занятые записями и вхождениями серий.
// Слоты не генерируются по шагу - каталог перечислим и задаётся магазином,
// порядок каталога сохраняется.
func resolveFreeSlots(
	catalog []domain.TimeSlot,
	booked []types.TimeString,
	series []domain.RecurringSeries,
	date time.Time,
	now time.Time,
) []types.TimeString {
	bookedSet := make(map[types.TimeString]struct{}, len(booked))
	for _, slot := range booked {
		bookedSet[slot] = struct{}{}
	}

	sameDay := domain.IsSameDay(date, now)
	currentTime := types.NewTimeString(now)

	free := make([]types.TimeString, 0, len(catalog))
	for _, entry := range catalog {
		if _, taken := bookedSet[entry.StartTime]; taken {
			continue
		}
		if occupiedBySeries(series, date, entry.StartTime) {
			continue
		}
		// Для сегодняшней даты слоты, начинающиеся сейчас или раньше,
		// уже недоступны
		if sameDay && !entry.StartTime.IsAfter(currentTime) {
			continue
		}
		free = append(free, entry.StartTime)
	}

	return free
}

// occupiedBySeries возвращает true, если слот занят вхождением
// хотя бы одной серии на дату
func occupiedBySeries(series []domain.RecurringSeries, date time.Time, slot types.TimeString) bool {
	for i := range series {
		if series[i].OccupiesSlot(date, slot) {
			return true
		}
	}
	return false
}
