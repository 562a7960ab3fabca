package availability

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ClosedReason причина, по которой на дату нет ни одного слота
type ClosedReason string

const (
	ReasonNone          ClosedReason = ""
	ReasonPast          ClosedReason = "past"
	ReasonClosed        ClosedReason = "closed"
	ReasonBeyondHorizon ClosedReason = "beyond_horizon"
)

// Schedule снимок расписания на один день: рабочее окно и занятость кандидатов.
// Снимок неизменяем, поэтому последовательности слотов из него можно обходить повторно.
type Schedule struct {
	Date        time.Time // полночь даты в часовом поясе салона
	Open        time.Time
	Close       time.Time
	Granularity time.Duration
	NotBefore   time.Time // now + minBookingNotice
	Staff       []int64
	Busy        map[int64][]domain.Interval
	Reason      ClosedReason
}

// IsOpen true, если на дату в принципе можно записаться
func (s *Schedule) IsOpen() bool {
	return s.Reason == ReasonNone
}

// Slots возвращает ленивую последовательность времен начала, в которые услуга
// длительностью durationMinutes помещается в рабочее окно и хотя бы один кандидат свободен
func (s *Schedule) Slots(durationMinutes int) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if !s.IsOpen() || durationMinutes <= 0 || s.Granularity <= 0 {
			return
		}

		length := time.Duration(durationMinutes) * time.Minute
		for start := s.Open; !start.Add(length).After(s.Close); start = start.Add(s.Granularity) {
			if start.Before(s.NotBefore) {
				continue
			}
			if _, ok := s.StaffFor(start, durationMinutes); !ok {
				continue
			}
			if !yield(start) {
				return
			}
		}
	}
}

// Contains проверяет, что start входит в Slots(durationMinutes)
func (s *Schedule) Contains(start time.Time, durationMinutes int) bool {
	for slot := range s.Slots(durationMinutes) {
		if slot.Equal(start) {
			return true
		}
		if slot.After(start) {
			return false
		}
	}
	return false
}

// StaffFor выбирает свободного мастера на интервал [start, start+duration)
func (s *Schedule) StaffFor(start time.Time, durationMinutes int) (int64, bool) {
	return domain.SelectFreeStaff(s.Staff, s.Busy, domain.NewInterval(start, durationMinutes))
}
