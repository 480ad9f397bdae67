package availability

import (
	"context"
	"errors"
	"time"
)

// DefaultSlotInterval is the step between candidate booking slots. The grid
// always uses this interval; service duration is not consulted (start-time
// collision only, matching the booking write path).
const DefaultSlotInterval = 30 * time.Minute

var (
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrDateInPast      = errors.New("cannot book in the past")
	ErrServiceNotFound = errors.New("service not found")
)

// TimeSlot is a candidate appointment start time within a day.
type TimeSlot struct {
	Time      string `json:"time" example:"09:30"`
	Available bool   `json:"available"`
}

// BusinessHours summarizes the day's operating window in the response.
type BusinessHours struct {
	OpenTime  *string `json:"open_time"`
	CloseTime *string `json:"close_time"`
	IsClosed  bool    `json:"is_closed"`
}

type DaySchedule struct {
	Date          string        `json:"date"`
	Slots         []TimeSlot    `json:"slots"`
	BusinessHours BusinessHours `json:"business_hours"`
}

// DayHours is one stored operating-hours row. Open and Close carry only the
// time-of-day component; both may be nil when the day is closed.
type DayHours struct {
	Open     *time.Time
	Close    *time.Time
	IsClosed bool
}

type ServiceFinder interface {
	ServiceExists(ctx context.Context, businessID, serviceID int) (bool, error)
}

// HoursFinder returns the hours row for a Monday-indexed weekday, or nil when
// no row exists for that day.
type HoursFinder interface {
	FindDayHours(ctx context.Context, businessID, weekday int) (*DayHours, error)
}

// BookingFinder returns "HH:MM" start times of bookings in pending or
// confirmed status for the given date.
type BookingFinder interface {
	FindActiveBookingTimes(ctx context.Context, businessID int, date time.Time) ([]string, error)
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// GenerateSlots produces the ordered "HH:MM" grid between open and close,
// stepping by interval. The close bound is exclusive: a slot starting at or
// after close is never produced. open >= close yields an empty grid rather
// than an error.
func GenerateSlots(open, close time.Time, interval time.Duration) []string {
	if interval <= 0 {
		return nil
	}

	cur := time.Date(2000, 1, 1, open.Hour(), open.Minute(), 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, close.Hour(), close.Minute(), 0, 0, time.UTC)

	var slots []string
	for ; cur.Before(end); cur = cur.Add(interval) {
		slots = append(slots, cur.Format("15:04"))
	}
	return slots
}

// Resolver computes the annotated slot list for a (business, service, date)
// triple. It only reads; bookings and hours are never mutated here.
type Resolver struct {
	services ServiceFinder
	hours    HoursFinder
	bookings BookingFinder
	clock    Clock
}

func NewResolver(services ServiceFinder, hours HoursFinder, bookings BookingFinder, clock Clock) *Resolver {
	return &Resolver{
		services: services,
		hours:    hours,
		bookings: bookings,
		clock:    clock,
	}
}

// mondayWeekday maps time.Weekday (Sunday=0) to the stored Monday=0 index.
func mondayWeekday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func (r *Resolver) Resolve(ctx context.Context, businessID, serviceID int, dateStr string) (*DaySchedule, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := r.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return nil, ErrDateInPast
	}

	exists, err := r.services.ServiceExists(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrServiceNotFound
	}

	hours, err := r.hours.FindDayHours(ctx, businessID, mondayWeekday(date))
	if err != nil {
		return nil, err
	}

	// No row, closed flag, or missing bounds: a valid closed-day result.
	if hours == nil || hours.IsClosed || hours.Open == nil || hours.Close == nil {
		return &DaySchedule{
			Date:          dateStr,
			Slots:         []TimeSlot{},
			BusinessHours: BusinessHours{IsClosed: true},
		}, nil
	}

	grid := GenerateSlots(*hours.Open, *hours.Close, DefaultSlotInterval)

	bookedTimes, err := r.bookings.FindActiveBookingTimes(ctx, businessID, date)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	// Same-day requests drop every slot at or before the current minute.
	var cutoff string
	if date.Equal(today) {
		cutoff = now.Format("15:04")
	}

	slots := make([]TimeSlot, 0, len(grid))
	for _, t := range grid {
		if cutoff != "" && t <= cutoff {
			continue
		}
		_, taken := booked[t]
		slots = append(slots, TimeSlot{Time: t, Available: !taken})
	}

	openStr := hours.Open.Format("15:04")
	closeStr := hours.Close.Format("15:04")

	return &DaySchedule{
		Date:  dateStr,
		Slots: slots,
		BusinessHours: BusinessHours{
			OpenTime:  &openStr,
			CloseTime: &closeStr,
			IsClosed:  false,
		},
	}, nil
}
