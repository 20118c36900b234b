package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arnavshah/roster-api/pkg/interval"
	"github.com/arnavshah/roster-api/pkg/models"
	"github.com/arnavshah/roster-api/pkg/policy"
	"github.com/google/uuid"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Service implements shift creation, conflict-checked assignment and roster
// queries. Every operation is checked against the access policy before it
// touches the store.
type Service struct {
	store Store
	clock Clock
	newID func() string
	locks *keyedLocks
}

// NewService creates a Service over store. A nil clock uses the wall clock.
func NewService(store Store, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{
		store: store,
		clock: clock,
		newID: func() string { return uuid.NewString() },
		locks: newKeyedLocks(),
	}
}

// CreateShiftInput carries the fields of a new shift
type CreateShiftInput struct {
	Date      string
	StartTime string
	EndTime   string
	Location  string
	Position  string
	Notes     string
}

// CreateShift validates and stores a new shift created by p.
func (s *Service) CreateShift(ctx context.Context, p models.Principal, in CreateShiftInput) (*models.Shift, error) {
	if err := policy.Authorize(p.Role, policy.CreateShift); err != nil {
		return nil, err
	}

	if _, err := interval.ParseDate(in.Date); err != nil {
		return nil, fmt.Errorf("date: %w: %w", ErrInvalidField, err)
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		return nil, fmt.Errorf("location: %w", ErrInvalidField)
	}
	start, err := interval.ToMinutes(in.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := interval.ToMinutes(in.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}
	if start >= end {
		return nil, ErrInvalidInterval
	}

	shift := &models.Shift{
		ID:        s.newID(),
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Location:  location,
		Position:  optional(in.Position),
		Notes:     optional(in.Notes),
		CreatedBy: p.ID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.CreateShift(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// GetShift returns the shift with id or ErrShiftNotFound.
func (s *Service) GetShift(ctx context.Context, p models.Principal, id string) (*models.Shift, error) {
	if err := policy.Authorize(p.Role, policy.ViewShifts); err != nil {
		return nil, err
	}
	return s.store.GetShift(ctx, id)
}

// ListShifts returns every shift dated within [from, to], assigned or not.
func (s *Service) ListShifts(ctx context.Context, p models.Principal, from, to string) ([]models.Shift, error) {
	if err := policy.Authorize(p.Role, policy.ViewShifts); err != nil {
		return nil, err
	}
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.store.ListShifts(ctx, from, to)
}

// CreateAssignment links employeeID to shiftID unless the employee already
// works an overlapping shift that day. Check and insert run under a lock
// keyed by employee, so concurrent requests for one employee serialize while
// different employees proceed independently.
func (s *Service) CreateAssignment(ctx context.Context, p models.Principal, employeeID, shiftID string) (*models.Assignment, error) {
	if err := policy.Authorize(p.Role, policy.CreateAssignment); err != nil {
		return nil, err
	}
	if strings.TrimSpace(employeeID) == "" {
		return nil, fmt.Errorf("employeeId: %w", ErrInvalidField)
	}
	if strings.TrimSpace(shiftID) == "" {
		return nil, fmt.Errorf("shiftId: %w", ErrInvalidField)
	}

	unlock := s.locks.Lock(employeeID)
	defer unlock()

	var created *models.Assignment
	err := s.store.WithinTx(ctx, func(tx Store) error {
		shift, err := tx.GetShift(ctx, shiftID)
		if err != nil {
			return err
		}
		if _, err := tx.GetEmployee(ctx, employeeID); err != nil {
			return err
		}
		if err := tx.LockEmployee(ctx, employeeID); err != nil {
			return err
		}

		newStart, newEnd, err := bounds(shift)
		if err != nil {
			return err
		}
		existing, err := tx.ShiftsForEmployeeOn(ctx, employeeID, shift.Date)
		if err != nil {
			return err
		}
		for i := range existing {
			start, end, err := bounds(&existing[i])
			if err != nil {
				return err
			}
			if interval.Overlaps(newStart, newEnd, start, end) {
				return fmt.Errorf("shift %s %s-%s: %w", existing[i].Date, existing[i].StartTime, existing[i].EndTime, ErrOverlapConflict)
			}
		}

		a := &models.Assignment{
			ID:         s.newID(),
			EmployeeID: employeeID,
			ShiftID:    shift.ID,
			ShiftDate:  shift.Date,
			CreatedAt:  s.clock.Now(),
		}
		if err := tx.CreateAssignment(ctx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteAssignment removes an assignment. Unknown ids report false.
func (s *Service) DeleteAssignment(ctx context.Context, p models.Principal, id string) (bool, error) {
	if err := policy.Authorize(p.Role, policy.DeleteAssignment); err != nil {
		return false, err
	}
	return s.store.DeleteAssignment(ctx, id)
}

// ListRoster returns the assignments whose shift falls within [from, to],
// ordered by date and start time. Principals without the full-roster
// capability only see their own entries.
func (s *Service) ListRoster(ctx context.Context, p models.Principal, from, to string) ([]models.RosterEntry, error) {
	filter := RosterFilter{From: from, To: to}
	switch {
	case policy.Allows(p.Role, policy.ListFullRoster):
	case policy.Allows(p.Role, policy.ListOwnRoster):
		filter.EmployeeID = p.ID
	default:
		return nil, policy.Authorize(p.Role, policy.ListOwnRoster)
	}

	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	entries, err := s.store.ListRoster(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		hours, err := interval.DurationHours(entries[i].Shift.StartTime, entries[i].Shift.EndTime)
		if err != nil {
			return nil, err
		}
		entries[i].Hours = hours
	}
	return entries, nil
}

// ListWeek is ListRoster over the Monday-Sunday week containing day.
func (s *Service) ListWeek(ctx context.Context, p models.Principal, day string) ([]models.RosterEntry, error) {
	d, err := interval.ParseDate(day)
	if err != nil {
		return nil, fmt.Errorf("week: %w: %w", ErrInvalidField, err)
	}
	monday, sunday := interval.WeekRange(d)
	return s.ListRoster(ctx, p, monday.Format(interval.DateLayout), sunday.Format(interval.DateLayout))
}

func validateRange(from, to string) error {
	f, err := interval.ParseDate(from)
	if err != nil {
		return fmt.Errorf("from: %w: %w", ErrInvalidField, err)
	}
	t, err := interval.ParseDate(to)
	if err != nil {
		return fmt.Errorf("to: %w: %w", ErrInvalidField, err)
	}
	if f.After(t) {
		return ErrInvalidRange
	}
	return nil
}

func bounds(shift *models.Shift) (int, int, error) {
	start, err := interval.ToMinutes(shift.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("shift %s: %w", shift.ID, err)
	}
	end, err := interval.ToMinutes(shift.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("shift %s: %w", shift.ID, err)
	}
	return start, end, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// IsValidation reports whether err is a caller input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidField) ||
		errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, interval.ErrMalformedTime) ||
		errors.Is(err, interval.ErrMalformedDate)
}
