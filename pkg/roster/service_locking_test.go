package roster_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arnavshah/roster-api/pkg/models"
	"github.com/arnavshah/roster-api/pkg/roster"
)

// memStore keeps everything in maps and gives WithinTx no isolation at all,
// so the service's per-employee lock is the only thing ordering the
// check-then-insert of concurrent assignments.
type memStore struct {
	mu          sync.Mutex
	shifts      map[string]models.Shift
	employees   map[string]models.Employee
	assignments map[string]models.Assignment

	// scanned runs after the same-day scan, outside mu.
	scanned func(employeeID string)
}

var _ roster.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		shifts:      make(map[string]models.Shift),
		employees:   make(map[string]models.Employee),
		assignments: make(map[string]models.Assignment),
	}
}

func (m *memStore) WithinTx(_ context.Context, fn func(roster.Store) error) error {
	return fn(m)
}

func (m *memStore) LockEmployee(context.Context, string) error { return nil }

func (m *memStore) CreateShift(_ context.Context, shift *models.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[shift.ID] = *shift
	return nil
}

func (m *memStore) GetShift(_ context.Context, id string) (*models.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sh, ok := m.shifts[id]
	if !ok {
		return nil, roster.ErrShiftNotFound
	}
	return &sh, nil
}

func (m *memStore) ListShifts(context.Context, string, string) ([]models.Shift, error) {
	return nil, errors.New("not used")
}

func (m *memStore) ShiftsForEmployeeOn(_ context.Context, employeeID, date string) ([]models.Shift, error) {
	m.mu.Lock()
	var out []models.Shift
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID && a.ShiftDate == date {
			out = append(out, m.shifts[a.ShiftID])
		}
	}
	m.mu.Unlock()

	if m.scanned != nil {
		m.scanned(employeeID)
	}
	return out, nil
}

func (m *memStore) CreateAssignment(_ context.Context, a *models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments[a.ID] = *a
	return nil
}

func (m *memStore) DeleteAssignment(context.Context, string) (bool, error) {
	return false, errors.New("not used")
}

func (m *memStore) ListRoster(context.Context, roster.RosterFilter) ([]models.RosterEntry, error) {
	return nil, errors.New("not used")
}

func (m *memStore) GetEmployee(_ context.Context, id string) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, roster.ErrEmployeeNotFound
	}
	return &e, nil
}

func (m *memStore) FindEmployeeByEmail(context.Context, string) (*models.Employee, error) {
	return nil, roster.ErrEmployeeNotFound
}

func (m *memStore) ListEmployees(context.Context) ([]models.Employee, error) {
	return nil, errors.New("not used")
}

func (m *memStore) CountEmployees(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.employees)), nil
}

func (m *memStore) CreateEmployee(_ context.Context, e *models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[e.ID] = *e
	return nil
}

func (m *memStore) DeleteEmployee(context.Context, string) (bool, error) {
	return false, errors.New("not used")
}

func (m *memStore) count(employeeID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID {
			n++
		}
	}
	return n
}

func seedMem(t *testing.T, m *memStore, employees []string, shifts map[string][2]string) {
	t.Helper()
	ctx := context.Background()
	for _, id := range employees {
		if err := m.CreateEmployee(ctx, &models.Employee{ID: id, Name: id, Email: id + "@example.com", Role: models.RoleEmployee}); err != nil {
			t.Fatal(err)
		}
	}
	for id, span := range shifts {
		sh := models.Shift{ID: id, Date: "2025-09-22", StartTime: span[0], EndTime: span[1], Location: "Store", CreatedBy: boss.ID}
		if err := m.CreateShift(ctx, &sh); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCreateAssignment_LockSerializesSameEmployeeWithoutStoreIsolation(t *testing.T) {
	m := newMemStore()
	const n = 8
	shifts := make(map[string][2]string, n)
	for i := 0; i < n; i++ {
		// Every shift overlaps every other one.
		shifts[fmt.Sprintf("s%d", i)] = [2]string{fmt.Sprintf("%02d:00", 8+i%2), "18:00"}
	}
	seedMem(t, m, []string{"e1"}, shifts)
	// Widen the gap between the scan and the insert.
	m.scanned = func(string) { time.Sleep(5 * time.Millisecond) }
	svc := roster.NewService(m, nil)

	var ok, conflicts atomic.Int32
	var wg sync.WaitGroup
	for id := range shifts {
		wg.Add(1)
		go func(shiftID string) {
			defer wg.Done()
			_, err := svc.CreateAssignment(context.Background(), manager, "e1", shiftID)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, roster.ErrOverlapConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	if ok.Load() != 1 || conflicts.Load() != n-1 {
		t.Errorf("expected 1 success and %d conflicts, got %d and %d", n-1, ok.Load(), conflicts.Load())
	}
	if got := m.count("e1"); got != 1 {
		t.Errorf("expected 1 stored assignment, got %d", got)
	}
}

func TestCreateAssignment_BlockedEmployeeDoesNotBlockOthers(t *testing.T) {
	m := newMemStore()
	seedMem(t, m, []string{"slow", "fast"}, map[string][2]string{
		"morning":   {"09:00", "12:00"},
		"afternoon": {"13:00", "17:00"},
	})

	entered := make(chan struct{}, 4)
	release := make(chan struct{})
	var slowScans atomic.Int32
	m.scanned = func(employeeID string) {
		if employeeID == "slow" {
			slowScans.Add(1)
			entered <- struct{}{}
			<-release
		}
	}
	svc := roster.NewService(m, nil)
	ctx := context.Background()

	slowDone := make(chan error, 2)
	go func() {
		_, err := svc.CreateAssignment(ctx, manager, "slow", "morning")
		slowDone <- err
	}()
	<-entered

	// A second request for the parked employee waits on its lock.
	go func() {
		_, err := svc.CreateAssignment(ctx, manager, "slow", "afternoon")
		slowDone <- err
	}()

	fastDone := make(chan error, 1)
	go func() {
		_, err := svc.CreateAssignment(ctx, manager, "fast", "morning")
		fastDone <- err
	}()
	select {
	case err := <-fastDone:
		if err != nil {
			t.Fatalf("fast employee: %v", err)
		}
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatal("assignment for another employee waited on the parked one")
	}

	time.Sleep(20 * time.Millisecond)
	if got := slowScans.Load(); got != 1 {
		close(release)
		t.Fatalf("second request for the same employee ran its scan while the first held the lock (%d scans)", got)
	}

	close(release)
	for i := 0; i < 2; i++ {
		if err := <-slowDone; err != nil {
			t.Errorf("slow employee: %v", err)
		}
	}
	if got := m.count("slow"); got != 2 {
		t.Errorf("expected 2 assignments for slow, got %d", got)
	}
}
