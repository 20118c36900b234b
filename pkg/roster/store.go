package roster

import (
	"context"

	"github.com/arnavshah/roster-api/pkg/models"
)

// RosterFilter selects roster entries by shift date and, optionally, employee.
type RosterFilter struct {
	From       string
	To         string
	EmployeeID string
}

// Store is the persistence the roster service needs. Lookups of missing
// shifts and employees return ErrShiftNotFound and ErrEmployeeNotFound.
type Store interface {
	// WithinTx runs fn against a Store bound to a single transaction.
	WithinTx(ctx context.Context, fn func(Store) error) error
	// LockEmployee holds a storage-level lock on employeeID until the
	// surrounding transaction ends.
	LockEmployee(ctx context.Context, employeeID string) error

	CreateShift(ctx context.Context, shift *models.Shift) error
	GetShift(ctx context.Context, id string) (*models.Shift, error)
	ListShifts(ctx context.Context, from, to string) ([]models.Shift, error)
	ShiftsForEmployeeOn(ctx context.Context, employeeID, date string) ([]models.Shift, error)

	CreateAssignment(ctx context.Context, assignment *models.Assignment) error
	DeleteAssignment(ctx context.Context, id string) (bool, error)
	ListRoster(ctx context.Context, filter RosterFilter) ([]models.RosterEntry, error)

	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	FindEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	CountEmployees(ctx context.Context) (int64, error)
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	DeleteEmployee(ctx context.Context, id string) (bool, error)
}
