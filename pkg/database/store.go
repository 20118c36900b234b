package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arnavshah/roster-api/pkg/models"
	"github.com/arnavshah/roster-api/pkg/roster"
	"gorm.io/gorm"
)

// Store implements roster.Store on gorm.
type Store struct {
	db   *gorm.DB
	inTx bool
}

var _ roster.Store = (*Store)(nil)

// NewStore wraps an open gorm connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// isDuplicate reports a unique-constraint violation. The string checks cover
// driver errors that gorm's translator leaves untouched.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}

// WithinTx runs fn inside a transaction. Nested calls reuse the outer one.
func (s *Store) WithinTx(ctx context.Context, fn func(roster.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, inTx: true})
	})
}

// LockEmployee takes a transaction-scoped advisory lock on PostgreSQL. SQLite
// already serializes writers, so it is a no-op there.
func (s *Store) LockEmployee(ctx context.Context, employeeID string) error {
	if s.db.Dialector.Name() != "postgres" {
		return nil
	}
	if !s.inTx {
		return errors.New("database: employee lock requires a transaction")
	}
	if err := s.conn(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "employee:"+employeeID).Error; err != nil {
		return fmt.Errorf("database: lock employee %s: %w", employeeID, err)
	}
	return nil
}

func (s *Store) CreateShift(ctx context.Context, shift *models.Shift) error {
	row := Shift{
		ID:        shift.ID,
		Date:      shift.Date,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		Location:  shift.Location,
		Position:  shift.Position,
		Notes:     shift.Notes,
		CreatedBy: shift.CreatedBy,
		CreatedAt: shift.CreatedAt,
	}
	if err := s.conn(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("database: create shift: %w", err)
	}
	return nil
}

func (s *Store) GetShift(ctx context.Context, id string) (*models.Shift, error) {
	var row Shift
	if err := s.conn(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roster.ErrShiftNotFound
		}
		return nil, fmt.Errorf("database: get shift: %w", err)
	}
	shift := row.toModel()
	return &shift, nil
}

func (s *Store) ListShifts(ctx context.Context, from, to string) ([]models.Shift, error) {
	var rows []Shift
	err := s.conn(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC, start_time ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("database: list shifts: %w", err)
	}
	return toShiftModels(rows), nil
}

// ShiftsForEmployeeOn returns the shifts employeeID is assigned to on date.
func (s *Store) ShiftsForEmployeeOn(ctx context.Context, employeeID, date string) ([]models.Shift, error) {
	var rows []Shift
	err := s.conn(ctx).
		Table("shifts AS s").
		Select("s.*").
		Joins("JOIN assignments a ON a.shift_id = s.id").
		Where("a.employee_id = ? AND a.shift_date = ?", employeeID, date).
		Order("s.start_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("database: same-day shifts: %w", err)
	}
	return toShiftModels(rows), nil
}

func (s *Store) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	row := Assignment{
		ID:         assignment.ID,
		EmployeeID: assignment.EmployeeID,
		ShiftID:    assignment.ShiftID,
		ShiftDate:  assignment.ShiftDate,
		CreatedAt:  assignment.CreatedAt,
	}
	if err := s.conn(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("database: employee %s already holds shift %s: %w", row.EmployeeID, row.ShiftID, roster.ErrOverlapConflict)
		}
		return fmt.Errorf("database: create assignment: %w", err)
	}
	return nil
}

func (s *Store) DeleteAssignment(ctx context.Context, id string) (bool, error) {
	res := s.conn(ctx).Where("id = ?", id).Delete(&Assignment{})
	if res.Error != nil {
		return false, fmt.Errorf("database: delete assignment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

type rosterRow struct {
	AssignmentID  string
	EmployeeID    string
	EmployeeName  string
	EmployeeEmail string
	ShiftID       string
	Date          string
	StartTime     string
	EndTime       string
	Location      string
	Position      *string
	Notes         *string
	CreatedBy     string
}

func (s *Store) ListRoster(ctx context.Context, f roster.RosterFilter) ([]models.RosterEntry, error) {
	q := s.conn(ctx).
		Table("assignments AS a").
		Select(`a.id AS assignment_id,
			e.id AS employee_id, e.name AS employee_name, e.email AS employee_email,
			s.id AS shift_id, s.date, s.start_time, s.end_time,
			s.location, s.position, s.notes, s.created_by`).
		Joins("JOIN employees e ON e.id = a.employee_id").
		Joins("JOIN shifts s ON s.id = a.shift_id").
		Where("s.date BETWEEN ? AND ?", f.From, f.To)
	if f.EmployeeID != "" {
		q = q.Where("a.employee_id = ?", f.EmployeeID)
	}

	var rows []rosterRow
	if err := q.Order("s.date ASC, s.start_time ASC, a.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("database: list roster: %w", err)
	}

	entries := make([]models.RosterEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, models.RosterEntry{
			AssignmentID: r.AssignmentID,
			Employee: models.EmployeeSummary{
				ID:    r.EmployeeID,
				Name:  r.EmployeeName,
				Email: r.EmployeeEmail,
			},
			Shift: models.Shift{
				ID:        r.ShiftID,
				Date:      r.Date,
				StartTime: r.StartTime,
				EndTime:   r.EndTime,
				Location:  r.Location,
				Position:  r.Position,
				Notes:     r.Notes,
				CreatedBy: r.CreatedBy,
			},
		})
	}
	return entries, nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	return s.findEmployee(ctx, "id = ?", id)
}

func (s *Store) FindEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return s.findEmployee(ctx, "email = ?", roster.NormalizeEmail(email))
}

func (s *Store) findEmployee(ctx context.Context, query string, arg any) (*models.Employee, error) {
	var row Employee
	if err := s.conn(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roster.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("database: find employee: %w", err)
	}
	emp := row.toModel()
	return &emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var rows []Employee
	if err := s.conn(ctx).Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("database: list employees: %w", err)
	}
	out := make([]models.Employee, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	if err := s.conn(ctx).Model(&Employee{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("database: count employees: %w", err)
	}
	return count, nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp *models.Employee) error {
	row := Employee{
		ID:           emp.ID,
		Name:         emp.Name,
		Email:        roster.NormalizeEmail(emp.Email),
		Role:         string(emp.Role),
		PasswordHash: emp.PasswordHash,
		CreatedAt:    emp.CreatedAt,
	}
	if err := s.conn(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("database: %s: %w", row.Email, roster.ErrEmailTaken)
		}
		return fmt.Errorf("database: create employee: %w", err)
	}
	return nil
}

// DeleteEmployee removes the employee and every assignment they hold.
func (s *Store) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	if err := s.conn(ctx).Where("employee_id = ?", id).Delete(&Assignment{}).Error; err != nil {
		return false, fmt.Errorf("database: delete employee assignments: %w", err)
	}
	res := s.conn(ctx).Where("id = ?", id).Delete(&Employee{})
	if res.Error != nil {
		return false, fmt.Errorf("database: delete employee: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r Shift) toModel() models.Shift {
	return models.Shift{
		ID:        r.ID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Location:  r.Location,
		Position:  r.Position,
		Notes:     r.Notes,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
}

func toShiftModels(rows []Shift) []models.Shift {
	out := make([]models.Shift, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out
}

func (r Employee) toModel() models.Employee {
	return models.Employee{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Role:         models.Role(r.Role),
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}
