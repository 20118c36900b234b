package models

import "time"

// Role is the access level of an employee
type Role string

const (
	RoleBoss     Role = "boss"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleBoss, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Employee is a person on the roster who can sign in
type Employee struct {
	ID           string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is the authenticated identity making a request
type Principal struct {
	ID    string `json:"userId"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
}

// Shift is a scheduled work interval at a location on a given date
type Shift struct {
	ID        string    `json:"shiftId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Location  string    `json:"location"`
	Position  *string   `json:"position"`
	Notes     *string   `json:"notes"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Assignment links one employee to one shift
type Assignment struct {
	ID         string    `json:"assignmentId"`
	EmployeeID string    `json:"employeeId"`
	ShiftID    string    `json:"shiftId"`
	ShiftDate  string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// EmployeeSummary is the part of an employee shown next to a roster entry
type EmployeeSummary struct {
	ID    string `json:"userId"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RosterEntry joins an assignment with its employee and shift
type RosterEntry struct {
	AssignmentID string          `json:"assignmentId"`
	Employee     EmployeeSummary `json:"employee"`
	Shift        Shift           `json:"shift"`
	Hours        float64         `json:"hours"`
}
