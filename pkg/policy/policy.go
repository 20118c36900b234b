// Package policy maps roles to the operations they may perform.
package policy

import (
	"errors"
	"fmt"

	"github.com/arnavshah/roster-api/pkg/models"
)

// ErrForbidden is returned when a role lacks the capability for an operation.
var ErrForbidden = errors.New("policy: forbidden")

// Operation names a guarded action.
type Operation string

const (
	CreateShift      Operation = "shift:create"
	ViewShifts       Operation = "shift:view"
	CreateAssignment Operation = "assignment:create"
	DeleteAssignment Operation = "assignment:delete"
	ListFullRoster   Operation = "roster:list_all"
	ListOwnRoster    Operation = "roster:list_own"
	ViewEmployees    Operation = "employee:view"
	ManageEmployees  Operation = "employee:manage"
)

var scheduling = []Operation{
	CreateShift,
	ViewShifts,
	CreateAssignment,
	DeleteAssignment,
	ListFullRoster,
	ListOwnRoster,
	ViewEmployees,
}

var capabilities = map[models.Role]map[Operation]bool{
	models.RoleBoss:     set(append([]Operation{ManageEmployees}, scheduling...)...),
	models.RoleManager:  set(scheduling...),
	models.RoleEmployee: set(ListOwnRoster),
}

func set(ops ...Operation) map[Operation]bool {
	m := make(map[Operation]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}

// Allows reports whether role may perform op. Unknown roles may do nothing.
func Allows(role models.Role, op Operation) bool {
	return capabilities[role][op]
}

// Authorize returns ErrForbidden unless role may perform op.
func Authorize(role models.Role, op Operation) error {
	if !Allows(role, op) {
		return fmt.Errorf("%s as %q: %w", op, role, ErrForbidden)
	}
	return nil
}
