package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arnavshah/roster-api/pkg/models"
	"github.com/arnavshah/roster-api/pkg/policy"
)

// CreateEmployeeInput carries a new roster member. The password must already
// be hashed by the caller.
type CreateEmployeeInput struct {
	Name         string
	Email        string
	Role         models.Role
	PasswordHash string
}

// NormalizeEmail lower-cases and trims an address so lookups ignore case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ListEmployees returns the whole roster ordered by name.
func (s *Service) ListEmployees(ctx context.Context, p models.Principal) ([]models.Employee, error) {
	if err := policy.Authorize(p.Role, policy.ViewEmployees); err != nil {
		return nil, err
	}
	return s.store.ListEmployees(ctx)
}

// CreateEmployee adds a member to the roster.
func (s *Service) CreateEmployee(ctx context.Context, p models.Principal, in CreateEmployeeInput) (*models.Employee, error) {
	if err := policy.Authorize(p.Role, policy.ManageEmployees); err != nil {
		return nil, err
	}
	return s.RegisterEmployee(ctx, in)
}

// RegisterEmployee adds a member without a policy check. It backs bootstrap
// and seeding, which run before any principal exists.
func (s *Service) RegisterEmployee(ctx context.Context, in CreateEmployeeInput) (*models.Employee, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name: %w", ErrInvalidField)
	}
	email := NormalizeEmail(in.Email)
	if at := strings.Index(email, "@"); at < 1 || at == len(email)-1 {
		return nil, fmt.Errorf("email: %w", ErrInvalidField)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("role: %w", ErrInvalidField)
	}
	if in.PasswordHash == "" {
		return nil, fmt.Errorf("password: %w", ErrInvalidField)
	}

	emp := &models.Employee{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		Role:         in.Role,
		PasswordHash: in.PasswordHash,
		CreatedAt:    s.clock.Now(),
	}
	err := s.store.WithinTx(ctx, func(tx Store) error {
		_, err := tx.FindEmployeeByEmail(ctx, email)
		switch {
		case err == nil:
			return ErrEmailTaken
		case !errors.Is(err, ErrEmployeeNotFound):
			return err
		}
		return tx.CreateEmployee(ctx, emp)
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// DeleteEmployee removes a member and their assignments. Unknown ids report false.
func (s *Service) DeleteEmployee(ctx context.Context, p models.Principal, id string) (bool, error) {
	if err := policy.Authorize(p.Role, policy.ManageEmployees); err != nil {
		return false, err
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	var deleted bool
	err := s.store.WithinTx(ctx, func(tx Store) error {
		var err error
		deleted, err = tx.DeleteEmployee(ctx, id)
		return err
	})
	return deleted, err
}
