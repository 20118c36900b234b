package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arnavshah/roster-api/pkg/models"
	"github.com/arnavshah/roster-api/pkg/roster"
	"github.com/golang-jwt/jwt/v4"
)

type fakeEmployees struct {
	byEmail    map[string]*models.Employee
	registered []roster.CreateEmployeeInput
	err        error
}

func (f *fakeEmployees) FindEmployeeByEmail(_ context.Context, email string) (*models.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	emp, ok := f.byEmail[roster.NormalizeEmail(email)]
	if !ok {
		return nil, roster.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployees) CountEmployees(context.Context) (int64, error) {
	return int64(len(f.byEmail) + len(f.registered)), f.err
}

func (f *fakeEmployees) RegisterEmployee(_ context.Context, in roster.CreateEmployeeInput) (*models.Employee, error) {
	f.registered = append(f.registered, in)
	return &models.Employee{ID: "boss", Email: in.Email, Role: in.Role}, nil
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("staffpass1")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("staffpass1", hash) {
		t.Error("password should match its hash")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password must not match")
	}
}

func TestAuthenticate(t *testing.T) {
	hash, _ := HashPassword("managerpass")
	store := &fakeEmployees{byEmail: map[string]*models.Employee{
		"manager@example.com": {ID: "m1", Email: "manager@example.com", Role: models.RoleManager, PasswordHash: hash},
	}}
	ctx := context.Background()

	emp, err := Authenticate(ctx, store, "Manager@Example.com", "managerpass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.ID != "m1" {
		t.Errorf("wrong employee %+v", emp)
	}

	if _, err := Authenticate(ctx, store, "manager@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := Authenticate(ctx, store, "ghost@example.com", "managerpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	boom := errors.New("db down")
	store.err = boom
	if _, err := Authenticate(ctx, store, "manager@example.com", "managerpass"); !errors.Is(err, boom) {
		t.Errorf("infrastructure errors must pass through, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	emp := &models.Employee{ID: "e1", Name: "Alice", Email: "alice@example.com", Role: models.RoleEmployee}

	token, err := issuer.Issue(emp)
	if err != nil {
		t.Fatal(err)
	}
	p, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	want := models.Principal{ID: "e1", Name: "Alice", Email: "alice@example.com", Role: models.RoleEmployee}
	if *p != want {
		t.Errorf("got %+v, want %+v", *p, want)
	}
}

func TestVerify_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	emp := &models.Employee{ID: "e1", Role: models.RoleManager}

	other := NewTokenIssuer("other-secret", time.Hour)
	forged, _ := other.Issue(emp)
	if _, err := issuer.Verify(forged); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: expected ErrInvalidToken, got %v", err)
	}

	expired := NewTokenIssuer("test-secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.Issue(emp)
	if _, err := issuer.Verify(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired: expected ErrInvalidToken, got %v", err)
	}

	badRole := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role:             "root",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "e1"},
	})
	signed, _ := badRole.SignedString([]byte("test-secret"))
	if _, err := issuer.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("unknown role: expected ErrInvalidToken, got %v", err)
	}

	if _, err := issuer.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage: expected ErrInvalidToken, got %v", err)
	}
}

func TestEnsureBossExists(t *testing.T) {
	ctx := context.Background()
	store := &fakeEmployees{byEmail: map[string]*models.Employee{}}

	if err := EnsureBossExists(ctx, store, store, "Boss", "boss@example.com", "bosspass"); err != nil {
		t.Fatal(err)
	}
	if len(store.registered) != 1 || store.registered[0].Role != models.RoleBoss {
		t.Fatalf("expected one boss registered, got %+v", store.registered)
	}
	if !CheckPasswordHash("bosspass", store.registered[0].PasswordHash) {
		t.Error("boss password was not hashed correctly")
	}

	if err := EnsureBossExists(ctx, store, store, "Boss", "boss@example.com", "bosspass"); err != nil {
		t.Fatal(err)
	}
	if len(store.registered) != 1 {
		t.Errorf("boss should only be created when the roster is empty, got %d", len(store.registered))
	}
}
