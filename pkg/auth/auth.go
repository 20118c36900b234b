package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/arnavshah/roster-api/pkg/models"
	"github.com/arnavshah/roster-api/pkg/roster"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid or expired token")
)

var jwtAlgorithm = jwt.SigningMethodHS256

// Claims represents the JWT claims. The subject is the employee id.
type Claims struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// EmployeeFinder looks employees up by email.
type EmployeeFinder interface {
	FindEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
}

// Authenticate returns the employee whose email and password match.
func Authenticate(ctx context.Context, finder EmployeeFinder, email, password string) (*models.Employee, error) {
	emp, err := finder.FindEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, roster.ErrEmployeeNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPasswordHash(password, emp.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return emp, nil
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer signing with secret; tokens live for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a new JWT token for an employee
func (t *TokenIssuer) Issue(emp *models.Employee) (string, error) {
	now := t.now()
	claims := &Claims{
		Email: emp.Email,
		Name:  emp.Name,
		Role:  emp.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   emp.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(t.secret)
}

// Verify checks a JWT token and returns the principal it names
func (t *TokenIssuer) Verify(tokenString string) (*models.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return &models.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}

// Registrar is the part of the roster service that bootstraps accounts.
type Registrar interface {
	RegisterEmployee(ctx context.Context, in roster.CreateEmployeeInput) (*models.Employee, error)
}

// Counter reports how many employees exist.
type Counter interface {
	CountEmployees(ctx context.Context) (int64, error)
}

// EnsureBossExists creates a boss account when the roster is empty.
func EnsureBossExists(ctx context.Context, counter Counter, reg Registrar, name, email, password string) error {
	count, err := counter.CountEmployees(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	boss, err := reg.RegisterEmployee(ctx, roster.CreateEmployeeInput{
		Name:         name,
		Email:        email,
		Role:         models.RoleBoss,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}
	log.Printf("Default boss account created: %s", boss.Email)
	return nil
}
