package service

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"bistro-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmployeeInactive   = errors.New("account is deactivated")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUnknownRole        = errors.New("role must be admin, manager or employee")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims are the signed, verified contents of an employee session token.
// Nothing from a token is trusted until the signature checks out.
type Claims struct {
	EmployeeID int    `json:"employee_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	repo   EmployeeRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(repo EmployeeRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{repo: repo, secret: []byte(secret), ttl: ttl}
}

func (s *AuthService) Register(email, password, name, role string) (*domain.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidCredentials
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if role == "" {
		role = domain.RoleEmployee
	}
	if role != domain.RoleAdmin && role != domain.RoleManager && role != domain.RoleEmployee {
		return nil, ErrUnknownRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	emp := &domain.Employee{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.CreateEmployee(emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *AuthService) Login(email, password string) (string, *domain.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	emp, err := s.repo.GetEmployeeByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !emp.IsActive {
		return "", nil, ErrEmployeeInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		EmployeeID: emp.ID,
		Email:      emp.Email,
		Role:       emp.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, emp, nil
}

func (s *AuthService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) Deactivate(id int) (int64, error) {
	return s.repo.SetEmployeeActive(id, false)
}

var _ AuthServiceInterface = (*AuthService)(nil)
