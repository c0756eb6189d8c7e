package services

import (
	"context"
	"errors"
	"fmt"

	jwtutil "realty-hub/app/jwt"
	"realty-hub/app/models"
	"realty-hub/app/repo"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidProductKey  = errors.New("invalid product key")
)

type AuthService struct {
	users     *repo.UserRepository
	signer    *jwtutil.Signer
	keySecret string
}

func NewAuthService(users *repo.UserRepository, signer *jwtutil.Signer, keySecret string) *AuthService {
	return &AuthService{users: users, signer: signer, keySecret: keySecret}
}

// Signup registers a new user and returns a session token. The email must
// not already be registered.
func (s *AuthService) Signup(ctx context.Context, email, password, name, phone, role string) (string, error) {
	count, err := s.users.CountByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	u := &models.User{Email: email, PasswordHash: string(hash), Name: name, Phone: phone, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return s.signer.Sign(u.ID, u.Email)
}

// Signin validates credentials and returns a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.signer.Sign(u.ID, u.Email)
}

func productKeyFormula(email, role, secret string) string {
	return fmt.Sprintf("%s-%s-%s", email, role, secret)
}

// ProductKey derives the shareable credential gating privileged signup. The
// key is never stored; it re-verifies against the same formula. Also used by
// the genkey CLI command.
func ProductKey(email, role, secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(productKeyFormula(email, role, secret)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) GenerateProductKey(email, role string) (string, error) {
	return ProductKey(email, role, s.keySecret)
}

func (s *AuthService) VerifyProductKey(key, email, role string) error {
	if bcrypt.CompareHashAndPassword([]byte(key), []byte(productKeyFormula(email, role, s.keySecret))) != nil {
		return ErrInvalidProductKey
	}
	return nil
}
