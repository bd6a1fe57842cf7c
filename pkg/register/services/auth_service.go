package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/password"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/problem"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/register/repositories"
)

const (
	ScopeRead  = "assets:read"
	ScopeWrite = "assets:write"
	ScopeAdmin = "admin"
)

type AuthService struct {
	users  repositories.UserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users repositories.UserRepository, secret []byte, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

// Login verifies the credentials and issues a signed access token carrying
// the attribution snapshot the upload pipeline stamps onto asset records.
func (s *AuthService) Login(ctx context.Context, input *models.LoginInput) (*models.LoginResult, error) {
	user, err := s.users.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, problem.NewUnauthorized("Nieprawidłowa nazwa użytkownika lub hasło")
	}
	ok, err := password.Verify(user.Password, input.Password)
	if err != nil || !ok {
		return nil, problem.NewUnauthorized("Nieprawidłowa nazwa użytkownika lub hasło")
	}

	scopes := []string{ScopeRead, ScopeWrite}
	if user.IsAdmin() {
		scopes = append(scopes, ScopeAdmin)
	}
	hospital := ""
	if user.Hospital != nil {
		hospital = user.Hospital.Name
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       fmt.Sprint(user.ID),
		"name":      user.Name,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"hospital":  hospital,
		"scope":     strings.Join(scopes, " "),
		"iat":       now.Unix(),
		"exp":       now.Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &models.LoginResult{Token: token, User: *user}, nil
}
