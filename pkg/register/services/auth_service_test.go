package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/password"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/problem"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/register/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	byName map[string]*models.User
}

func (s *stubUsers) GetUsers(ctx context.Context) ([]models.User, error) { return nil, nil }
func (s *stubUsers) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, nil
}
func (s *stubUsers) FindByName(ctx context.Context, name string) (*models.User, error) {
	return s.byName[name], nil
}
func (s *stubUsers) Save(ctx context.Context, user *models.User) error   { return nil }
func (s *stubUsers) Update(ctx context.Context, user *models.User) error { return nil }
func (s *stubUsers) Delete(ctx context.Context, id uint) error           { return nil }
func (s *stubUsers) Count(ctx context.Context) (int64, error)            { return 0, nil }

func testUser(t *testing.T, admin bool) *models.User {
	t.Helper()
	hashed, err := password.Hash("haslo123")
	require.NoError(t, err)
	user := &models.User{
		ID:        7,
		Name:      "jkowalski",
		Password:  hashed,
		FirstName: "Jan",
		LastName:  "Kowalski",
		IsActive:  true,
		Hospital:  &models.Hospital{ID: 1, Name: "Szpital Miejski"},
	}
	if admin {
		user.Role = &models.Role{ID: 1, Name: "Administrator"}
	}
	return user
}

func TestLoginIssuesToken(t *testing.T) {
	secret := []byte("sekret")
	users := &stubUsers{byName: map[string]*models.User{"jkowalski": testUser(t, false)}}
	svc := services.NewAuthService(users, secret, time.Hour)

	result, err := svc.Login(context.Background(), &models.LoginInput{Name: "jkowalski", Password: "haslo123"})
	require.NoError(t, err)

	token, err := jwt.Parse(result.Token, func(t *jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, "Jan", claims["firstName"])
	assert.Equal(t, "Szpital Miejski", claims["hospital"])
	assert.Equal(t, "assets:read assets:write", claims["scope"])
}

func TestLoginAdminScope(t *testing.T) {
	secret := []byte("sekret")
	users := &stubUsers{byName: map[string]*models.User{"jkowalski": testUser(t, true)}}
	svc := services.NewAuthService(users, secret, time.Hour)

	result, err := svc.Login(context.Background(), &models.LoginInput{Name: "jkowalski", Password: "haslo123"})
	require.NoError(t, err)

	token, err := jwt.Parse(result.Token, func(t *jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "assets:read assets:write admin", claims["scope"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := &stubUsers{byName: map[string]*models.User{"jkowalski": testUser(t, false)}}
	svc := services.NewAuthService(users, []byte("sekret"), time.Hour)

	_, err := svc.Login(context.Background(), &models.LoginInput{Name: "jkowalski", Password: "zle"})
	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)

	_, err = svc.Login(context.Background(), &models.LoginInput{Name: "ghost", Password: "haslo123"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestLoginRejectsInactive(t *testing.T) {
	user := testUser(t, false)
	user.IsActive = false
	users := &stubUsers{byName: map[string]*models.User{"jkowalski": user}}
	svc := services.NewAuthService(users, []byte("sekret"), time.Hour)

	_, err := svc.Login(context.Background(), &models.LoginInput{Name: "jkowalski", Password: "haslo123"})
	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}
