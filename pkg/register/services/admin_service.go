package services

import (
	"context"
	"fmt"
	"log"

	"github.com/medregister-pl/asset-register/pkg/register/helpers/password"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/problem"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/register/repositories"
	"golang.org/x/sync/errgroup"
)

// AdminService backs the user/hospital/role administration screens and the
// stats summary.
type AdminService struct {
	users     repositories.UserRepository
	hospitals repositories.HospitalRepository
	roles     repositories.RoleRepository
	history   repositories.HistoryRepository
	store     AssetStore
}

func NewAdminService(
	users repositories.UserRepository,
	hospitals repositories.HospitalRepository,
	roles repositories.RoleRepository,
	history repositories.HistoryRepository,
	store AssetStore,
) *AdminService {
	return &AdminService{users: users, hospitals: hospitals, roles: roles, history: history, store: store}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.GetUsers(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, problem.NewNotFound(fmt.Sprint(id), "Nie znaleziono użytkownika")
	}
	return user, nil
}

func (s *AdminService) CreateUser(ctx context.Context, input *models.UserInput) (*models.User, error) {
	existing, err := s.users.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, problem.NewBadRequest("name", "Użytkownik o tej nazwie już istnieje")
	}
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:       input.Name,
		Password:   hashed,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		IsActive:   true,
		HospitalID: input.HospitalID,
		RoleID:     input.RoleID,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, user.ID)
}

func (s *AdminService) UpdateUser(ctx context.Context, input *models.UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Password != nil {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.HospitalID != nil {
		user.HospitalID = input.HospitalID
	}
	if input.RoleID != nil {
		user.RoleID = input.RoleID
	}
	// Save would try to upsert the preloaded associations as well.
	user.Hospital = nil
	user.Role = nil

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, user.ID)
}

func (s *AdminService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *AdminService) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	return s.hospitals.GetHospitals(ctx)
}

func (s *AdminService) CreateHospital(ctx context.Context, input *models.NameInput) (*models.Hospital, error) {
	existing, err := s.hospitals.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, problem.NewBadRequest("name", "Szpital o tej nazwie już istnieje")
	}
	hospital := &models.Hospital{Name: input.Name}
	if err := s.hospitals.Save(ctx, hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}

func (s *AdminService) UpdateHospital(ctx context.Context, input *models.UpdateNameInput) (*models.Hospital, error) {
	hospital, err := s.hospitals.GetHospitalByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if hospital == nil {
		return nil, problem.NewNotFound(fmt.Sprint(input.ID), "Nie znaleziono szpitala")
	}
	hospital.Name = input.Name
	if err := s.hospitals.Update(ctx, hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}

func (s *AdminService) DeleteHospital(ctx context.Context, id uint) error {
	hospital, err := s.hospitals.GetHospitalByID(ctx, id)
	if err != nil {
		return err
	}
	if hospital == nil {
		return problem.NewNotFound(fmt.Sprint(id), "Nie znaleziono szpitala")
	}
	return s.hospitals.Delete(ctx, id)
}

func (s *AdminService) ListRoles(ctx context.Context) ([]models.Role, error) {
	return s.roles.GetRoles(ctx)
}

func (s *AdminService) CreateRole(ctx context.Context, input *models.NameInput) (*models.Role, error) {
	existing, err := s.roles.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, problem.NewBadRequest("name", "Rola o tej nazwie już istnieje")
	}
	role := &models.Role{Name: input.Name}
	if err := s.roles.Save(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *AdminService) UpdateRole(ctx context.Context, input *models.UpdateNameInput) (*models.Role, error) {
	role, err := s.roles.GetRoleByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, problem.NewNotFound(fmt.Sprint(input.ID), "Nie znaleziono roli")
	}
	role.Name = input.Name
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *AdminService) DeleteRole(ctx context.Context, id uint) error {
	role, err := s.roles.GetRoleByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return problem.NewNotFound(fmt.Sprint(id), "Nie znaleziono roli")
	}
	return s.roles.Delete(ctx, id)
}

// Stats gathers the dashboard counters concurrently. An unreachable asset
// service degrades to RemoteAssets = -1 instead of failing the request.
func (s *AdminService) Stats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{RemoteAssets: -1}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.users.Count(ctx)
		stats.Users = n
		return err
	})
	g.Go(func() error {
		n, err := s.hospitals.Count(ctx)
		stats.Hospitals = n
		return err
	})
	g.Go(func() error {
		n, err := s.history.Count(ctx)
		stats.Uploads = n
		return err
	})
	g.Go(func() error {
		assets, err := s.store.ListAssets(ctx)
		if err != nil {
			log.Printf("[WARN] stats: asset service unreachable: %v", err)
			return nil
		}
		stats.RemoteAssets = int64(len(assets))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
