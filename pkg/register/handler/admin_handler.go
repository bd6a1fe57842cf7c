package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/register/services"
)

// AdminController binds the administration endpoints to the AdminService.
type AdminController struct {
	Service *services.AdminService
}

func NewAdminController(s *services.AdminService) *AdminController {
	return &AdminController{Service: s}
}

// ListUsers handles GET /users
func (c *AdminController) ListUsers(ctx *gin.Context) ([]models.User, error) {
	return c.Service.ListUsers(ctx.Request.Context())
}

// GetUser handles GET /users/:id
func (c *AdminController) GetUser(ctx *gin.Context, p *models.IDParams) (*models.User, error) {
	return c.Service.GetUser(ctx.Request.Context(), p.ID)
}

// CreateUser handles POST /users
func (c *AdminController) CreateUser(ctx *gin.Context, body *models.UserInput) (*models.User, error) {
	return c.Service.CreateUser(ctx.Request.Context(), body)
}

// UpdateUser handles PUT /users/:id
func (c *AdminController) UpdateUser(ctx *gin.Context, body *models.UpdateUserInput) (*models.User, error) {
	return c.Service.UpdateUser(ctx.Request.Context(), body)
}

// DeleteUser handles DELETE /users/:id
func (c *AdminController) DeleteUser(ctx *gin.Context, p *models.IDParams) error {
	return c.Service.DeleteUser(ctx.Request.Context(), p.ID)
}

// ListHospitals handles GET /hospitals
func (c *AdminController) ListHospitals(ctx *gin.Context) ([]models.Hospital, error) {
	return c.Service.ListHospitals(ctx.Request.Context())
}

// CreateHospital handles POST /hospitals
func (c *AdminController) CreateHospital(ctx *gin.Context, body *models.NameInput) (*models.Hospital, error) {
	return c.Service.CreateHospital(ctx.Request.Context(), body)
}

// UpdateHospital handles PUT /hospitals/:id
func (c *AdminController) UpdateHospital(ctx *gin.Context, body *models.UpdateNameInput) (*models.Hospital, error) {
	return c.Service.UpdateHospital(ctx.Request.Context(), body)
}

// DeleteHospital handles DELETE /hospitals/:id
func (c *AdminController) DeleteHospital(ctx *gin.Context, p *models.IDParams) error {
	return c.Service.DeleteHospital(ctx.Request.Context(), p.ID)
}

// ListRoles handles GET /roles
func (c *AdminController) ListRoles(ctx *gin.Context) ([]models.Role, error) {
	return c.Service.ListRoles(ctx.Request.Context())
}

// CreateRole handles POST /roles
func (c *AdminController) CreateRole(ctx *gin.Context, body *models.NameInput) (*models.Role, error) {
	return c.Service.CreateRole(ctx.Request.Context(), body)
}

// UpdateRole handles PUT /roles/:id
func (c *AdminController) UpdateRole(ctx *gin.Context, body *models.UpdateNameInput) (*models.Role, error) {
	return c.Service.UpdateRole(ctx.Request.Context(), body)
}

// DeleteRole handles DELETE /roles/:id
func (c *AdminController) DeleteRole(ctx *gin.Context, p *models.IDParams) error {
	return c.Service.DeleteRole(ctx.Request.Context(), p.ID)
}

// GetStats handles GET /stats
func (c *AdminController) GetStats(ctx *gin.Context) (*models.Stats, error) {
	return c.Service.Stats(ctx.Request.Context())
}
