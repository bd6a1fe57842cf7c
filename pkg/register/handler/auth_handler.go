package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/register/services"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{Service: s}
}

// Login handles POST /auth/login
func (c *AuthController) Login(ctx *gin.Context, body *models.LoginInput) (*models.LoginResult, error) {
	return c.Service.Login(ctx.Request.Context(), body)
}
