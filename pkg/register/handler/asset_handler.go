package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/register/services"
)

// AssetsController binds HTTP requests to the AssetService
type AssetsController struct {
	Service *services.AssetService
}

// NewAssetsController creates a new controller
func NewAssetsController(s *services.AssetService) *AssetsController {
	return &AssetsController{Service: s}
}

// ListAssets handles GET /assets
func (c *AssetsController) ListAssets(ctx *gin.Context, p *models.ListAssetsParams) ([]models.Asset, error) {
	return c.Service.ListAssets(ctx.Request.Context(), p)
}

// AssetHistory handles GET /assets/history/:id
func (c *AssetsController) AssetHistory(ctx *gin.Context, p *models.AssetParams) ([]models.Asset, error) {
	return c.Service.AssetHistory(ctx.Request.Context(), p.ID)
}

// DeleteAsset handles POST /asset_delete/:id
func (c *AssetsController) DeleteAsset(ctx *gin.Context, p *models.AssetParams) error {
	return c.Service.DeleteAsset(ctx.Request.Context(), p.ID)
}

// ListUploads handles GET /uploads
func (c *AssetsController) ListUploads(ctx *gin.Context) ([]models.History, error) {
	return c.Service.Uploads(ctx.Request.Context())
}
