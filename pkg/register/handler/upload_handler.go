package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/csvdata"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/problem"
	"github.com/medregister-pl/asset-register/pkg/register/middleware"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/register/serializers"
	"github.com/medregister-pl/asset-register/pkg/register/services"
)

// UploadController serves the multipart endpoints and the CSV download.
// These bypass tonic: file uploads and streamed responses do not fit typed
// JSON handlers.
type UploadController struct {
	Service *services.AssetService
}

func NewUploadController(s *services.AssetService) *UploadController {
	return &UploadController{Service: s}
}

// NewData handles POST /new_data: every CSV row becomes a fresh root asset.
func (c *UploadController) NewData(ctx *gin.Context) {
	c.handleUpload(ctx, "")
}

// AssetEdit handles POST /asset_edit: the CSV becomes a new version of the
// asset named in the asset_id form field.
func (c *UploadController) AssetEdit(ctx *gin.Context) {
	targetID := ctx.PostForm("asset_id")
	if targetID == "" {
		writeProblem(ctx, problem.NewBadRequest("asset_id", "Pole asset_id jest wymagane"))
		return
	}
	c.handleUpload(ctx, targetID)
}

func (c *UploadController) handleUpload(ctx *gin.Context, targetID string) {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeProblem(ctx, problem.NewUnauthorized("Brak tożsamości w żądaniu"))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		writeProblem(ctx, problem.NewBadRequest("file", "Pole file jest wymagane"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		writeProblem(ctx, problem.NewBadRequest("file", fmt.Sprintf("nie można odczytać pliku: %v", err)))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeProblem(ctx, problem.NewBadRequest("file", fmt.Sprintf("nie można odczytać pliku: %v", err)))
		return
	}
	columns, rows, err := csvdata.Read(bytes.NewReader(raw))
	if err != nil {
		writeProblem(ctx, problem.NewBadRequest("file", fmt.Sprintf("niepoprawny plik CSV: %v", err)))
		return
	}

	err = c.Service.SubmitUpload(ctx.Request.Context(), ident, services.Upload{
		Filename:    fileHeader.Filename,
		Description: ctx.PostForm("description"),
		Columns:     columns,
		Rows:        rows,
		Raw:         raw,
		TargetID:    targetID,
	})
	if err != nil {
		writeProblem(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, gin.H{"status": "przyjęto"})
}

// ExportCSV handles GET /export_csv: a flattened report of the full asset
// set, soft-deleted records included.
func (c *UploadController) ExportCSV(ctx *gin.Context) {
	assets, err := c.Service.ListAssets(ctx.Request.Context(), &models.ListAssetsParams{IncludeDeleted: true})
	if err != nil {
		writeProblem(ctx, err)
		return
	}

	filename := fmt.Sprintf("aktywa_%s.csv", time.Now().Format("20060102"))
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Status(http.StatusOK)

	if err := serializers.WriteAssetsCSV(ctx.Writer, assets); err != nil {
		// headers are gone already, just log via gin's error list
		_ = ctx.Error(err)
	}
}

func writeProblem(ctx *gin.Context, err error) {
	var apiErr problem.APIError
	if !errors.As(err, &apiErr) {
		apiErr = problem.NewInternalServerError(err.Error())
	}
	ctx.Header("Content-Type", "application/problem+json")
	ctx.AbortWithStatusJSON(apiErr.Status, apiErr)
}
