package register

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"

	"github.com/medregister-pl/asset-register/pkg/register/handler"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/problem"
	"github.com/medregister-pl/asset-register/pkg/register/middleware"
	"github.com/medregister-pl/asset-register/pkg/register/services"
)

var notFoundResponse = fizz.Response(
	"404",
	"Not Found",
	nil,
	nil,
	nil,
)

// RouterConfig bundles everything NewRouter needs; no globals.
type RouterConfig struct {
	Secret  []byte
	Auth    *handler.AuthController
	Assets  *handler.AssetsController
	Uploads *handler.UploadController
	Admin   *handler.AdminController
}

var errorHookOnce sync.Once

// SetupErrorHook installs the tonic hook that renders every error as an
// RFC7807 problem document. Safe to call more than once.
func SetupErrorHook() {
	errorHookOnce.Do(func() {
		tonic.SetErrorHook(func(c *gin.Context, err error) (int, interface{}) {
			// 1) bind/validate errors → 400 with invalidParams
			var be tonic.BindError
			var verrs validator.ValidationErrors
			if errors.As(err, &be) || errors.As(err, &verrs) {
				apiErr := problem.NewBadRequest("body", "Niepoprawne dane wejściowe", invalidParams(err)...)
				c.Header("Content-Type", "application/problem+json")
				return apiErr.Status, apiErr
			}

			// 2) our own APIError → pass-through
			var apiErr problem.APIError
			if errors.As(err, &apiErr) {
				c.Header("Content-Type", "application/problem+json")
				return apiErr.Status, apiErr
			}

			// 3) everything else → 500
			internal := problem.NewInternalServerError(err.Error())
			c.Header("Content-Type", "application/problem+json")
			return internal.Status, internal
		})
	})
}

func invalidParams(err error) []problem.InvalidParam {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []problem.InvalidParam{{Name: "body", Reason: err.Error()}}
	}
	out := make([]problem.InvalidParam, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if name != "" {
			name = strings.ToLower(name[:1]) + name[1:]
		}
		out = append(out, problem.InvalidParam{Name: name, Reason: humanReason(fe)})
	}
	return out
}

func humanReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "jest wymagane"
	case "email":
		return "musi być poprawnym adresem e-mail"
	default:
		return fe.Error()
	}
}

func NewRouter(cfg RouterConfig) *fizz.Fizz {
	SetupErrorHook()

	g := gin.Default()
	f := fizz.NewFromEngine(g)

	info := &openapi.Info{
		Title:       "Rejestr aktywów szpitalnych",
		Description: "API rejestru aktywów szpitalnych: przesyłanie zbiorów CSV, historia wersji, administracja",
		Version:     "1.0.0",
	}

	readGuard := middleware.RequireAccess(cfg.Secret, services.ScopeRead)
	writeGuard := middleware.RequireAccess(cfg.Secret, services.ScopeWrite)
	adminGuard := middleware.RequireAccess(cfg.Secret, services.ScopeAdmin)

	// Public
	f.POST("/auth/login",
		[]fizz.OperationOption{fizz.Summary("Logowanie i wydanie tokenu dostępu")},
		tonic.Handler(cfg.Auth.Login, 200),
	)

	// Read endpoints
	read := f.Group("", "Odczyt", "Podgląd aktywów i historii", readGuard)
	read.GET("/assets",
		[]fizz.OperationOption{fizz.Summary("Lista aktywów pobrana na żywo z serwisu zewnętrznego")},
		tonic.Handler(cfg.Assets.ListAssets, 200),
	)
	read.GET("/assets/history/:id",
		[]fizz.OperationOption{
			fizz.Summary("Historia wersji aktywa, od najstarszej do najnowszej"),
			notFoundResponse,
		},
		tonic.Handler(cfg.Assets.AssetHistory, 200),
	)
	read.GET("/uploads",
		[]fizz.OperationOption{fizz.Summary("Lokalna historia przesłanych plików")},
		tonic.Handler(cfg.Assets.ListUploads, 200),
	)

	// Multipart upload and the CSV report live on the bare engine: tonic's
	// typed binding covers neither file uploads nor streamed downloads.
	g.GET("/export_csv", readGuard, cfg.Uploads.ExportCSV)
	g.POST("/new_data", writeGuard, cfg.Uploads.NewData)
	g.POST("/asset_edit", writeGuard, cfg.Uploads.AssetEdit)

	// Administration
	admin := f.Group("", "Administracja", "Zarządzanie użytkownikami, szpitalami i rolami", adminGuard)
	admin.POST("/asset_delete/:id",
		[]fizz.OperationOption{
			fizz.Summary("Usunięcie aktywa w serwisie zewnętrznym"),
			notFoundResponse,
		},
		tonic.Handler(cfg.Assets.DeleteAsset, 202),
	)

	admin.GET("/users", []fizz.OperationOption{fizz.Summary("Lista użytkowników")}, tonic.Handler(cfg.Admin.ListUsers, 200))
	admin.POST("/users", []fizz.OperationOption{fizz.Summary("Utworzenie użytkownika")}, tonic.Handler(cfg.Admin.CreateUser, 201))
	admin.GET("/users/:id", []fizz.OperationOption{fizz.Summary("Szczegóły użytkownika"), notFoundResponse}, tonic.Handler(cfg.Admin.GetUser, 200))
	admin.PUT("/users/:id", []fizz.OperationOption{fizz.Summary("Aktualizacja użytkownika"), notFoundResponse}, tonic.Handler(cfg.Admin.UpdateUser, 200))
	admin.DELETE("/users/:id", []fizz.OperationOption{fizz.Summary("Usunięcie użytkownika"), notFoundResponse}, tonic.Handler(cfg.Admin.DeleteUser, 204))

	admin.GET("/hospitals", []fizz.OperationOption{fizz.Summary("Lista szpitali")}, tonic.Handler(cfg.Admin.ListHospitals, 200))
	admin.POST("/hospitals", []fizz.OperationOption{fizz.Summary("Utworzenie szpitala")}, tonic.Handler(cfg.Admin.CreateHospital, 201))
	admin.PUT("/hospitals/:id", []fizz.OperationOption{fizz.Summary("Aktualizacja szpitala"), notFoundResponse}, tonic.Handler(cfg.Admin.UpdateHospital, 200))
	admin.DELETE("/hospitals/:id", []fizz.OperationOption{fizz.Summary("Usunięcie szpitala"), notFoundResponse}, tonic.Handler(cfg.Admin.DeleteHospital, 204))

	admin.GET("/roles", []fizz.OperationOption{fizz.Summary("Lista ról")}, tonic.Handler(cfg.Admin.ListRoles, 200))
	admin.POST("/roles", []fizz.OperationOption{fizz.Summary("Utworzenie roli")}, tonic.Handler(cfg.Admin.CreateRole, 201))
	admin.PUT("/roles/:id", []fizz.OperationOption{fizz.Summary("Aktualizacja roli"), notFoundResponse}, tonic.Handler(cfg.Admin.UpdateRole, 200))
	admin.DELETE("/roles/:id", []fizz.OperationOption{fizz.Summary("Usunięcie roli"), notFoundResponse}, tonic.Handler(cfg.Admin.DeleteRole, 204))

	admin.GET("/stats", []fizz.OperationOption{fizz.Summary("Liczniki panelu administracyjnego")}, tonic.Handler(cfg.Admin.GetStats, 200))

	// OpenAPI document
	f.GET("/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}
