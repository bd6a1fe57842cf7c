package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/medregister-pl/asset-register/pkg/jobs"
	"github.com/medregister-pl/asset-register/pkg/register"
	"github.com/medregister-pl/asset-register/pkg/register/database"
	"github.com/medregister-pl/asset-register/pkg/register/handler"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/assetstore"
	"github.com/medregister-pl/asset-register/pkg/register/repositories"
	"github.com/medregister-pl/asset-register/pkg/register/services"
)

func main() {
	_ = godotenv.Load()

	apiURL := os.Getenv("ASSET_API_URL")
	apiKey := os.Getenv("ASSET_API_KEY")
	if apiURL == "" || apiKey == "" {
		log.Fatal("ASSET_API_URL and ASSET_API_KEY are required")
	}
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("ASSET_API_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid ASSET_API_TIMEOUT: %v", err)
		}
		timeout = parsed
	}
	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}

	dbcon := "postgres://" +
		os.Getenv("DB_USERNAME") + ":" +
		os.Getenv("DB_PASSWORD") + "@" +
		os.Getenv("DB_HOSTNAME") + "/" +
		os.Getenv("DB_DBNAME")
	db, err := database.Connect(dbcon)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if adminPass := os.Getenv("SEED_ADMIN_PASSWORD"); adminPass != "" {
		if err := database.Seed(context.Background(), db, adminPass); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	store := assetstore.New(apiURL, apiKey, timeout)

	users := repositories.NewUserRepository(db)
	hospitals := repositories.NewHospitalRepository(db)
	roles := repositories.NewRoleRepository(db)
	history := repositories.NewHistoryRepository(db)

	assetSvc := services.NewAssetService(store, history, hospitals, uploadsDir)
	adminSvc := services.NewAdminService(users, hospitals, roles, history, store)
	authSvc := services.NewAuthService(users, secret, 12*time.Hour)

	jobs.ScheduleDailyHealthCheck(context.Background(), store)

	router := register.NewRouter(register.RouterConfig{
		Secret:  secret,
		Auth:    handler.NewAuthController(authSvc),
		Assets:  handler.NewAssetsController(assetSvc),
		Uploads: handler.NewUploadController(assetSvc),
		Admin:   handler.NewAdminController(adminSvc),
	})

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Server is running on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
