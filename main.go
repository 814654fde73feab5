package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/ymlibrary/ymlibrarybackend/config"
	"github.com/ymlibrary/ymlibrarybackend/database"
	"github.com/ymlibrary/ymlibrarybackend/handlers"
	"github.com/ymlibrary/ymlibrarybackend/models"
	"github.com/ymlibrary/ymlibrarybackend/repository"
)

const appVersion = "1.0.0"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabasePath, cfg.Debug)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}
	if err := database.Ping(db); err != nil {
		log.Fatalf("FATAL: Database connectivity check failed: %v", err)
	}
	log.Println("Database connectivity check passed")

	userRepo := repository.NewGormUserRepository(db)
	catalogRepo := repository.NewGormStorageCatalogRepository(db)
	backupRepo, err := repository.NewGormBackupStatusRepository(db)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize backup status repository: %v", err)
	}

	if err := seedInitialUser(userRepo); err != nil {
		log.Fatalf("FATAL: Failed to seed initial user: %v", err)
	}

	authHandler := handlers.NewAuthHandler(userRepo)
	catalogHandler := &handlers.StorageCatalogHandler{Repo: catalogRepo}
	backupHandler := &handlers.BackupStatusHandler{Repo: backupRepo}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"}, //TODO: restrict outside development
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	handlers.RegisterRoutes(r, authHandler, catalogHandler, backupHandler, appVersion)

	serverAddr := ":" + cfg.Port
	log.Printf("Server listening on %s (env: %s)", serverAddr, cfg.AppEnv)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

// seedInitialUser creates a first login account when the user table is
// empty. Accounts are otherwise provisioned out-of-band; without this there
// would be no way to use the login endpoint on a fresh database.
func seedInitialUser(userRepo repository.UserRepository) error {
	count, err := userRepo.CountAll()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := uuid.New().String()
	admin := &models.User{Name: "admin", Nickname: "admin", Password: password}
	if err := userRepo.Create(admin); err != nil {
		return err
	}
	log.Printf("Seeded initial user 'admin' with password %s, change it after first login", password)
	return nil
}
