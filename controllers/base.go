package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"PlayoffPredictor/cache"
	"PlayoffPredictor/feed"
	"PlayoffPredictor/middlewares"
	"PlayoffPredictor/models"
	"PlayoffPredictor/seed"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	DB     *gorm.DB
	Router *gin.Engine
}

var errList = make(map[string]string)

// ===============================
// SECURE ADMIN SEEDING
// ===============================
func seedAdmin(db *gorm.DB) error {
	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	adminPassword := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))

	// If environment vars aren't provided, do NOTHING.
	if adminEmail == "" || adminPassword == "" {
		log.Println("[seedAdmin] ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin creation.")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		log.Println("[seedAdmin] Creating initial admin:", adminEmail)

		admin := models.User{
			Username: strings.Split(adminEmail, "@")[0],
			Email:    adminEmail,
			Password: adminPassword,
		}
		admin.Prepare()
		admin.IsAdmin = true

		if msgs := admin.Validate(""); len(msgs) > 0 {
			log.Printf("[seedAdmin] validation failed: %+v\n", msgs)
			return nil
		}

		if _, err := admin.SaveUser(db); err != nil {
			log.Printf("[seedAdmin] failed to create admin: %v\n", err)
			return err
		}
		return nil
	}

	// If admin exists, ensure they stay admin
	if err == nil && !existing.IsAdmin {
		log.Println("[seedAdmin] Ensuring admin flag is set for:", adminEmail)
		return db.Model(&existing).Update("is_admin", true).Error
	}

	return err
}

// ===============================
// SERVER INITIALIZATION
// ===============================
func (server *Server) Initialize(DbUser, DbPassword, DbPort, DbHost, DbName string) {
	var dsn string

	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		dsn = os.Getenv("DATABASE_URL")
		if dsn != "" && !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
	} else {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			DbHost, DbUser, DbPassword, DbName, DbPort,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Cannot connect to Postgres: %v", err)
	}
	server.DB = db

	server.Migrate()

	// Redis init (safe failure)
	if err := cache.InitFromEnv(); err != nil {
		log.Printf("warning: could not connect to redis: %v", err)
	}

	if err := seedAdmin(server.DB); err != nil {
		log.Printf("error seeding admin user: %v\n", err)
	}

	// Dev convenience: SEED_DB=true wipes and reseeds demo data.
	if strings.EqualFold(os.Getenv("SEED_DB"), "true") && !strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		seed.Load(server.DB)
	}

	// Load the playoff field once at startup; the cron schedule keeps it
	// fresh afterwards. A dead feed falls back to the static field.
	client := feed.NewClient(feed.LoadConfig())
	if err := feed.RefreshField(server.DB, client); err != nil {
		log.Printf("warning: playoff field refresh failed: %v", err)
	}
	feed.StartSchedule(server.DB, client)

	server.setupRouter()
}

// Migrate runs the schema migrations; split out so tests can share it.
func (server *Server) Migrate() {
	if err := server.DB.AutoMigrate(
		&models.User{},
		&models.LoginToken{},
		&models.PlayoffTeam{},
		&models.Pick{},
		&models.GameResult{},
		&models.Group{},
		&models.GroupMember{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func (server *Server) setupRouter() {
	server.Router = gin.Default()
	server.Router.Use(middlewares.CORSMiddleware())
	server.Router.Use(middlewares.RateLimitMiddleware())
	server.Router.Use(middlewares.MetricsMiddleware())
	server.initializeRoutes()
}

func (server *Server) Run(addr string) {
	log.Fatal(http.ListenAndServe(addr, server.Router))
}
