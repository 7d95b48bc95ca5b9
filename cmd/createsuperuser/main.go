// Command createsuperuser provisions a staff+superuser account
// directly against the database, for bootstrapping a deployment.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/recipe-api/internal/config"
	"github.com/recipe-api/internal/models"
	"github.com/recipe-api/internal/repository"
	"github.com/recipe-api/internal/service"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config file")
		email      = flag.String("email", "", "email address for the superuser (required)")
		username   = flag.String("username", "", "username for the superuser")
		password   = flag.String("password", "", "password for the superuser (required)")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Token operations are not needed here, so no redis
	authService := service.NewAuthService(repository.NewUserRepository(db), nil, cfg.JWT)

	user, err := authService.CreateSuperuser(*email, *username, *password)
	if err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}

	fmt.Printf("Superuser %s created (id=%d)\n", user.Email, user.ID)
}
