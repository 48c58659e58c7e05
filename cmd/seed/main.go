// Command seed runs the operational data jobs against MongoDB.
//
//	seed trips                     create the sample trips
//	seed admin                     create/repair the admin and test accounts
//	seed chats                     open admin chats with sample messages
//	seed role --phone X --role Y   patch one account's role
//
// Connection and credentials come from the environment (MONGO_URI,
// SEED_ADMIN_PASSWORD, SEED_USER_PASSWORD).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"haphuong/internal/config"
	"haphuong/internal/repositories/mongodb"
	"haphuong/internal/seed"
	"haphuong/pkg/database"
	"haphuong/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.InfoLevel,
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	userRepo := mongodb.NewUserRepository(db.Database)
	tripRepo := mongodb.NewTripRepository(db.Database, nil)
	chatRepo := mongodb.NewChatRepository(db.Database, nil)

	switch os.Args[1] {
	case "trips":
		err = seed.Trips(ctx, tripRepo, appLogger)

	case "admin":
		adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
		userPassword := os.Getenv("SEED_USER_PASSWORD")
		err = seed.Admin(ctx, userRepo, adminPassword, userPassword, appLogger)

	case "chats":
		err = seed.Chats(ctx, userRepo, chatRepo, appLogger)

	case "role":
		fs := flag.NewFlagSet("role", flag.ExitOnError)
		phone := fs.String("phone", "", "account phone number")
		role := fs.String("role", "", "new role: user, admin or driver")
		fs.Parse(os.Args[2:])
		if *phone == "" || *role == "" {
			fs.Usage()
			os.Exit(2)
		}
		err = seed.UpdateRole(ctx, userRepo, *phone, *role, appLogger)

	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		appLogger.WithError(err).Fatal("Seed job failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: seed <trips|admin|chats|role> [flags]")
}
