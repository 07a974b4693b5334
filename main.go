// main.go
package main

import (
	"context"
	"log"

	"movie-reviews/cmd"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/wire"
	"movie-reviews/pkg/database"
	"movie-reviews/pkg/token"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	// Connect to the document store
	db, err := database.InitFirestore(ctx, config.Firebase)
	if err != nil {
		logger.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Document store connected",
		zap.String("project_id", config.Firebase.ProjectID),
		zap.String("collection", config.Reviews.Collection),
	)

	// Initialize the token verifier
	verifier, err := token.NewFirebaseVerifier(ctx, config.Firebase.ProjectID, config.Firebase.CredentialsFile, logger)
	if err != nil {
		logger.Fatal("Failed to init token verifier", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, config.Reviews.Collection, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, verifier, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
