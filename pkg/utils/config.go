package utils

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Firebase FirebaseConfig
	Reviews  ReviewsConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

type ReviewsConfig struct {
	Collection string
	ListCap    int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "movie-reviews")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REVIEWS_COLLECTION", "reviews")
	viper.SetDefault("REVIEWS_LIST_CAP", 50)

	// A missing .env is fine; env vars and defaults still apply.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       viper.GetString("FIREBASE_PROJECT_ID"),
			CredentialsFile: viper.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		},
		Reviews: ReviewsConfig{
			Collection: viper.GetString("REVIEWS_COLLECTION"),
			ListCap:    viper.GetInt("REVIEWS_LIST_CAP"),
		},
	}

	if config.Firebase.ProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}

	if config.Reviews.ListCap < 1 {
		config.Reviews.ListCap = 50
	}

	return config, nil
}
