// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	StoragePath    string `mapstructure:"STORAGE_PATH"`
	UsersFile      string `mapstructure:"USERS_FILE"`
	TopicsFile     string `mapstructure:"TOPICS_FILE"`
	QuestionsFile  string `mapstructure:"QUESTIONS_FILE"`
	AnswersFile    string `mapstructure:"ANSWERS_FILE"`
	LikesFile      string `mapstructure:"LIKES_FILE"`
	WriteIndented  bool   `mapstructure:"WRITE_INDENTED"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	TracingEnabled bool   `mapstructure:"TRACING_ENABLED"`
	TraceExporter  string `mapstructure:"TRACE_EXPORTER"`
	OTLPEndpoint   string `mapstructure:"OTLP_ENDPOINT"`
	TraceSampling  string `mapstructure:"TRACE_SAMPLING"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables and defaults
	// are enough to run.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	viper.SetDefault("PORT", "8375")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORAGE_PATH", "data")
	viper.SetDefault("USERS_FILE", "users.json")
	viper.SetDefault("TOPICS_FILE", "topics.json")
	viper.SetDefault("QUESTIONS_FILE", "questions.json")
	viper.SetDefault("ANSWERS_FILE", "questionAnswers.json")
	viper.SetDefault("LIKES_FILE", "questionLikes.json")
	viper.SetDefault("WRITE_INDENTED", true)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACE_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACE_SAMPLING", "1.0")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.StoragePath == "" {
		return errors.New("STORAGE_PATH is required")
	}
	for name, file := range map[string]string{
		"USERS_FILE":     c.UsersFile,
		"TOPICS_FILE":    c.TopicsFile,
		"QUESTIONS_FILE": c.QuestionsFile,
		"ANSWERS_FILE":   c.AnswersFile,
		"LIKES_FILE":     c.LikesFile,
	} {
		if file == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction && c.AllowedOrigins == "*" {
		log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
	}

	return nil
}
