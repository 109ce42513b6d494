package config

import (
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Env  string `env:"APP_ENV" env-default:"development"`
		Port int    `env:"APP_PORT" env-default:"8080"`
	}
	DBUrl     string `env:"SUPABASE_DB_URL" env-required:"true"`
	JWTSecret string `env:"JWT_SECRET" env-required:"true"`
	Supabase  struct {
		URL            string `env:"NEXT_PUBLIC_SUPABASE_URL"`
		AnonKey        string `env:"SUPABASE_ANON_KEY"`
		ServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	}
	Storage struct {
		Bucket    string `env:"AWS_BUCKET_NAME" env-default:"media"`
		Region    string `env:"AWS_REGION" env-default:"us-east-1"`
		AccessKey string `env:"AWS_ACCESS_KEY_ID"`
		SecretKey string `env:"AWS_SECRET_ACCESS_KEY"`
		// Endpoint S3 compatible (Supabase Storage), vide pour AWS
		Endpoint  string `env:"S3_ENDPOINT"`
		PublicURL string `env:"STORAGE_PUBLIC_URL"`
	}
	AI struct {
		URL    string `env:"AI_API_URL" env-default:"https://api.openai.com/v1/chat/completions"`
		Key    string `env:"AI_API_KEY"`
		Model  string `env:"AI_MODEL" env-default:"gpt-4o-mini"`
		Prompt string `env:"AI_CAPTION_PROMPT"`
	}
	Purge struct {
		Enabled  bool          `env:"PURGE_ENABLED" env-default:"true"`
		Interval time.Duration `env:"PURGE_INTERVAL" env-default:"1h"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

// LoadConfig lit le .env (s'il existe) puis les variables d'environnement
func LoadConfig() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
