package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug                        bool   `envconfig:"debug"`
	Port                         int    `envconfig:"port" default:"5000"`
	PostgresHost                 string `envconfig:"postgres_host"`
	PostgresUser                 string `envconfig:"postgres_user"`
	PostgresDB                   string `envconfig:"postgres_db"`
	PostgresPort                 int    `envconfig:"postgres_port"`
	PostgresPassword             string `envconfig:"postgres_password"`
	JWTSecret                    string `envconfig:"jwt_secret"`
	Env                          string `envconfig:"env"`
	BaseUrl                      string `envconfig:"base_url"`
	Host                         string `envconfig:"host"`
	MailgunApiKey                string `envconfig:"mg_public_api_key"`
	MgDomain                     string `envconfig:"mg_domain"`
	MgEmailFrom                  string `envconfig:"email_from"`
	GoogleClientID               string `envconfig:"google_client_id"`
	GoogleClientSecret           string `envconfig:"google_client_secret"`
	GoogleRedirectURL            string `envconfig:"google_redirect_url"`
	GoogleApplicationCredentials string `envconfig:"google_application_credentials"`
	GeminiApiKey                 string `envconfig:"gemini_api_key"`
	GeminiModel                  string `envconfig:"gemini_model" default:"gemini-1.5-flash"`
	AwsBucketName                string `envconfig:"aws_bucket_name"`
	AccessControlAllowOrigin     string `envconfig:"access_control_allow_origin"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("cookiepedia", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
