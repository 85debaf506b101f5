package config

import "os"

type S3 struct {
	Region     string
	AccessKey  string
	SecretKey  string
	BucketName string
}

type Generator struct {
	BaseURL      string
	APIKey       string
	TextModelID  string
	ImageModelID string
}

type Twitter struct {
	APIKey            string
	APIKeySecret      string
	AccessToken       string
	AccessTokenSecret string
}

type Config struct {
	PostgresURI         string
	RedisURI            string
	FrontendURL         string
	S3                  S3
	Generator           Generator
	SecretKey           string
	AllowEnvCredentials bool
	DevTwitter          Twitter
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI: getEnv("POSTGRES_URI", ""),
		RedisURI:    getEnv("REDIS_URI", ""),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		S3: S3{
			Region:     getEnv("AWS_REGION", "us-east-2"),
			AccessKey:  getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BucketName: getEnv("AWS_BUCKET_NAME_POST", ""),
		},
		Generator: Generator{
			BaseURL:      getEnv("GENERATOR_URL", ""),
			APIKey:       getEnv("GENERATOR_API_KEY", ""),
			TextModelID:  getEnv("TEXT_MODEL_ID", "meta.llama3-70b-instruct-v1:0"),
			ImageModelID: getEnv("IMAGE_MODEL_ID", "stability.stable-diffusion-xl-v1"),
		},
		SecretKey:           getEnv("SECRET_KEY", ""),
		AllowEnvCredentials: getEnv("ALLOW_ENV_CREDENTIALS", "") == "true",
		DevTwitter: Twitter{
			APIKey:            getEnv("TWITTER_API_KEY", ""),
			APIKeySecret:      getEnv("TWITTER_API_KEY_SECRET", ""),
			AccessToken:       getEnv("TWITTER_ACCESS_TOKEN", ""),
			AccessTokenSecret: getEnv("TWITTER_ACCESS_TOKEN_SECRET", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
