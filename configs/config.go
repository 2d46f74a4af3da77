package config

import (
	"fmt"
	"os"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

// Config is built once at startup and shared read-only across publishers.
// Missing keys resolve to empty strings; validation is deferred to the
// ValidateXxx methods so a partially configured process can still serve
// the platforms it has credentials for.
type Config struct {
	FacebookAccessToken  string
	FacebookPageID       string
	FacebookAPIVersion   string
	FacebookGraphURLBase string
	InstagramAccessToken string
	InstagramUserID      string
	InstagramAPIVersion  string
	InstagramGraphURL    string
	TiktokClientKey      string
	TiktokClientSecret   string
	TiktokAccessToken    string
	TiktokAPIBaseURL     string
	PostgresURI          string
	RedisURI             string
	FrontendURL          string
	R2                   R2
}

func LoadConfig() *Config {
	return &Config{
		FacebookAccessToken:  getEnv("FACEBOOK_ACCESS_TOKEN", ""),
		FacebookPageID:       getEnv("FACEBOOK_PAGE_ID", ""),
		FacebookAPIVersion:   getEnv("FACEBOOK_API_VERSION", "v24.0"),
		FacebookGraphURLBase: getEnv("FACEBOOK_GRAPH_URL", ""),
		InstagramAccessToken: getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
		InstagramUserID:      getEnv("INSTAGRAM_USER_ID", ""),
		InstagramAPIVersion:  getEnv("INSTAGRAM_API_VERSION", ""),
		InstagramGraphURL:    getEnv("INSTAGRAM_GRAPH_URL", ""),
		TiktokClientKey:      getEnv("TIKTOK_CLIENT_KEY", ""),
		TiktokClientSecret:   getEnv("TIKTOK_CLIENT_SECRET", ""),
		TiktokAccessToken:    getEnv("TIKTOK_ACCESS_TOKEN", ""),
		TiktokAPIBaseURL:     getEnv("TIKTOK_API_BASE_URL", "https://open.tiktokapis.com"),
		PostgresURI:          getEnv("POSTGRES_URI", ""),
		RedisURI:             getEnv("REDIS_URI", ""),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) FacebookGraphURL() string {
	if c.FacebookGraphURLBase != "" {
		return c.FacebookGraphURLBase
	}
	return fmt.Sprintf("https://graph.facebook.com/%s", c.FacebookAPIVersion)
}

// InstagramToken returns the Instagram access token, falling back to the
// Facebook Page token when no dedicated token is configured (the Facebook
// Login flow shares one token across both platforms).
func (c *Config) InstagramToken() string {
	if c.InstagramAccessToken != "" {
		return c.InstagramAccessToken
	}
	return c.FacebookAccessToken
}

func (c *Config) InstagramVersion() string {
	if c.InstagramAPIVersion != "" {
		return c.InstagramAPIVersion
	}
	return c.FacebookAPIVersion
}

// InstagramAPIURL defaults to graph.facebook.com (Facebook Login flow).
// Set INSTAGRAM_GRAPH_URL=https://graph.instagram.com/<version> when using
// Instagram Login instead.
func (c *Config) InstagramAPIURL() string {
	if c.InstagramGraphURL != "" {
		return c.InstagramGraphURL
	}
	return fmt.Sprintf("https://graph.facebook.com/%s", c.InstagramVersion())
}

func (c *Config) IsInstagramUsingFacebookLogin() bool {
	return c.InstagramAccessToken == "" && c.FacebookAccessToken != ""
}

func (c *Config) ValidateFacebook() bool {
	return c.FacebookAccessToken != "" && c.FacebookPageID != ""
}

func (c *Config) ValidateInstagram() bool {
	return c.InstagramToken() != "" && c.InstagramUserID != ""
}

func (c *Config) ValidateTiktok() bool {
	return c.TiktokClientKey != "" && c.TiktokClientSecret != ""
}
