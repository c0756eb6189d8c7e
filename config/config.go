package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type Redis struct {
	Addr string
}

type Config struct {
	HTTP  HTTP
	DB    DB
	Redis Redis
	JWT   struct {
		Secret  string
		Issuer  string
		ExpDays int
	}
	ProductKeySecret string
}

// Load reads the YAML config at path. A .env file alongside the process is
// loaded first; JWT_SECRET and PRODUCT_KEY_SECRET env vars override the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 9500)
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "realty_hub")
	v.SetDefault("redis.addr", "")
	v.SetDefault("jwt.issuer", "realty-hub")
	v.SetDefault("jwt.exp_days", 5)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		HTTP:  HTTP{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		DB:    DB{Host: v.GetString("db.host"), Port: v.GetInt("db.port"), User: v.GetString("db.user"), Pass: v.GetString("db.pass"), Name: v.GetString("db.name")},
		Redis: Redis{Addr: v.GetString("redis.addr")},
	}
	cfg.JWT.Secret = v.GetString("jwt.secret")
	if env := os.Getenv("JWT_SECRET"); env != "" {
		cfg.JWT.Secret = env
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	cfg.JWT.ExpDays = v.GetInt("jwt.exp_days")
	if cfg.JWT.ExpDays <= 0 {
		cfg.JWT.ExpDays = 5
	}
	cfg.ProductKeySecret = v.GetString("product_key.secret")
	if env := os.Getenv("PRODUCT_KEY_SECRET"); env != "" {
		cfg.ProductKeySecret = env
	}
	if cfg.ProductKeySecret == "" {
		cfg.ProductKeySecret = "dev-product-key-secret"
	}
	return cfg, nil
}
