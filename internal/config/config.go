// Package config 從環境變數讀取服務設定。
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"
)

// DBConfig PostgreSQL 連線設定
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// URL 組出 pgx 與 golang-migrate 共用的連線字串
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config 服務整體設定
type Config struct {
	SecretKey   string
	DB          DBConfig
	Redis       RedisConfig
	WorkerCount int
	SessionTTL  time.Duration
	HTTPAddr    string
	LogLevel    string
}

// Load 讀取環境變數；必填值缺漏或格式錯誤時回傳錯誤
func Load() (*Config, error) {
	cfg := &Config{
		DB: DBConfig{
			Port:    5432,
			SSLMode: "disable",
		},
		WorkerCount: 1,
		SessionTTL:  24 * time.Hour,
		HTTPAddr:    ":8080",
		LogLevel:    "info",
	}

	cfg.SecretKey = os.Getenv("SECRET_KEY")
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("環境變數 SECRET_KEY 未設定")
	}

	for name, dst := range map[string]*string{
		"DB_HOST": &cfg.DB.Host,
		"DB_USER": &cfg.DB.User,
		"DB_NAME": &cfg.DB.Name,
	} {
		*dst = os.Getenv(name)
		if *dst == "" {
			return nil, fmt.Errorf("環境變數 %s 未設定", name)
		}
	}
	cfg.DB.Password = os.Getenv("DB_PASSWORD")
	if v := os.Getenv("DB_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("無效的 DB_PORT: %q", v)
		}
		cfg.DB.Port = p
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		cfg.DB.SSLMode = v
	}

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("無效的 REDIS_DB: %q", v)
		}
		cfg.Redis.DB = idx
	}

	if v := os.Getenv("WORKER_COUNT"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c <= 0 {
			return nil, fmt.Errorf("無效的 WORKER_COUNT: %q", v)
		}
		cfg.WorkerCount = c
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("無效的 SESSION_TTL: %q", v)
		}
		cfg.SessionTTL = d
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}
