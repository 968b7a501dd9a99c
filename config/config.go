package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidDuration = errors.New("config: invalid duration")
	ErrInvalidNumber   = errors.New("config: invalid number")
)

type Config struct {
	HTTPAddr      string        // HTTP 監聽位址
	NatsURL       string        // 空字串表示不啟用 NATS
	NatsToken     string
	ActionSubject string        // 接收動作訊息的 subject
	StateSubject  string        // 發布狀態快照的 subject
	DBPath        string        // SQLite 檔案路徑
	ClockInterval time.Duration // 盲注計時器檢查間隔
	ReadyTimeout  int           // 自動開下一手前等待秒數
	LogLevel      string
}

func Default() *Config {
	return &Config{
		HTTPAddr:      ":8080",
		ActionSubject: "dealer.actions",
		StateSubject:  "dealer.state",
		DBPath:        "pokerdealer.db",
		ClockInterval: time.Second,
		ReadyTimeout:  10,
		LogLevel:      "info",
	}
}

/*
Load 讀取 .env 與環境變數
  - .env 不存在只會警告
  - 未設定的變數使用預設值
*/
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			log.Warnf("unable to load %s: %v", file, err)
			continue
		}
		log.Infof("%s loaded.", file)
	}

	c := Default()
	c.HTTPAddr = lookup("DEALER_HTTP_ADDR", c.HTTPAddr)
	c.NatsURL = lookup("DEALER_NATS_URL", c.NatsURL)
	c.NatsToken = lookup("DEALER_NATS_TOKEN", c.NatsToken)
	c.ActionSubject = lookup("DEALER_ACTION_SUBJECT", c.ActionSubject)
	c.StateSubject = lookup("DEALER_STATE_SUBJECT", c.StateSubject)
	c.DBPath = lookup("DEALER_DB_PATH", c.DBPath)
	c.LogLevel = lookup("DEALER_LOG_LEVEL", c.LogLevel)

	if v, ok := os.LookupEnv("DEALER_CLOCK_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, ErrInvalidDuration
		}
		c.ClockInterval = d
	}

	if v, ok := os.LookupEnv("DEALER_READY_TIMEOUT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, ErrInvalidNumber
		}
		c.ReadyTimeout = n
	}

	return c, nil
}

// SetupLogging applies the configured level; unknown levels fall back to info.
func (c *Config) SetupLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q, using info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func lookup(key string, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
