// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseURL   string `yaml:"database_url" env:"DATABASE_URL"`
	OpenAIKey     string `yaml:"openai_key" env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	OptionModel   string `yaml:"option_model"`
	AnswerModel   string `yaml:"answer_model"`
	//Telegram notifications are optional, reporter stays disabled without a token
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	//Browser behavior
	Headless      bool `yaml:"headless"`
	SettleDelayMs int  `yaml:"settle_delay_ms"`
	//Submission behavior
	SubmitMode    string `yaml:"submit_mode"` // manual | auto
	ReviewWindowS int    `yaml:"review_window_seconds"`
	ApplyTimeoutS int    `yaml:"apply_timeout_seconds"`
	//Paths
	PolicyPath string `yaml:"policy_path"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{Headless: true}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAIKey = key
	}

	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.OpenAIBaseURL = base
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	if headless := os.Getenv("HEADLESS"); headless != "" {
		cfg.Headless = headless != "false" && headless != "0"
	}

	//Set default values if not set
	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = "https://api.openai.com/v1"
	}

	if cfg.OptionModel == "" {
		cfg.OptionModel = "gpt-4"
	}

	if cfg.AnswerModel == "" {
		cfg.AnswerModel = "gpt-4"
	}

	if cfg.SettleDelayMs <= 0 {
		cfg.SettleDelayMs = 200
	}

	if cfg.SubmitMode == "" {
		cfg.SubmitMode = "manual"
	}

	if cfg.ReviewWindowS <= 0 {
		cfg.ReviewWindowS = 10
	}

	if cfg.ApplyTimeoutS <= 0 {
		cfg.ApplyTimeoutS = 300
	}

	//Validate required fields
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	if cfg.SubmitMode != "manual" && cfg.SubmitMode != "auto" {
		log.Fatalf("Invalid submit_mode %q (want manual or auto)", cfg.SubmitMode)
	}

	return cfg
}
