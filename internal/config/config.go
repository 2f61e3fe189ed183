package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	AI       AI       `mapstructure:"ai"`
	Briefing Briefing `mapstructure:"briefing"`
	Redis    Redis    `mapstructure:"redis"`
	Email    Email    `mapstructure:"email"`
	Schedule Schedule `mapstructure:"schedule"`
	Server   Server   `mapstructure:"server"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// AI holds classifier endpoint configuration
type AI struct {
	APIKey         string  `mapstructure:"api_key"`
	APIURL         string  `mapstructure:"api_url"`
	Model          string  `mapstructure:"model"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	Temperature    float32 `mapstructure:"temperature"`
	ConnectTimeout string  `mapstructure:"connect_timeout"`
	RequestTimeout string  `mapstructure:"request_timeout"`
}

// Briefing holds pipeline behavior configuration
type Briefing struct {
	MaxArticles    int      `mapstructure:"max_articles"`
	InterestTags   []string `mapstructure:"interest_tags"`
	BonusKeywords  []string `mapstructure:"bonus_keywords"`
	RecipientEmail string   `mapstructure:"recipient_email"`
	RedisKeyPrefix string   `mapstructure:"redis_key_prefix"`
	PacingBase     string   `mapstructure:"pacing_base"`
}

// Redis holds staging store connection configuration
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Email holds SMTP delivery configuration
type Email struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Schedule holds the cron trigger configuration
type Schedule struct {
	Spec string `mapstructure:"spec"`
}

// Server holds the status server configuration
type Server struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file, environment
// variables, and defaults, in ascending precedence of env over file.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".dailybrief")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// AI defaults
	viper.SetDefault("ai.api_url", "https://api.siliconflow.cn/v1/chat/completions")
	viper.SetDefault("ai.model", "Qwen/Qwen2.5-7B-Instruct")
	viper.SetDefault("ai.max_tokens", 300)
	viper.SetDefault("ai.temperature", 0.5)
	viper.SetDefault("ai.connect_timeout", "30s")
	viper.SetDefault("ai.request_timeout", "120s")

	// Briefing defaults. Interest tags are ordered: earlier tags rank higher.
	viper.SetDefault("briefing.max_articles", 10)
	viper.SetDefault("briefing.interest_tags", []string{"AI", "Python", "Java", "Go", "架构", "前端"})
	viper.SetDefault("briefing.bonus_keywords", []string{"ai", "llm", "gpt", "机器学习", "深度学习", "ai应用", "大模型"})
	viper.SetDefault("briefing.redis_key_prefix", "briefing:articles")
	viper.SetDefault("briefing.pacing_base", "500ms")

	// Redis defaults
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	// Email defaults
	viper.SetDefault("email.port", 587)
	viper.SetDefault("email.from_name", "Daily Brief")

	// Schedule defaults: every day at 10:05
	viper.SetDefault("schedule.spec", "5 10 * * *")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.api_key", []string{
		"AI_API_KEY",
		"SILICONFLOW_API_KEY",
		"OPENAI_API_KEY",
	})

	bindEnvKeys("redis.addr", []string{
		"REDIS_ADDR",
	})

	bindEnvKeys("redis.password", []string{
		"REDIS_PASSWORD",
	})

	bindEnvKeys("email.host", []string{
		"SMTP_HOST",
		"EMAIL_SMTP_HOST",
	})

	bindEnvKeys("email.username", []string{
		"SMTP_USERNAME",
		"EMAIL_USERNAME",
	})

	bindEnvKeys("email.password", []string{
		"SMTP_PASSWORD",
		"EMAIL_PASSWORD",
	})

	bindEnvKeys("briefing.recipient_email", []string{
		"RECIPIENT_EMAIL",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"DAILYBRIEF_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig validates duration strings up front so misconfiguration
// fails at startup rather than mid-run.
func postProcessConfig(config *Config) error {
	durations := map[string]string{
		"ai.connect_timeout":   config.AI.ConnectTimeout,
		"ai.request_timeout":   config.AI.RequestTimeout,
		"briefing.pacing_base": config.Briefing.PacingBase,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	return nil
}

// validateConfig ensures required configuration is present
func validateConfig(config *Config) error {
	var errors []string

	if config.AI.APIKey == "" {
		errors = append(errors, "AI API key is required. Set AI_API_KEY environment variable or ai.api_key in config file")
	}

	if config.Briefing.MaxArticles <= 0 {
		errors = append(errors, "briefing.max_articles must be positive")
	}

	if len(config.Briefing.InterestTags) == 0 {
		errors = append(errors, "briefing.interest_tags must not be empty")
	}

	// SMTP settings are validated together: partial configuration is a
	// misconfiguration, fully absent means dry-run only.
	if config.Email.Host != "" || config.Email.Username != "" {
		if config.Email.Host == "" {
			errors = append(errors, "SMTP host is required when email is configured")
		}
		if config.Email.Username == "" {
			errors = append(errors, "SMTP username is required when email is configured")
		}
		if config.Email.Password == "" {
			errors = append(errors, "SMTP password is required when email is configured")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ConnectTimeout returns the parsed classifier connect timeout.
func (a AI) ConnectTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(a.ConnectTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// RequestTimeoutDuration returns the parsed classifier request timeout. The
// read timeout is deliberately generous: model generation can be slow.
func (a AI) RequestTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(a.RequestTimeout)
	if err != nil || d <= 0 {
		return 120 * time.Second
	}
	return d
}

// PacingBaseDuration returns the parsed inter-request pacing base delay.
func (b Briefing) PacingBaseDuration() time.Duration {
	d, err := time.ParseDuration(b.PacingBase)
	if err != nil || d < 0 {
		return 500 * time.Millisecond
	}
	return d
}

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
