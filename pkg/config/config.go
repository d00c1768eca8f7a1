package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Twilio   TwilioConfig   `mapstructure:"twilio"`
	Session  SessionConfig  `mapstructure:"session"`
	Messages MessagesConfig `mapstructure:"-"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TLS      bool          `mapstructure:"tls"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	AssistantID     string        `mapstructure:"assistant_id"`
	BaseURL         string        `mapstructure:"base_url"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	MaxPollAttempts int           `mapstructure:"max_poll_attempts"`
	StrictSend      bool          `mapstructure:"strict_send"`
}

type TwilioConfig struct {
	AuthToken         string `mapstructure:"auth_token"`
	ValidateSignature bool   `mapstructure:"validate_signature"`
}

type SessionConfig struct {
	ContinueDays int `mapstructure:"continue_days"`
	ExpireDays   int `mapstructure:"expire_days"`
}

// MessagesConfig holds the user-facing reply texts. Defaults are the
// Spanish literals the service has always answered with; any of them can
// be overridden from the messages block in config.yaml.
type MessagesConfig struct {
	MissingFields  string `mapstructure:"missing_fields"`
	AskUser        string `mapstructure:"ask_user"`
	AskUserHint    string `mapstructure:"ask_user_hint"`
	RequiresAction string `mapstructure:"requires_action"`
	NoResponse     string `mapstructure:"no_response"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("⚠️ Warning: Could not load main config file: %v", err)
	}

	setDefaultValues()
	overlaySecretsFromEnv()

	messages, err := loadMessages(viper.GetStringMap("messages"))
	if err != nil {
		return fmt.Errorf("failed to load messages config: %w", err)
	}
	globalConfig.Messages = messages

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func loadMessages(raw map[string]interface{}) (MessagesConfig, error) {
	messages := DefaultMessages()
	if len(raw) == 0 {
		return messages, nil
	}
	if err := mapstructure.Decode(raw, &messages); err != nil {
		return MessagesConfig{}, err
	}
	return messages, nil
}

func DefaultMessages() MessagesConfig {
	return MessagesConfig{
		MissingFields:  "Faltan los campos 'From' o 'Body' en la solicitud.",
		AskUser:        "Hace más de 3 días que no nos contactas. ¿Deseas iniciar una nueva conversación o continuar la anterior?",
		AskUserHint:    "Responde con 'CONTINUAR' o 'NUEVA CONVERSACIÓN'.",
		RequiresAction: "El asistente necesita más información para continuar. ¿Podrías proporcionar más detalles?",
		NoResponse:     "No hubo respuesta del asistente.",
	}
}

func setDefaultValues() {
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Redis.TTL == 0 {
		globalConfig.Redis.TTL = 5 * time.Minute
	}
	if globalConfig.OpenAI.BaseURL == "" {
		globalConfig.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if globalConfig.OpenAI.PollInterval == 0 {
		globalConfig.OpenAI.PollInterval = 5 * time.Second
	}
	if globalConfig.Session.ContinueDays == 0 {
		globalConfig.Session.ContinueDays = 3
	}
	if globalConfig.Session.ExpireDays == 0 {
		globalConfig.Session.ExpireDays = 6 * 30
	}
}

func overlaySecretsFromEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		globalConfig.OpenAI.APIKey = v
	}
	if v := os.Getenv("ASSISTANT_ID"); v != "" {
		globalConfig.OpenAI.AssistantID = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		globalConfig.Twilio.AuthToken = v
	}
}

func GetConfig() *Config {
	return &globalConfig
}
