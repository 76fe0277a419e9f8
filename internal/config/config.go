package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAllowedOrigins are the deployed frontends accepted by CORS.
var DefaultAllowedOrigins = []string{
	"https://ccpc-cuj.web.app",
	"https://ccpc-cuj.firebaseapp.com",
	"https://ccpccuj-mem-reg-2026.hf.space",
}

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Admin     AdminConfig
	Email     EmailConfig
	LogLevel  string
	LogFormat string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            int
	Mode            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Addr is the listen address on all interfaces.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", s.Port)
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI                    string
	Database               string
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	OperationTimeout       time.Duration
}

// AdminConfig holds the admin console secrets
type AdminConfig struct {
	Token             string
	Emails            []string
	Passwords         []string
	GuardLegacyRoutes bool
	BcryptCost        int
}

// EmailConfig holds email provider configuration
type EmailConfig struct {
	APIKey     string
	From       string
	SenderName string
	APIURL     string
	Timeout    time.Duration
	Mock       bool
}

// Load loads configuration from environment variables and an optional config file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	port, err := ParsePort(v.GetString("server.port"))
	if err != nil {
		return nil, err
	}

	uri := v.GetString("mongodb.uri")
	database := v.GetString("mongodb.database")

	origins := append([]string{}, DefaultAllowedOrigins...)
	origins = append(origins, SplitList(v.GetString("server.allowedOrigins"), ",")...)

	cfg := &Config{
		Server: ServerConfig{
			Port:            port,
			Mode:            v.GetString("server.mode"),
			AllowedOrigins:  origins,
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		MongoDB: MongoDBConfig{
			URI:                    uri,
			Database:               database,
			ServerSelectionTimeout: v.GetDuration("mongodb.serverSelectionTimeout"),
			SocketTimeout:          v.GetDuration("mongodb.socketTimeout"),
			OperationTimeout:       v.GetDuration("mongodb.operationTimeout"),
		},
		Admin: AdminConfig{
			Token:             strings.TrimSpace(v.GetString("admin.token")),
			Emails:            SplitList(v.GetString("admin.email"), AdminListSeparator),
			Passwords:         SplitList(v.GetString("admin.password"), AdminListSeparator),
			GuardLegacyRoutes: v.GetBool("admin.guardLegacyRoutes"),
			BcryptCost:        v.GetInt("admin.bcryptCost"),
		},
		Email: EmailConfig{
			APIKey:     v.GetString("email.apiKey"),
			From:       v.GetString("email.from"),
			SenderName: v.GetString("email.senderName"),
			APIURL:     v.GetString("email.apiUrl"),
			Timeout:    v.GetDuration("email.timeout"),
			Mock:       v.GetBool("email.mock"),
		},
		LogLevel:  v.GetString("logLevel"),
		LogFormat: v.GetString("logFormat"),
	}
	return cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.serverSelectionTimeout", 5*time.Second)
	v.SetDefault("mongodb.socketTimeout", 45*time.Second)
	v.SetDefault("mongodb.operationTimeout", 10*time.Second)
	v.SetDefault("admin.guardLegacyRoutes", true)
	v.SetDefault("admin.bcryptCost", 10)
	v.SetDefault("email.senderName", "Code Crafters Programming Club")
	v.SetDefault("email.timeout", 15*time.Second)
	v.SetDefault("email.mock", false)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "json")
}

// bindEnv maps the deployment's environment variable names onto config keys.
func bindEnv(v *viper.Viper) error {
	bindings := [][]string{
		{"server.port", "PORT"},
		{"server.mode", "GIN_MODE"},
		{"server.allowedOrigins", "CORS_ALLOWED_ORIGINS"},
		{"mongodb.uri", "MONGO_URI", "MONGODB_URI"},
		{"mongodb.database", "MONGO_DB"},
		{"mongodb.operationTimeout", "MONGO_OPERATION_TIMEOUT"},
		{"admin.token", "ADMIN_TOKEN"},
		{"admin.email", "ADMIN_EMAIL"},
		{"admin.password", "ADMIN_PASSWORD"},
		{"admin.guardLegacyRoutes", "ADMIN_GUARD_LEGACY_ROUTES"},
		{"admin.bcryptCost", "ADMIN_BCRYPT_COST"},
		{"email.apiKey", "BREVO_API_KEY", "EMAIL_SERVICE_CREDENTIALS"},
		{"email.from", "EMAIL_FROM"},
		{"email.senderName", "EMAIL_SENDER_NAME"},
		{"email.apiUrl", "EMAIL_API_URL"},
		{"email.timeout", "EMAIL_TIMEOUT"},
		{"email.mock", "EMAIL_MOCK"},
		{"logLevel", "LOG_LEVEL"},
		{"logFormat", "LOG_FORMAT"},
	}
	for _, b := range bindings {
		if err := v.BindEnv(b...); err != nil {
			return fmt.Errorf("bind env %s: %w", b[0], err)
		}
	}
	return nil
}
