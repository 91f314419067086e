package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// MailConfig contains the SMTP settings for the welcome mailer.
// The mailer is optional; when Host is empty no mail is sent.
type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Sender   string `mapstructure:"sender"`
}
