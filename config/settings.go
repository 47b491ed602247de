package config

import "time"

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Settings is the typed view of the environment the service runs with.
type Settings struct {
	Port            int
	Env             string
	LogLevel        string
	DBType          string
	DatabaseURL     string
	ReplicaURLs     []string
	BaseURL         string
	JWTSecret       string
	AcceptedOrigins []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration

	GenerateModels       bool
	GenerateColumnReport bool
}

func (s Settings) IsProduction() bool {
	return s.Env == EnvProduction
}

// FromMap builds Settings out of an environment map, filling defaults for
// anything missing.
func FromMap(env map[string]string) Settings {
	return Settings{
		Port:            GetInt(env, "PORT", 8080),
		Env:             GetString(env, "APP_ENV", EnvDevelopment),
		LogLevel:        GetString(env, "LOG_LEVEL", "info"),
		DBType:          GetString(env, "DB_TYPE", "postgres"),
		DatabaseURL:     GetString(env, "DATABASE_URL", ""),
		ReplicaURLs:     GetList(env, "DB_REPLICA_URLS", nil),
		BaseURL:         GetString(env, "BASE_URL", ""),
		JWTSecret:       GetString(env, "JWT_SECRET", ""),
		AcceptedOrigins: GetList(env, "ACCEPTED_ORIGINS", []string{"*"}),
		ReadTimeout:     GetDuration(env, "READ_TIMEOUT_SECONDS", 10*time.Second),
		WriteTimeout:    GetDuration(env, "WRITE_TIMEOUT_SECONDS", 30*time.Second),
		IdleTimeout:     GetDuration(env, "IDLE_TIMEOUT_SECONDS", time.Minute),

		GenerateModels:       GetBool(env, "GENERATE_MODELS", false),
		GenerateColumnReport: GetBool(env, "GENERATE_COLUMN_REPORT", false),
	}
}
