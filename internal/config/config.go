package config

import "time"

// Config is the root application configuration. It is built once at startup
// and passed explicitly into the application root; nothing reads global
// mutable settings after that. Changing the storage DSN means rebuilding the
// storage client from a new Config, not restarting the process.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Generation GenerationConfig `yaml:"generation"`
	Playback   PlaybackConfig   `yaml:"playback"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token verification settings. Token issuance is delegated
// to the external identity provider; the server only verifies.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"kotoba"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"720h"`
}

// GenerationConfig holds generative-language API settings.
type GenerationConfig struct {
	APIKey         string        `yaml:"api_key"         env:"GENERATION_API_KEY"`
	Model          string        `yaml:"model"           env:"GENERATION_MODEL"           env-default:"claude-sonnet-4-5"`
	TargetLanguage string        `yaml:"target_language" env:"GENERATION_TARGET_LANGUAGE" env-default:"Japanese"`
	MaxWordsPerJob int           `yaml:"max_words"       env:"GENERATION_MAX_WORDS"       env-default:"20"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"GENERATION_REQUEST_TIMEOUT" env-default:"60s"`
}

// PlaybackConfig holds default timings for the flashcard playback sequencer.
// All delays may be zero.
type PlaybackConfig struct {
	FlipSettle time.Duration `yaml:"flip_settle" env:"PLAYBACK_FLIP_SETTLE" env-default:"600ms"`
	BlockGap   time.Duration `yaml:"block_gap"   env:"PLAYBACK_BLOCK_GAP"   env-default:"1s"`
	WordGap    time.Duration `yaml:"word_gap"    env:"PLAYBACK_WORD_GAP"    env-default:"1500ms"`
	Rate       float64       `yaml:"rate"        env:"PLAYBACK_RATE"        env-default:"1.0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings for the single-page front-end.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
