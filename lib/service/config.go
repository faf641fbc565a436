package service

type Config struct {
	DatabaseUri             string `envconfig:"DATABASE_URI" default:"sqlite://wallcal.db"`
	DatabaseMaxConns        int    `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int    `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int    `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	SentryDSN               string `envconfig:"SENTRY_DSN"`
	LogFilePath             string `envconfig:"LOG_FILE_PATH"`
	Host                    string `envconfig:"HOST" default:"0.0.0.0"`
	Port                    int    `envconfig:"PORT" default:"8080"`
	DefaultRateLimit        int    `envconfig:"DEFAULT_RATE_LIMIT" default:"25"`
	StrictRateLimit         int    `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit          int    `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus        bool   `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int    `envconfig:"PROMETHEUS_PORT" default:"9092"`
}
