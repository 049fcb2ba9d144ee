package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
	// AdminEmail is the one address whose registration receives the admin
	// role. Kept in config so no identity is embedded in code.
	AdminEmail        string `envconfig:"ADMIN_EMAIL" default:"admin@king.store"`
	MinPasswordLength int    `envconfig:"MIN_PASSWORD_LENGTH" default:"6"`
}

type Redis struct {
	URL         string        `envconfig:"URL"`
	KeyPrefix   string        `envconfig:"KEY_PREFIX" default:"kingstore:"`
	ListingTTL  time.Duration `envconfig:"LISTING_TTL" default:"60s"`
	DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	Prefix     string `envconfig:"PREFIX" default:"kingstore"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Redis     *Redis     `envconfig:"REDIS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Log       *Log       `envconfig:"LOG"`
}
