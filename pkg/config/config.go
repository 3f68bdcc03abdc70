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
}

// Redis backs the shared rate limiter when URL is set; otherwise limits are
// kept in process memory.
type Redis struct {
	URL          string        `envconfig:"URL" default:""`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"spendwise:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

// RateLimit is the global per-IP HTTP limit.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Insights struct {
	MaxRetries     int           `envconfig:"MAX_RETRIES" default:"2"`
	BaseDelay      time.Duration `envconfig:"BASE_DELAY" default:"1s"`
	AttemptTimeout time.Duration `envconfig:"ATTEMPT_TIMEOUT" default:"30s"`
	PerTypeCap     int           `envconfig:"PER_TYPE_CAP" default:"7"`
	TotalCap       int           `envconfig:"TOTAL_CAP" default:"30"`
	MinPerType     int           `envconfig:"MIN_PER_TYPE" default:"3"`
	// on-demand generation quota per user
	OnDemandLimit  int           `envconfig:"ON_DEMAND_LIMIT" default:"5"`
	OnDemandWindow time.Duration `envconfig:"ON_DEMAND_WINDOW" default:"1h"`
}

// Generator selects the language model behind insight synthesis.
type Generator struct {
	Provider  string `envconfig:"PROVIDER" default:"none"` // anthropic, gemini or none
	Model     string `envconfig:"MODEL" default:""`
	ApiKey    string `envconfig:"API_KEY"`
	MaxTokens int64  `envconfig:"MAX_TOKENS" default:"1200"`
}

//revive:disable
type Plaid struct {
	Env         string        `envconfig:"ENV" default:"sandbox"`
	ClientID    string        `envconfig:"CLIENT_ID"`
	Secret      string        `envconfig:"SECRET"`
	BaseURL     string        `envconfig:"BASE_URL" default:""`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	MaxRetries  int           `envconfig:"MAX_RETRIES" default:"2"`
}

//revive:enable
type Sync struct {
	LookbackDays int `envconfig:"LOOKBACK_DAYS" default:"90"`
	Workers      int `envconfig:"WORKERS" default:"4"`
}

type Scheduler struct {
	Enabled  bool `envconfig:"ENABLED" default:"true"`
	HourUTC  int  `envconfig:"HOUR_UTC" default:"6"`
	PageSize int  `envconfig:"PAGE_SIZE" default:"100"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[spendwise]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Redis     *Redis     `envconfig:"REDIS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Insights  *Insights  `envconfig:"INSIGHTS"`
	Generator *Generator `envconfig:"GENERATOR"`
	Plaid     *Plaid     `envconfig:"PLAID"`
	Sync      *Sync      `envconfig:"SYNC"`
	Scheduler *Scheduler `envconfig:"SCHEDULER"`
}
