package config

import (
	"sync/atomic"
	"time"
)

// Config is the resolved, immutable application configuration.
// It is created once at startup (see Load) and never mutated afterwards;
// handlers read it through a Provider snapshot.
type Config struct {
	Server   Server   `toml:"server"`
	Trap     Trap     `toml:"trap"`
	Paths    Paths    `toml:"paths"`
	Cache    Cache    `toml:"cache"`
	Log      Log      `toml:"log"`
	Metrics  Metrics  `toml:"metrics"`
	Notifier Notifier `toml:"notifier"`
}

type Server struct {
	Addr                    string   `toml:"addr"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`

	// MaxConns caps concurrent accepted connections. Zero means unlimited.
	MaxConns int `toml:"max_conns"`

	// ClientIpProxyHeader names the forwarded-for style header to trust for
	// the client identity (e.g. "X-Forwarded-For"). Empty means the
	// transport peer address is used. Trust boundary: only set this when the
	// server sits behind a reverse proxy that overwrites the header,
	// otherwise any client can choose its own identity and sidestep
	// blocking.
	ClientIpProxyHeader string `toml:"client_ip_proxy_header"`
}

type Trap struct {
	// Path is the hidden URL that marks the requester as a crawler.
	// It is disallowed in robots.txt and must not be linked from content.
	Path string `toml:"path"`

	// BlockedStatus is the status code served to already-blocked clients,
	// 200 (indistinguishable decoy) or 403 (explicit refusal).
	BlockedStatus int `toml:"blocked_status"`
}

type Paths struct {
	// Public is the directory with the real content to serve.
	Public string `toml:"public"`

	// NotFound is served with status 404. Relative paths resolve inside
	// the public directory.
	NotFound string `toml:"not_found"`

	// Bullshit is the decoy content served to blocked clients.
	Bullshit string `toml:"bullshit"`

	// Blocklist is the persisted blocklist file, one IP per line.
	Blocklist string `toml:"blocklist"`

	// Anchor resolves the other relative paths. Empty means the directory
	// of the config file.
	Anchor string `toml:"anchor"`
}

type Cache struct {
	// StaticTTL is how long served public files are kept in memory.
	// Zero disables the cache, every request reads from disk.
	StaticTTL Duration `toml:"static_ttl"`
}

type Log struct {
	Request LogRequest `toml:"request"`
}

type LogRequest struct {
	Activated bool             `toml:"activated"`
	Limits    LogRequestLimits `toml:"limits"`
}

type LogRequestLimits struct {
	URILength       int `toml:"uri_length"`
	UserAgentLength int `toml:"user_agent_length"`
	RefererLength   int `toml:"referer_length"`
	RemoteIPLength  int `toml:"remote_ip_length"`
}

type Metrics struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`

	// AllowedIPs lists the exact peer addresses allowed to scrape the
	// metrics endpoint. No CIDR ranges.
	AllowedIPs []string `toml:"allowed_ips"`
}

type Notifier struct {
	Discord Discord `toml:"discord"`
}

type Discord struct {
	Activated    bool     `toml:"activated"`
	WebhookURL   string   `toml:"webhook_url"`
	APIRateLimit Duration `toml:"api_rate_limit"`
	APIBurst     int      `toml:"api_burst"`
	SendTimeout  Duration `toml:"send_timeout"`
}

// Duration wraps time.Duration for TOML text (un)marshalling ("5s", "1m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Provider hands out the current Config snapshot. Get is safe for
// concurrent use with Update; handlers take one snapshot per request and
// must not mix fields from different snapshots.
type Provider struct {
	config atomic.Pointer[Config]
}

func NewProvider(cfg *Config) *Provider {
	if cfg == nil {
		panic("config provider: initial config cannot be nil")
	}
	p := &Provider{}
	p.config.Store(cfg)
	return p
}

func (p *Provider) Get() *Config {
	return p.config.Load()
}

func (p *Provider) Update(cfg *Config) {
	p.config.Store(cfg)
}
