package config

import (
	"time"
)

// NewDefaultConfig creates a Config with sensible defaults. Load overlays
// the config file on top of these, so the file only needs to name what
// differs.
func NewDefaultConfig() *Config {
	return &Config{
		Server: Server{
			Addr:                    ":8080",
			ReadTimeout:             Duration{Duration: 2 * time.Second},
			ReadHeaderTimeout:       Duration{Duration: 2 * time.Second},
			WriteTimeout:            Duration{Duration: 3 * time.Second},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			ShutdownGracefulTimeout: Duration{Duration: 15 * time.Second},
			MaxConns:                0,
			ClientIpProxyHeader:     "",
		},
		Trap: Trap{
			Path:          "/bot-trap",
			BlockedStatus: 200,
		},
		Paths: Paths{
			Public:    "public",
			NotFound:  "404.html",
			Bullshit:  "bullshit.html",
			Blocklist: "blocklist.txt",
		},
		Cache: Cache{
			StaticTTL: Duration{Duration: 30 * time.Second},
		},
		Log: Log{
			Request: LogRequest{
				Activated: true,
				Limits: LogRequestLimits{
					URILength:       512, // Minimum: 64
					UserAgentLength: 256, // Minimum: 32
					RefererLength:   512, // Minimum: 64
					RemoteIPLength:  64,  // Minimum: 15
				},
			},
		},
		Metrics: Metrics{
			Enabled:    true,
			Endpoint:   "/metrics",
			AllowedIPs: []string{"127.0.0.1", "::1"}, // Only exact IPs allowed, no CIDR ranges
		},
		Notifier: Notifier{
			Discord: Discord{
				Activated:    false,
				WebhookURL:   "",
				APIRateLimit: Duration{Duration: 2 * time.Second},
				APIBurst:     1,
				SendTimeout:  Duration{Duration: 10 * time.Second},
			},
		},
	}
}
