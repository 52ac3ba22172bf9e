package console_config

import (
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		_ = v.ReadInConfig()
	}

	v.SetDefault("app.name", "upwatch-console")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.version", "dev")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.output", "stderr")

	v.SetDefault("otel.enable", false)
	v.SetDefault("otel.service_name", "upwatch-console")
	v.SetDefault("otel.sample_ratio", 1.0)
	v.SetDefault("otel.otlp_endpoint", "localhost:4317")

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("http.timeout", "0s")
	v.SetDefault("http.user_agent", "upwatch-console/1.0")

	v.SetDefault("session.store", "badger")
	v.SetDefault("session.path", ".upwatch/session")

	v.SetDefault("metrics.addr", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.API.BaseURL = NormalizeBaseURL(cfg.API.BaseURL)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return ErrNoBaseURL
	}
	switch c.Session.Store {
	case "memory":
	case "badger":
		if c.Session.Path == "" {
			return ErrNoSessionPath
		}
	default:
		return ErrUnknownStore
	}
	if c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1 {
		return ErrBadSampleRatio
	}
	return nil
}

// NormalizeBaseURL trims trailing slashes and upgrades plain http to https for
// anything that is not a loopback host, so that the console never sends a
// bearer token in clear text to a remote API.
func NormalizeBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasPrefix(base, "http://") {
		return base
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return base
	}
	return "https://" + strings.TrimPrefix(base, "http://")
}
