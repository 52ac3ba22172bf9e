package console_config

import (
	"time"

	"github.com/NordCoder/upwatch/internal/obs"
)

type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type OTEL struct {
	Enable       bool    `mapstructure:"enable"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

func (oc *OTEL) AsOTELConfig() *obs.OTELConfig {
	return &obs.OTELConfig{
		Enable:      oc.Enable,
		Endpoint:    oc.OTLPEndpoint,
		ServiceName: oc.ServiceName,
		SampleRatio: oc.SampleRatio,
	}
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
	Output string `mapstructure:"output"`
}

type API struct {
	BaseURL string `mapstructure:"base_url"`
}

type HTTP struct {
	// Timeout of zero leaves the transport defaults in charge.
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type Session struct {
	Store string `mapstructure:"store"` // badger, memory
	Path  string `mapstructure:"path"`
}

type Metrics struct {
	Addr string `mapstructure:"addr"`
}

type Config struct {
	App     App     `mapstructure:"app"`
	Log     Log     `mapstructure:"log"`
	OTEL    OTEL    `mapstructure:"otel"`
	API     API     `mapstructure:"api"`
	HTTP    HTTP    `mapstructure:"http"`
	Session Session `mapstructure:"session"`
	Metrics Metrics `mapstructure:"metrics"`
}

func (c *Config) AsLoggerConfig() obs.LogConfig {
	return obs.LogConfig{
		Level:   c.Log.Level,
		Pretty:  c.Log.Pretty,
		Output:  c.Log.Output,
		Service: c.App.Name,
		Env:     c.App.Env,
		Version: c.App.Version,
	}
}

type ErrConfig string

func (e ErrConfig) Error() string { return string(e) }

const (
	ErrNoBaseURL      ErrConfig = "api.base_url is required"
	ErrUnknownStore   ErrConfig = "session.store must be badger or memory"
	ErrNoSessionPath  ErrConfig = "session.path is required for the badger store"
	ErrBadSampleRatio ErrConfig = "otel.sample_ratio must be within [0, 1]"
)
