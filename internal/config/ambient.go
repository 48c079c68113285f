package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Ambient holds the runtime knobs that are not part of the spec'd parameter
// file — log verbosity and an optional OpenTelemetry collector endpoint —
// read from the environment. Mirrors the teacher's split between
// file-backed domain config (Parameters) and environment overrides.
type Ambient struct {
	LogLevel     string
	OTELEndpoint string
}

// LoadAmbient reads ambient knobs from the environment via viper's
// AutomaticEnv, with HCP_LOG_LEVEL / HCP_OTEL_ENDPOINT taking precedence
// over the supplied defaults.
func LoadAmbient(defaultLogLevel string) *Ambient {
	v := viper.New()
	v.SetEnvPrefix("hcp")
	v.AutomaticEnv()
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("otel_endpoint", "")

	return &Ambient{
		LogLevel:     strings.ToLower(v.GetString("log_level")),
		OTELEndpoint: v.GetString("otel_endpoint"),
	}
}
