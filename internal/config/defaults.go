package config

const (
	defaultDataDir       = "~/.local/share/crewchief"
	defaultLogDir        = "~/.local/share/crewchief/logs"
	defaultLLMBaseURL    = "http://localhost:1234/v1/chat/completions"
	defaultLLMModel      = "phi-3.5-mini"
	defaultLLMTimeout    = 30
	defaultDueSoonMiles  = 500
	defaultDueSoonMonths = 1
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		LLM: LLM{
			Enabled:        true,
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Garage: Garage{
			DueSoonMiles:  defaultDueSoonMiles,
			DueSoonMonths: defaultDueSoonMonths,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
