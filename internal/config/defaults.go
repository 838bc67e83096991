package config

const (
	defaultInputDir      = "~/mediasort/incoming"
	defaultOutputDir     = "~/mediasort/library"
	defaultLogDir        = "~/.local/share/mediasort/logs"
	defaultDataDir       = "~/.local/share/mediasort"
	defaultSocketPath    = "~/.local/share/mediasort/mediasort.sock"
	defaultAPIBind       = "127.0.0.1:7787"
	defaultLayout        = "by-type-and-date"
	defaultOnDuplicate   = "keep"
	defaultOnUnsupported = "skip"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:   defaultInputDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			DataDir:    defaultDataDir,
			APIBind:    defaultAPIBind,
			SocketPath: defaultSocketPath,
		},
		Organizer: Organizer{
			Layout:        defaultLayout,
			Recursive:     true,
			OnDuplicate:   defaultOnDuplicate,
			OnUnsupported: defaultOnUnsupported,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
