package config

// FlagsNameMapping carries the names the CLI binds the configuration surface
// to. Resolution itself never reads flags; the cmd package translates bound
// flags into an invocation-time Draft and a SourceConfig.
type FlagsNameMapping struct {
	Env      string
	Browser  string
	Headless string

	SourceType           string
	SourceDir            string
	SourceHttpUrl        string
	SourceHttpToken      string
	SourceHttpTimeout    string
	SourceHttpRetryCount string
	SourceHttpRetryDelay string
}
