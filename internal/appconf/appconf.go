package appconf

// Environment identifies the operating environment the application runs in.
type Environment int

const (
	Test Environment = iota
	Development
	Production
)

// Config holds the application-level configuration settings: the network
// port to listen on, the operating environment, the accepted API keys, and
// the per-key rate limit. These are read from command-line flags when the
// application starts.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int
	Verbose   bool
}

// EnvFlagToEnvironment maps an environment flag value to an Environment.
// Unrecognized values fall back to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}

// String returns the flag-style name of the environment.
func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}
