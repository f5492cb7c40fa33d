// Package auth checks provider credentials locally, without network calls.
package auth

// State represents the credential state of a provider.
type State int

const (
	// StateConfigured means the provider has usable credentials.
	StateConfigured State = iota
	// StateMissing means no credential is set.
	StateMissing
	// StateInvalid means a credential is set but malformed or incomplete.
	StateInvalid
	// StateDisabled means the provider is not part of collector.providers.
	StateDisabled
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateMissing:
		return "missing"
	case StateInvalid:
		return "invalid"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Method is the way a provider is authenticated.
type Method string

// Authentication methods.
const (
	MethodNone   Method = ""
	MethodAPIKey Method = "api_key"
	MethodOAuth2 Method = "oauth2"
)

// Status represents the credential status of one provider.
type Status struct {
	Provider string `json:"provider" yaml:"provider"`
	State    State  `json:"state" yaml:"state"`
	Method   Method `json:"method,omitempty" yaml:"method,omitempty"`
	Weight   int    `json:"weight" yaml:"weight"`
	Summary  string `json:"summary" yaml:"summary"` // Brief one-line summary
	EnvVar   string `json:"env_var,omitempty" yaml:"env_var,omitempty"`
}

// Checker checks credential status for providers.
type Checker struct {
	// EnvPrefix is prepended to environment variable hints.
	EnvPrefix string
}

// NewChecker creates a new credential checker.
func NewChecker(envPrefix string) *Checker {
	return &Checker{EnvPrefix: envPrefix}
}
