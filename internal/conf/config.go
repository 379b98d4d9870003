package conf

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	// EnvironmentLive targets the GoCardless live API.
	EnvironmentLive = "live"

	// EnvironmentSandbox targets the GoCardless sandbox API.
	EnvironmentSandbox = "sandbox"

	// LiveURL is the base URL of the GoCardless live API.
	LiveURL = "https://api.gocardless.com"

	// SandboxURL is the base URL of the GoCardless sandbox API.
	SandboxURL = "https://api-sandbox.gocardless.com"
)

// ErrInvalidEnvironment is returned when the environment is neither live nor sandbox.
var ErrInvalidEnvironment = errors.New("invalid gocardless environment")

// GoCardless contains the needed config to interact with the GoCardless API.
type GoCardless struct {
	// AccessToken is the token used to authenticate against the GoCardless API.
	AccessToken string `env:"GOCARDLESS_ACCESS_TOKEN,required"`

	// Environment selects the GoCardless API to talk to. Either live or sandbox.
	Environment string `env:"GOCARDLESS_ENVIRONMENT" envDefault:"sandbox"`

	// URL overrides the base URL selected by Environment. Used for testing purposes.
	URL string `env:"GOCARDLESS_URL"`

	// Version is sent in the GoCardless-Version header.
	Version string `env:"GOCARDLESS_API_VERSION" envDefault:"2015-07-06"`

	// Timeout is the amount of time requests to GoCardless should wait until they fail due to timeout.
	Timeout time.Duration `env:"GOCARDLESS_TIMEOUT" envDefault:"30s"`
}

// Parse fills GoCardless data from an external source.
func (c *GoCardless) Parse() error {
	if err := env.Parse(c); err != nil {
		return err
	}
	if len(c.URL) > 0 {
		return nil
	}
	if c.Environment != EnvironmentLive && c.Environment != EnvironmentSandbox {
		return ErrInvalidEnvironment
	}
	return nil
}

// BaseURL returns the URL the GoCardless client should send requests to.
func (c GoCardless) BaseURL() string {
	if len(c.URL) > 0 {
		return c.URL
	}
	if c.Environment == EnvironmentLive {
		return LiveURL
	}
	return SandboxURL
}

// Sandbox contains the needed config to start the sandbox HTTP server.
type Sandbox struct {
	// Port is the TCP port to listen to for incoming HTTP requests.
	Port uint `env:"GOCARDLESS_SANDBOX_PORT" envDefault:"8080"`

	// AccessToken is the bearer token the sandbox server accepts.
	AccessToken string `env:"GOCARDLESS_SANDBOX_ACCESS_TOKEN" envDefault:"sandbox_token"`

	// Timeout is used as the read and write timeout of the HTTP server.
	Timeout time.Duration `env:"GOCARDLESS_SANDBOX_TIMEOUT" envDefault:"30s"`
}

// Parse fills Sandbox data from an external source.
func (c *Sandbox) Parse() error {
	return env.Parse(c)
}
