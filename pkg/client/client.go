package client

import (
	"log"
	"time"

	"gitlab.com/ignitionrobotics/billing/gocardless/internal/conf"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/adapter"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/api"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/application"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/deprecation"
)

// DefaultVersion is the GoCardless API version sent when Options.Version is empty.
const DefaultVersion = "2015-07-06"

// Client holds methods to interact with GoCardless plans.
type Client interface {
	api.PlansV1
}

// Options contains the settings used to initialize a Client.
type Options struct {
	// AccessToken is the token used to authenticate against the GoCardless API.
	AccessToken string

	// Live targets the GoCardless live API instead of the sandbox.
	Live bool

	// URL overrides the base URL selected by Live.
	URL string

	// Version is sent in the GoCardless-Version header. Defaults to DefaultVersion.
	Version string

	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout time.Duration

	// Logger contains a logger mechanism. If set to nil, it defaults to a logger pointing to io.Discard.
	Logger *log.Logger

	// Notifier emits deprecation notices. If set to nil, notices go to stderr once per process.
	Notifier *deprecation.Notifier
}

// baseURL returns the URL requests are sent to.
func (o Options) baseURL() string {
	cfg := conf.GoCardless{URL: o.URL, Environment: conf.EnvironmentSandbox}
	if o.Live {
		cfg.Environment = conf.EnvironmentLive
	}
	return cfg.BaseURL()
}

// NewClient initializes a new api.PlansV1 client that talks to GoCardless over HTTP.
// Request timeouts are enforced by the HTTP transport.
func NewClient(opts Options) Client {
	if len(opts.Version) == 0 {
		opts.Version = DefaultVersion
	}
	return application.NewPlansService(application.Options{
		Adapter: adapter.NewGoCardlessAdapter(adapter.GoCardlessOptions{
			BaseURL:     opts.baseURL(),
			AccessToken: opts.AccessToken,
			Version:     opts.Version,
			Timeout:     opts.Timeout,
		}),
		Logger:   opts.Logger,
		Notifier: opts.Notifier,
	})
}

// NewClientFromEnv parses the GoCardless config from environment variables and initializes a new Client.
func NewClientFromEnv(logger *log.Logger) (Client, error) {
	var cfg conf.GoCardless
	if err := cfg.Parse(); err != nil {
		return nil, err
	}
	return NewClient(Options{
		AccessToken: cfg.AccessToken,
		Live:        cfg.Environment == conf.EnvironmentLive,
		URL:         cfg.URL,
		Version:     cfg.Version,
		Timeout:     cfg.Timeout,
		Logger:      logger,
	}), nil
}
