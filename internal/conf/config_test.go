package conf

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type configTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(configTestSuite))
}

func (s *configTestSuite) TearDownTest() {
	unsetEnvVars(&s.Suite)
}

func (s *configTestSuite) TestGoCardlessDefaultValues() {
	s.Require().NoError(os.Setenv("GOCARDLESS_ACCESS_TOKEN", "sandbox_1234"))

	var cfg GoCardless
	s.Require().NoError(cfg.Parse())

	s.Assert().Equal("sandbox_1234", cfg.AccessToken)
	s.Assert().Equal(EnvironmentSandbox, cfg.Environment)
	s.Assert().Equal("2015-07-06", cfg.Version)
	s.Assert().Equal(30*time.Second, cfg.Timeout)
	s.Assert().Equal(SandboxURL, cfg.BaseURL())
}

func (s *configTestSuite) TestGoCardlessLive() {
	s.Require().NoError(os.Setenv("GOCARDLESS_ACCESS_TOKEN", "live_1234"))
	s.Require().NoError(os.Setenv("GOCARDLESS_ENVIRONMENT", "live"))
	s.Require().NoError(os.Setenv("GOCARDLESS_TIMEOUT", "5s"))

	var cfg GoCardless
	s.Require().NoError(cfg.Parse())

	s.Assert().Equal(LiveURL, cfg.BaseURL())
	s.Assert().Equal(5*time.Second, cfg.Timeout)
}

func (s *configTestSuite) TestGoCardlessURLOverride() {
	s.Require().NoError(os.Setenv("GOCARDLESS_ACCESS_TOKEN", "test1234"))
	s.Require().NoError(os.Setenv("GOCARDLESS_ENVIRONMENT", "whatever"))
	s.Require().NoError(os.Setenv("GOCARDLESS_URL", "http://localhost:8080"))

	var cfg GoCardless
	s.Require().NoError(cfg.Parse())

	s.Assert().Equal("http://localhost:8080", cfg.BaseURL())
}

func (s *configTestSuite) TestGoCardlessInvalidEnvironment() {
	s.Require().NoError(os.Setenv("GOCARDLESS_ACCESS_TOKEN", "test1234"))
	s.Require().NoError(os.Setenv("GOCARDLESS_ENVIRONMENT", "staging"))

	var cfg GoCardless
	s.Assert().Equal(ErrInvalidEnvironment, cfg.Parse())
}

func (s *configTestSuite) TestGoCardlessMissingEnvVars() {
	var cfg GoCardless
	s.Assert().Error(cfg.Parse())
}

func (s *configTestSuite) TestGoCardlessInvalidTimeout() {
	s.Require().NoError(os.Setenv("GOCARDLESS_ACCESS_TOKEN", "test1234"))
	s.Require().NoError(os.Setenv("GOCARDLESS_TIMEOUT", "ABCD"))

	var cfg GoCardless
	s.Assert().Error(cfg.Parse())
}

func (s *configTestSuite) TestSandboxDefaultValues() {
	var cfg Sandbox
	s.Require().NoError(cfg.Parse())

	s.Assert().Equal(uint(8080), cfg.Port)
	s.Assert().Equal("sandbox_token", cfg.AccessToken)
	s.Assert().Equal(30*time.Second, cfg.Timeout)
}

func (s *configTestSuite) TestSandboxInvalidPort() {
	s.Require().NoError(os.Setenv("GOCARDLESS_SANDBOX_PORT", "ABCD"))

	var cfg Sandbox
	s.Assert().Error(cfg.Parse())
}

func unsetEnvVars(s *suite.Suite) {
	for _, key := range []string{
		"GOCARDLESS_ACCESS_TOKEN",
		"GOCARDLESS_ENVIRONMENT",
		"GOCARDLESS_URL",
		"GOCARDLESS_API_VERSION",
		"GOCARDLESS_TIMEOUT",
		"GOCARDLESS_SANDBOX_PORT",
		"GOCARDLESS_SANDBOX_ACCESS_TOKEN",
		"GOCARDLESS_SANDBOX_TIMEOUT",
	} {
		s.Require().NoError(os.Unsetenv(key))
	}
}
