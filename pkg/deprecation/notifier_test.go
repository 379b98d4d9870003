package deprecation

import (
	"bytes"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type notifierTestSuite struct {
	suite.Suite
	Registry Registry
	Output   *bytes.Buffer
	Notifier *Notifier
}

func TestNotifierSuite(t *testing.T) {
	suite.Run(t, new(notifierTestSuite))
}

func (s *notifierTestSuite) SetupTest() {
	s.Registry = NewRegistry()
	s.Output = &bytes.Buffer{}
	s.Notifier = NewNotifier(s.Registry, log.New(s.Output, "", 0))
}

func (s *notifierTestSuite) lines() []string {
	out := strings.TrimSpace(s.Output.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func (s *notifierTestSuite) TestAPIWarnsOnce() {
	s.Notifier.API("plan", "subscription")
	s.Notifier.API("plan", "subscription")

	lines := s.lines()
	s.Require().Len(lines, 1)
	s.Assert().Contains(lines[0], `"plan"`)
	s.Assert().Contains(lines[0], `"subscription"`)
	s.Assert().True(s.Registry.HasWarned("api:plan"))
}

func (s *notifierTestSuite) TestKeysAreIndependent() {
	s.Notifier.API("plan", "subscription")
	s.Notifier.Response("subscriptions")
	s.Notifier.Attribute("end_date")
	s.Notifier.Response("subscriptions")
	s.Notifier.Attribute("end_date")

	s.Assert().Len(s.lines(), 3)
}

func (s *notifierTestSuite) TestSameNameDifferentKind() {
	s.Notifier.Response("subscriptions")
	s.Notifier.Attribute("subscriptions")

	s.Assert().Len(s.lines(), 2)
}

func (s *notifierTestSuite) TestSharedRegistry() {
	other := NewNotifier(s.Registry, log.New(s.Output, "", 0))

	s.Notifier.Response("subscriptions")
	other.Response("subscriptions")

	s.Assert().Len(s.lines(), 1)
}

func (s *notifierTestSuite) TestResetAllowsWarningAgain() {
	s.Notifier.Response("subscriptions")
	s.Registry.Reset()
	s.Assert().False(s.Registry.HasWarned("response:subscriptions"))

	s.Notifier.Response("subscriptions")

	s.Assert().Len(s.lines(), 2)
}

func (s *notifierTestSuite) TestConcurrentWarningsEmitOnce() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Notifier.Attribute("end_date")
		}()
	}
	wg.Wait()

	s.Assert().Len(s.lines(), 1)
}

func (s *notifierTestSuite) TestNilRegistryUsesDefault() {
	defer Default().Reset()
	Default().Reset()

	n := NewNotifier(nil, log.New(s.Output, "", 0))
	n.API("plan", "subscription")

	s.Assert().True(Default().HasWarned("api:plan"))
}
