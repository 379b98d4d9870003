package deprecation

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Notifier emits human-readable deprecation notices, once per distinguishing key.
// Notices are diagnostics only and never alter request or response data.
type Notifier struct {
	mu       sync.Mutex
	registry Registry
	logger   *log.Logger
}

// API warns that the API identified by name has been superseded by replacement.
func (n *Notifier) API(name, replacement string) {
	n.warnOnce("api:"+name, fmt.Sprintf(
		"The %q API is deprecated and will be removed in a future release. Use the %q API instead.",
		name, replacement,
	))
}

// Response warns that responses nesting the resource under name are deprecated.
func (n *Notifier) Response(name string) {
	n.warnOnce("response:"+name, fmt.Sprintf(
		"Reading the resource nested under %q in responses is deprecated. Read its fields from the top level instead.",
		name,
	))
}

// Attribute warns that the attribute identified by name is deprecated.
func (n *Notifier) Attribute(name string) {
	n.warnOnce("attribute:"+name, fmt.Sprintf(
		"The %q attribute is deprecated and will be removed in a future release.",
		name,
	))
}

func (n *Notifier) warnOnce(key, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.registry.HasWarned(key) {
		return
	}
	n.registry.MarkWarned(key)
	n.logger.Println("DeprecationWarning:", msg)
}

// NewNotifier initializes a new Notifier.
// If registry is nil, the process-wide Default registry is used. If logger is nil, notices are written to stderr.
func NewNotifier(registry Registry, logger *log.Logger) *Notifier {
	if registry == nil {
		registry = Default()
	}
	if logger == nil {
		logger = log.New(os.Stderr, "[GoCardless] ", log.LstdFlags|log.Lmsgprefix)
	}
	return &Notifier{
		registry: registry,
		logger:   logger,
	}
}
