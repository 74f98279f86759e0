package handlers

import (
	"github.com/quantamisecode-hub/groona-sub009/internal/notifier"
)

// Global dispatch engine, wired once at startup.
var engine *notifier.Engine

// InitNotifier installs the dispatch engine the handlers submit events to.
func InitNotifier(e *notifier.Engine) {
	engine = e
}
