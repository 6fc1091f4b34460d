package events

import "github.com/atomicstack/spider-tui/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (AppTracer) Identity(statePath string, created bool, addresses []string) {
	logging.Trace("app.identity", map[string]interface{}{"state": statePath, "created": created, "addresses": addresses})
}
