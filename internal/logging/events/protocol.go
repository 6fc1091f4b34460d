package events

import "github.com/atomicstack/spider-tui/internal/logging"

type ProtocolTracer struct{}

var Protocol = ProtocolTracer{}

func (ProtocolTracer) Dial(addr string, err error) {
	payload := map[string]interface{}{"addr": addr}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("protocol.dial", payload)
}

func (ProtocolTracer) Recv(kind string) {
	logging.Trace("protocol.recv", map[string]interface{}{"kind": kind})
}

func (ProtocolTracer) Send(kind string) {
	logging.Trace("protocol.send", map[string]interface{}{"kind": kind})
}

func (ProtocolTracer) Ignored(kind string) {
	logging.Trace("protocol.ignored", map[string]interface{}{"kind": kind})
}

func (ProtocolTracer) Closed(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("protocol.closed", payload)
}
