package ui

import (
	"github.com/atomicstack/spider-tui/internal/logging/events"
	"github.com/atomicstack/spider-tui/internal/protocol"
)

func (m *Model) handleHostMessage(msg any) {
	hm, ok := msg.(protocol.Message)
	if !ok {
		return
	}
	events.Protocol.Recv(string(hm.Kind))
	openID := ""
	if m.view == ViewPage {
		if p, ok := m.pages.Selected(); ok {
			openID = p.ID()
		}
	}
	res := m.dispatcher.Handle(hm)
	if res.Ignored {
		return
	}
	if hm.Kind == protocol.KindPages {
		m.reselect(openID)
	}
	m.revalidate()
}
