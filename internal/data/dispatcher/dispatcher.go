// Package dispatcher applies inbound host messages to the page and dataset
// stores.
package dispatcher

import (
	"github.com/atomicstack/spider-tui/internal/logging/events"
	"github.com/atomicstack/spider-tui/internal/page"
	"github.com/atomicstack/spider-tui/internal/protocol"
	"github.com/atomicstack/spider-tui/internal/state"
)

// Result reports what a message changed.
type Result struct {
	PagesUpdated    bool
	DatasetsUpdated bool
	// PageID is the page touched by an upsert or patch.
	PageID string
	// Structural is set when a patch changed a page's tree shape.
	Structural bool
	Ignored    bool
}

type Dispatcher struct {
	pages    state.PageStore
	datasets state.DatasetStore
}

func New(p state.PageStore, d state.DatasetStore) *Dispatcher {
	return &Dispatcher{pages: p, datasets: d}
}

// Handle routes msg to the matching store operation. Variants that carry
// no client-side state change are ignored.
func (d *Dispatcher) Handle(msg protocol.Message) Result {
	var res Result
	switch msg.Kind {
	case protocol.KindPages:
		pages := make([]*page.Page, 0, len(msg.Pages))
		for _, def := range msg.Pages {
			pages = append(pages, page.New(def))
		}
		d.pages.SetAll(pages)
		events.Page.SetAll(len(pages))
		res.PagesUpdated = true
	case protocol.KindPage:
		if msg.Page == nil {
			res.Ignored = true
			break
		}
		d.pages.Upsert(page.New(*msg.Page))
		events.Page.Upsert(msg.Page.ID)
		res.PagesUpdated = true
		res.PageID = msg.Page.ID
	case protocol.KindUpdateElementsFor:
		applied, ok := d.pages.Apply(msg.PageID, msg.Updates)
		if !ok {
			res.Ignored = true
			break
		}
		events.Page.Patch(msg.PageID, applied.Applied, applied.Dropped, applied.Structural)
		res.PagesUpdated = applied.Applied > 0
		res.PageID = msg.PageID
		res.Structural = applied.Structural
	case protocol.KindDataset:
		d.datasets.Set(msg.Dataset, msg.Rows)
		events.Dataset.Replace(string(msg.Dataset), len(msg.Rows))
		res.DatasetsUpdated = true
	default:
		res.Ignored = true
	}
	if res.Ignored {
		events.Protocol.Ignored(string(msg.Kind))
	}
	return res
}
