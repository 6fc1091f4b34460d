// Package render defines the drawing capability the model processor
// depends on.
package render

import (
	"github.com/atomicstack/spider-tui/internal/dataset"
	"github.com/atomicstack/spider-tui/internal/page"
	uistate "github.com/atomicstack/spider-tui/internal/ui/state"
)

// Renderer draws the two views. Calls come from a single goroutine.
// Shutdown is called exactly once and the renderer is not used afterwards.
type Renderer interface {
	Startup() error
	Shutdown()
	RenderPageList(pages []*page.Page, highlight int, prompt *uistate.Prompt)
	RenderPage(p *page.Page, st *uistate.PageState, data dataset.Source)
}
