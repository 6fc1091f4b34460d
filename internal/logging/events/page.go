package events

import "github.com/atomicstack/spider-tui/internal/logging"

type PageTracer struct{}

type DatasetTracer struct{}

var (
	Page    = PageTracer{}
	Dataset = DatasetTracer{}
)

func (PageTracer) SetAll(count int) {
	logging.Trace("page.set-all", map[string]interface{}{"count": count})
}

func (PageTracer) Upsert(id string) {
	logging.Trace("page.upsert", map[string]interface{}{"id": id})
}

func (PageTracer) Patch(id string, applied int, dropped []string, structural bool) {
	logging.Trace("page.patch", map[string]interface{}{
		"id":         id,
		"applied":    applied,
		"dropped":    dropped,
		"structural": structural,
	})
}

func (PageTracer) Select(index int) {
	logging.Trace("page.select", map[string]interface{}{"index": index})
}

func (DatasetTracer) Replace(path string, rows int) {
	logging.Trace("dataset.replace", map[string]interface{}{"path": path, "rows": rows})
}
