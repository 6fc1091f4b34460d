package events

import "github.com/atomicstack/spider-tui/internal/logging"

type ViewTracer struct{}

type FocusTracer struct{}

type InputTracer struct{}

type PromptTracer struct{}

type CommandTracer struct{}

var (
	View    = ViewTracer{}
	Focus   = FocusTracer{}
	Input   = InputTracer{}
	Prompt  = PromptTracer{}
	Command = CommandTracer{}
)

func (ViewTracer) Switch(from, to, pageID string) {
	logging.Trace("view.switch", map[string]interface{}{"from": from, "to": to, "page": pageID})
}

func (FocusTracer) Move(pageID, direction, id string, rows []int) {
	logging.Trace("focus.move", map[string]interface{}{"page": pageID, "direction": direction, "id": id, "rows": rows})
}

func (FocusTracer) Reset(pageID, id string) {
	logging.Trace("focus.reset", map[string]interface{}{"page": pageID, "id": id})
}

func (FocusTracer) Failure(pageID string, err error) {
	if err == nil {
		return
	}
	logging.Trace("focus.failure", map[string]interface{}{"page": pageID, "error": err.Error()})
}

func (InputTracer) Append(pageID, id, buffer string) {
	logging.Trace("input.append", map[string]interface{}{"page": pageID, "id": id, "buffer": buffer})
}

func (InputTracer) Backspace(pageID, id, buffer string) {
	logging.Trace("input.backspace", map[string]interface{}{"page": pageID, "id": id, "buffer": buffer})
}

func (InputTracer) Submit(pageID, id string, rows []int) {
	logging.Trace("input.submit", map[string]interface{}{"page": pageID, "id": id, "rows": rows})
}

func (InputTracer) Click(pageID, id string, rows []int) {
	logging.Trace("input.click", map[string]interface{}{"page": pageID, "id": id, "rows": rows})
}

func (PromptTracer) Open() {
	logging.Trace("prompt.open", nil)
}

func (PromptTracer) Query(query string, match int) {
	logging.Trace("prompt.query", map[string]interface{}{"query": query, "match": match})
}

func (PromptTracer) Close(accepted bool) {
	logging.Trace("prompt.close", map[string]interface{}{"accepted": accepted})
}

func (CommandTracer) Queue(kind string) {
	logging.Trace("command.queue", map[string]interface{}{"kind": kind})
}

func (CommandTracer) Skip(kind, reason string) {
	logging.Trace("command.skip", map[string]interface{}{"kind": kind, "reason": reason})
}

func (CommandTracer) Result(kind string, err error) {
	payload := map[string]interface{}{"kind": kind}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}
