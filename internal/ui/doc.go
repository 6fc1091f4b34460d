// Package ui contains the model processor: the state machine that owns the
// page set, the dataset store and every page state, reacts to terminal
// input and host messages, and drives a render.Renderer.
//
// Message flow:
//   - Processor.Run receives input.Event and protocol.Message values on a
//     bounded queue and hands each to Model.Update.
//   - Update routes the value through a typed handler registry. Key events
//     are interpreted per view (page list or open page); host messages go
//     through the dispatcher into the stores, after which every page state
//     drops a focus that no longer resolves.
//   - After each update the model renders the active view. Outbound host
//     messages (subscribe, text submissions, clicks) are queued on the
//     command bus and handed to the outbound channel by the run loop.
//
// State ownership:
//   - The model is the only writer of the stores and page states; nothing
//     else holds a reference to them, so no locking is involved.
//   - Page states are created lazily per page id and live for the rest of
//     the session.
package ui
