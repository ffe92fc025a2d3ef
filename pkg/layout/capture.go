package layout

// PointerEventKind distinguishes captured pointer events
type PointerEventKind int

const (
	PointerMove PointerEventKind = iota
	PointerUp
	PointerCancel
)

// PointerEvent is a pointer sample already projected onto the ground plane
type PointerEvent struct {
	Kind PointerEventKind
	Pos  Point
}

// PointerCapture grants a global pointer subscription that outlives the rack's hit area.
// The returned release func removes the subscription.
type PointerCapture interface {
	Capture(handler func(PointerEvent)) (release func())
}

// CaptureHub is a single-threaded PointerCapture that fans events out to subscribers
type CaptureHub struct {
	nextID   int
	handlers map[int]func(PointerEvent)
	order    []int
}

// NewCaptureHub creates an empty hub
func NewCaptureHub() *CaptureHub {
	return &CaptureHub{handlers: make(map[int]func(PointerEvent))}
}

// Capture registers handler until release is called
func (h *CaptureHub) Capture(handler func(PointerEvent)) func() {
	id := h.nextID
	h.nextID++
	h.handlers[id] = handler
	h.order = append(h.order, id)

	return func() {
		if _, ok := h.handlers[id]; !ok {
			return
		}
		delete(h.handlers, id)
		for i, v := range h.order {
			if v == id {
				h.order = append(h.order[:i], h.order[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers ev to every current subscriber in subscription order.
// Handlers may release themselves during dispatch.
func (h *CaptureHub) Dispatch(ev PointerEvent) {
	ids := append([]int(nil), h.order...)
	for _, id := range ids {
		if handler, ok := h.handlers[id]; ok {
			handler(ev)
		}
	}
}

// Listeners returns the number of live subscriptions
func (h *CaptureHub) Listeners() int {
	return len(h.handlers)
}
