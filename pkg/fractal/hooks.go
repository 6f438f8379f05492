package fractal

// Hooks receives progress events from a Renderer.
//
// OnColumn is called from worker goroutines and must be safe for concurrent
// use. done counts finished columns, in no particular order.
type Hooks interface {
	OnColumn(done, total int)
	OnComplete(view View, stats Stats)
}

// NoopHooks ignores all events.
type NoopHooks struct{}

func (NoopHooks) OnColumn(int, int)      {}
func (NoopHooks) OnComplete(View, Stats) {}

var _ Hooks = NoopHooks{}
