package resilience

import "sync"

// Group collapses concurrent calls for the same key into one execution.
// Callers that arrive while a call is in flight wait for its result.
type Group struct {
	mu    sync.Mutex
	calls map[string]*flight
}

type flight struct {
	done chan struct{}
	val  any
	err  error
}

func (g *Group) Do(key string, fn func() (any, error)) (any, bool, error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flight)
	}

	if f, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.val, true, f.err
	}

	f := &flight{done: make(chan struct{})}
	g.calls[key] = f
	g.mu.Unlock()

	f.val, f.err = fn()
	close(f.done)

	g.mu.Lock()
	if g.calls[key] == f {
		delete(g.calls, key)
	}
	g.mu.Unlock()

	return f.val, false, f.err
}

// Forget drops the in-flight entry for key so the next Do starts fresh
// instead of joining a call that is known to be stale.
func (g *Group) Forget(key string) {
	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
}
