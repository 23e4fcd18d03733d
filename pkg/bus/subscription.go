package bus

import "sync"

// Subscription is the handle returned by Subscribe. Each call to Subscribe
// yields a distinct subscription, so the same handler can never be
// registered twice under one handle.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel removes the subscription. It is idempotent and safe to call from
// inside a handler.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}
