package service

// generationSlot is a capacity-1 semaphore with a reject-if-occupied
// policy: the second caller is turned away immediately rather than queued,
// keeping at most one model generation in flight process-wide.
type generationSlot struct {
	ch chan struct{}
}

func newGenerationSlot() *generationSlot {
	return &generationSlot{ch: make(chan struct{}, 1)}
}

// tryAcquire claims the slot, reporting false when it is already held.
func (s *generationSlot) tryAcquire() bool {
	select {
	case s.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *generationSlot) release() {
	select {
	case <-s.ch:
	default:
	}
}

// occupied reports whether a generation is currently in flight.
func (s *generationSlot) occupied() bool {
	return len(s.ch) > 0
}
