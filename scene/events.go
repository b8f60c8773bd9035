package scene

import "sort"

const (
	OVERLAP_ENTER EventType = iota
	OVERLAP_STAY
	OVERLAP_EXIT
)

type EventType uint8

func (t EventType) String() string {
	switch t {
	case OVERLAP_ENTER:
		return "enter"
	case OVERLAP_STAY:
		return "stay"
	case OVERLAP_EXIT:
		return "exit"
	}
	return "unknown"
}

type pairKey struct {
	a, b string
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

type OverlapEnterEvent struct {
	A, B string
}

func (e OverlapEnterEvent) Type() EventType { return OVERLAP_ENTER }

type OverlapStayEvent struct {
	A, B string
}

func (e OverlapStayEvent) Type() EventType { return OVERLAP_STAY }

type OverlapExitEvent struct {
	A, B string
}

func (e OverlapExitEvent) Type() EventType { return OVERLAP_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events tracks the intersecting pairs from one report to the next and
// notifies the listeners of the pairs that start, keep or stop intersecting.
// Shapes are matched by name across reports.
type Events struct {
	listeners map[EventType][]EventListener

	buffer []Event

	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// Record compares the intersecting pairs of report with those of the
// previous one and sends the resulting events
func (e *Events) Record(report Report) {
	for _, p := range report.Pairs {
		if p.Intersects {
			e.currentActivePairs[makePairKey(p.A, p.B)] = true
		}
	}
	e.flush()
}

// processOverlapEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processOverlapEvents() {
	for _, pair := range sortedKeys(e.currentActivePairs) {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, OverlapStayEvent{A: pair.a, B: pair.b})
		} else {
			e.buffer = append(e.buffer, OverlapEnterEvent{A: pair.a, B: pair.b})
		}
	}

	for _, pair := range sortedKeys(e.previousActivePairs) {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, OverlapExitEvent{A: pair.a, B: pair.b})
		}
	}

	// Swap for next report and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

func sortedKeys(pairs map[pairKey]bool) []pairKey {
	keys := make([]pairKey, 0, len(pairs))
	for pair := range pairs {
		keys = append(keys, pair)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})
	return keys
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processOverlapEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
