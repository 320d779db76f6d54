package settings

// EventKind identifies the mutation that produced an Event.
type EventKind int

const (
	// EventLoaded fires once after the population step completes.
	EventLoaded EventKind = iota
	// EventUpdated fires after every Update call.
	EventUpdated
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Event describes a store mutation. Key is empty for EventLoaded.
type Event struct {
	Kind EventKind
	Key  string
}

// Observer receives store mutation events. It is called synchronously after
// the store's lock has been released and must not mutate the store from
// within the callback.
type Observer func(Event)
