package events

// EventCollector is embedded in aggregates to buffer domain events raised
// during a state transition until the application layer publishes them.
type EventCollector struct {
	pending []DomainEvent
}

// Record buffers one or more events in the order given.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Pending returns a copy of the buffered events, leaving the buffer intact.
func (c *EventCollector) Pending() []DomainEvent {
	if len(c.pending) == 0 {
		return nil
	}
	out := make([]DomainEvent, len(c.pending))
	copy(out, c.pending)
	return out
}

// Drain returns the buffered events and empties the buffer.
func (c *EventCollector) Drain() []DomainEvent {
	drained := c.pending
	c.pending = nil
	return drained
}
