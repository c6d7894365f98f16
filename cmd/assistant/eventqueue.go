package main

import (
	"github.com/KARAN3690/Marketplace/core/events"
)

const eventQueueSize = 256

// eventQueue hands session events to the widget loop. Events are emitted
// from inside Update, so pushing must never block.
type eventQueue struct {
	queue chan events.Event
}

func newEventQueue(size int) *eventQueue {
	return &eventQueue{queue: make(chan events.Event, size)}
}

func (q *eventQueue) push(event events.Event) {
	select {
	case q.queue <- event:
	default:
		logger.Warn("dropping session event, widget is not keeping up", "kind", string(event.Kind()))
	}
}

func (q *eventQueue) events() <-chan events.Event {
	return q.queue
}
