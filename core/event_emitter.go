package orchestration

import (
	"fmt"

	"github.com/KARAN3690/Marketplace/core/events"
)

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

// newCallbackEventEmitter delivers events synchronously. A panicking callback
// is logged and does not break the operation that emitted the event.
func newCallbackEventEmitter(callback func(events.Event)) eventEmitter {
	if callback == nil {
		return noopEventEmitter
	}

	return func(event events.Event) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("event callback panicked", "kind", string(event.Kind()), "error", fmt.Sprint(recovered))
			}
		}()

		callback(event)
	}
}
