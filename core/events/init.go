package events

import (
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("events")

type Handler func(Event) error

// Input channel for incoming events.
var In chan Event

// On "event" channel. Register event handlers using channels.
var On chan EventHandler

// Map of handlers that will react to events.
var Handlers map[string][]Handler

type EventHandler struct {
	On      string
	Handler Handler
}

type Event struct {
	Name   string
	Sign   *UserSign
	Params map[string]interface{}
}

// UserSign identifies who triggered an event and why.
type UserSign struct {
	Reason string
	UserID string
}

// ID param of the event, empty when missing.
func (e Event) ID() string {
	id, _ := e.Params["id"].(string)
	return id
}

func execHandlers(list []Handler, event Event) {
	for h := range list {
		if err := list[h](event); err != nil {
			log.Errorf("handler for %s failed: %v", event.Name, err)
		}
	}
}

func sink(in chan Event, on chan EventHandler) {
	for {
		select {
		case event := <-in: // For incoming events spawn a goroutine running handlers.
			log.Debugf("incoming event: %+v", event)
			if ls, exists := Handlers[event.Name]; exists {
				go execHandlers(ls, event)
			}
		case h := <-on: // Register new handlers.
			if _, exists := Handlers[h.On]; !exists {
				Handlers[h.On] = []Handler{}
			}

			Handlers[h.On] = append(Handlers[h.On], h.Handler)
		}
	}
}

// init channel for input events, consumers & map of handlers.
func init() {
	In = make(chan Event, 10)
	On = make(chan EventHandler)
	Handlers = make(map[string][]Handler)

	go sink(In, On)
}
