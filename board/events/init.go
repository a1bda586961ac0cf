package events

import (
	"github.com/op/go-logging"
	pool "github.com/ummahdev/core/core/events"
)

var (
	log = logging.MustGetLogger("board")
)

// Boot binds the moderation handlers to the event pool.
func Boot(d deps) {
	register(auditHandlers(d))
	register(flagHandlers(d))
}

func register(list []pool.EventHandler) {
	for _, h := range list {
		pool.On <- h
	}
}
