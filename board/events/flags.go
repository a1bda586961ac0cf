package events

import (
	"github.com/ummahdev/core/board/flags"
	ev "github.com/ummahdev/core/core/events"
)

// Bind event handlers for flag related actions...
func flagHandlers(d deps) []ev.EventHandler {
	return []ev.EventHandler{
		{
			On: ev.FLAGS_NEW,
			Handler: func(e ev.Event) error {
				f, err := flags.FindId(d, e.ID())
				if err != nil {
					return ErrInvalidIDRef
				}
				log.Infof("flag %s filed by %s on %s %s (%s)", f.ID, f.ReporterID, f.ContentType, f.ContentID, f.Reason)
				return nil
			},
		},
	}
}
