package deps

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("ummahdev")

// Everything except the message has a custom color which is dependent on
// the log level.
var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000}  %{pid} %{module}	%{shortfile}	▶ %{level:.4s} %{id:03x}%{color:reset} %{message}`,
)

func IgniteLogger(d *Deps) error {
	level, err := logging.LogLevel(d.Config().UString("log.level", "INFO"))
	if err != nil {
		level = logging.INFO
	}
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatter := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatter)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
	d.LoggerProvider = log
	return nil
}
