package deps

import (
	"github.com/getsentry/raven-go"
	"github.com/newrelic/go-agent"
)

// IgniteSentry sets up error reporting when a DSN is configured.
func IgniteSentry(d *Deps) error {
	dsn := d.Config().UString("sentry.dsn", "")
	if dsn == "" {
		return nil
	}
	client, err := raven.New(dsn)
	if err != nil {
		return err
	}
	d.ErrorsProvider = client
	return nil
}

// IgniteNewRelic starts the APM agent when a license is configured.
func IgniteNewRelic(d *Deps) error {
	license := d.Config().UString("newrelic.license", "")
	if license == "" {
		return nil
	}
	cfg := newrelic.NewConfig(d.Config().UString("newrelic.app", "ummahdev-core"), license)
	app, err := newrelic.NewApplication(cfg)
	if err != nil {
		return err
	}
	d.APMProvider = app
	return nil
}
