package deps

import (
	"sync"
	"time"

	"github.com/getsentry/raven-go"
	"github.com/newrelic/go-agent"
	envconf "github.com/olebedev/config"
	"github.com/op/go-logging"
	"github.com/ummahdev/core/core/config"
	"github.com/ummahdev/core/core/directory"
	"github.com/ummahdev/core/modules/acl"
)

type Deps struct {
	ConfigProvider    *envconf.Config
	RulesProvider     *config.Source
	ACLProvider       *acl.Module
	DirectoryProvider directory.Store
	LoggerProvider    *logging.Logger
	ErrorsProvider    *raven.Client
	APMProvider       newrelic.Application

	closing sync.Once
}

func (d *Deps) Config() *envconf.Config {
	return d.ConfigProvider
}

// Rules currently in effect; built-in defaults when no source is set.
func (d *Deps) Rules() config.Rules {
	if d.RulesProvider == nil {
		return config.Defaults()
	}
	return d.RulesProvider.Rules()
}

func (d *Deps) ACL() *acl.Module {
	return d.ACLProvider
}

func (d *Deps) Directory() directory.Store {
	return d.DirectoryProvider
}

func (d *Deps) Log() *logging.Logger {
	return d.LoggerProvider
}

func (d *Deps) Errors() *raven.Client {
	return d.ErrorsProvider
}

func (d *Deps) APM() newrelic.Application {
	return d.APMProvider
}

// Close releases connections held by the container. Safe to call twice.
func (d *Deps) Close() {
	d.closing.Do(func() {
		if d.DirectoryProvider != nil {
			d.DirectoryProvider.Close()
		}
		if d.APMProvider != nil {
			d.APMProvider.Shutdown(time.Second * 5)
		}
	})
}
