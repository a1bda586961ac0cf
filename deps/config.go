package deps

import (
	"os"

	envconf "github.com/olebedev/config"
	"github.com/subosito/gotenv"
	"github.com/ummahdev/core/core/config"
	"github.com/ummahdev/core/modules/acl"
)

// ENV_FILE when unset.
const defaultEnvFile = "./env.json"

// Every key must be present so environment variables can override it.
const defaultEnv = `{
	"environment": "development",
	"application": {"secret": "", "rules": ""},
	"store": {
		"driver": "ledis",
		"mongo": {"url": "mongodb://localhost:27017", "name": "ummahdev"},
		"ledis": {"path": "./data"}
	},
	"sentry": {"dsn": ""},
	"newrelic": {"app": "ummahdev-core", "license": ""},
	"log": {"level": "INFO"}
}`

// IgniteConfig loads .env (optional) and the JSON env file.
func IgniteConfig(d *Deps) error {
	gotenv.Load()
	file := os.Getenv("ENV_FILE")
	if file == "" {
		file = defaultEnvFile
	}
	var (
		cfg *envconf.Config
		err error
	)
	if _, statErr := os.Stat(file); statErr == nil {
		cfg, err = envconf.ParseJsonFile(file)
	} else {
		cfg, err = envconf.ParseJson(defaultEnv)
	}
	if err != nil {
		return err
	}
	d.ConfigProvider = cfg.Env()
	return nil
}

// IgniteRules loads moderation rules, builds the permission graph and
// keeps both in sync with the rules file.
func IgniteRules(d *Deps) error {
	source, err := config.NewSource(d.Config().UString("application.rules", ""))
	if err != nil {
		return err
	}
	module, err := acl.New(source.Rules().Roles)
	if err != nil {
		return err
	}
	source.OnReload(func(r config.Rules) {
		if err := module.Reload(r.Roles); err != nil {
			log.Errorf("permission graph not reloaded: %v", err)
		}
	})
	if _, err := source.Watch(); err != nil {
		log.Warningf("rules file is not being watched: %v", err)
	}
	d.RulesProvider = source
	d.ACLProvider = module
	return nil
}
