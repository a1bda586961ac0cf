package deps

import (
	"github.com/ummahdev/core/core/directory"
)

func IgniteDirectory(d *Deps) error {
	driver := d.Config().UString("store.driver", "ledis")
	var (
		store directory.Store
		err   error
	)
	switch driver {
	case "mongo":
		store, err = directory.DialMongo(
			d.Config().UString("store.mongo.url", "mongodb://localhost:27017"),
			d.Config().UString("store.mongo.name", "ummahdev"),
		)
	default:
		store, err = directory.Open(driver, d.Config().UString("store.ledis.path", "./data"), "")
	}
	if err != nil {
		log.Errorf("could not open %s store: %v", driver, err)
		return err
	}
	log.Infof("directory store ready (%s)", driver)
	d.DirectoryProvider = store
	return nil
}
