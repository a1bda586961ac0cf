package deps

// An ignitor takes a Container and injects bootstraped dependencies.
type Ignitor func(*Deps) error

// Bootstrap runs ignitors to fulfill the deps container.
func Bootstrap() (*Deps, error) {
	ignitors := []Ignitor{
		IgniteConfig,
		IgniteLogger,
		IgniteRules,
		IgniteDirectory,
		IgniteSentry,
		IgniteNewRelic,
	}

	container := &Deps{}
	for _, fn := range ignitors {
		if err := fn(container); err != nil {
			container.Close()
			return nil, err
		}
	}
	return container, nil
}
