package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Source holds the current rules and reloads them from disk.
type Source struct {
	mu        sync.RWMutex
	file      string
	rules     Rules
	listeners []func(Rules)
}

// NewSource loads rules from file. An empty file means built-in defaults.
func NewSource(file string) (*Source, error) {
	rules, err := LoadRules(file)
	if err != nil {
		return nil, err
	}
	return &Source{file: file, rules: rules}, nil
}

// Rules currently in effect.
func (s *Source) Rules() Rules {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules
}

// OnReload registers fn to run with fresh rules after every reload.
func (s *Source) OnReload(fn func(Rules)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Reload rules from file; on error the previous rules stay in effect.
func (s *Source) Reload() error {
	rules, err := LoadRules(s.file)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rules = rules
	listeners := append([]func(Rules){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(rules)
	}
	log.Infof("rules reloaded from %s", s.file)
	return nil
}

// Watch reloads on every write to the rules file until the returned
// func is called.
func (s *Source) Watch() (func(), error) {
	if s.file == "" {
		return func() {}, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.file); err != nil {
		watcher.Close()
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					if err := s.Reload(); err != nil {
						log.Errorf("could not reload %s: %v", event.Name, err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error(err)
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}
