package provider

import (
	"errors"
	"fmt"
)

var ErrProviderNotFound = errors.New("provider not found")

// Store holds the registered loader providers by name.
type Store struct {
	providers map[string]Provider
}

func NewStore(providers ...Provider) *Store {
	store := &Store{providers: map[string]Provider{}}
	for _, p := range providers {
		store.Add(p)
	}
	return store
}

func (s *Store) Add(provider Provider) {
	s.providers[provider.Name()] = provider
}

func (s *Store) Has(name string) bool {
	_, ok := s.providers[name]
	return ok
}

// Get returns a provider by name
func (s *Store) Get(name string) (Provider, error) {
	provider, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}
	return provider, nil
}
