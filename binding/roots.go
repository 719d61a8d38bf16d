package binding

import (
	"crypto/x509"
	"errors"
	"sync"
)

// ErrNoRootsOverride is returned by CertPool when no roots were set.
var ErrNoRootsOverride = errors.New("binding: no default roots override")

// ErrInvalidRoots is returned by CertPool when the stored PEM holds no certificates.
var ErrInvalidRoots = errors.New("binding: default roots contain no certificates")

// rootStore holds the process override for default trust roots. It is written once,
// before any server credentials are created, and read by the engine afterwards.
type rootStore struct {
	mu  sync.RWMutex
	pem []byte
}

// set copies pem. An empty string leaves the store unchanged.
func (s *rootStore) set(pem string) {
	if pem == "" {
		return
	}
	b := []byte(pem)
	s.mu.Lock()
	s.pem = b
	s.mu.Unlock()
}

// override returns a copy of the stored PEM and whether one is set.
func (s *rootStore) override() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pem == nil {
		return nil, false
	}
	return append([]byte(nil), s.pem...), true
}

func (s *rootStore) certPool() (*x509.CertPool, error) {
	pem, ok := s.override()
	if !ok {
		return nil, ErrNoRootsOverride
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, ErrInvalidRoots
	}
	return pool, nil
}
