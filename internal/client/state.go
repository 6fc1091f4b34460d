// Package client persists the client's identity, host relation and
// address strategies between runs.
package client

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/atomicstack/spider-tui/internal/protocol"
)

// DefaultAddress is the address strategy written to a fresh state file.
const DefaultAddress = "localhost:1930"

const identitySize = 32

// Role describes the relation between this client and a peer.
type Role string

const RolePeer Role = "peer"

// Relation identifies a peer by its public id.
type Relation struct {
	ID   []byte `cbor:"id"`
	Role Role   `cbor:"role"`
}

// State is the persisted client state.
type State struct {
	path string

	Self      []byte    `cbor:"self"`
	Addresses []string  `cbor:"addresses"`
	Host      *Relation `cbor:"host,omitempty"`
}

// LoadState reads the state file at path. A missing file yields a fresh
// state with a new identity and the default address, which is saved
// immediately; created reports that case.
func LoadState(path string) (st *State, created bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		st, err = newState(path)
		if err != nil {
			return nil, false, err
		}
		return st, true, st.Save()
	}
	if err != nil {
		return nil, false, fmt.Errorf("read client state: %w", err)
	}
	st = &State{path: path}
	if err := protocol.Unmarshal(data, st); err != nil {
		return nil, false, fmt.Errorf("decode client state %s: %w", path, err)
	}
	return st, false, nil
}

func newState(path string) (*State, error) {
	self := make([]byte, identitySize)
	if _, err := rand.Read(self); err != nil {
		return nil, fmt.Errorf("generate identity: %w", err)
	}
	return &State{path: path, Self: self, Addresses: []string{DefaultAddress}}, nil
}

// Path returns the file the state is saved to.
func (s *State) Path() string {
	return s.path
}

// Save writes the state atomically.
func (s *State) Save() error {
	data, err := protocol.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode client state: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write client state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace client state: %w", err)
	}
	return nil
}

func (s *State) HasHost() bool {
	return s.Host != nil
}

// SetHost records the host relation.
func (s *State) SetHost(id []byte) {
	s.Host = &Relation{ID: id, Role: RolePeer}
}

// AddAddress puts addr in front of the address strategies, removing any
// later duplicate.
func (s *State) AddAddress(addr string) {
	if addr == "" {
		return
	}
	out := []string{addr}
	for _, a := range s.Addresses {
		if a != addr {
			out = append(out, a)
		}
	}
	s.Addresses = out
}
