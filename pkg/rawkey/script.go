package rawkey

import "io"

// Script is a KeyReader that replays a fixed sequence of keystrokes and then
// reports io.EOF. It stands in for a terminal in tests and non-interactive
// callers.
type Script struct {
	keys []byte
	pos  int
}

// NewScript returns a Script that yields the bytes of keys in order.
func NewScript(keys string) *Script {
	return &Script{keys: []byte(keys)}
}

// ReadKey returns the next scripted key, or KeyEOF and io.EOF once the
// script is exhausted.
func (s *Script) ReadKey() (byte, error) {
	if s.pos >= len(s.keys) {
		return KeyEOF, io.EOF
	}
	k := s.keys[s.pos]
	s.pos++
	return k, nil
}

// Remaining reports how many keys have not been read yet.
func (s *Script) Remaining() int {
	return len(s.keys) - s.pos
}
