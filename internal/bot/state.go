package bot

import "sync"

// PrefixState is the command prefix override shared by every command invocation.
// The zero value holds no prefix and is ready to use.
type PrefixState struct {
	mutex  sync.RWMutex
	prefix string
	set    bool
}

// NewPrefixState returns a PrefixState holding no prefix.
func NewPrefixState() *PrefixState {
	return &PrefixState{}
}

// Prefix returns the stored prefix.
// The second return value is false until SetPrefix is called.
func (s *PrefixState) Prefix() (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.prefix, s.set
}

// SetPrefix replaces the stored prefix.
// The value is stored as given; an empty string is a valid prefix.
func (s *PrefixState) SetPrefix(prefix string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.prefix = prefix
	s.set = true
}
