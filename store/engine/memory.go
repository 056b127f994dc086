package engine

import (
	"sync"

	"github.com/kario-app/taskfilter/store"
)

type Memory struct {
	mu    sync.RWMutex
	store map[store.Kind]store.Tags
}

func NewMemory() *Memory {
	return &Memory{
		store: make(map[store.Kind]store.Tags, len(store.Kinds)),
	}
}

func (m *Memory) FindTags(kind store.Kind) (store.Tags, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tags, ok := m.store[kind]
	if !ok {
		return nil, false
	}
	return tags.Copy(), true
}

func (m *Memory) PutTags(kind store.Kind, tags store.Tags) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[kind] = tags.Copy()
	return nil
}

func (m *Memory) Close() error {
	return nil
}
