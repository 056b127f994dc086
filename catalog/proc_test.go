package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kario-app/taskfilter/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type SrcMock map[store.Kind]store.Tags

func (s SrcMock) GetTags(kind store.Kind) (store.Tags, error) {
	tags, ok := s[kind]
	if !ok {
		return nil, fmt.Errorf("no such kind: %s", kind)
	}
	return tags, nil
}

type StoreMock struct {
	mu   sync.Mutex
	tags map[store.Kind]store.Tags
}

func (s *StoreMock) PutTags(kind store.Kind, tags store.Tags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tags == nil {
		s.tags = map[store.Kind]store.Tags{}
	}
	s.tags[kind] = tags
	return nil
}

func (s *StoreMock) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tags)
}

func TestProcessor_UpdateCatalog(t *testing.T) {
	src1 := SrcMock{store.Labels: {
		{Name: "#Work", Color: "text-orange-500", Preset: true},
		{Name: "#Urgent", Color: "text-red-500", Preset: true},
	}}
	src2 := SrcMock{store.Labels: {
		{Name: "#urgent"}, // Color must stay from src1.
		{Name: "#Reading", Color: "text-violet-500"},
		{Name: ""},
	}}

	tmpStore := &StoreMock{}
	p := NewProcessor(ProcOpts{
		Src:   []Source{src1, src2},
		Store: tmpStore,
	})
	err := p.UpdateCatalog(store.Labels)
	assert.NoError(t, err)

	expTags := store.Tags{
		{Name: "#Work", Color: "text-orange-500", Preset: true},
		{Name: "#urgent", Color: "text-red-500"},
		{Name: "#Reading", Color: "text-violet-500"},
	}
	assert.Equal(t, expTags, tmpStore.tags[store.Labels])

	// src1 keeps its own data.
	assert.Equal(t, "#Urgent", src1[store.Labels][1].Name)
}

func TestProcessor_UpdateAll(t *testing.T) {
	src := SrcMock{store.Priorities: {{Name: "Priority 1"}}}
	tmpStore := &StoreMock{}
	p := NewProcessor(ProcOpts{Src: []Source{src}, Store: tmpStore})

	res := p.UpdateAll()
	assert.NoError(t, res[store.Priorities])
	assert.ErrorContains(t, res[store.Labels], "no source for labels")
	assert.Equal(t, 1, tmpStore.Len())
}

func TestProcessor_MakeCatalog_noSources(t *testing.T) {
	p := NewProcessor(ProcOpts{})
	tags, ok := p.MakeCatalog(store.Labels)
	assert.False(t, ok)
	assert.Empty(t, tags)
}

func TestProcessor_RunUpdates(t *testing.T) {
	src := SrcMock{
		store.Labels:     {{Name: "#Work"}},
		store.Priorities: {{Name: "Priority 1"}},
	}
	tmpStore := &StoreMock{}

	p := NewProcessor(ProcOpts{
		Src:      []Source{src},
		Store:    tmpStore,
		UpdateAt: time.Now().Add(500 * time.Millisecond),
	})

	go p.RunUpdates()
	assert.Equal(t, 0, tmpStore.Len())

	time.Sleep(1000 * time.Millisecond)
	assert.Equal(t, 2, tmpStore.Len())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}
