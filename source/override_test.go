package source

import (
	"testing"

	"github.com/kario-app/taskfilter/store"
	"github.com/stretchr/testify/assert"
)

func TestOverride_GetTags(t *testing.T) {
	for _, path := range []string{"testdata/override.yml", "testdata/override.toml"} {
		t.Run(path, func(t *testing.T) {
			ov := &Override{Path: path}

			labels, err := ov.GetTags(store.Labels)
			assert.NoError(t, err)
			assert.Equal(t, store.Tags{
				{Name: "#Reading", Color: "text-violet-500"},
				{Name: "#work", Color: "text-slate-500"},
			}, labels)

			priorities, err := ov.GetTags(store.Priorities)
			assert.NoError(t, err)
			assert.Equal(t, store.Tags{{Name: "Someday"}}, priorities)

			_, err = ov.GetTags(store.Kind("foo"))
			assert.ErrorContains(t, err, "unknown kind")
		})
	}
}

func TestOverride_GetTags_fail(t *testing.T) {
	ov := &Override{Path: "testdata/missing.yml"}
	_, err := ov.GetTags(store.Labels)
	assert.ErrorContains(t, err, "cannot read overrides")

	ov = &Override{Path: "testdata/broken.yml"}
	_, err = ov.GetTags(store.Labels)
	assert.ErrorContains(t, err, "cannot parse overrides yaml")
}
