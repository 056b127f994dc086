package source

import (
	"fmt"

	"github.com/kario-app/taskfilter/store"
)

// Preset serves the built-in tags every user sees.
type Preset struct {
	Labels     store.Tags
	Priorities store.Tags
}

func NewPreset() *Preset {
	return &Preset{
		Labels: store.Tags{
			{Name: "#ByKairo", Color: "text-blue-500"},
			{Name: "#School", Color: "text-green-500"},
			{Name: "#Work", Color: "text-orange-500"},
			{Name: "#Personal", Color: "text-pink-500"},
			{Name: "#Urgent", Color: "text-red-500"},
			{Name: "#Shopping", Color: "text-cyan-500"},
			{Name: "#Health", Color: "text-emerald-500"},
			{Name: "#Finance", Color: "text-amber-500"},
			{Name: "#Family", Color: "text-rose-500"},
			{Name: "#Projects", Color: "text-teal-500"},
		},
		Priorities: store.Tags{
			{Name: "Priority 1", Color: "text-red-500"},
			{Name: "Priority 2", Color: "text-orange-500"},
			{Name: "Priority 3", Color: "text-yellow-500"},
			{Name: "Priority 4", Color: "text-green-500"},
			{Name: "Priority 5", Color: "text-blue-500"},
			{Name: "Priority 6", Color: "text-purple-500"},
		},
	}
}

func (p *Preset) GetTags(kind store.Kind) (store.Tags, error) {
	var tags store.Tags
	switch kind {
	case store.Labels:
		tags = p.Labels.Copy()
	case store.Priorities:
		tags = p.Priorities.Copy()
	default:
		return nil, fmt.Errorf("source/preset unknown kind %s", kind)
	}

	for i := range tags {
		tags[i].Preset = true
	}
	return tags, nil
}
