package store

import "strings"

// Kind names a tag catalog.
type Kind string

const (
	Labels     Kind = "labels"
	Priorities Kind = "priorities"
)

var Kinds = []Kind{Labels, Priorities}

func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Tag is a label or a priority a task list can be filtered by.
type Tag struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty" toml:"color"` // CSS class, e.g. text-red-500.
	Preset bool   `json:"preset,omitempty" yaml:"-" toml:"-"`
}

// Tags keeps catalog order, which is the display order.
type Tags []Tag

func (t Tags) Copy() Tags {
	if t == nil {
		return nil
	}
	tCopy := make(Tags, len(t))
	copy(tCopy, t)
	return tCopy
}

// Index finds a tag by name, ignoring case. Returns -1 if absent.
func (t Tags) Index(name string) int {
	for i, tag := range t {
		if strings.EqualFold(tag.Name, name) {
			return i
		}
	}
	return -1
}

func (t Tags) Names() []string {
	names := make([]string, len(t))
	for i, tag := range t {
		names[i] = tag.Name
	}
	return names
}

// Split separates preset tags from custom ones, keeping order.
func (t Tags) Split() (preset, custom Tags) {
	preset, custom = Tags{}, Tags{}
	for _, tag := range t {
		if tag.Preset {
			preset = append(preset, tag)
		} else {
			custom = append(custom, tag)
		}
	}
	return preset, custom
}
