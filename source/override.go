package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kario-app/taskfilter/store"
	"gopkg.in/yaml.v3"
)

// Override reads custom tags from a YAML file, or TOML when Path ends with .toml.
type Override struct {
	Path string
}

type overrides struct {
	Labels     store.Tags `yaml:"labels" toml:"labels"`
	Priorities store.Tags `yaml:"priorities" toml:"priorities"`
}

func (o *Override) GetTags(kind store.Kind) (store.Tags, error) {
	// The file may be edited while the server runs, so it is read on every call.
	f, err := os.ReadFile(o.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read overrides: %w", err)
	}

	ov := overrides{}
	if strings.EqualFold(filepath.Ext(o.Path), ".toml") {
		if err := toml.Unmarshal(f, &ov); err != nil {
			return nil, fmt.Errorf("cannot parse overrides toml: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(f, &ov); err != nil {
			return nil, fmt.Errorf("cannot parse overrides yaml: %w", err)
		}
	}

	switch kind {
	case store.Labels:
		return ov.Labels, nil
	case store.Priorities:
		return ov.Priorities, nil
	default:
		return nil, fmt.Errorf("source/override unknown kind %s", kind)
	}
}
