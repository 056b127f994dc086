package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/kario-app/taskfilter/log"
	"github.com/kario-app/taskfilter/store"
)

type Source interface {
	GetTags(kind store.Kind) (store.Tags, error)
}

type Store interface {
	PutTags(kind store.Kind, tags store.Tags) error
}

type ProcOpts struct {
	Src      []Source  // Ordered list of tag sources.
	Store    Store     // Where built catalogs go (optional if only MakeCatalog is needed).
	UpdateAt time.Time // Only the time of day is used.
}

type Processor struct {
	ProcOpts
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewProcessor(opts ProcOpts) *Processor {
	return &Processor{
		ProcOpts: opts,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// RunUpdates rebuilds every catalog once a day at UpdateAt, until Shutdown.
func (p *Processor) RunUpdates() {
	defer close(p.doneCh)

	t := time.NewTimer(p.untilNextRun())
	defer t.Stop()
	for {
		select {
		case <-t.C:
			p.UpdateAll()
			t.Reset(p.untilNextRun())

		case <-p.stopCh:
			return
		}
	}
}

// Shutdown stops RunUpdates. It must only be called once RunUpdates has started.
func (p *Processor) Shutdown(ctx context.Context) error {
	close(p.stopCh)

	select {
	case <-p.doneCh:
		return nil
	case <-ctx.Done():
		log.Printf("[WARN] catalog/proc shutdown timeout")
		return ctx.Err()
	}
}

func (p *Processor) untilNextRun() time.Duration {
	now := time.Now()

	nextRun := time.Date(
		now.Year(), now.Month(), now.Day(),
		p.UpdateAt.Hour(), p.UpdateAt.Minute(), p.UpdateAt.Second(), p.UpdateAt.Nanosecond(),
		time.Local,
	)

	d := time.Until(nextRun)
	if d < 0 {
		d += 24 * time.Hour
	}
	return d
}

// UpdateAll rebuilds every kind and reports the error of each one (nil if ok).
func (p *Processor) UpdateAll() map[store.Kind]error {
	res := make(map[store.Kind]error, len(store.Kinds))
	for _, kind := range store.Kinds {
		err := p.UpdateCatalog(kind)
		if err != nil {
			log.Printf("[WARN] catalog/proc cannot update %s: %+v", kind, err)
		}
		res[kind] = err
	}
	return res
}

func (p *Processor) UpdateCatalog(kind store.Kind) error {
	tags, ok := p.MakeCatalog(kind)
	if !ok {
		return fmt.Errorf("catalog/proc no source for %s", kind)
	}
	if err := p.Store.PutTags(kind, tags); err != nil {
		return fmt.Errorf("catalog/proc cannot store %s: %w", kind, err)
	}
	log.Printf("[DEBUG] catalog/proc stored %s len=%d", kind, len(tags))
	return nil
}

// MakeCatalog builds one catalog from Src. A tag from a later source replaces a tag with the
// same name (case-insensitive) from an earlier one, in place. New tags are appended.
// Sources returning an error are skipped; ok is false if all of them failed.
func (p *Processor) MakeCatalog(kind store.Kind) (tags store.Tags, ok bool) {
	tags = store.Tags{}

	for i, src := range p.Src {
		srcTags, err := src.GetTags(kind)
		if err != nil {
			log.Printf("[WARN] catalog/proc skipping source %d (%T), error: %+v", i, src, err)
			continue
		}

		tags = merge(tags, srcTags)
		ok = true
	}

	return tags, ok
}

func merge(t1 store.Tags, t2 store.Tags) store.Tags {
	res := t1.Copy()
	for _, tag := range t2 {
		if tag.Name == "" {
			continue
		}

		i := res.Index(tag.Name)
		if i < 0 {
			res = append(res, tag)
			continue
		}

		merged := res[i]
		merged.Name = tag.Name
		merged.Preset = tag.Preset
		if tag.Color != "" {
			merged.Color = tag.Color
		}
		res[i] = merged
	}
	return res
}
