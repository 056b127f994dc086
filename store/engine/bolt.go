package engine

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kario-app/taskfilter/log"
	"github.com/kario-app/taskfilter/store"
	"go.etcd.io/bbolt"
)

const tagsBucket = "tags"

// Bolt keeps every catalog in one bucket (const tagsBucket) under the key /<kind>,
// the value being the JSON list of tags in display order.
//
// Catalogs are small and always read whole, so one key per kind is enough.
type Bolt struct {
	db *bbolt.DB
}

func NewBolt(file string) (*Bolt, error) {
	b, err := bbolt.Open(file, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot open bolt store: %w", err)
	}
	log.Printf("[DEBUG] store/bolt opened %s successfully", file)

	return &Bolt{
		db: b,
	}, nil
}

func (b *Bolt) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("cannot close bolt store: %w", err)
	}
	log.Printf("[DEBUG] store/bolt closed successfully")
	return nil
}

func (b *Bolt) FindTags(kind store.Kind) (tags store.Tags, ok bool) {
	_ = b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(tagsBucket))
		if bucket == nil {
			return nil
		}

		key := tagsKey(kind)
		tagsJson := bucket.Get(key)
		log.Printf("[DEBUG] store/bolt get key=%s len=%d", key, len(tagsJson))
		if tagsJson == nil {
			return nil
		}

		if err := json.Unmarshal(tagsJson, &tags); err != nil {
			tags = nil
			log.Printf("[WARN] bolt: invalid catalog at %s: %v", key, err)
			return nil
		}

		ok = true
		return nil
	})
	return
}

func (b *Bolt) PutTags(kind store.Kind, tags store.Tags) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(tagsBucket))
		if err != nil {
			return fmt.Errorf("bolt cannot create bucket '%s': %w", tagsBucket, err)
		}

		key := tagsKey(kind)
		if tags == nil {
			tags = store.Tags{}
		}
		val, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("bolt cannot marshal %s: %w", key, err)
		}

		log.Printf("[DEBUG] store/bolt put key=%s len=%d", key, len(val))
		if err := bucket.Put(key, val); err != nil {
			return fmt.Errorf("bolt cannot put %s: %w", key, err)
		}
		return nil
	})
}

// Backup writes a consistent copy of the whole database file.
func (b *Bolt) Backup(w io.Writer) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		log.Printf("[DEBUG] store/bolt writing backup len=%d", tx.Size())
		_, err := tx.WriteTo(w)
		return err
	})
}

func tagsKey(kind store.Kind) []byte {
	return []byte("/" + string(kind))
}
