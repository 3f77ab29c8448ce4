package store

import (
	"time"

	"go.etcd.io/bbolt"
)

// boltBucketState holds all keys; values are JSON or raw strings written by
// the settings and state layers.
const boltBucketState = "state"

type Bolt struct {
	storage *bbolt.DB
}

// NewBolt creates a new Bolt store at the specified path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketState))

		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Get(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)

	err := b.storage.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketState))

		v := bucket.Get([]byte(key))
		if v == nil {
			return nil
		}

		value = string(v)
		ok = true

		return nil
	})

	return value, ok, err
}

func (b *Bolt) Set(key, value string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketState))

		return bucket.Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Remove(key string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketState))

		return bucket.Delete([]byte(key))
	})
}
