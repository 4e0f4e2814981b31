package store

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	"dslsplit/internal/domain"
)

var (
	bucketTables = []byte("tables")
	bucketMeta   = []byte("meta")
	bucketSchema = []byte("schema")
)

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketTables, bucketMeta, bucketSchema} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// put replaces the table and its training info in one transaction.
func (s *BoltStore) put(key string, table any, info domain.TrainingInfo) error {
	data, err := msgpack.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode table %s: %w", key, err)
	}
	info.Key = key
	meta, err := json.Marshal(info)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketTables).Put([]byte(key), data); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put([]byte(key), meta)
	})
}

func (s *BoltStore) get(key string, table any) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTables).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("table %s: %w", key, domain.ErrNotFound)
		}
		if err := msgpack.Unmarshal(data, table); err != nil {
			return fmt.Errorf("failed to decode table %s: %w", key, err)
		}
		return nil
	})
}

func (s *BoltStore) SaveAffix(table *domain.AffixTable, info domain.TrainingInfo) error {
	return s.put(domain.AffixKey(table.Language, table.Profile), table, info)
}

func (s *BoltStore) LoadAffix(language, profile string) (*domain.AffixTable, error) {
	var table domain.AffixTable
	if err := s.get(domain.AffixKey(language, profile), &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *BoltStore) SavePentagram(table *domain.PentagramTable, info domain.TrainingInfo) error {
	return s.put(domain.PentagramKey(table.Variant), table, info)
}

func (s *BoltStore) LoadPentagram(variant string) (*domain.PentagramTable, error) {
	var table domain.PentagramTable
	if err := s.get(domain.PentagramKey(variant), &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *BoltStore) TrainingInfo(key string) (domain.TrainingInfo, error) {
	var info domain.TrainingInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("training info %s: %w", key, domain.ErrNotFound)
		}
		return json.Unmarshal(data, &info)
	})
	return info, err
}

// ListTrained returns the training info of every stored table.
func (s *BoltStore) ListTrained() ([]domain.TrainingInfo, error) {
	var infos []domain.TrainingInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).ForEach(func(k, v []byte) error {
			var info domain.TrainingInfo
			if err := json.Unmarshal(v, &info); err != nil {
				return err
			}
			infos = append(infos, info)
			return nil
		})
	})
	return infos, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
