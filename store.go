package tabular

import (
	"os"

	"github.com/openkvlab/boltdb"
)

var (
	headerKey  = []byte("header")
	rowsBucket = []byte("rows")
)

// Store persists datasets in a bolt file, one top-level bucket per dataset
// name: the header under a fixed key, the rows in a nested bucket keyed by
// an order-preserving encoding of their insertion sequence. Identifiers and
// cells pass through the configured codec, so Symbols come back as plain
// strings; the resolver treats both forms as the same identifier.
type Store struct {
	db   *boltdb.DB
	maUn MarshalUnmarshaler
}

type StoreOptions = boltdb.Options

func OpenStore(path string, mode os.FileMode, options *StoreOptions) (*Store, error) {
	db, err := boltdb.Open(path, mode, options)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, maUn: MsgpackMaUn}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SetCodec swaps the row codec. Datasets must be loaded with the codec they
// were saved with.
func (s *Store) SetCodec(maUn MarshalUnmarshaler) {
	s.maUn = maUn
}

// SaveDataset drains d's row sequence once and writes it under name,
// replacing any previous dataset with that name.
func (s *Store) SaveDataset(name string, d *Dataset) error {
	return s.db.Update(func(tx *boltdb.Tx) error {
		if tx.Bucket([]byte(name)) != nil {
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return err
			}
		}
		bucket, err := tx.CreateBucket([]byte(name))
		if err != nil {
			return err
		}
		headerBytes, err := s.maUn.Marshal([]any(d.Header))
		if err != nil {
			return err
		}
		if err := bucket.Put(headerKey, headerBytes); err != nil {
			return err
		}
		rows, err := bucket.CreateBucket(rowsBucket)
		if err != nil {
			return err
		}
		for r, err := range d.Rows {
			if err != nil {
				return err
			}
			id, err := rows.NextSequence()
			if err != nil {
				return err
			}
			rowBytes, err := s.maUn.Marshal([]any(r))
			if err != nil {
				return err
			}
			if err := rows.Put(rowKey(id), rowBytes); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadDataset returns the dataset saved under name. The header is read
// eagerly; rows are served lazily, and every traversal opens a fresh read
// transaction and walks the cursor from the start, so the sequence is
// restartable.
func (s *Store) LoadDataset(name string) (*Dataset, error) {
	var header Header
	err := s.db.View(func(tx *boltdb.Tx) error {
		bucket := tx.Bucket([]byte(name))
		if bucket == nil {
			return ErrDatasetNotFound(name)
		}
		headerBytes := bucket.Get(headerKey)
		if headerBytes == nil {
			return ErrDatasetNotFound(name)
		}
		var ids []any
		if err := s.maUn.Unmarshal(headerBytes, &ids); err != nil {
			return err
		}
		header = Header(ids)
		return nil
	})
	if err != nil {
		return nil, err
	}
	rows := func(yield func(Row, error) bool) {
		_ = s.db.View(func(tx *boltdb.Tx) error {
			bucket := tx.Bucket([]byte(name))
			if bucket == nil {
				yield(nil, ErrDatasetNotFound(name))
				return nil
			}
			inner := bucket.Bucket(rowsBucket)
			if inner == nil {
				return nil
			}
			c := inner.Cursor()
			for k, v := c.First(); k != nil; k, v = c.Next() {
				var cells []any
				if err := s.maUn.Unmarshal(v, &cells); err != nil {
					if !yield(nil, err) {
						return nil
					}
					continue
				}
				if !yield(Row(cells), nil) {
					return nil
				}
			}
			return nil
		})
	}
	return &Dataset{Header: header, Rows: rows}, nil
}

// Datasets lists the saved dataset names.
func (s *Store) Datasets() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *boltdb.Tx) error {
		return tx.ForEach(func(name []byte, _ *boltdb.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
