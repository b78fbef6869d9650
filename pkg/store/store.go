// Package store persists parsed resource records in an on-disk leveldb
// database, deduplicating identical records along the way.
package store

import (
	"encoding/binary"
	"os"

	"github.com/rs/xid"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

const megabyte = 1 << 20

// Store is an on-disk storage for parsed resource records. The record tuple
// minus the TTL forms the key, so re-parsing the same zone overwrites
// instead of growing the database.
type Store struct {
	DB  *leveldb.DB
	dir string
}

// New creates a new record store under dbPath.
func New(dbPath string) (*Store, error) {
	dir, err := os.MkdirTemp(dbPath, "zonefeed-db-"+xid.New().String())
	if err != nil {
		return nil, err
	}
	db, err := leveldb.OpenFile(dir, &opt.Options{
		CompactionTableSize: 256 * megabyte,
	})
	if err != nil {
		return nil, err
	}
	return &Store{DB: db, dir: dir}, nil
}

// Put stores one record. owner is a wire-format name, rdata the wire-format
// payload; both are copied.
func (s *Store) Put(owner []byte, rrtype, class uint16, ttl uint32, rdata []byte) error {
	key := make([]byte, 0, len(owner)+4+len(rdata))
	key = append(key, owner...)
	key = binary.BigEndian.AppendUint16(key, rrtype)
	key = binary.BigEndian.AppendUint16(key, class)
	key = append(key, rdata...)

	var value [4]byte
	binary.BigEndian.PutUint32(value[:], ttl)
	return s.DB.Put(key, value[:], nil)
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	iter := s.DB.NewIterator(nil, nil)
	defer iter.Release()

	count := 0
	for iter.Next() {
		count++
	}
	return count
}

// Iterate walks all stored records in key order.
func (s *Store) Iterate(f func(owner []byte, rrtype, class uint16, ttl uint32, rdata []byte)) {
	iter := s.DB.NewIterator(nil, nil)
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()
		end := nameLength(key)
		if end < 0 || end+4 > len(key) {
			continue
		}
		owner := key[:end]
		rrtype := binary.BigEndian.Uint16(key[end:])
		class := binary.BigEndian.Uint16(key[end+2:])
		rdata := key[end+4:]
		ttl := binary.BigEndian.Uint32(iter.Value())
		f(owner, rrtype, class, ttl, rdata)
	}
}

// Close releases the database and removes its directory.
func (s *Store) Close() {
	_ = s.DB.Close()
	_ = os.RemoveAll(s.dir)
}

// nameLength walks the labels of a wire-format name and returns its total
// length including the root label, or -1 on malformed input.
func nameLength(data []byte) int {
	i := 0
	for i < len(data) {
		l := int(data[i])
		if l == 0 {
			return i + 1
		}
		i += 1 + l
	}
	return -1
}
