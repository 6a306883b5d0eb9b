// Package memstorage registers an in-memory leveldb storage driver. Every
// Create or Open returns a fresh empty store, the path is ignored.
package memstorage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	lvlstorage "github.com/syndtr/goleveldb/leveldb/storage"

	"massnet.org/hashcore/database/storage"
	"massnet.org/hashcore/database/storage/ldbstorage"
)

// DbType is the driver name registered with package storage.
const DbType = "memdb"

func init() {
	storage.RegisterDriver(storage.StorageDriver{
		DbType:        DbType,
		OpenStorage:   NewMemStorage,
		CreateStorage: NewMemStorage,
	})
}

// NewMemStorage returns an empty in-memory store.
func NewMemStorage(_ string, _ ...interface{}) (storage.Storage, error) {
	mdb, err := leveldb.Open(lvlstorage.NewMemStorage(), &opt.Options{})
	if err != nil {
		return nil, err
	}
	return ldbstorage.Wrap(mdb), nil
}
