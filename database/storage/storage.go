package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
)

const (
	// StorageV1
	//		- initial chain layout: block by index, tip pointer
	StorageV1 int32 = 1 + iota

	CurrentStorageVersion int32 = StorageV1
)

const (
	KiB = 1024
	MiB = KiB * 1024
	GiB = MiB * 1024
)

// OpenFlag may be passed among the args of CreateStorage and OpenStorage.
// Drivers without the matching capability ignore it.
type OpenFlag uint8

const (
	// ReadOnly makes every write fail.
	ReadOnly OpenFlag = 1 << iota
)

// HasFlag reports whether args carry an OpenFlag with flag set.
func HasFlag(args []interface{}, flag OpenFlag) bool {
	for _, arg := range args {
		if f, ok := arg.(OpenFlag); ok && f&flag != 0 {
			return true
		}
	}
	return false
}

// versionFilename is kept in the storage directory and records the layout.
const versionFilename = ".ver"

var (
	ErrDbUnknownType       = errors.New("non-existent database type")
	ErrInvalidKey          = errors.New("invalid key")
	ErrInvalidBatch        = errors.New("invalid batch")
	ErrNotFound            = errors.New("not found")
	ErrIncompatibleStorage = errors.New("incompatible storage")
)

// Range is a key range.
type Range struct {
	// Start of the key range, include in the range.
	Start []byte

	// Limit of the key range, not include in the range.
	Limit []byte
}

// BytesPrefix returns the range covering every key that starts with prefix.
func BytesPrefix(prefix []byte) *Range {
	var limit []byte
	for i := len(prefix) - 1; i >= 0; i-- {
		c := prefix[i]
		if c < 0xff {
			limit = make([]byte, i+1)
			copy(limit, prefix)
			limit[i] = c + 1
			break
		}
	}
	return &Range{Start: prefix, Limit: limit}
}

type Iterator interface {
	Release()
	Error() error
	Seek(key []byte) bool
	Next() bool
	Key() []byte
	Value() []byte
}

type Batch interface {
	Release()
	Put(key, value []byte) error
	Delete(key []byte) error
	Reset()
}

type Storage interface {
	Close() error
	// Get returns ErrNotFound if key not exist
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	Write(batch Batch) error
	NewBatch() Batch
	NewIterator(slice *Range) Iterator
}

type StorageDriver struct {
	DbType        string
	CreateStorage func(storPath string, args ...interface{}) (s Storage, err error)
	OpenStorage   func(storPath string, args ...interface{}) (s Storage, err error)
}

var drivers []StorageDriver

func RegisterDriver(instance StorageDriver) {
	for _, drv := range drivers {
		if drv.DbType == instance.DbType {
			return
		}
	}
	drivers = append(drivers, instance)
}

func findDriver(dbtype string) (StorageDriver, error) {
	for _, drv := range drivers {
		if drv.DbType == dbtype {
			return drv, nil
		}
	}
	return StorageDriver{}, ErrDbUnknownType
}

// CreateStorage intializes and opens a database.
func CreateStorage(dbtype, dbpath string, args ...interface{}) (Storage, error) {
	drv, err := findDriver(dbtype)
	if err != nil {
		return nil, err
	}
	return drv.CreateStorage(dbpath, args...)
}

// OpenStorage opens an existing database.
func OpenStorage(dbtype, dbpath string, args ...interface{}) (Storage, error) {
	drv, err := findDriver(dbtype)
	if err != nil {
		return nil, err
	}
	return drv.OpenStorage(dbpath, args...)
}

func RegisteredDbTypes() []string {
	var types []string
	for _, drv := range drivers {
		types = append(types, drv.DbType)
	}
	return types
}

type storageVersion struct {
	Dbtype  string `json:"dbtype,omitempty"`
	Version int32  `json:"version,omitempty"`
}

// CheckCompatibility writes the version file into an unversioned storPath,
// or verifies an existing one matches dbtype and CurrentStorageVersion.
// With ReadOnly among args an unversioned storPath is accepted as is.
func CheckCompatibility(dbtype, storPath string, args ...interface{}) error {
	verFile := filepath.Join(storPath, versionFilename)
	fs, err := os.Stat(verFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if HasFlag(args, ReadOnly) {
			return nil
		}
		data, err := json.Marshal(storageVersion{
			Dbtype:  dbtype,
			Version: CurrentStorageVersion,
		})
		if err != nil {
			return fmt.Errorf("marshal failed: %v", err)
		}
		return ioutil.WriteFile(verFile, data, 0600)
	}
	if fs.IsDir() {
		return fmt.Errorf("directory %s already exists", verFile)
	}

	buf, err := ioutil.ReadFile(verFile)
	if err != nil {
		return fmt.Errorf("read version file error: %v", err)
	}
	var ver storageVersion
	if err = json.Unmarshal(buf, &ver); err != nil {
		return fmt.Errorf("unmarshal failed: %v", err)
	}
	if ver.Version == CurrentStorageVersion && ver.Dbtype == dbtype {
		return nil
	}
	return ErrIncompatibleStorage
}
