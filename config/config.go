package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"runtime"

	"massnet.org/hashcore/database/storage"
	"massnet.org/hashcore/logging"
)

const (
	AppName                = "hashcore"
	DefaultConfigFilename  = "config.json"
	DefaultLoggingFilename = "hashcore"
	DefaultLogLevel        = "info"
	defaultLogDirname      = "logs"
	DefaultDataDirname     = "chain"
	defaultDbType          = "leveldb"
	defaultChainCacheSize  = 1024
	MaxWorkers             = 1024
	// defaultStreamThreshold is the file size above which files are
	// hashed through the streaming digest instead of read whole.
	defaultStreamThreshold = 64 * storage.MiB
)

// DefaultHomeDir is where logs and the chain database live by default.
var DefaultHomeDir = AppDataDir(AppName, false)

type Config struct {
	Log       *Log       `json:"log"`
	Datastore *Datastore `json:"datastore"`
	Chain     *Chain     `json:"chain"`
	Worker    *Worker    `json:"worker"`
}

type Log struct {
	LogDir        string `json:"log_dir"`
	LogLevel      string `json:"log_level"`
	DisableCPrint bool   `json:"disable_cprint"`
}

type Datastore struct {
	Dir    string `json:"dir"`
	DBType string `json:"db_type"`
}

type Chain struct {
	// CacheSize bounds the in-memory block hash cache.
	CacheSize int `json:"cache_size"`
}

type Worker struct {
	// Workers is the size of the batch hashing pool, 0 means NumCPU.
	Workers         int    `json:"workers"`
	StreamThreshold uint64 `json:"stream_threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		Log:       DefaultLog(),
		Datastore: DefaultDatastore(),
		Chain:     DefaultChain(),
		Worker:    DefaultWorker(),
	}
}

func DefaultLog() *Log {
	return &Log{
		LogDir:        filepath.Join(DefaultHomeDir, defaultLogDirname),
		LogLevel:      DefaultLogLevel,
		DisableCPrint: false,
	}
}

func DefaultDatastore() *Datastore {
	return &Datastore{
		Dir:    filepath.Join(DefaultHomeDir, DefaultDataDirname),
		DBType: defaultDbType,
	}
}

func DefaultChain() *Chain {
	return &Chain{
		CacheSize: defaultChainCacheSize,
	}
}

func DefaultWorker() *Worker {
	return &Worker{
		Workers:         0,
		StreamThreshold: defaultStreamThreshold,
	}
}

func LoadConfig(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err = json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CheckConfig fills missing sections with defaults and validates values.
func CheckConfig(cfg *Config) error {
	if cfg.Log == nil {
		cfg.Log = DefaultLog()
	}

	if cfg.Datastore == nil {
		cfg.Datastore = DefaultDatastore()
	}

	if cfg.Chain == nil {
		cfg.Chain = DefaultChain()
	}

	if cfg.Worker == nil {
		cfg.Worker = DefaultWorker()
	}

	// Checks for log
	if cfg.Log.LogDir == "" {
		return errors.New("log dir cannot be empty")
	}
	if !logging.IsValidLevel(cfg.Log.LogLevel) {
		return fmt.Errorf("invalid log level %s", cfg.Log.LogLevel)
	}

	// Checks for datastore
	if cfg.Datastore.Dir == "" {
		return errors.New("datastore dir cannot be empty")
	}
	var known bool
	for _, tp := range storage.RegisteredDbTypes() {
		if tp == cfg.Datastore.DBType {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%v: %s", storage.ErrDbUnknownType, cfg.Datastore.DBType)
	}

	// Checks for chain
	if cfg.Chain.CacheSize <= 0 {
		cfg.Chain.CacheSize = defaultChainCacheSize
	}

	// Checks for worker
	if cfg.Worker.Workers < 0 || cfg.Worker.Workers > MaxWorkers {
		return fmt.Errorf("workers must be in [0, %d], got %d", MaxWorkers, cfg.Worker.Workers)
	}
	if cfg.Worker.Workers == 0 {
		cfg.Worker.Workers = runtime.NumCPU()
	}
	if cfg.Worker.StreamThreshold == 0 {
		cfg.Worker.StreamThreshold = defaultStreamThreshold
	}

	return nil
}
