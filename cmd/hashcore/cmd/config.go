package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"massnet.org/hashcore/config"
	"massnet.org/hashcore/logging"
)

const (
	defaultConfigName = ".hashcore"
	envPrefix         = "HASHCORE"
	logMaxAgeDays     = 7
)

func (a *app) bindFlags(rootCmd *cobra.Command) {
	def := config.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is ./"+defaultConfigName+".json)")
	flags.String("log_dir", def.Log.LogDir, "directory for log files")
	flags.String("log_level", def.Log.LogLevel, "level of logs (debug, info, warn, error, fatal, panic)")
	flags.Bool("console_log", false, "also print logs to the console")
	flags.String("db_dir", def.Datastore.Dir, "directory of the chain database")
	flags.String("db_type", def.Datastore.DBType, "chain database type (leveldb, memdb)")
	flags.Int("cache_size", def.Chain.CacheSize, "number of block hashes kept in memory")
	flags.Int("workers", def.Worker.Workers, "size of the file hashing pool, 0 means one per CPU")
	flags.Uint64("stream_threshold", def.Worker.StreamThreshold, "files larger than this many bytes are streamed")

	for _, name := range []string{"config", "log_dir", "log_level", "console_log", "db_dir", "db_type", "cache_size", "workers", "stream_threshold"} {
		a.v.BindPFlag(name, flags.Lookup(name))
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv() // read in environment variables that match
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig() error {
	v := a.v
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath("./")
		v.SetConfigName(defaultConfigName)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return err
		}
	}

	// Load config to memory.
	cfg := a.cfg
	cfg.Log.LogDir = v.GetString("log_dir")
	cfg.Log.LogLevel = v.GetString("log_level")
	cfg.Log.DisableCPrint = !v.GetBool("console_log")
	cfg.Datastore.Dir = v.GetString("db_dir")
	cfg.Datastore.DBType = v.GetString("db_type")
	cfg.Chain.CacheSize = v.GetInt("cache_size")
	cfg.Worker.Workers = v.GetInt("workers")
	cfg.Worker.StreamThreshold = v.GetUint64("stream_threshold")
	return config.CheckConfig(cfg)
}

// initLogger initializes logging module by config.
func (a *app) initLogger() error {
	return logging.Init(a.cfg.Log.LogDir, config.DefaultLoggingFilename, a.cfg.Log.LogLevel, logMaxAgeDays, a.cfg.Log.DisableCPrint)
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(a.cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, string(data))
			return nil
		},
	}
}
