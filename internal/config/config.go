package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/tailscale/hujson"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	ViewHTTP    = "http"
	ViewConsole = "console"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr    string `json:"addr"`
	DataDir string `json:"data_dir"`
	Backend string `json:"backend"`
	Key     string `json:"key"`
	View    string `json:"view"`
	Debug   bool   `json:"debug"`
}

// fileConfig mirrors Config with pointers so unset keys keep lower-precedence values.
type fileConfig struct {
	Addr    *string `json:"addr"`
	DataDir *string `json:"data_dir"`
	Backend *string `json:"backend"`
	Key     *string `json:"key"`
	View    *string `json:"view"`
	Debug   *bool   `json:"debug"`
}

// Load resolves the configuration. Precedence, lowest first:
// defaults, TODO_* environment variables, the JSONC file named by
// --config or TODO_CONFIG, command line flags.
func Load(args []string) (Config, error) {
	debug, _ := strconv.ParseBool(getEnv("TODO_DEBUG", "false"))
	cfg := Config{
		Addr:    getEnv("TODO_ADDR", "127.0.0.1:8080"),
		DataDir: getEnv("TODO_DATA_DIR", defaultDataDir()),
		Backend: getEnv("TODO_BACKEND", BackendFile),
		Key:     getEnv("TODO_KEY", "@tasks"),
		View:    getEnv("TODO_VIEW", ViewHTTP),
		Debug:   debug,
	}

	var flags Config
	var configPath string
	fs := pflag.NewFlagSet("todolist", pflag.ContinueOnError)
	fs.StringVarP(&configPath, "config", "c", getEnv("TODO_CONFIG", ""), "path to a JSONC config file")
	fs.StringVar(&flags.Addr, "addr", cfg.Addr, "listen address of the HTTP view")
	fs.StringVar(&flags.DataDir, "data-dir", cfg.DataDir, "directory holding the task store")
	fs.StringVar(&flags.Backend, "backend", cfg.Backend, "storage backend: file, sqlite or memory")
	fs.StringVar(&flags.Key, "key", cfg.Key, "storage key of the task list")
	fs.StringVar(&flags.View, "view", cfg.View, "user interface: http or console")
	fs.BoolVar(&flags.Debug, "debug", cfg.Debug, "development logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if configPath != "" {
		fc, err := loadFile(configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = merge(cfg, fc)
	}

	if fs.Changed("addr") {
		cfg.Addr = flags.Addr
	}
	if fs.Changed("data-dir") {
		cfg.DataDir = flags.DataDir
	}
	if fs.Changed("backend") {
		cfg.Backend = flags.Backend
	}
	if fs.Changed("key") {
		cfg.Key = flags.Key
	}
	if fs.Changed("view") {
		cfg.View = flags.View
	}
	if fs.Changed("debug") {
		cfg.Debug = flags.Debug
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	switch c.View {
	case ViewHTTP, ViewConsole:
	default:
		return fmt.Errorf("%w: unknown view %q", ErrInvalidConfig, c.View)
	}
	if c.Key == "" {
		return fmt.Errorf("%w: key must not be empty", ErrInvalidConfig)
	}
	if c.Backend != BackendMemory && c.DataDir == "" {
		return fmt.Errorf("%w: data dir must not be empty", ErrInvalidConfig)
	}
	return nil
}

func loadFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	var fc fileConfig
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fileConfig{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return fc, nil
}

func merge(cfg Config, fc fileConfig) Config {
	if fc.Addr != nil {
		cfg.Addr = *fc.Addr
	}
	if fc.DataDir != nil {
		cfg.DataDir = *fc.DataDir
	}
	if fc.Backend != nil {
		cfg.Backend = *fc.Backend
	}
	if fc.Key != nil {
		cfg.Key = *fc.Key
	}
	if fc.View != nil {
		cfg.View = *fc.View
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	return cfg
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "todolist")
	}
	return ".todolist"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
