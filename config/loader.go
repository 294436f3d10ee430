package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/ioerr"
	"github.com/kbukum/faultline/logger"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	UserConfigDir() (string, error)
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for an application.
// Returns explicit paths if provided, otherwise searches for them.
func (cr *Resolver) ResolveFiles(name string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	dirs := cr.searchDirs(name)

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.first(dirs, name+".yml", name+".yaml", "config.yml", "config.yaml")
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.first(dirs, ".env."+name, ".env")
	}
	return resolved
}

// searchDirs lists the working directory, then the per-user config
// directory for name.
func (cr *Resolver) searchDirs(name string) []string {
	dirs := []string{"."}
	if dir, err := cr.FileSystem.UserConfigDir(); err == nil && dir != "" {
		dirs = append(dirs, filepath.Join(dir, name))
	}
	return dirs
}

func (cr *Resolver) first(dirs []string, files ...string) string {
	for _, dir := range dirs {
		for _, file := range files {
			path := filepath.Join(dir, file)
			if cr.FileSystem.Exists(path) {
				return path
			}
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	EnvPrefix  string // Defaults to the upper-cased application name
	Defaults   map[string]any
	Flags      map[string]*pflag.Flag
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path. Unlike a searched
// file, an explicit one must exist and parse.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// WithDefaults sets default values by dotted key.
func WithDefaults(defaults map[string]any) LoaderOption {
	return func(lc *LoaderConfig) {
		if lc.Defaults == nil {
			lc.Defaults = make(map[string]any, len(defaults))
		}
		for k, v := range defaults {
			lc.Defaults[k] = v
		}
	}
}

// WithFlag binds a command-line flag to a dotted key. A flag set on the
// command line wins over the environment and the config file.
func WithFlag(key string, flag *pflag.Flag) LoaderOption {
	return func(lc *LoaderConfig) {
		if flag == nil {
			return
		}
		if lc.Flags == nil {
			lc.Flags = make(map[string]*pflag.Flag)
		}
		lc.Flags[key] = flag
	}
}

// LoadConfig loads configuration for an application into cfg.
//
// Precedence, highest first: changed flags, PREFIX_ environment variables
// (including those from the .env file), the config file, defaults.
func LoadConfig(name string, cfg interface{}, opts ...LoaderOption) *errors.Error {
	lc := LoaderConfig{EnvPrefix: strings.ToUpper(name)}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(name, lc)

	return loadFromResolvedFiles(name, cfg, files, lc)
}

// Load loads a T, applies its defaults and validates it when T provides
// those methods.
func Load[T any](name string, opts ...LoaderOption) (*T, *errors.Error) {
	cfg := new(T)
	if err := LoadConfig(name, cfg, opts...); err != nil {
		return nil, err
	}
	if d, ok := any(cfg).(interface{ ApplyDefaults() }); ok {
		d.ApplyDefaults()
	}
	if v, ok := any(cfg).(interface{ Validate() *errors.Error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(name string, cfg interface{}, files ResolvedFiles, lc LoaderConfig) *errors.Error {
	v := viper.New()
	log := logger.Get("config")

	for k, val := range lc.Defaults {
		v.SetDefault(k, val)
	}

	if files.ConfigFile != "" {
		if err := readConfigFile(v, files.ConfigFile, lc); err != nil {
			if lc.ConfigFile != "" {
				return err
			}
			log.WithFault(err).Warn("ignoring config file", logger.Fields("path", files.ConfigFile))
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.WithError(err).Warn("ignoring .env file", logger.Fields("path", files.EnvFile))
		}
	}
	bindEnvVars(v, lc.EnvPrefix)

	for key, flag := range lc.Flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Unspecifiedf("bind flag %s: %v", flag.Name, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return errors.Serialization(fmt.Sprintf("decode config for %s: %v", name, err))
	}
	return nil
}

// readConfigFile reads path into v. A missing file is an I/O NotFound, a
// file that does not parse a Serialization error.
func readConfigFile(v *viper.Viper, path string, lc LoaderConfig) *errors.Error {
	if !lc.FileSystem.Exists(path) {
		return ioerr.Translate(fmt.Errorf("config file %s: %w", path, fs.ErrNotExist))
	}
	v.SetConfigFile(path)
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var parseErr viper.ConfigParseError
	if stderrors.As(err, &parseErr) {
		return errors.Serialization(fmt.Sprintf("parse config file %s: %v", path, err))
	}
	return ioerr.Translate(err)
}

// bindEnvVars binds every PREFIX_ environment variable to the nested key
// variants of its name, so that Unmarshal sees keys absent from the config
// file.
func bindEnvVars(v *viper.Viper, prefix string) {
	if prefix == "" {
		return
	}
	prefix = strings.ToUpper(prefix) + "_"
	for _, env := range os.Environ() {
		name, _, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, prefix) || name == prefix {
			continue
		}
		for _, key := range generateEnvKeyVariants(strings.TrimPrefix(name, prefix)) {
			_ = v.BindEnv(key, name)
		}
	}
}

// generateEnvKeyVariants creates the possible key variants for an
// environment variable name.
// Examples:
//
//	LOGGING_LEVEL      -> [logging_level, logging.level]
//	HTTP_MAX_REDIRECTS -> [http_max_redirects, http.max.redirects, http.max_redirects]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// Progressive nesting: a.b_c_d, a.b.c_d, ...
	for i := 1; i < len(parts)-1; i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
