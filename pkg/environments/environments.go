package environments

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samvad-hq/netclient/pkg/network"
	"gopkg.in/yaml.v3"
)

const defaultTimeoutSeconds = 30

// configFile represents the structure of the environments configuration file.
type configFile struct {
	Environments []Config `json:"environments" yaml:"environments"`
}

// Config represents a single environment entry declared in config files.
type Config struct {
	Name           string            `json:"name" yaml:"name"`
	Scheme         string            `json:"scheme" yaml:"scheme"`
	Host           string            `json:"host" yaml:"host"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	Queries        []QueryConfig     `json:"queries" yaml:"queries"`
}

// QueryConfig is a common query item. A missing value emits the bare name.
type QueryConfig struct {
	Name  string  `json:"name" yaml:"name"`
	Value *string `json:"value" yaml:"value"`
}

// Timeout returns the configured timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Environment materializes the entry as a network.Environment.
func (c Config) Environment() network.Environment {
	queries := make([]network.QueryItem, 0, len(c.Queries))
	for _, q := range c.Queries {
		if q.Value == nil {
			queries = append(queries, network.QueryFlag(q.Name))
			continue
		}
		queries = append(queries, network.Query(q.Name, *q.Value))
	}
	opts := []network.EnvironmentOption{
		network.WithName(c.Name),
		network.WithScheme(c.Scheme),
		network.WithTimeout(c.Timeout()),
		network.WithCommonHeaders(c.Headers),
	}
	if len(queries) > 0 {
		opts = append(opts, network.WithCommonQueries(queries...))
	}
	return network.NewEnvironment(c.Host, opts...)
}

// Registry holds environment definitions loaded from config files. It is
// read-only after NewRegistry, so concurrent lookups need no locking.
type Registry struct {
	environments []Config
	idx          map[string]Config
}

// LoadRegistry loads the environment registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("environments file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open environments file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read environments file: %w", err)
	}

	fileReg, err := decodeRegistryFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(fileReg.Environments)
}

// NewRegistry sanitizes and validates cfgs and indexes them by name.
func NewRegistry(cfgs []Config) (*Registry, error) {
	if len(cfgs) == 0 {
		return nil, errors.New("environments file contains no environments entries")
	}

	reg := &Registry{
		environments: make([]Config, len(cfgs)),
		idx:          make(map[string]Config, len(cfgs)),
	}

	for i := range cfgs {
		cfg := sanitizeConfig(cfgs[i])
		if err := validateConfig(cfg); err != nil {
			return nil, fmt.Errorf("environments[%d]: %w", i, err)
		}
		if _, exists := reg.idx[cfg.Name]; exists {
			return nil, fmt.Errorf("duplicate environment name %q", cfg.Name)
		}
		reg.environments[i] = cfg
		reg.idx[cfg.Name] = cfg
	}

	return reg, nil
}

var registryDecoders = map[string]func([]byte, any) error{
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
	".json": json.Unmarshal,
}

// decodeRegistryFile picks a decoder by extension. Files without one are
// tried as JSON and then YAML.
func decodeRegistryFile(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" {
		decode, ok := registryDecoders[ext]
		if !ok {
			return configFile{}, fmt.Errorf("unsupported environments file extension %q (expected .yaml, .yml or .json)", ext)
		}
		var file configFile
		if err := decode(data, &file); err != nil {
			return configFile{}, fmt.Errorf("decode environments file: %w", err)
		}
		return file, nil
	}

	var errs []error
	for _, decode := range []func([]byte, any) error{json.Unmarshal, yaml.Unmarshal} {
		var file configFile
		err := decode(data, &file)
		if err == nil {
			return file, nil
		}
		errs = append(errs, err)
	}
	return configFile{}, fmt.Errorf("environments file is neither JSON nor YAML: %w", errors.Join(errs...))
}

// sanitizeConfig trims and normalizes the environment config fields.
func sanitizeConfig(cfg Config) Config {
	cfg.Name = strings.ToLower(strings.TrimSpace(cfg.Name))
	cfg.Scheme = strings.ToLower(strings.TrimSpace(cfg.Scheme))
	if cfg.Scheme == "" {
		cfg.Scheme = network.DefaultScheme
	}
	cfg.Host = strings.TrimSpace(cfg.Host)
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	cfg.Headers = sanitizeHeaders(cfg.Headers)

	if len(cfg.Queries) > 0 {
		queries := make([]QueryConfig, 0, len(cfg.Queries))
		for _, q := range cfg.Queries {
			q.Name = strings.TrimSpace(q.Name)
			if q.Name == "" {
				continue
			}
			queries = append(queries, q)
		}
		cfg.Queries = queries
	}

	return cfg
}

// sanitizeHeaders trims keys and drops entries with an empty key.
// Empty values are kept; some APIs expect a present-but-empty header.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.Name == "" {
		return errors.New("name is required")
	}
	if cfg.Host == "" {
		return fmt.Errorf("host is required for environment %q", cfg.Name)
	}
	if strings.ContainsAny(cfg.Host, "/?# ") {
		return fmt.Errorf("host %q for environment %q must not contain a path or query", cfg.Host, cfg.Name)
	}
	if cfg.Scheme != "http" && cfg.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q for environment %q", cfg.Scheme, cfg.Name)
	}
	return nil
}

// ByName returns the environment config by name.
func (r *Registry) ByName(name string) (Config, bool) {
	if r == nil {
		return Config{}, false
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Config{}, false
	}

	cfg, ok := r.idx[name]
	return cfg, ok
}

// Environment resolves name to a network.Environment.
func (r *Registry) Environment(name string) (network.Environment, error) {
	cfg, ok := r.ByName(name)
	if !ok {
		return nil, fmt.Errorf("environment %q not configured (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return cfg.Environment(), nil
}

// All returns all configured environments in file order.
func (r *Registry) All() []Config {
	if r == nil {
		return nil
	}

	out := make([]Config, len(r.environments))
	copy(out, r.environments)
	return out
}

// Names returns the configured environment names, sorted.
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, 0, len(all))
	for _, cfg := range all {
		names = append(names, cfg.Name)
	}
	sort.Strings(names)
	return names
}
