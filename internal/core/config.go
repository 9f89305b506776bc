package core

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config is the effective configuration of a single run, after CLI flags and
// an optional config file have been merged.
type Config struct {
	Domains      []string
	RecordTypes  []string
	Timeout      float64
	Nameserver   string
	OutputPath   string
	OutputFormat string
	IPInfoToken  string
	QPS          int
}

// Flags carries the raw CLI values before merging with a config file.
type Flags struct {
	Domains     []string
	Types       []string
	Timeout     float64
	ConfigPath  string
	Output      string
	Format      string
	Nameserver  string
	IPInfoToken string
	QPS         int
}

// fileConfig mirrors the config file keys. The same key set is accepted in
// INI ([settings] section), YAML and JSON.
type fileConfig struct {
	Domains     []string `json:"domains" yaml:"domains"`
	RecordTypes []string `json:"record_types" yaml:"record_types"`
	Timeout     float64  `json:"timeout" yaml:"timeout"`
	Nameserver  string   `json:"nameserver" yaml:"nameserver"`
	IPInfoToken string   `json:"ipinfo_token" yaml:"ipinfo_token"`
}

// ResolveConfig merges CLI flags with the optional config file and validates
// the result. A flag the user set explicitly always wins over the file value
// for the same key; changed reports whether a flag was set on the command
// line (cobra's Flags().Changed).
func ResolveConfig(f Flags, changed func(name string) bool) (*Config, error) {
	cfg := &Config{
		Domains:      f.Domains,
		RecordTypes:  f.Types,
		Timeout:      f.Timeout,
		Nameserver:   f.Nameserver,
		OutputPath:   f.Output,
		OutputFormat: f.Format,
		IPInfoToken:  f.IPInfoToken,
		QPS:          f.QPS,
	}

	if f.ConfigPath != "" {
		fc, err := loadConfigFile(f.ConfigPath)
		if err != nil {
			return nil, &ConfigError{Field: "config", Reason: err.Error()}
		}
		if !changed("domain") && len(fc.Domains) > 0 {
			cfg.Domains = fc.Domains
		}
		if !changed("types") && len(fc.RecordTypes) > 0 {
			cfg.RecordTypes = fc.RecordTypes
		}
		if !changed("timeout") && fc.Timeout != 0 {
			cfg.Timeout = fc.Timeout
		}
		if !changed("nameserver") && fc.Nameserver != "" {
			cfg.Nameserver = fc.Nameserver
		}
		if !changed("ipinfo-token") && fc.IPInfoToken != "" {
			cfg.IPInfoToken = fc.IPInfoToken
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Domains) == 0 {
		return &ConfigError{Field: "domains", Reason: "at least one domain must be given via -d or a config file"}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "timeout", Reason: fmt.Sprintf("must be positive, got %v", c.Timeout)}
	}
	switch c.OutputFormat {
	case "text", "json", "csv":
	default:
		return &ConfigError{Field: "format", Reason: fmt.Sprintf("must be one of text, json, csv; got %q", c.OutputFormat)}
	}
	return nil
}

// TimeoutDuration converts the timeout in seconds to a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

func loadConfigFile(path string) (*fileConfig, error) {
	var fc fileConfig

	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&fc); err != nil {
			return nil, err
		}
	case strings.HasSuffix(path, ".json"):
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&fc); err != nil {
			return nil, err
		}
	default:
		file, err := ini.Load(path)
		if err != nil {
			return nil, err
		}
		sec := file.Section("settings")
		fc.Domains = splitList(sec.Key("domains").String())
		fc.RecordTypes = splitList(sec.Key("record_types").String())
		fc.Timeout = sec.Key("timeout").MustFloat64(0)
		fc.Nameserver = sec.Key("nameserver").String()
		fc.IPInfoToken = sec.Key("ipinfo_token").String()
	}

	return &fc, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
