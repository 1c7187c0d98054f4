package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/machinekit/go-machinetalk/zeroconf"
	"github.com/spf13/pflag"
)

type ServiceConfig struct {
	Type           string `koanf:"type"`
	UUID           string `koanf:"uuid"`
	DSN            string `koanf:"dsn"`
	Port           int    `koanf:"port"`
	Name           string `koanf:"name"`
	Host           string `koanf:"host"`
	AnnounceFormat string `koanf:"announce_format"`
	Headline       string `koanf:"headline"`
	Domain         string `koanf:"domain"`
	Loopback       bool   `koanf:"loopback"`
	Protocol       string `koanf:"protocol"`
}

type ServerConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Address     string `koanf:"address"`
	Port        int    `koanf:"port"`
	AllowOrigin string `koanf:"allow_origin"`
	CertFile    string `koanf:"cert_file"`
	KeyFile     string `koanf:"key_file"`
}

type Config struct {
	ConfigDir string `koanf:"config_dir"`
	StateDir  string `koanf:"state_dir"`

	LogLevel            string `koanf:"log_level"`
	LogDisableTimestamp bool   `koanf:"log_disable_timestamp"`

	ZeroconfBackend string `koanf:"zeroconf_backend"`
	Browse          bool   `koanf:"browse"`
	BrowseTimeout   int    `koanf:"browse_timeout"`

	Service ServiceConfig `koanf:"service"`
	Server  ServerConfig  `koanf:"server"`
}

func (c *ServiceConfig) options(serviceUUID string) zeroconf.ServiceOptions {
	return zeroconf.ServiceOptions{
		Type:           c.Type,
		ServiceUUID:    serviceUUID,
		DSN:            c.DSN,
		Port:           c.Port,
		Name:           c.Name,
		Host:           c.Host,
		AnnounceFormat: c.AnnounceFormat,
		Headline:       c.Headline,
		Domain:         c.Domain,
		Loopback:       c.Loopback,
		Protocol:       zeroconf.Protocol(c.Protocol),
	}
}

func (c *Config) validate() error {
	if c.Browse {
		if c.BrowseTimeout <= 0 {
			return fmt.Errorf("invalid browse timeout: %d", c.BrowseTimeout)
		}
		return nil
	}

	if len(c.Service.Type) == 0 {
		return errors.New("missing service type")
	} else if c.Service.Port <= 0 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid service port: %d", c.Service.Port)
	} else if _, err := zeroconf.ParseProtocol(c.Service.Protocol); err != nil {
		return err
	}

	if c.Server.Enabled && (c.Server.Port < 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	return nil
}

// loadConfig merges defaults, config.yml in the config directory and the
// command line flags, later sources win.
func loadConfig(args []string) (*Config, error) {
	f := pflag.NewFlagSet("config", pflag.ContinueOnError)
	f.Usage = func() {
		fmt.Fprintln(os.Stderr, f.FlagUsages())
	}
	f.String("config_dir", defaultConfigDir(), "the configuration directory")
	f.String("state_dir", defaultStateDir(), "the directory holding the persisted state")
	f.String("log_level", "info", "the log level")
	f.String("zeroconf_backend", "avahi", fmt.Sprintf("the discovery backend, one of %v", zeroconf.Backends()))
	f.Bool("browse", false, "list machinekit services on the network instead of publishing")
	f.Int("browse_timeout", 5, "seconds to browse for")
	f.String("service.type", "", "the machinekit service type, e.g. config")
	f.String("service.dsn", "", "the endpoint announced in the dsn text record")
	f.Int("service.port", 0, "the announced port")
	f.String("service.uuid", "", "the machinekit instance uuid")
	if err := f.Parse(args); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"log_level":        "info",
		"zeroconf_backend": "avahi",
		"browse_timeout":   5,

		"service.protocol": string(zeroconf.ProtocolIPv4),

		"server.address": "localhost",
		"server.port":    3678,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed loading default configuration: %w", err)
	}

	configDir, _ := f.GetString("config_dir")
	configPath := filepath.Join(configDir, "config.yml")
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed reading configuration file %s: %w", configPath, err)
	}

	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed loading command line configuration: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed unmarshalling configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
