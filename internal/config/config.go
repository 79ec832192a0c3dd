package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Output    OutputConfig    `mapstructure:"output"`
	Decode    DecodeConfig    `mapstructure:"decode"`
	Server    ServerConfig    `mapstructure:"server"`
}

type TokenizerConfig struct {
	StartingIndex int `mapstructure:"starting_index"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

type DecodeConfig struct {
	Strict bool `mapstructure:"strict"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps command line flags to their config keys.
var flagKeys = map[string]string{
	"log-level":                "log_level",
	"tokenizer-starting-index": "tokenizer.starting_index",
	"output-format":            "output.format",
	"decode-strict":            "decode.strict",
	"server-listen-addr":       "server.listen_addr",
	"server-max-text-bytes":    "server.max_text_bytes",
	"server-shutdown-timeout":  "server.shutdown_timeout",
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Tokenizer: TokenizerConfig{
			StartingIndex: 0,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Decode: DecodeConfig{
			Strict: false,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    65536,
			ShutdownTimeout: 30,
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.Int("tokenizer-starting-index", defaults.Tokenizer.StartingIndex, "Id assigned to the first vocabulary token")
	fs.String("output-format", defaults.Output.Format, "Output format (text|json)")
	fs.Bool("decode-strict", defaults.Decode.Strict, "Reject token sequences the encoder could not have produced")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum HTTP request body size in bytes")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("FSWTOK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("fswtok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	format, err := NormalizeFormat(cfg.Output.Format)
	if err != nil {
		return Config{}, err
	}
	cfg.Output.Format = format

	if cfg.Tokenizer.StartingIndex < 0 {
		return Config{}, fmt.Errorf("tokenizer.starting_index must not be negative, got %d", cfg.Tokenizer.StartingIndex)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("tokenizer.starting_index", c.Tokenizer.StartingIndex)
	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("decode.strict", c.Decode.Strict)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}
