// Package config loads cmsfront settings from an optional config file and
// CMSFRONT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. CMSFRONT_SERVER_ADDR.
const EnvPrefix = "CMSFRONT"

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig
	Content ContentConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Contact ContactConfig
	Theme   ThemeConfig
	Site    SiteConfig
	Log     LogConfig
}

type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxBodyBytes   int64
	TrustedProxies []string
}

// ContentConfig points at the CMS bundle: a file path, an http(s) URL, and
// optionally a directory of markdown news posts.
type ContentConfig struct {
	Source   string
	NewsDir  string
	Timeout  time.Duration
	Locales  []string
	Template string // directory with template overrides
}

type CacheConfig struct {
	Type string // none, memory, redis
	TTL  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type ContactConfig struct {
	Endpoint       string
	Timeout        time.Duration
	InboxDSN       string
	RelayEnabled   bool
	RateLimit      int
	RateLimitEvery time.Duration
}

type ThemeConfig struct {
	Name    string
	Variant string
	Dir     string
}

type SiteConfig struct {
	AssetPrefix string
	CreditURL   string
	Facebook    string
	Instagram   string
	YouTube     string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Options controls where Load looks for a config file.
type Options struct {
	// File is an explicit config file; when empty Load searches Paths for
	// "cmsfront.{yaml,toml,json}".
	File  string
	Paths []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.max_body_bytes", int64(64<<10))
	v.SetDefault("server.trusted_proxies", []string{})

	v.SetDefault("content.source", "content/site.yaml")
	v.SetDefault("content.news_dir", "")
	v.SetDefault("content.timeout", 10*time.Second)
	v.SetDefault("content.locales", []string{})
	v.SetDefault("content.template", "")

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", 5*time.Minute)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("contact.endpoint", "/.netlify/functions/contact-form")
	v.SetDefault("contact.timeout", 10*time.Second)
	v.SetDefault("contact.inbox_dsn", "file:cmsfront-inbox.db")
	v.SetDefault("contact.relay_enabled", true)
	v.SetDefault("contact.rate_limit", 5)
	v.SetDefault("contact.rate_limit_every", time.Minute)

	v.SetDefault("theme.name", "default")
	v.SetDefault("theme.variant", "")
	v.SetDefault("theme.dir", "")

	v.SetDefault("site.asset_prefix", "/assets")
	v.SetDefault("site.credit_url", "https://spiceprogram.org/")
	v.SetDefault("site.facebook", "https://www.facebook.com/")
	v.SetDefault("site.instagram", "https://www.instagram.com/")
	v.SetDefault("site.youtube", "https://www.youtube.com/")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
}

// Load reads the configuration. A missing config file is not an error; the
// defaults and environment still apply.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("cmsfront")
		paths := opts.Paths
		if len(paths) == 0 {
			paths = []string{".", "./config"}
		}
		for _, path := range paths {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Addr:           v.GetString("server.addr"),
			ReadTimeout:    v.GetDuration("server.read_timeout"),
			WriteTimeout:   v.GetDuration("server.write_timeout"),
			MaxBodyBytes:   v.GetInt64("server.max_body_bytes"),
			TrustedProxies: v.GetStringSlice("server.trusted_proxies"),
		},
		Content: ContentConfig{
			Source:   v.GetString("content.source"),
			NewsDir:  v.GetString("content.news_dir"),
			Timeout:  v.GetDuration("content.timeout"),
			Locales:  v.GetStringSlice("content.locales"),
			Template: v.GetString("content.template"),
		},
		Cache: CacheConfig{
			Type: strings.ToLower(v.GetString("cache.type")),
			TTL:  v.GetDuration("cache.ttl"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Contact: ContactConfig{
			Endpoint:       v.GetString("contact.endpoint"),
			Timeout:        v.GetDuration("contact.timeout"),
			InboxDSN:       v.GetString("contact.inbox_dsn"),
			RelayEnabled:   v.GetBool("contact.relay_enabled"),
			RateLimit:      v.GetInt("contact.rate_limit"),
			RateLimitEvery: v.GetDuration("contact.rate_limit_every"),
		},
		Theme: ThemeConfig{
			Name:    v.GetString("theme.name"),
			Variant: v.GetString("theme.variant"),
			Dir:     v.GetString("theme.dir"),
		},
		Site: SiteConfig{
			AssetPrefix: v.GetString("site.asset_prefix"),
			CreditURL:   v.GetString("site.credit_url"),
			Facebook:    v.GetString("site.facebook"),
			Instagram:   v.GetString("site.instagram"),
			YouTube:     v.GetString("site.youtube"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at startup.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Content.Source) == "" {
		problems = append(problems, "content.source is required")
	}
	switch c.Cache.Type {
	case "", "none", "memory", "redis":
	default:
		problems = append(problems, fmt.Sprintf("cache.type %q is not one of none, memory, redis", c.Cache.Type))
	}
	if c.Contact.RateLimit < 0 {
		problems = append(problems, "contact.rate_limit must not be negative")
	}
	if strings.TrimSpace(c.Contact.Endpoint) == "" {
		problems = append(problems, "contact.endpoint is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
