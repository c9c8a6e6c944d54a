package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server configuration
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Source configuration
	Lang          string  `long:"lang" env:"WIKI_LANG" default:"pl" description:"Default encyclopedia language edition"`
	UserAgent     string  `long:"user-agent" env:"USER_AGENT" default:"WikiFeed/1.0" description:"User agent string for outbound requests"`
	SourceTimeout int     `long:"source-timeout" env:"SOURCE_TIMEOUT" default:"10" description:"Timeout per outbound source call in seconds"`
	RateLimit     float64 `long:"rate-limit" env:"RATE_LIMIT" default:"10" description:"Outbound requests per second against the source API"`
	ThumbSize     int     `long:"thumb-size" env:"THUMB_SIZE" default:"800" description:"Preferred thumbnail width in pixels"`

	// Feed configuration
	MaxCount      int    `long:"max-count" env:"MAX_COUNT" default:"12" description:"Maximum items per feed page"`
	CacheTTL      int    `long:"cache-ttl" env:"CACHE_TTL" default:"30" description:"Popularity cache TTL in minutes"`
	TagsFile      string `long:"tags-file" env:"TAGS_FILE" description:"Optional YAML file overriding the tag/category map"`
	RelatedLimit  int    `long:"related-limit" env:"RELATED_LIMIT" default:"3" description:"Related topics kept per card"`
	MinExtractLen int    `long:"min-extract-len" env:"MIN_EXTRACT_LEN" default:"100" description:"Minimum extract length for a card to be kept"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Warsaw)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:          raw.Port,
		Lang:          raw.Lang,
		UserAgent:     raw.UserAgent,
		SourceTimeout: raw.SourceTimeout,
		RateLimit:     raw.RateLimit,
		ThumbSize:     raw.ThumbSize,
		MaxCount:      raw.MaxCount,
		CacheTTL:      raw.CacheTTL,
		TagsFile:      raw.TagsFile,
		RelatedLimit:  raw.RelatedLimit,
		MinExtractLen: raw.MinExtractLen,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
