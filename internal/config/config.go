/*
Package config loads the settings of the analysis pipeline.

Settings are read through a schuko.Configuration. Load creates one from
knadh/koanf, layering defaults, an optional configuration file (NestedText
or YAML) and environment variables prefixed with MBSEARCH_. An environment
variable MBSEARCH_ANALYSIS_POSITIONGAP overrides the key
analysis.positiongap.

Keys

	analysis.maxtokenlength             maximum token length in runes (255)
	analysis.positiongap                position gap between field values (100)
	analysis.defaultprofile             profile of unregistered fields (entity-name)
	analysis.fields.<field>             profile name of a field
	similarity.tfscope                  global | rule-fields
	similarity.rules.<field>.threshold  term count at which the norm freezes
	similarity.rules.<field>.frozen     frozen norm value
	pool.maxidle                        idle analyzers kept per profile (8)
	tracing.adapter                     go | logrus
	tracelevel.<tracer>                 Debug | Info | Error
*/
package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/mbsearch/analyzer"
	"github.com/npillmayer/mbsearch/similarity"
	"github.com/npillmayer/mbsearch/tokenizer"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
)

// EnvPrefix is the prefix of environment variables overriding configuration
// keys.
const EnvPrefix = "MBSEARCH_"

// ErrUnknownFormat is returned for configuration files with an unsupported
// file extension.
var ErrUnknownFormat = errors.New("unknown configuration file format")

var defaults = map[string]interface{}{
	"analysis.maxtokenlength": tokenizer.DefaultMaxTokenLength,
	"analysis.positiongap":    analyzer.DefaultPositionGap,
	"analysis.defaultprofile": analyzer.EntityNameProfile,
	"similarity.tfscope":      "global",
	"pool.maxidle":            8,
	"tracing.adapter":         "go",
	"tracelevel.root":         "Error",
}

// Config is a schuko.Configuration backed by koanf.
type Config struct {
	*koanfadapter.KConf
}

var _ schuko.Configuration = Config{}

// Keys returns all configuration keys, flattened.
func (c Config) Keys() []string {
	return c.Koanf().Keys()
}

// Load creates a configuration from defaults, the file at path (if path is
// not empty) and the environment, in that order of precedence.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	conf := Config{koanfadapter.New(k, "", nil)}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return conf, fmt.Errorf("loading defaults: %w", err)
	}
	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".nt":
			parser = koanfadapter.Parser()
		case ".yml", ".yaml":
			parser = yaml.Parser()
		default:
			return conf, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return conf, fmt.Errorf("loading configuration %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return conf, fmt.Errorf("loading environment: %w", err)
	}
	return conf, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "_", ".")
}

// Settings are the analysis settings derived from a configuration.
type Settings struct {
	MaxTokenLength int
	PositionGap    int
	PoolMaxIdle    int
	Registry       *analyzer.Registry
	Scorer         *similarity.Scorer
}

// KeyLister is implemented by configurations able to enumerate their keys.
// Without it, per-field settings cannot be discovered.
type KeyLister interface {
	Keys() []string
}

// FromConfiguration derives the settings from a configuration. Missing
// scalar values fall back to their defaults; invalid values are errors.
func FromConfiguration(conf schuko.Configuration) (*Settings, error) {
	s := &Settings{
		MaxTokenLength: intValue(conf, "analysis.maxtokenlength"),
		PositionGap:    intValue(conf, "analysis.positiongap"),
		PoolMaxIdle:    intValue(conf, "pool.maxidle"),
	}
	if s.MaxTokenLength < 1 {
		return nil, fmt.Errorf("analysis.maxtokenlength must be positive, is %d", s.MaxTokenLength)
	}
	if s.PositionGap < 0 {
		return nil, fmt.Errorf("analysis.positiongap must not be negative, is %d", s.PositionGap)
	}
	var keys []string
	if kl, ok := conf.(KeyLister); ok {
		keys = kl.Keys()
		sort.Strings(keys)
	}
	fields := make(map[string]string)
	for _, key := range keys {
		if field := strings.TrimPrefix(key, "analysis.fields."); field != key {
			fields[field] = conf.GetString(key)
		}
	}
	reg, err := analyzer.NewRegistryFromMap(fields, stringValue(conf, "analysis.defaultprofile"))
	if err != nil {
		return nil, fmt.Errorf("analysis.fields: %w", err)
	}
	s.Registry = reg
	scope, err := similarity.ScopeFromString(stringValue(conf, "similarity.tfscope"))
	if err != nil {
		return nil, fmt.Errorf("similarity.tfscope: %w", err)
	}
	opts := []similarity.Option{
		similarity.WithRule(similarity.AliasRule),
		similarity.WithRule(similarity.ReleaseRule),
		similarity.WithTermFrequencyScope(scope),
	}
	rules, err := ruleSettings(conf, keys)
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		opts = append(opts, similarity.WithRule(r))
	}
	s.Scorer = similarity.New(opts...)
	return s, nil
}

func ruleSettings(conf schuko.Configuration, keys []string) ([]similarity.FieldRule, error) {
	var rules []similarity.FieldRule
	for _, key := range keys {
		field := strings.TrimPrefix(key, "similarity.rules.")
		if field == key || !strings.HasSuffix(field, ".threshold") {
			continue
		}
		field = strings.TrimSuffix(field, ".threshold")
		rule := similarity.FieldRule{Field: field}
		n, err := strconv.Atoi(conf.GetString(key))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s: invalid threshold %q", key, conf.GetString(key))
		}
		rule.Threshold = n
		fkey := "similarity.rules." + field + ".frozen"
		if conf.IsSet(fkey) {
			f, err := strconv.ParseFloat(conf.GetString(fkey), 32)
			if err != nil || f <= 0 {
				return nil, fmt.Errorf("%s: invalid norm %q", fkey, conf.GetString(fkey))
			}
			rule.Frozen = float32(f)
		} else {
			rule.Frozen = float32(1 / math.Sqrt(float64(n)))
		}
		tracer().Debugf("similarity rule for %s: %d terms, norm %.3f", field, rule.Threshold, rule.Frozen)
		rules = append(rules, rule)
	}
	return rules, nil
}

// intValue returns the configured value for key or its default.
func intValue(conf schuko.Configuration, key string) int {
	if conf.IsSet(key) {
		return conf.GetInt(key)
	}
	return defaults[key].(int)
}

func stringValue(conf schuko.Configuration, key string) string {
	if conf.IsSet(key) {
		return conf.GetString(key)
	}
	return defaults[key].(string)
}
