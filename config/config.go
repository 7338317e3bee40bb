package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	PropDebug = "instrument.debug" // overrides the build flag when set

	PropLoggingLevel          = "logging.level"
	PropLoggingFormat         = "logging.format" // default, text or json
	PropLoggingSink           = "logging.sink"   // logrus or zerolog
	PropLoggingFileName       = "logging.file.name"
	PropLoggingFileMaxSize    = "logging.file.max-size"    // in mb
	PropLoggingFileMaxAge     = "logging.file.max-age"     // in days
	PropLoggingFileMaxBackups = "logging.file.max-backups" // number of files

	PropMetricsEnabled   = "metrics.enabled"
	PropMetricsNamespace = "metrics.namespace"
	PropMetricsBuckets   = "metrics.buckets"

	EnvPrefix = "INSTRUMENT"
)

const (
	FormatDefault = "default"
	FormatText    = "text"
	FormatJson    = "json"

	SinkLogrus  = "logrus"
	SinkZerolog = "zerolog"
)

type Config struct {
	Debug   *bool // nil if not configured
	Logging Logging
	Metrics Metrics
}

type Logging struct {
	Level  string
	Format string
	Sink   string
	File   RollingFile
}

type RollingFile struct {
	Name       string // empty if logs are written to stdout
	MaxSize    int
	MaxAge     int
	MaxBackups int
}

type Metrics struct {
	Enabled   bool
	Namespace string
	Buckets   []float64
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault(PropLoggingLevel, "info")
	vp.SetDefault(PropLoggingFormat, FormatDefault)
	vp.SetDefault(PropLoggingSink, SinkLogrus)
	vp.SetDefault(PropLoggingFileMaxSize, 50)
	vp.SetDefault(PropLoggingFileMaxAge, 0)
	vp.SetDefault(PropLoggingFileMaxBackups, 10)
	vp.SetDefault(PropMetricsEnabled, false)
}

/*
Load configuration.

Configuration is read from configFile (yaml, json or toml, based on the file extension) if it's not empty,
then from env variables prefixed with 'INSTRUMENT_', e.g., INSTRUMENT_LOGGING_LEVEL for 'logging.level'.

Args in 'KEY=VALUE' form override both, e.g., 'instrument.debug=false'. Other args are ignored.
*/
func Load(configFile string, args []string) (*Config, error) {
	vp := viper.New()
	setDefaults(vp)

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vp.AutomaticEnv()

	if configFile != "" {
		vp.SetConfigFile(configFile)
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %v, %w", configFile, err)
		}
	}

	for k, v := range parseArgKVs(args) {
		vp.Set(k, v)
	}

	return fromViper(vp)
}

func fromViper(vp *viper.Viper) (*Config, error) {
	c := &Config{
		Logging: Logging{
			Level:  strings.ToLower(vp.GetString(PropLoggingLevel)),
			Format: strings.ToLower(vp.GetString(PropLoggingFormat)),
			Sink:   strings.ToLower(vp.GetString(PropLoggingSink)),
			File: RollingFile{
				Name:       vp.GetString(PropLoggingFileName),
				MaxSize:    vp.GetInt(PropLoggingFileMaxSize),
				MaxAge:     vp.GetInt(PropLoggingFileMaxAge),
				MaxBackups: vp.GetInt(PropLoggingFileMaxBackups),
			},
		},
		Metrics: Metrics{
			Enabled:   vp.GetBool(PropMetricsEnabled),
			Namespace: vp.GetString(PropMetricsNamespace),
		},
	}

	if vp.IsSet(PropDebug) {
		d, err := cast.ToBoolE(vp.Get(PropDebug))
		if err != nil {
			return nil, fmt.Errorf("invalid %v, %w", PropDebug, err)
		}
		c.Debug = &d
	}

	buckets, err := toFloat64Slice(vp.Get(PropMetricsBuckets))
	if err != nil {
		return nil, fmt.Errorf("invalid %v, %w", PropMetricsBuckets, err)
	}
	c.Metrics.Buckets = buckets

	switch c.Logging.Format {
	case FormatDefault, FormatText, FormatJson:
	default:
		return nil, fmt.Errorf("invalid %v: '%v'", PropLoggingFormat, c.Logging.Format)
	}
	switch c.Logging.Sink {
	case SinkLogrus, SinkZerolog:
	default:
		return nil, fmt.Errorf("invalid %v: '%v'", PropLoggingSink, c.Logging.Sink)
	}
	return c, nil
}

// buckets may be a yaml list or a comma separated string from env or args.
func toFloat64Slice(v any) ([]float64, error) {
	if v == nil {
		return nil, nil
	}
	var items []any
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		for _, tok := range strings.Split(s, ",") {
			items = append(items, strings.TrimSpace(tok))
		}
	} else {
		sl, err := cast.ToSliceE(v)
		if err != nil {
			return nil, err
		}
		items = sl
	}

	fs := make([]float64, 0, len(items))
	for _, it := range items {
		f, err := cast.ToFloat64E(it)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	return fs, nil
}

func parseArgKVs(args []string) map[string]string {
	m := map[string]string{}
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || strings.HasPrefix(k, "-") {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		m[k] = strings.TrimSpace(v)
	}
	return m
}
