package config

import (
	"fmt"
	"io"

	"github.com/curtisnewbie/instrument/instrument"
	"github.com/natefinch/lumberjack"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
)

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

// Create rolling file based log writer.
func BuildRollingLogFileWriter(p RollingFile) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   p.Name,
		MaxSize:    p.MaxSize,    // megabytes
		MaxAge:     p.MaxAge,     // days
		MaxBackups: p.MaxBackups, // num of files
		LocalTime:  true,
		Compress:   false,
	}
}

/*
Apply configuration to logger and the instrument package.

The logger's level, formatter and output are changed, and the default [instrument.Sink] is replaced with one
that writes to the same output. If metrics are enabled, an [instrument.HistogramObserver] is registered to reg
and added as a default observer.

Nothing is changed if Apply returns error.

The returned Closer closes the rolling log file, if any.
*/
func Apply(c *Config, logger *logrus.Logger, reg prometheus.Registerer) (io.Closer, error) {
	lvl, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid %v, %w", PropLoggingLevel, err)
	}

	var ob *instrument.HistogramObserver
	if c.Metrics.Enabled {
		ob, err = instrument.NewHistogramObserver(reg, instrument.HistogramOpts{
			Namespace: c.Metrics.Namespace,
			Buckets:   c.Metrics.Buckets,
		})
		if err != nil {
			return nil, err
		}
	}

	var closer io.Closer = closerFunc(func() error { return nil })

	if c.Debug != nil {
		instrument.SetDebug(*c.Debug)
	}

	logger.SetLevel(lvl)

	switch c.Logging.Format {
	case FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJson:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(instrument.NewFormatter())
	}

	if c.Logging.File.Name != "" {
		w := BuildRollingLogFileWriter(c.Logging.File)
		logger.SetOutput(w)
		closer = w
	}

	switch c.Logging.Sink {
	case SinkZerolog:
		zl := zerolog.New(logger.Out).With().Timestamp().Logger().Level(zerologLevel(lvl))
		instrument.SetDefaultSink(instrument.ZerologSink{Logger: zl})
	default:
		instrument.SetDefaultSink(instrument.NewLogrusSink(logger))
	}

	if ob != nil {
		instrument.AddDefaultObserver(ob)
	}

	logger.Debugf("Instrumentation configured, debug: %v, level: %v, sink: %v, metrics: %v",
		instrument.Debug(), lvl, c.Logging.Sink, c.Metrics.Enabled)
	return closer, nil
}

// logrus accepts level names (e.g., 'warning') that zerolog doesn't, so the parsed level is mapped instead.
func zerologLevel(lvl logrus.Level) zerolog.Level {
	switch lvl {
	case logrus.PanicLevel:
		return zerolog.PanicLevel
	case logrus.FatalLevel:
		return zerolog.FatalLevel
	case logrus.ErrorLevel:
		return zerolog.ErrorLevel
	case logrus.WarnLevel:
		return zerolog.WarnLevel
	case logrus.InfoLevel:
		return zerolog.InfoLevel
	case logrus.DebugLevel:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
