package instrument

import (
	"bytes"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	FieldLocation = "location"
	FieldElapsed  = "elapsed"
	FieldFunc     = "func"

	locationWidth = 30
	levelWidth    = 5
)

var (
	_ Sink             = (*LogrusSink)(nil)
	_ logrus.Formatter = (*Formatter)(nil)
)

var logBufPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

// LogrusSink writes records at debug level through a logrus logger.
type LogrusSink struct {
	log *logrus.Logger
}

func NewLogrusSink(l *logrus.Logger) *LogrusSink {
	return &LogrusSink{log: l}
}

func (s *LogrusSink) Emit(r Record) {
	if !s.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	s.log.WithFields(logrus.Fields{
		FieldLocation: r.Location.String(),
		FieldFunc:     r.Location.Func,
		FieldElapsed:  r.Elapsed,
	}).Debug(r.Message)
}

// Formatter prints entries in fixed width columns:
//
//	2024-01-02 15:04:05.000 DEBUG service/user.go:42             : service/user.go:42 completed in 1.2ms
type Formatter struct {
}

func NewFormatter() logrus.Formatter {
	return &Formatter{}
}

func (c *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var loc string
	if v, ok := entry.Data[FieldLocation].(string); ok {
		loc = v
	}

	levelstr := strings.ToUpper(entry.Level.String())
	if entry.Level == logrus.WarnLevel {
		levelstr = "WARN"
	}

	b := logBufPool.Get().(*bytes.Buffer)
	defer putLogBuf(b)

	b.WriteString(entry.Time.Format("2006-01-02 15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(levelstr)
	if len(levelstr) < levelWidth {
		b.WriteString(strings.Repeat(" ", levelWidth-len(levelstr)))
	}

	b.WriteByte(' ')
	b.WriteString(loc)
	if len(loc) < locationWidth {
		b.WriteString(strings.Repeat(" ", locationWidth-len(loc)))
	}

	b.WriteString(" : ")
	b.WriteString(entry.Message)
	b.WriteByte('\n')

	// b is reused once Format returns
	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out, nil
}

func putLogBuf(b *bytes.Buffer) {
	b.Reset()
	logBufPool.Put(b)
}
