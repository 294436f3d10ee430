package kvstore

import (
	"fmt"
	"strings"

	"github.com/kbukum/faultline/logger"
)

// badgerLogger routes Badger's internal logging through the component
// logger. Badger's info chatter is logged at debug level.
type badgerLogger struct {
	log *logger.Logger
}

func newBadgerLogger(l *logger.Logger) *badgerLogger {
	return &badgerLogger{log: l.WithFields(logger.Fields("source", "badger"))}
}

func (b *badgerLogger) Errorf(format string, args ...interface{}) {
	b.log.Error(render(format, args))
}

func (b *badgerLogger) Warningf(format string, args ...interface{}) {
	b.log.Warn(render(format, args))
}

func (b *badgerLogger) Infof(format string, args ...interface{}) {
	b.log.Debug(render(format, args))
}

func (b *badgerLogger) Debugf(format string, args ...interface{}) {
	b.log.Debug(render(format, args))
}

func render(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
