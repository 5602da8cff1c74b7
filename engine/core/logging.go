package core

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	if singleton == nil {
		once.Do(
			func() {
				l := log.NewWithOptions(os.Stderr, log.Options{
					ReportCaller:    true,
					ReportTimestamp: true,
					TimeFormat:      time.RFC3339,
					Prefix:          "Velum ⚡ ",
				})
				// TODO: configurable
				l.SetLevel(log.DebugLevel)
				singleton = &logger{l}
			})
	}
	return singleton
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}

// Minimum interval between repeated warnings that share a key.
const warnInterval = 5 * time.Second

var warnMu sync.Mutex
var lastWarn map[string]time.Time

// LogWarnLimited logs a warning at most once per warnInterval for a given
// key. Recoverable data inconsistencies (duplicate pass metadata, commands
// addressed to unregistered passes) can repeat every frame and would flood
// the log otherwise.
func LogWarnLimited(key, msg string, args ...interface{}) {
	warnMu.Lock()
	if lastWarn == nil {
		lastWarn = make(map[string]time.Time)
	}
	now := time.Now()
	if t, ok := lastWarn[key]; ok && now.Sub(t) < warnInterval {
		warnMu.Unlock()
		return
	}
	lastWarn[key] = now
	warnMu.Unlock()
	getLogger().Warnf(msg, args...)
}
