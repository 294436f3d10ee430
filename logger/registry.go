package logger

import (
	"sync"
)

// components caches component-tagged loggers derived from the global
// logger. SetGlobalLogger resets it.
var components = &componentCache{
	loggers: make(map[string]*Logger),
}

type componentCache struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

func (c *componentCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loggers = make(map[string]*Logger)
}

// Register stores a named logger, overriding the derived one for name.
func Register(name string, l *Logger) {
	components.mu.Lock()
	defer components.mu.Unlock()
	components.loggers[name] = l
}

// Get returns the logger for a component: a registered one, or the global
// logger tagged with name.
func Get(name string) *Logger {
	components.mu.RLock()
	l, ok := components.loggers[name]
	components.mu.RUnlock()
	if ok {
		return l
	}

	l = GetGlobalLogger().WithComponent(name)
	components.mu.Lock()
	defer components.mu.Unlock()
	if existing, ok := components.loggers[name]; ok {
		return existing
	}
	components.loggers[name] = l
	return l
}
