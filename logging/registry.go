package logging

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// LoggerPatternConfig sets the level of every registered logger whose name matches
// Pattern. Patterns are dotted logger names where a section may be "*".
type LoggerPatternConfig struct {
	Pattern string `json:"pattern"`
	Level   string `json:"level"`
}

const (
	// e.g. "foo".
	validLoggerSectionName = `[a-zA-Z0-9]+([_-]*[a-zA-Z0-9]+)*`
	// e.g. "foo" or "*".
	validLoggerSectionNameWithWildcard = `(` + validLoggerSectionName + `|\*)`
	// e.g. "foo.*.foo".
	validLoggerName = `^` + validLoggerSectionNameWithWildcard + `(\.` + validLoggerSectionNameWithWildcard + `)*$`
)

var loggerPatternRegexp = regexp.MustCompile(validLoggerName)

// ValidatePattern reports whether pattern is a well formed logger pattern.
func ValidatePattern(pattern string) bool {
	return loggerPatternRegexp.MatchString(pattern)
}

func buildRegexFromPattern(pattern string) string {
	var matcher strings.Builder
	matcher.WriteRune('^')
	for _, ch := range pattern {
		switch ch {
		case '*':
			matcher.WriteString(`.*`)
		case '.':
			matcher.WriteString(`\.`)
		default:
			matcher.WriteRune(ch)
		}
	}
	matcher.WriteRune('$')
	return matcher.String()
}

// Registry tracks named loggers so their levels can be changed together.
type Registry struct {
	mu           sync.RWMutex
	loggers      map[string]Logger
	defaultLevel Level
	logConfig    []LoggerPatternConfig
}

// NewRegistry returns an empty registry. Loggers not matched by any pattern are set to
// defaultLevel by UpdateConfig.
func NewRegistry(defaultLevel Level) *Registry {
	return &Registry{loggers: map[string]Logger{}, defaultLevel: defaultLevel}
}

// Register adds logger under its name and applies the current patterns to it. If a
// logger is already registered under name, that one is returned instead.
func (lr *Registry) Register(name string, logger Logger) Logger {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if existing, ok := lr.loggers[name]; ok {
		return existing
	}
	lr.loggers[name] = logger
	for _, lpc := range lr.logConfig {
		if level, ok := matchLevel(lpc, name); ok {
			logger.SetLevel(level)
		}
	}
	return logger
}

// LoggerNamed returns the logger registered under name.
func (lr *Registry) LoggerNamed(name string) (Logger, bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok := lr.loggers[name]
	return logger, ok
}

// Names returns the registered logger names in sorted order.
func (lr *Registry) Names() []string {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	names := make([]string, 0, len(lr.loggers))
	for name := range lr.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpdateConfig replaces the pattern list and re-levels every registered logger. Later
// patterns win over earlier ones. Invalid patterns are skipped with a warning.
func (lr *Registry) UpdateConfig(logConfig []LoggerPatternConfig, errorLogger Logger) error {
	valid := make([]LoggerPatternConfig, 0, len(logConfig))
	for _, lpc := range logConfig {
		if !ValidatePattern(lpc.Pattern) {
			errorLogger.Warnw("failed to validate a pattern", "pattern", lpc.Pattern)
			continue
		}
		if _, err := LevelFromString(lpc.Level); err != nil {
			return errors.Wrapf(err, "pattern %q", lpc.Pattern)
		}
		valid = append(valid, lpc)
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.logConfig = valid
	for name, logger := range lr.loggers {
		level := lr.defaultLevel
		for _, lpc := range valid {
			if matched, ok := matchLevel(lpc, name); ok {
				level = matched
			}
		}
		logger.SetLevel(level)
	}
	return nil
}

func matchLevel(lpc LoggerPatternConfig, name string) (Level, bool) {
	r, err := regexp.Compile(buildRegexFromPattern(lpc.Pattern))
	if err != nil || !r.MatchString(name) {
		return INFO, false
	}
	level, err := LevelFromString(lpc.Level)
	if err != nil {
		return INFO, false
	}
	return level, true
}
