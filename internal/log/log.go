package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is the verbosity of debug output.
type Level int

const (
	Off Level = iota
	Basic
	Detailed
	Trace
	Wire
)

var (
	mu     sync.RWMutex
	level  = Off
	output io.Writer = os.Stderr
)

// LevelFromInt clamps i into the known levels.
func LevelFromInt(i int) Level {
	switch {
	case i <= 0:
		return Off
	case i >= int(Wire):
		return Wire
	default:
		return Level(i)
	}
}

func (l Level) String() string {
	switch l {
	case Off:
		return "off"
	case Basic:
		return "basic"
	case Detailed:
		return "detailed"
	case Trace:
		return "trace"
	case Wire:
		return "wire"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// SetLevel sets the global debug level.
func SetLevel(l Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// GetLevel returns the current debug level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetOutput redirects debug output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	if w == nil {
		w = os.Stderr
	}
	output = w
	mu.Unlock()
}

// Debug writes the formatted message when the current level is at least l.
func Debug(l Level, format string, a ...interface{}) {
	mu.RLock()
	enabled := level >= l && l > Off
	w := output
	mu.RUnlock()
	if !enabled {
		return
	}
	fmt.Fprintf(w, "DEBUG: "+format, a...)
}

// Log writes the formatted message regardless of the debug level.
func Log(format string, a ...interface{}) {
	mu.RLock()
	w := output
	mu.RUnlock()
	fmt.Fprintf(w, format, a...)
}
