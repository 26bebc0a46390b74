package dbg

// DebugLogger is an interface that defines our debug logging functions.
// This allows us to have different implementations based on build tags.
type DebugLogger interface {
	Printf(format string, a ...interface{})
	Println(a ...interface{})
	Warnf(format string, a ...interface{})
}

// Global variable for our debug logger instance.
// This will be initialized by either debug-log.go or nodebug-log.go depending on build tags.
var debugLog DebugLogger

func Printf(format string, a ...interface{}) {
	debugLog.Printf(format, a...)
}

func Println(a ...interface{}) {
	debugLog.Println(a...)
}

// Warnf logs a fault/diagnostic that should stay visible even in a
// release build (undefined-instruction faults, unmapped bus reads,
// unimplemented PPU modes) — never called on the hot
// per-step path.
func Warnf(format string, a ...interface{}) {
	debugLog.Warnf(format, a...)
}

// Subsystem returns a logger scoped to one of "cpu", "bus", "ppu" via
// a logrus field, for call sites that want structured fault context
// rather than a bare formatted line.
func Subsystem(name string) DebugLogger {
	return subsystemLogger(name)
}
