package ppu

import "fmt"

// Fault records an unimplemented-display-mode condition reached while
// rendering a scanline (§7: "unimplemented ... PPU modes fall through
// to a documented fault path"). Carried on the PPU rather than
// panicking, so the frame driver can surface it the same way a CPU
// fault is surfaced, instead of silently drawing garbage forever.
type Fault struct {
	Line    int
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("ppu fault at line %d: %s", f.Line, f.Message)
}

func (p *PPU) raiseFault(line int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.fault = &Fault{Line: line, Message: msg}
	log.Warnf("fault at line %d: %s", line, msg)
}

// Fault reports the most recent unimplemented-mode fault, if any.
func (p *PPU) Fault() *Fault { return p.fault }
