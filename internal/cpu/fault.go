package cpu

import (
	"fmt"

	"GoBA/util/dbg"
)

var faultLog = dbg.Subsystem("cpu")

// Fault records an undefined-instruction or unimplemented-path
// condition reached during execution (§7: "undefined instructions ...
// fall through to a documented fault path"). It is carried on the CPU
// rather than panicking, so an embedding host's frame loop can inspect
// it instead of crashing.
type Fault struct {
	PC      uint32
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("cpu fault at %#08x: %s", f.PC, f.Message)
}

func (c *CPU) raiseFault(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.fault = &Fault{PC: c.pc, Message: msg}
	faultLog.Warnf("fault at %#08x: %s", c.pc, msg)
}
