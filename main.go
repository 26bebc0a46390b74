// Command goba is a thin demo host: it loads a firmware image and a
// cartridge image, drives the core one frame at a time, and reports
// progress. The host window, input loop, and pixel blitter a real
// front end would need are out of scope (spec.md §1) — this just
// proves the core runs.
package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"GoBA/internal/core"
	"GoBA/rom"
)

func main() {
	firmwarePath := flag.String("bios", "", "path to a 16 KiB GBA firmware image")
	romPath := flag.String("rom", "", "path to a cartridge ROM image")
	frames := flag.Int("frames", 60, "number of frames to run")
	breakpoint := flag.String("breakpoint", "", "hex PC address to stop execution at, e.g. 0x08000100")
	flag.Parse()

	if *firmwarePath == "" || *romPath == "" {
		log.Fatal("both -bios and -rom are required")
	}

	firmware, err := os.ReadFile(*firmwarePath)
	if err != nil {
		log.Fatalf("reading firmware: %v", err)
	}
	cartridgeImage, err := rom.Load(*romPath)
	if err != nil {
		log.Fatalf("reading cartridge: %v", err)
	}

	var opts []core.Option
	if *breakpoint != "" {
		addr, err := strconv.ParseUint(*breakpoint, 0, 32)
		if err != nil {
			log.Fatalf("parsing -breakpoint: %v", err)
		}
		opts = append(opts, core.WithBreakpoint(uint32(addr)))
	}

	emu, err := core.NewCore(firmware, cartridgeImage.Data, opts...)
	if err != nil {
		log.Fatalf("constructing core: %v", err)
	}

	start := time.Now()
	for i := 0; i < *frames; i++ {
		_, hit := emu.RenderFrame(0xFFFF) // no buttons held, all bits 1 (active-low)
		if hit {
			pc := emu.CPU.PC()
			log.Printf("breakpoint/fault hit at frame %d, pc=%#08x", i, pc)
			break
		}
		if err := emu.Fault(); err != nil {
			log.Printf("frame %d: %v", i, err)
			break
		}
	}
	log.Printf("ran %d frames in %s", *frames, time.Since(start))
}
