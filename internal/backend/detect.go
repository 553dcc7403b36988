package backend

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Capabilities describes what the running process can use.
type Capabilities struct {
	GOOS     string
	GOARCH   string
	CPUs     int
	Procs    int // GOMAXPROCS
	Lanes    int
	Features []string
	// Parallel reports whether the data-parallel strategy is usable.
	Parallel bool
	// Reason explains the Parallel decision.
	Reason string
}

// Detect probes the runtime. workers overrides the lane count when > 0.
func Detect(workers int) Capabilities {
	c := Capabilities{
		GOOS:     runtime.GOOS,
		GOARCH:   runtime.GOARCH,
		CPUs:     runtime.NumCPU(),
		Procs:    runtime.GOMAXPROCS(0),
		Features: cpuFeatures(),
	}
	c.Lanes = c.Procs
	if workers > 0 {
		c.Lanes = workers
	}

	switch {
	case c.Procs < 2:
		c.Reason = "GOMAXPROCS < 2"
	case c.Lanes < 2:
		c.Reason = "fewer than 2 lanes configured"
	default:
		c.Parallel = true
		c.Reason = "multiple processors available"
	}
	return c
}

// cpuFeatures lists the vector extensions reported by the CPU.
func cpuFeatures() []string {
	var fs []string
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasAVX512F {
			fs = append(fs, "avx512")
		}
		if cpu.X86.HasAVX2 {
			fs = append(fs, "avx2")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			fs = append(fs, "neon")
		}
	}
	return fs
}
