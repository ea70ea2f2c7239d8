package simdops

import (
	"runtime"
	"strings"

	simdcpu "github.com/tphakala/simd/cpu"
	"golang.org/x/sys/cpu"
)

// Info returns the SIMD implementation selected by the simd package.
func Info() string {
	return simdcpu.Info()
}

// Features lists the vector extensions the host CPU reports.
func Features() string {
	var feats []string
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasSSE41 {
			feats = append(feats, "sse4.1")
		}
		if cpu.X86.HasAVX {
			feats = append(feats, "avx")
		}
		if cpu.X86.HasAVX2 {
			feats = append(feats, "avx2")
		}
		if cpu.X86.HasFMA {
			feats = append(feats, "fma")
		}
		if cpu.X86.HasAVX512F {
			feats = append(feats, "avx512f")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			feats = append(feats, "asimd")
		}
		if cpu.ARM64.HasSVE {
			feats = append(feats, "sve")
		}
	}
	if len(feats) == 0 {
		return "none"
	}
	return strings.Join(feats, ",")
}
