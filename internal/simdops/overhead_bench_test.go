package simdops

import (
	"testing"

	"github.com/tphakala/simd/f64"
)

// BenchmarkDirectF64Scale measures direct SIMD call overhead.
func BenchmarkDirectF64Scale(b *testing.B) {
	a := make([]float64, 4096)
	dst := make([]float64, len(a))
	for i := range a {
		a[i] = float64(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		f64.Scale(dst, a, 0.2)
	}
}

// BenchmarkIndirectF64Scale measures indirect call through Ops struct.
func BenchmarkIndirectF64Scale(b *testing.B) {
	ops := For[float64]()
	a := make([]float64, 4096)
	dst := make([]float64, len(a))
	for i := range a {
		a[i] = float64(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		ops.Scale(dst, a, 0.2)
	}
}

// BenchmarkIndirectF64Sum measures indirect reduction through Ops struct.
func BenchmarkIndirectF64Sum(b *testing.B) {
	ops := For[float64]()
	a := make([]float64, 4096)
	for i := range a {
		a[i] = float64(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.Sum(a)
	}
}
