package engine

import (
	"math/rand"
	"testing"
)

func benchmarkPack(b *testing.B, n int) {
	rng := rand.New(rand.NewSource(1))
	widths, heights := randomPieces(rng, n, 60)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Pack(widths, heights, 60); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPack_10(b *testing.B) { benchmarkPack(b, 10) }
func BenchmarkPack_1000(b *testing.B) { benchmarkPack(b, 1000) }
func BenchmarkPack_100000(b *testing.B) { benchmarkPack(b, 100000) }
