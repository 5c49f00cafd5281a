package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// benchCollection builds n features spread over n/8 reference lines, each
// with a timed and an untimed regulation.
func benchCollection(n int) types.FeatureCollection {
	rng := rand.New(rand.NewSource(7))
	features := make([]types.Feature, 0, n)
	for i := 0; i < n; i++ {
		start := float64(rng.Intn(200))
		end := start + 1 + float64(rng.Intn(60))
		features = append(features, featureOn(
			fmt.Sprintf("ref-%d", i/8), "right", start, end,
			reg(rng.Intn(10), "no parking", between("07:00", "09:00", "mo", "tu", "we")),
			reg(rng.Intn(10)+5, "parking"),
		))
	}
	return collection(features...)
}

func benchmarkFilter(b *testing.B, n, workers int) {
	c := benchCollection(n)
	q := types.NewQuery("mo", "08:00")
	f := New(WithWorkers(workers), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := f.Run(c, q); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFilter100(b *testing.B)           { benchmarkFilter(b, 100, 1) }
func BenchmarkFilter1000(b *testing.B)          { benchmarkFilter(b, 1000, 1) }
func BenchmarkFilter10000(b *testing.B)         { benchmarkFilter(b, 10000, 1) }
func BenchmarkFilter10000Parallel(b *testing.B) { benchmarkFilter(b, 10000, 8) }
