package search

import "testing"

func BenchmarkBoundedLine(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Bounded(0, 500, line, nil, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBoundedGrid(b *testing.B) {
	g := newGrid(42, 40, 40)
	start, end := cell{0, 0}, cell{39, 39}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Bounded(start, end, g.neighbors, g.lower, g.upper); err != nil {
			b.Fatal(err)
		}
	}
}
