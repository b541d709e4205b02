package collocation

import "testing"

func benchmarkBuild(b *testing.B, n int) {
	pts, err := Generate[float64](n, ChebyshevLobatto{})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(pts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuild8(b *testing.B)   { benchmarkBuild(b, 8) }
func BenchmarkBuild32(b *testing.B)  { benchmarkBuild(b, 32) }
func BenchmarkBuild128(b *testing.B) { benchmarkBuild(b, 128) }

func BenchmarkApply32(b *testing.B) {
	pts, _ := Generate[float64](32, ChebyshevLobatto{})
	d, _ := Build(pts)
	fx := make([]float64, 32)
	for i := range fx {
		fx[i] = float64(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = d.Apply(fx)
	}
}
