package collocation_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/colloc/internal/collocation"
)

func sample(pts collocation.Points[float64], f func(float64) float64) []float64 {
	out := make([]float64, len(pts))
	for i, x := range pts {
		out[i] = f(x)
	}
	return out
}

var _ = Describe("Differentiation matrix", func() {
	Context("on the three-point uniform grid", func() {
		var d *collocation.Matrix[float64]

		BeforeEach(func() {
			pts, err := collocation.Generate[float64](3, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect([]float64(pts)).To(Equal([]float64{0, 0.5, 1}))

			d, err = collocation.Build(pts)
			Expect(err).NotTo(HaveOccurred())
		})

		It("differentiates t² exactly", func() {
			df, err := d.Apply([]float64{0, 0.25, 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(df[0]).To(BeNumerically("~", 0, 1e-12))
			Expect(df[1]).To(BeNumerically("~", 1, 1e-12))
			Expect(df[2]).To(BeNumerically("~", 2, 1e-12))
		})

		It("maps constants to zero", func() {
			df, err := d.Apply([]float64{1, 1, 1})
			Expect(err).NotTo(HaveOccurred())
			for _, v := range df {
				Expect(v).To(BeNumerically("~", 0, 1e-12))
			}
		})
	})

	DescribeTable("is exact for polynomials up to degree n-1",
		func(dist collocation.Distribution, n int) {
			pts, err := collocation.Generate[float64](n, dist)
			Expect(err).NotTo(HaveOccurred())
			d, err := collocation.Build(pts)
			Expect(err).NotTo(HaveOccurred())

			deg := float64(n - 1)
			f := func(x float64) float64 { return math.Pow(x, deg) - 2*x + 0.5 }
			df := func(x float64) float64 {
				if n == 1 {
					return -2
				}
				return deg*math.Pow(x, deg-1) - 2
			}

			got, err := d.Apply(sample(pts, f))
			Expect(err).NotTo(HaveOccurred())
			if n == 1 {
				// A single sample only determines a constant.
				Expect(got[0]).To(Equal(0.0))
				return
			}
			want := sample(pts, df)
			for i := range want {
				Expect(got[i]).To(BeNumerically("~", want[i], 1e-8*(1+math.Abs(want[i]))))
			}
		},
		Entry("uniform n=1", collocation.Uniform{}, 1),
		Entry("uniform n=4", collocation.Uniform{}, 4),
		Entry("uniform n=7", collocation.Uniform{}, 7),
		Entry("chebyshev n=6", collocation.ChebyshevLobatto{}, 6),
		Entry("chebyshev n=20", collocation.ChebyshevLobatto{}, 20),
		Entry("legendre n=5", collocation.LegendreGauss{}, 5),
		Entry("legendre n=18", collocation.LegendreGauss{}, 18),
	)

	It("rejects duplicate points instead of returning NaN", func() {
		d, err := collocation.Build(collocation.Points[float64]{0, 0.5, 0.5})
		Expect(err).To(MatchError(collocation.ErrDegenerateInput))
		Expect(d).To(BeNil())
	})

	It("rejects sizes below one", func() {
		_, err := collocation.Generate[float64](0, nil)
		Expect(err).To(MatchError(collocation.ErrInvalidSize))
	})

	It("exposes a gonum view that agrees with Apply", func() {
		pts, _ := collocation.Generate[float64](6, collocation.ChebyshevLobatto{})
		d, err := collocation.Build(pts)
		Expect(err).NotTo(HaveOccurred())

		fx := sample(pts, math.Sin)
		viaApply, _ := d.Apply(fx)

		dense := d.Dense()
		for i := 0; i < 6; i++ {
			sum := 0.0
			for j := 0; j < 6; j++ {
				sum += fx[j] * dense.At(j, i)
			}
			Expect(sum).To(BeNumerically("~", viaApply[i], 1e-12))
		}
	})
})
