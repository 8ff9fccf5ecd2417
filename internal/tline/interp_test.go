package tline_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tlinesim/internal/tline"
)

var _ = Describe("Interp", func() {
	xp := []float64{1, 2, 3}
	fp := []float64{3, 2, 0}

	DescribeTable("evaluates the piecewise-linear function",
		func(q, want float64) {
			got, err := tline.Interp([]float64{q}, xp, fp)
			Expect(err).NotTo(HaveOccurred())
			Expect(got[0]).To(BeNumerically("~", want, 1e-12))
		},
		Entry("between knots", 2.5, 1.0),
		Entry("first segment", 1.5, 2.5),
		Entry("on a knot", 2.0, 2.0),
		Entry("first knot", 1.0, 3.0),
		Entry("last knot", 3.0, 0.0),
		Entry("clamped on the left", -10.0, 3.0),
		Entry("clamped on the right", 10.0, 0.0),
	)

	It("accepts queries in any order", func() {
		got, err := tline.Interp([]float64{3, 1, 2.5, 0}, xp, fp)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal([]float64{0, 3, 1, 3}))
	})

	It("returns NaN for a NaN query", func() {
		got, err := tline.Interp([]float64{math.NaN(), 2}, xp, fp)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsNaN(got[0])).To(BeTrue())
		Expect(got[1]).To(Equal(2.0))
	})

	It("treats a single knot as a constant", func() {
		got, err := tline.Interp([]float64{-1, 0, 5}, []float64{0}, []float64{7})
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal([]float64{7, 7, 7}))
	})

	It("rejects a grid that is not strictly increasing", func() {
		_, err := tline.Interp([]float64{1}, []float64{0, 1, 1}, []float64{0, 1, 2})
		Expect(err).To(MatchError(tline.ErrGridOrder))

		_, err = tline.Interp([]float64{1}, []float64{2, 1}, []float64{0, 1})
		Expect(err).To(MatchError(tline.ErrGridOrder))
	})

	It("rejects mismatched or empty grids", func() {
		_, err := tline.Interp([]float64{1}, []float64{0, 1}, []float64{0})
		Expect(err).To(MatchError(tline.ErrShape))

		_, err = tline.Interp([]float64{1}, nil, nil)
		Expect(err).To(MatchError(tline.ErrShape))
	})

	It("returns an empty result for no queries", func() {
		got, err := tline.Interp(nil, xp, fp)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeEmpty())
	})
})
