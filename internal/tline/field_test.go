package tline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tlinesim/internal/drive"
	"github.com/san-kum/tlinesim/internal/tline"
)

var _ = Describe("Field", func() {
	rows := [][]float64{
		{0, 1, 2},
		{3, 4, 5},
	}

	It("rejects ragged and empty rows", func() {
		_, err := tline.NewField([][]float64{{1, 2}, {3}})
		Expect(err).To(MatchError(tline.ErrShape))

		_, err = tline.NewField(nil)
		Expect(err).To(MatchError(tline.ErrShape))
	})

	It("exposes rows, columns and ends", func() {
		f, err := tline.NewField(rows)
		Expect(err).NotTo(HaveOccurred())

		Expect(f.Steps()).To(Equal(2))
		Expect(f.Samples()).To(Equal(3))
		Expect(f.At(1, 2)).To(Equal(5.0))
		Expect(f.Row(0)).To(Equal([]float64{0, 1, 2}))
		Expect(f.Column(1)).To(Equal([]float64{1, 4}))
		Expect(f.Source()).To(Equal([]float64{0, 3}))
		Expect(f.Load()).To(Equal([]float64{2, 5}))
	})

	It("copies on the way in and on the way out", func() {
		src := [][]float64{{1, 2}, {3, 4}}
		f, err := tline.NewField(src)
		Expect(err).NotTo(HaveOccurred())

		src[0][0] = 99
		Expect(f.At(0, 0)).To(Equal(1.0))

		out := f.Rows()
		out[1][1] = 99
		Expect(f.At(1, 1)).To(Equal(4.0))

		row := f.Row(0)
		row[1] = 99
		Expect(f.At(0, 1)).To(Equal(2.0))
	})

	It("places the quarter probe at the rounded-down index", func() {
		f, err := tline.Simulate(drive.Ramp(100, 20, 1), 100, 100, 1e6, 0.5, 50, 20)
		Expect(err).NotTo(HaveOccurred())

		Expect(f.ProbeIndex(0.25)).To(Equal(12))
		Expect(f.ProbeIndex(0)).To(Equal(0))
		Expect(f.ProbeIndex(1)).To(Equal(49))
		Expect(f.ProbeIndex(-1)).To(Equal(0))
		Expect(f.Probe(0.25)).To(Equal(f.Column(12)))
	})

	It("builds evenly spaced axes", func() {
		f, err := tline.NewField(rows)
		Expect(err).NotTo(HaveOccurred())

		Expect(f.TimeAxis(4)).To(Equal([]float64{0, 4}))
		Expect(f.PositionAxis(1)).To(Equal([]float64{0, 0.5, 1}))
	})

	It("reports finite bounds", func() {
		f, err := tline.NewField(rows)
		Expect(err).NotTo(HaveOccurred())

		lo, hi := f.Bounds()
		Expect(lo).To(Equal(0.0))
		Expect(hi).To(Equal(5.0))
		Expect(f.Finite()).To(BeTrue())
	})
})
