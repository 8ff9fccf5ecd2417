package tline_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/tlinesim/internal/drive"
	"github.com/san-kum/tlinesim/internal/tline"
)

// One spatial sample per time step: length 1 over 11 samples with
// dt = 20/200 makes advection an exact one-cell shift.
const (
	shiftLength  = 1.0
	shiftSamples = 11
	shiftSteps   = 200
	shiftEndT    = 20.0
)

func stepDrive() []float64 {
	return drive.Step(shiftSteps, shiftEndT, 1, 0.5)
}

var _ = Describe("Simulate", func() {
	Context("with a matched source, trace and load", func() {
		var (
			drv []float64
			f   *tline.Field
		)

		BeforeEach(func() {
			drv = stepDrive()
			var err error
			f, err = tline.Simulate(drv, 100, 100, 100, shiftLength, shiftSamples, shiftEndT)
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns one row per drive sample and one column per spatial sample", func() {
			Expect(f.Steps()).To(Equal(shiftSteps))
			Expect(f.Samples()).To(Equal(shiftSamples))
		})

		It("carries half the drive down the line without reflection", func() {
			for t := 0; t < f.Steps(); t++ {
				for k := 0; k < f.Samples(); k++ {
					want := 0.0
					if t >= k {
						want = 0.5 * drv[t-k]
					}
					Expect(f.At(t, k)).To(BeNumerically("~", want, 1e-9), "step %d sample %d", t, k)
				}
			}
		})

		It("is finite everywhere", func() {
			Expect(f.Finite()).To(BeTrue())
		})
	})

	Context("with a strong source and an open load", func() {
		var f *tline.Field

		BeforeEach(func() {
			var err error
			f, err = tline.Simulate(stepDrive(), 20, 100, 1e6, shiftLength, shiftSamples, shiftEndT)
			Expect(err).NotTo(HaveOccurred())
		})

		It("overshoots at the load to the closed-form level", func() {
			load := f.Load()
			Expect(floats.Max(load)).To(BeNumerically("~", tline.OvershootLevel(1, 20, 100), 1e-3))
		})

		It("undershoots after the source reflection returns", func() {
			load := f.Load()
			peak := floats.MaxIdx(load)
			Expect(floats.Min(load[peak:])).To(BeNumerically("~", tline.UndershootLevel(1, 20, 100), 1e-2))
		})

		It("sees nothing at the source before the launched edge arrives", func() {
			src := f.Source()
			Expect(src[:5]).To(HaveEach(BeNumerically("~", 0, 1e-12)))
			Expect(src[5]).To(BeNumerically("~", tline.InjectionGain(20, 100), 1e-9))
		})

		It("never moves a wave faster than the propagation velocity", func() {
			dt := shiftEndT / shiftSteps
			spacing := shiftLength / (shiftSamples - 1)
			for t := 0; t < f.Steps(); t++ {
				for k := 0; k < f.Samples(); k++ {
					if float64(t)*dt < float64(k)*spacing {
						Expect(f.At(t, k)).To(BeNumerically("~", 0, 1e-12), "step %d sample %d", t, k)
					}
				}
			}
		})
	})

	Context("with the default ramp drive", func() {
		const (
			length  = 0.5
			samples = 50
			steps   = 100
			endT    = 20.0
		)

		It("settles at the drive level on an open load behind a matched source", func() {
			f, err := tline.Simulate(drive.Ramp(steps, endT, 1), 100, 100, 1e6, length, samples, endT)
			Expect(err).NotTo(HaveOccurred())

			load := f.Load()
			Expect(load[:3]).To(HaveEach(BeNumerically("~", 0, 1e-12)))
			Expect(load[40]).To(BeNumerically("~", 1, 1e-3))
			Expect(floats.Max(load)).To(BeNumerically("~", 1, 1e-2))
			Expect(floats.Max(load)).To(BeNumerically("<=", 1))
		})

		It("peaks near the drive level for a triangle drive", func() {
			f, err := tline.Simulate(drive.Triangle(steps, 1), 100, 100, 1e6, length, samples, endT)
			Expect(err).NotTo(HaveOccurred())
			Expect(floats.Max(f.Load())).To(BeNumerically("~", 1, 0.05))
		})

		It("respects causality on a coarse grid", func() {
			f, err := tline.Simulate(drive.Ramp(steps, endT, 1), 20, 100, 1e6, length, samples, endT)
			Expect(err).NotTo(HaveOccurred())

			dt := endT / steps
			spacing := length / (samples - 1)
			for t := 0; t < f.Steps(); t++ {
				for k := 0; k < f.Samples(); k++ {
					if float64(t)*dt < float64(k)*spacing {
						Expect(f.At(t, k)).To(BeNumerically("~", 0, 1e-12))
					}
				}
			}
		})
	})

	It("is deterministic", func() {
		drv := drive.Ramp(100, 20, 1)
		a, err := tline.Simulate(drv, 30, 100, 500, 0.5, 50, 20)
		Expect(err).NotTo(HaveOccurred())
		b, err := tline.Simulate(drv, 30, 100, 500, 0.5, 50, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Rows()).To(Equal(b.Rows()))
	})

	It("leaves the drive untouched", func() {
		drv := drive.Ramp(100, 20, 1)
		orig := append([]float64(nil), drv...)
		_, err := tline.Simulate(drv, 20, 100, 1e6, 0.5, 50, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(drv).To(Equal(orig))
	})

	It("propagates a degenerate source impedance as non-finite values", func() {
		f, err := tline.Simulate(drive.Ramp(100, 20, 1), -100, 100, 1e6, 0.5, 50, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Finite()).To(BeFalse())
	})

	DescribeTable("rejects invalid parameters",
		func(p tline.Params, name string) {
			_, err := p.Simulate()
			Expect(err).To(MatchError(tline.ErrInvalidParameter))

			var pe *tline.ParamError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Name).To(Equal(name))
		},
		Entry("empty drive", tline.Params{Samples: 10, Length: 1, EndTime: 1}, "drive"),
		Entry("one sample", tline.Params{Drive: []float64{1}, Samples: 1, Length: 1, EndTime: 1}, "samples"),
		Entry("zero length", tline.Params{Drive: []float64{1}, Samples: 10, Length: 0, EndTime: 1}, "length"),
		Entry("negative end time", tline.Params{Drive: []float64{1}, Samples: 10, Length: 1, EndTime: -1}, "end_time"),
	)
})
