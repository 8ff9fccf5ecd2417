package tline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tlinesim/internal/tline"
)

var _ = Describe("line relations", func() {
	It("computes reflection coefficients", func() {
		Expect(tline.ReflectionCoefficient(100, 100)).To(Equal(0.0))
		Expect(tline.ReflectionCoefficient(20, 100)).To(BeNumerically("~", -2.0/3, 1e-12))
		Expect(tline.ReflectionCoefficient(1e6, 100)).To(BeNumerically("~", 1, 1e-3))
	})

	It("splits the drive between source and line", func() {
		Expect(tline.InjectionGain(100, 100)).To(Equal(0.5))
		Expect(tline.InjectionGain(20, 100)).To(BeNumerically("~", 5.0/6, 1e-12))
	})

	It("predicts overshoot and undershoot at an open load", func() {
		Expect(tline.OvershootLevel(1, 20, 100)).To(BeNumerically("~", 5.0/3, 1e-12))
		Expect(tline.UndershootLevel(1, 20, 100)).To(BeNumerically("~", 5.0/9, 1e-12))
		Expect(tline.OvershootLevel(1, 100, 100)).To(Equal(1.0))
	})

	It("derives the step and spacing", func() {
		p := tline.Params{Drive: make([]float64, 100), Samples: 50, Length: 0.5, EndTime: 20}
		Expect(p.Validate()).To(Succeed())
		Expect(p.TimeStep()).To(Equal(0.2))
		Expect(p.Spacing()).To(BeNumerically("~", 0.5/49, 1e-15))
	})
})
