package tline_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tlinesim/internal/drive"
	"github.com/san-kum/tlinesim/internal/tline"
)

var _ = Describe("Sweep", func() {
	sets := func() []tline.Params {
		drv := drive.Ramp(100, 20, 1)
		var out []tline.Params
		for _, zs := range []float64{100, 40, 30, 20} {
			out = append(out, tline.Params{
				Drive:   drv,
				ZSource: zs,
				ZTrace:  100,
				ZLoad:   1e6,
				Length:  0.5,
				Samples: 50,
				EndTime: 20,
			})
		}
		return out
	}

	It("matches sequential runs in input order", func() {
		in := sets()
		got, err := tline.Sweep(context.Background(), in, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(HaveLen(len(in)))

		for i, p := range in {
			want, err := p.Simulate()
			Expect(err).NotTo(HaveOccurred())
			Expect(got[i].Rows()).To(Equal(want.Rows()))
		}
	})

	It("defaults the worker count", func() {
		got, err := tline.Sweep(context.Background(), sets(), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(HaveLen(4))
	})

	It("reports a failing set", func() {
		in := sets()
		in[2].Samples = 1
		_, err := tline.Sweep(context.Background(), in, 1)
		Expect(err).To(MatchError(tline.ErrInvalidParameter))
		Expect(err.Error()).To(ContainSubstring("set 2"))
	})

	It("stops on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := tline.Sweep(ctx, sets(), 1)
		Expect(err).To(MatchError(context.Canceled))
	})
})
