package clock_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechlab/internal/clock"
)

type endAt struct{ end float64 }

func (e endAt) Settle(t float64) (float64, bool) {
	if t >= e.end {
		return e.end, true
	}
	return t, false
}

type holding struct {
	clock.Unbounded
	hold bool
}

func (h *holding) Holding() bool { return h.hold }

var _ = Describe("Driver", func() {
	var d *clock.Driver

	BeforeEach(func() {
		d = clock.NewDriver(endAt{end: 1}, clock.Options{})
	})

	It("starts stopped at zero", func() {
		Expect(d.Status()).To(Equal(clock.Stopped))
		Expect(d.Elapsed()).To(BeZero())
		Expect(d.Scale()).To(Equal(1.0))
	})

	Describe("Play", func() {
		It("moves to running and hands out a token", func() {
			tok, ok := d.Play()
			Expect(ok).To(BeTrue())
			Expect(d.Status()).To(Equal(clock.Running))

			again, ok := d.Play()
			Expect(ok).To(BeFalse())
			Expect(again).To(Equal(tok))
		})

		It("hands out a new token for every run", func() {
			first, _ := d.Play()
			d.Pause()
			second, ok := d.Play()
			Expect(ok).To(BeTrue())
			Expect(second).NotTo(Equal(first))
		})
	})

	Describe("Tick", func() {
		It("advances by the raw delta", func() {
			tok, _ := d.Play()
			Expect(d.Tick(tok, 0.25)).To(BeTrue())
			Expect(d.Tick(tok, 0.25)).To(BeTrue())
			Expect(d.Elapsed()).To(BeNumerically("~", 0.5, 1e-12))
		})

		It("clamps before scaling", func() {
			d = clock.NewDriver(clock.Unbounded{}, clock.Options{MaxDelta: 0.1, Scale: 0.5})
			tok, _ := d.Play()
			d.Tick(tok, 2.0)
			Expect(d.Elapsed()).To(BeNumerically("~", 0.05, 1e-12))
			d.Tick(tok, 0.04)
			Expect(d.Elapsed()).To(BeNumerically("~", 0.07, 1e-12))
		})

		It("treats negative and NaN deltas as zero", func() {
			tok, _ := d.Play()
			Expect(d.Tick(tok, -3)).To(BeTrue())
			Expect(d.Tick(tok, math.NaN())).To(BeTrue())
			Expect(d.Elapsed()).To(BeZero())
		})

		It("ignores ticks while stopped", func() {
			tok, _ := d.Play()
			d.Pause()
			Expect(d.Tick(tok, 0.5)).To(BeFalse())
			Expect(d.Elapsed()).To(BeZero())
		})

		It("ignores a stale token from an earlier run", func() {
			old, _ := d.Play()
			d.Tick(old, 0.2)
			d.Pause()
			cur, _ := d.Play()

			Expect(d.Tick(old, 0.5)).To(BeFalse())
			Expect(d.Elapsed()).To(BeNumerically("~", 0.2, 1e-12))
			Expect(d.Tick(cur, 0.1)).To(BeTrue())
			Expect(d.Elapsed()).To(BeNumerically("~", 0.3, 1e-12))
		})

		It("ignores ticks scheduled before a reset", func() {
			tok, _ := d.Play()
			d.Tick(tok, 0.4)
			d.Reset()

			Expect(d.Tick(tok, 0.4)).To(BeFalse())
			Expect(d.Elapsed()).To(BeZero())
			Expect(d.Status()).To(Equal(clock.Stopped))
		})

		It("finishes on the terminal condition and keeps the last time", func() {
			tok, _ := d.Play()
			Expect(d.Tick(tok, 0.6)).To(BeTrue())
			Expect(d.Tick(tok, 0.6)).To(BeFalse())

			Expect(d.Status()).To(Equal(clock.Finished))
			Expect(d.Elapsed()).To(Equal(1.0))
			Expect(d.Tick(tok, 0.6)).To(BeFalse())
			Expect(d.Elapsed()).To(Equal(1.0))
		})

		It("does not advance while the timeline holds", func() {
			h := &holding{hold: true}
			d = clock.NewDriver(h, clock.Options{})
			tok, _ := d.Play()

			Expect(d.Tick(tok, 0.5)).To(BeTrue())
			Expect(d.Elapsed()).To(BeZero())
			Expect(d.Status()).To(Equal(clock.Running))

			h.hold = false
			d.Tick(tok, 0.5)
			Expect(d.Elapsed()).To(Equal(0.5))
		})
	})

	Describe("Finished", func() {
		BeforeEach(func() {
			tok, _ := d.Play()
			d.Tick(tok, 5)
			Expect(d.Status()).To(Equal(clock.Finished))
		})

		It("cannot be played without a reset", func() {
			_, ok := d.Play()
			Expect(ok).To(BeFalse())
			Expect(d.Status()).To(Equal(clock.Finished))
		})

		It("is re-armed by Reset", func() {
			d.Reset()
			Expect(d.Elapsed()).To(BeZero())
			_, ok := d.Play()
			Expect(ok).To(BeTrue())
		})

		It("ignores Pause", func() {
			d.Pause()
			Expect(d.Status()).To(Equal(clock.Finished))
		})
	})

	Describe("Seek", func() {
		It("finishes when seeking past the end", func() {
			d.Seek(3)
			Expect(d.Status()).To(Equal(clock.Finished))
			Expect(d.Elapsed()).To(Equal(1.0))
		})

		It("re-arms a finished clock when seeking back", func() {
			d.Seek(3)
			d.Seek(0.5)
			Expect(d.Status()).To(Equal(clock.Stopped))
			Expect(d.Elapsed()).To(Equal(0.5))
		})

		It("clamps negative times to zero", func() {
			d.Seek(-2)
			Expect(d.Elapsed()).To(BeZero())
		})

		It("keeps a running clock running", func() {
			tok, _ := d.Play()
			d.Seek(0.3)
			Expect(d.Status()).To(Equal(clock.Running))
			Expect(d.Tick(tok, 0.1)).To(BeTrue())
			Expect(d.Elapsed()).To(BeNumerically("~", 0.4, 1e-12))
		})
	})

	Describe("Toggle", func() {
		It("alternates between running and stopped", func() {
			_, started := d.Toggle()
			Expect(started).To(BeTrue())
			_, started = d.Toggle()
			Expect(started).To(BeFalse())
			Expect(d.Status()).To(Equal(clock.Stopped))
		})
	})

	Describe("SetScale", func() {
		It("rejects non-positive and non-finite scales", func() {
			d.SetScale(2)
			d.SetScale(0)
			d.SetScale(-1)
			d.SetScale(math.Inf(1))
			d.SetScale(math.NaN())
			Expect(d.Scale()).To(Equal(2.0))
		})

		It("applies to subsequent ticks", func() {
			d = clock.NewDriver(clock.Unbounded{}, clock.Options{})
			tok, _ := d.Play()
			d.SetScale(3)
			d.Tick(tok, 0.5)
			Expect(d.Elapsed()).To(Equal(1.5))
		})
	})

	It("names its states", func() {
		Expect(clock.Stopped.String()).To(Equal("stopped"))
		Expect(clock.Running.String()).To(Equal("running"))
		Expect(clock.Finished.String()).To(Equal("finished"))
	})
})
