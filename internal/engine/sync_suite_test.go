package engine_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafaelvleite/kuramoto-metronomes/internal/config"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/engine"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/layout"
)

func TestSynchronization(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Synchronization Suite")
}

var _ = Describe("Synchronization", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.Default()
		cfg.N = 6
		cfg.Rows = 1
		cfg.Duration = 10.0
		cfg.StartSpread = 0
		cfg.FadeIn = 0.01
		cfg.OmegaSpread = 0
		cfg.NoiseStd = 0
		cfg.KStart = 4.0
		cfg.KEnd = 4.0
		cfg.RLock = 0.95
		cfg.LockHold = 0.5
		cfg.Seed = 11
	})

	runToEnd := func() engine.Frame {
		pos := make([]layout.Point, cfg.N)
		eng, err := engine.NewWithPositions(cfg, pos)
		Expect(err).NotTo(HaveOccurred())

		var last engine.Frame
		err = eng.Run(context.Background(), func(f engine.Frame) bool {
			last = f
			return true
		})
		Expect(err).NotTo(HaveOccurred())
		return last
	}

	It("converges to high coherence under strong coupling", func() {
		last := runToEnd()
		Expect(last.Order).To(BeNumerically(">", 0.99))
	})

	It("locks and stays locked for the rest of the run", func() {
		pos := make([]layout.Point, cfg.N)
		eng, err := engine.NewWithPositions(cfg, pos)
		Expect(err).NotTo(HaveOccurred())

		lockedAt := -1
		err = eng.Run(context.Background(), func(f engine.Frame) bool {
			if f.Locked && lockedAt < 0 {
				lockedAt = f.Index
			}
			if lockedAt >= 0 {
				Expect(f.Locked).To(BeTrue())
			}
			return true
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(lockedAt).To(BeNumerically(">=", 0))
	})

	It("reports a single neutral-free group once locked", func() {
		last := runToEnd()
		Expect(last.Locked).To(BeTrue())
		Expect(last.Clusters).To(Equal(1))
		for _, c := range last.Colors {
			Expect(c).To(Equal(0))
		}
	})

	It("stays incoherent when coupling is removed", func() {
		cfg.KStart = 0
		cfg.KEnd = 0
		cfg.OmegaSpread = 0.3
		cfg.RLock = 0.999

		last := runToEnd()
		Expect(last.Locked).To(BeFalse())
	})
})
