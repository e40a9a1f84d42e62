package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
)

var _ = Describe("Controller", func() {
	var (
		cfg *config.Config
		c   *sim.Controller
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
	})

	JustBeforeEach(func() {
		var err error
		c, err = sim.New(cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("switching families", func() {
		It("restores the outgoing family from its snapshot", func() {
			defaults := c.Defaults()
			c.SetA(-3)
			c.SetMaxLength(50)
			for range 20 {
				c.Frame()
			}

			Expect(c.Reset(physics.Aizawa)).To(Succeed())
			Expect(c.Active()).To(Equal(physics.Aizawa))
			Expect(c.Reset(physics.Lorenz)).To(Succeed())

			Expect(c.Model()).To(Equal(defaults))
			Expect(c.Len()).To(Equal(1000))
		})

		It("seeds every family with pads and its initial point", func() {
			for _, f := range physics.Families() {
				Expect(c.Reset(f)).To(Succeed())

				fc := cfg.FamilyConfig(f)
				pts := c.Points()
				Expect(pts).To(HaveLen(fc.MaxLength))
				Expect(pts[len(pts)-1]).To(Equal(fc.Initial.Point()))
				if fc.MaxLength > 1 {
					Expect(pts[0]).To(Equal(config.DefaultPad))
				}
			}
		})

		It("discards edits to the active family on restart", func() {
			Expect(c.Reset(physics.Banlue)).To(Succeed())
			c.SetA(5)
			Expect(c.Restart()).To(Succeed())
			Expect(c.Model().Params.A).To(Equal(2.0))
		})

		It("rejects ids outside the six families", func() {
			Expect(c.Reset(physics.Count)).To(MatchError(dynamo.ErrUnknownFamily))
		})
	})

	Describe("the trail", func() {
		It("never exceeds its bound", func() {
			c.SetMaxLength(64)
			for range 200 {
				c.Frame()
				Expect(c.Len()).To(BeNumerically("<=", 64))
				Expect(c.Len()).To(BeNumerically(">=", 1))
			}
			Expect(c.Len()).To(Equal(64))
		})

		It("draws one segment fewer than it holds", func() {
			Expect(c.Frame()).To(HaveLen(c.Len() - 1))
		})
	})

	Describe("pausing", func() {
		It("freezes integration and rotation", func() {
			c.Frame()
			before := c.Model()
			head := c.Head()

			c.Pause()
			for range 5 {
				Expect(c.Frame()).To(BeEmpty())
			}

			Expect(c.Head()).To(Equal(head))
			Expect(c.Model()).To(Equal(before))
			Expect(c.State()).To(Equal(sim.Paused))
		})
	})

	Context("with per-frame rotation", func() {
		BeforeEach(func() {
			cfg.Render.RotationMode = config.RotationPerFrame
		})

		It("advances each angle once per frame", func() {
			for range 3 {
				c.Frame()
			}
			Expect(c.Model().Rotation.AngleY).To(BeNumerically("~", 3*0.000001, 1e-15))
		})

		It("rotates independently of trail length", func() {
			c.SetMaxLength(10)
			c.Frame()
			Expect(c.Model().Rotation.AngleY).To(BeNumerically("~", 0.000001, 1e-15))
		})
	})

	Describe("headless runs", func() {
		It("estimates a midpoint close to the preset", func() {
			_, err := c.Run(context.Background(), 20000)
			Expect(err).NotTo(HaveOccurred())

			mid := c.Bounds().Midpoint()
			Expect(mid.Z).To(BeNumerically("~", c.Model().Midpoint.Z, 5))
		})
	})
})
