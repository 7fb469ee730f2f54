package control_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/balls/internal/control"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

var _ = Describe("Script", func() {
	var (
		world *physics.World
		ctrl  *control.Controller
	)

	BeforeEach(func() {
		world = physics.NewWorld(physics.DefaultParams())
		ctrl = control.New(world, rand.New(rand.NewSource(5)), 0, func() dynamo.Bounds {
			return dynamo.Bounds{Width: 800, Height: 600}
		})
		world.Add(physics.NewBall(400, 300, 20, dynamo.White))
	})

	It("throws a ball and releases it", func() {
		s := control.NewScript(control.Throw(0, 400, 300, 6, -4, 3)...)

		for frame := 0; frame <= 3; frame++ {
			s.Apply(ctrl, frame)
			Expect(ctrl.State()).To(Equal(control.Dragging))
			ctrl.Step()
		}
		Expect(world.Ball(0).Pos).To(Equal(dynamo.V(418, 288)))

		s.Apply(ctrl, 4)
		Expect(ctrl.State()).To(Equal(control.Idle))
		Expect(world.Ball(0).Vel).To(Equal(dynamo.V(6, -4)))
		Expect(s.Done()).To(BeTrue())
	})

	It("fires events in frame order regardless of input order", func() {
		s := control.NewScript(
			control.Event{Frame: 2, Kind: control.EventKey, Key: control.KeySpawn},
			control.Event{Frame: 1, Kind: control.EventKey, Key: control.KeySpawn},
		)

		s.Apply(ctrl, 1)
		Expect(world.Len()).To(Equal(2))
		Expect(s.Done()).To(BeFalse())

		s.Apply(ctrl, 5)
		Expect(world.Len()).To(Equal(3))
		Expect(s.Done()).To(BeTrue())

		s.Rewind()
		Expect(s.Done()).To(BeFalse())
	})
})
