package control_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/balls/internal/control"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

type recordingCanvas struct {
	bg      dynamo.Color
	circles []physics.Ball
}

func (r *recordingCanvas) Clear(bg dynamo.Color) { r.bg = bg; r.circles = nil }

func (r *recordingCanvas) FillCircle(center dynamo.Vec2, radius float64, c dynamo.Color) {
	b := physics.NewBall(center.X, center.Y, radius, c)
	r.circles = append(r.circles, b)
}

var _ = Describe("Controller", func() {
	var (
		world  *physics.World
		ctrl   *control.Controller
		bounds dynamo.Bounds
	)

	size := func() dynamo.Bounds { return bounds }

	BeforeEach(func() {
		bounds = dynamo.Bounds{Width: 800, Height: 600}
		world = physics.NewWorld(physics.DefaultParams())
		ctrl = control.New(world, rand.New(rand.NewSource(1)), 10, size)
	})

	// grabFirst picks the topmost ball at the center of the last ball.
	grabFirst := func() (int, dynamo.Vec2) {
		b := world.Ball(world.Len() - 1)
		ctrl.PointerDown(b.Pos.X, b.Pos.Y)
		g, ok := world.Active()
		Expect(ok).To(BeTrue())
		return g.Index, b.Pos
	}

	It("starts idle with the configured number of balls", func() {
		Expect(world.Len()).To(Equal(10))
		Expect(ctrl.State()).To(Equal(control.Idle))
	})

	Describe("PointerDown", func() {
		It("grabs the ball under the pointer and zeroes its velocity", func() {
			b := world.Ball(world.Len() - 1)
			pointer := b.Pos.Add(dynamo.V(b.Radius()/2, 0))

			ctrl.PointerDown(pointer.X, pointer.Y)

			g, ok := world.Active()
			Expect(ok).To(BeTrue())
			Expect(ctrl.State()).To(Equal(control.Dragging))
			Expect(g.Offset.X).To(BeNumerically("~", b.Radius()/2, 1e-9))
			held := world.Ball(g.Index)
			Expect(held.ID).To(Equal(b.ID))
			Expect(held.Pos.X).To(BeNumerically("~", b.Pos.X, 1e-9))
			Expect(held.Pos.Y).To(BeNumerically("~", b.Pos.Y, 1e-9))
			Expect(held.Vel).To(Equal(dynamo.Vec2{}))
		})

		It("stays idle on empty space", func() {
			world.Clear()
			ctrl.PointerDown(400, 300)
			Expect(ctrl.State()).To(Equal(control.Idle))
		})

		It("ignores a second press while dragging", func() {
			idx, _ := grabFirst()
			held := world.Ball(idx).ID

			other := world.Ball(0)
			ctrl.PointerDown(other.Pos.X, other.Pos.Y)

			g, ok := world.Active()
			Expect(ok).To(BeTrue())
			Expect(world.Ball(g.Index).ID).To(Equal(held))
		})
	})

	Describe("PointerMove", func() {
		It("drags the held ball keeping the grab offset", func() {
			idx, center := grabFirst()

			ctrl.PointerMove(center.X+30, center.Y-20, 30, -20)

			b := world.Ball(idx)
			Expect(b.Pos.X).To(BeNumerically("~", center.X+30, 1e-9))
			Expect(b.Pos.Y).To(BeNumerically("~", center.Y-20, 1e-9))
			Expect(b.Vel).To(Equal(dynamo.V(30, -20)))
		})

		It("does nothing while idle", func() {
			before := world.Balls()
			ctrl.PointerMove(10, 10, 5, 5)
			Expect(world.Balls()).To(Equal(before))
		})

		It("only moves the held ball", func() {
			idx, center := grabFirst()
			before := world.Balls()

			ctrl.PointerMove(center.X+5, center.Y, 5, 0)

			for i, b := range world.Balls() {
				if i == idx {
					continue
				}
				Expect(b).To(Equal(before[i]))
			}
		})
	})

	Describe("PointerUp", func() {
		It("returns to idle from dragging", func() {
			grabFirst()
			ctrl.PointerUp()
			Expect(ctrl.State()).To(Equal(control.Idle))
		})

		It("is idempotent", func() {
			ctrl.PointerUp()
			ctrl.PointerUp()
			Expect(ctrl.State()).To(Equal(control.Idle))
		})

		It("releases the ball with its throw velocity", func() {
			idx, center := grabFirst()
			ctrl.PointerMove(center.X+8, center.Y, 8, 0)
			ctrl.PointerUp()
			Expect(world.Ball(idx).Vel.X).To(Equal(8.0))
		})
	})

	Describe("KeyPress", func() {
		It("resets to the initial count and clears the grab", func() {
			ctrl.KeyPress(control.KeySpawn)
			ctrl.KeyPress(control.KeySpawn)
			grabFirst()

			ctrl.KeyPress(control.KeyReset)

			Expect(world.Len()).To(Equal(10))
			Expect(ctrl.State()).To(Equal(control.Idle))
		})

		It("spawns exactly one ball that fits the window", func() {
			bounds = dynamo.Bounds{Width: 300, Height: 200}
			n := world.Len()

			ctrl.KeyPress(control.KeySpawn)

			Expect(world.Len()).To(Equal(n + 1))
			spawned := newest(world)
			r := spawned.Radius()
			Expect(spawned.Pos.X).To(BeNumerically(">=", r))
			Expect(spawned.Pos.X).To(BeNumerically("<=", bounds.Width-r))
			Expect(spawned.Pos.Y).To(BeNumerically(">=", r))
			Expect(spawned.Pos.Y).To(BeNumerically("<=", bounds.Height-r))
		})

		It("deletes a freshly spawned ball after grabbing it", func() {
			// Balls larger than any spawn keep the new one last, on top.
			world.Clear()
			for i := 0; i < 10; i++ {
				world.Add(physics.NewBall(float64(60+70*i), 300, 60, dynamo.White))
			}
			n := world.Len()

			ctrl.KeyPress(control.KeySpawn)
			Expect(world.Len()).To(Equal(n + 1))

			spawned := newest(world)
			ctrl.PointerDown(spawned.Pos.X, spawned.Pos.Y)
			g, ok := world.Active()
			Expect(ok).To(BeTrue())
			Expect(world.Ball(g.Index).ID).To(Equal(spawned.ID))

			ctrl.KeyPress(control.KeyDelete)

			Expect(world.Len()).To(Equal(n))
			Expect(ctrl.State()).To(Equal(control.Idle))
			for _, b := range world.Balls() {
				Expect(b.ID).NotTo(Equal(spawned.ID))
			}
		})

		It("keeps the held ball across a spawn", func() {
			idx, _ := grabFirst()
			held := world.Ball(idx).ID

			for i := 0; i < 5; i++ {
				ctrl.KeyPress(control.KeySpawn)
			}

			g, ok := world.Active()
			Expect(ok).To(BeTrue())
			Expect(world.Ball(g.Index).ID).To(Equal(held))
		})

		It("ignores delete while idle", func() {
			n := world.Len()
			ctrl.KeyPress(control.KeyDelete)
			Expect(world.Len()).To(Equal(n))
		})

		It("ignores unknown keys", func() {
			before := world.Balls()
			ctrl.KeyPress(control.KeyNone)
			Expect(world.Balls()).To(Equal(before))
		})
	})

	Describe("Step and Render", func() {
		It("keeps the held ball under the pointer", func() {
			idx, center := grabFirst()
			ctrl.PointerMove(center.X, center.Y, 0, 0)
			ctrl.Step()
			Expect(world.Ball(idx).Pos.Y).To(BeNumerically("~", center.Y, 1e-9))
			Expect(ctrl.Frame()).To(Equal(1))
		})

		It("draws every ball in list order on black", func() {
			canvas := &recordingCanvas{}
			ctrl.Render(canvas)

			Expect(canvas.bg).To(Equal(dynamo.Black))
			Expect(canvas.circles).To(HaveLen(world.Len()))
			for i, b := range world.Balls() {
				Expect(canvas.circles[i].Pos).To(Equal(b.Pos))
				Expect(canvas.circles[i].Radius()).To(Equal(b.Radius()))
			}
		})

		It("reproduces a session from the same seed", func() {
			other := control.New(physics.NewWorld(physics.DefaultParams()), rand.New(rand.NewSource(1)), 10, size)
			for i := 0; i < 120; i++ {
				ctrl.Step()
				other.Step()
			}
			Expect(other.Snapshot()).To(Equal(ctrl.Snapshot()))
		})
	})
})

func newest(w *physics.World) physics.Ball {
	var out physics.Ball
	for _, b := range w.Balls() {
		if b.ID > out.ID {
			out = b
		}
	}
	return out
}
