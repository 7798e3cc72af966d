package host_test

import (
	"context"
	"errors"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/host"
)

var _ = Describe("Loop", func() {
	var (
		scene *field.Scene
		clock chan time.Time
		loop  *host.Loop
		start time.Time
	)

	BeforeEach(func() {
		var err error
		scene, err = field.NewScene(800, 600, field.DefaultParams(), rand.New(rand.NewSource(1)))
		Expect(err).NotTo(HaveOccurred())
		clock = make(chan time.Time)
		loop = host.NewLoop(scene, host.Options{FPS: 60, Debounce: 250 * time.Millisecond, Clock: clock})
		start = time.Unix(1000, 0)
	})

	run := func(ctx context.Context, sink func(field.Frame) error) chan error {
		done := make(chan error, 1)
		go func() { done <- loop.Run(ctx, sink) }()
		return done
	}

	It("ticks once per clock edge", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		frames := make(chan field.Frame, 8)
		done := run(ctx, func(f field.Frame) error {
			frames <- f
			return nil
		})

		for i := 0; i < 3; i++ {
			clock <- start.Add(time.Duration(i) * 16 * time.Millisecond)
			Eventually(frames).Should(Receive())
		}
		Expect(loop.Frames()).To(BeEquivalentTo(3))

		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})

	It("applies pointer moves before the next frame", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		pointers := make(chan field.Pointer, 1)
		done := run(ctx, func(f field.Frame) error {
			pointers <- scene.Pointer()
			return nil
		})

		loop.MovePointer(120, 80)
		clock <- start
		Eventually(pointers).Should(Receive(Equal(field.Pointer{X: 120, Y: 80})))

		cancel()
		Eventually(done).Should(Receive())
	})

	It("debounces resize events", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sizes := make(chan int, 8)
		done := run(ctx, func(f field.Frame) error {
			sizes <- scene.Field().Len()
			return nil
		})

		loop.Resize(300, 200)
		clock <- start
		Eventually(sizes).Should(Receive(Equal(40)))

		loop.Resize(400, 200)
		clock <- start.Add(100 * time.Millisecond)
		Eventually(sizes).Should(Receive(Equal(40)))

		clock <- start.Add(400 * time.Millisecond)
		Eventually(sizes).Should(Receive(Equal(20)))
		Expect(scene.Bounds()).To(Equal(field.Bounds{Width: 400, Height: 200}))

		cancel()
		Eventually(done).Should(Receive())
	})

	It("returns ErrStopped after Stop", func() {
		done := run(context.Background(), func(f field.Frame) error {
			loop.Stop()
			return nil
		})

		clock <- start
		Eventually(done).Should(Receive(MatchError(field.ErrStopped)))
		Expect(loop.Frames()).To(BeEquivalentTo(1))
	})

	It("surfaces sink errors", func() {
		boom := errors.New("boom")
		done := run(context.Background(), func(f field.Frame) error { return boom })

		clock <- start
		Eventually(done).Should(Receive(MatchError(boom)))
	})

	It("ignores invalid resizes", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		loop = host.NewLoop(scene, host.Options{Clock: clock})
		gen := make(chan int, 1)
		done := run(ctx, func(f field.Frame) error {
			gen <- scene.Generation()
			return nil
		})

		loop.Resize(-10, 10)
		clock <- start
		Eventually(gen).Should(Receive(Equal(1)))

		cancel()
		Eventually(done).Should(Receive())
	})
})
