package render_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandelview/internal/colormap"
	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/frame"
	"github.com/san-kum/mandelview/internal/render"
	"github.com/san-kum/mandelview/internal/viewport"
)

// scriptedBackend fails every call from failAt onwards.
type scriptedBackend struct {
	calls  atomic.Int32
	failAt int32
}

func (b *scriptedBackend) Name() string    { return "scripted" }
func (b *scriptedBackend) Available() bool { return true }
func (b *scriptedBackend) Cleanup()        {}

func (b *scriptedBackend) Escape(_ context.Context, _ fractal.Region, img *fractal.IterationImage, _ uint32) error {
	n := b.calls.Add(1)
	if b.failAt > 0 && n >= b.failAt {
		return &compute.DispatchError{Backend: b.Name(), Cause: errors.New("device lost")}
	}
	for i := range img.Counts {
		img.Counts[i] = uint32(n)
	}
	return nil
}

type recorder struct {
	mu     sync.Mutex
	frames []*frame.Frame
}

func (r *recorder) OnFrame(f *frame.Frame) {
	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []*frame.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*frame.Frame(nil), r.frames...)
}

var _ = Describe("Loop", func() {
	var (
		state   *viewport.State
		backend *scriptedBackend
		buf     *frame.Buffer
		rec     *recorder
	)

	newLoop := func(fps float64) *render.Loop {
		r := render.NewRenderer(backend, colormap.NewColorizer(colormap.Gray(), 1), 8, 6, 64)
		l := render.NewLoop(state, r, buf, render.Options{MaxFPS: fps})
		l.AddObserver(rec)
		return l
	}

	BeforeEach(func() {
		state = viewport.New(viewport.Default(), 0.1)
		backend = &scriptedBackend{}
		buf = frame.NewBuffer()
		rec = &recorder{}
	})

	It("publishes frames with increasing sequence numbers", func() {
		l := newLoop(200)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- l.Run(ctx) }()

		Eventually(func() uint64 { return buf.Seq() }, time.Second).Should(BeNumerically(">=", 5))
		cancel()
		Eventually(done, time.Second).Should(Receive(MatchError(context.Canceled)))
		Expect(l.Status()).To(Equal(render.StatusStopped))

		frames := rec.snapshot()
		for i := 1; i < len(frames); i++ {
			Expect(frames[i].Seq).To(Equal(frames[i-1].Seq + 1))
		}
	})

	It("waits at least one interval between cycles", func() {
		l := newLoop(50)
		Expect(l.Interval()).To(Equal(20 * time.Millisecond))

		ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
		defer cancel()
		Expect(l.Run(ctx)).To(MatchError(context.DeadlineExceeded))

		frames := rec.snapshot()
		Expect(len(frames)).To(BeNumerically(">=", 2))
		Expect(len(frames)).To(BeNumerically("<=", 9))
		for i := 1; i < len(frames); i++ {
			gap := frames[i].RenderedAt.Sub(frames[i-1].RenderedAt)
			Expect(gap).To(BeNumerically(">=", 18*time.Millisecond))
		}
	})

	It("renders the advanced viewport each cycle", func() {
		Expect(state.Apply(viewport.ZoomInToggle)).To(Succeed())
		l := newLoop(0)

		for k := 1; k <= 3; k++ {
			f, err := l.Step(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Seq).To(Equal(uint64(k)))
			Expect(f.Viewport.Scale).To(BeNumerically("~", 2*math.Pow(0.9, float64(k)), 1e-12))
		}
		Expect(buf.Latest().Seq).To(Equal(uint64(3)))
	})

	It("stops with a cycle error and keeps the last good frame", func() {
		backend.failAt = 3
		l := newLoop(0)

		err := l.Run(context.Background())
		Expect(err).To(HaveOccurred())

		var cycle *render.CycleError
		Expect(errors.As(err, &cycle)).To(BeTrue())
		Expect(cycle.Seq).To(Equal(uint64(3)))
		Expect(errors.Is(err, compute.ErrDispatchFailed)).To(BeTrue())

		Expect(l.Status()).To(Equal(render.StatusStopped))
		Expect(buf.Latest().Seq).To(Equal(uint64(2)))
		Expect(rec.snapshot()).To(HaveLen(2))
	})

	It("runs only once", func() {
		l := newLoop(0)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(l.Run(ctx)).To(MatchError(context.Canceled))
		Expect(l.Run(context.Background())).To(MatchError(render.ErrLoopRunning))
	})

	It("reports idle before running", func() {
		Expect(newLoop(10).Status()).To(Equal(render.StatusIdle))
		Expect(render.StatusRunning.String()).To(Equal("running"))
	})
})
