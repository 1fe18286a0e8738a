package frame_test

import (
	"context"
	"image"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandelview/internal/frame"
)

func filled(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

var _ = Describe("Buffer", func() {
	var buf *frame.Buffer

	BeforeEach(func() {
		buf = frame.NewBuffer()
	})

	It("is empty before the first publish", func() {
		Expect(buf.Latest()).To(BeNil())
		Expect(buf.Seq()).To(BeZero())
	})

	It("assigns increasing sequence numbers", func() {
		var last uint64
		for i := 0; i < 10; i++ {
			seq := buf.Publish(&frame.Frame{Image: filled(2, 2, 0)})
			Expect(seq).To(BeNumerically(">", last))
			last = seq
		}
		Expect(buf.Latest().Seq).To(Equal(last))
		Expect(buf.Seq()).To(Equal(last))
	})

	It("replaces frames wholesale and leaves held frames untouched", func() {
		buf.Publish(&frame.Frame{Image: filled(2, 2, 1)})
		held := buf.Latest()

		buf.Publish(&frame.Frame{Image: filled(2, 2, 2)})
		Expect(held.Seq).To(Equal(uint64(1)))
		Expect(held.Image.Pix[0]).To(Equal(uint8(1)))
		Expect(buf.Latest().Image.Pix[0]).To(Equal(uint8(2)))
	})

	It("never exposes a frame mixing two sequence numbers", func() {
		const w, h = 64, 48
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var readers sync.WaitGroup
		torn := make(chan uint64, 1)
		for r := 0; r < 4; r++ {
			readers.Add(1)
			go func() {
				defer GinkgoRecover()
				defer readers.Done()
				for ctx.Err() == nil {
					f := buf.Latest()
					if f == nil {
						continue
					}
					want := uint8(f.Seq)
					for _, b := range f.Image.Pix {
						if b != want {
							select {
							case torn <- f.Seq:
							default:
							}
							return
						}
					}
				}
			}()
		}

		for i := 0; i < 300; i++ {
			next := buf.Seq() + 1
			buf.Publish(&frame.Frame{Image: filled(w, h, uint8(next))})
		}
		cancel()
		readers.Wait()

		Expect(torn).To(BeEmpty())
	})

	Describe("Wait", func() {
		It("returns immediately when a newer frame exists", func() {
			buf.Publish(&frame.Frame{Image: filled(1, 1, 0)})
			f, err := buf.Wait(context.Background(), 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Seq).To(Equal(uint64(1)))
		})

		It("blocks until the next publish", func() {
			buf.Publish(&frame.Frame{Image: filled(1, 1, 0)})

			got := make(chan *frame.Frame, 1)
			go func() {
				defer GinkgoRecover()
				f, err := buf.Wait(context.Background(), 1)
				Expect(err).NotTo(HaveOccurred())
				got <- f
			}()

			Consistently(got, 50*time.Millisecond).ShouldNot(Receive())
			buf.Publish(&frame.Frame{Image: filled(1, 1, 0)})

			var f *frame.Frame
			Eventually(got).Should(Receive(&f))
			Expect(f.Seq).To(Equal(uint64(2)))
		})

		It("gives up when the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			f, err := buf.Wait(ctx, 0)
			Expect(f).To(BeNil())
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})
	})
})

var _ = Describe("Frame", func() {
	It("clones pixels into a private image", func() {
		f := &frame.Frame{Image: filled(3, 3, 9)}
		c := f.CloneImage()
		c.Pix[0] = 0
		Expect(f.Image.Pix[0]).To(Equal(uint8(9)))
		Expect(c.Bounds()).To(Equal(f.Image.Bounds()))
	})
})
