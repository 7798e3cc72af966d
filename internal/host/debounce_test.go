package host_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/host"
)

var _ = Describe("Debouncer", func() {
	var (
		d  *host.Debouncer
		t0 time.Time
	)

	BeforeEach(func() {
		d = host.NewDebouncer(250 * time.Millisecond)
		t0 = time.Unix(1000, 0)
	})

	It("holds a request until the delay passes", func() {
		d.Request(800, 600, t0)
		Expect(d.Pending()).To(BeTrue())

		_, ok := d.Due(t0.Add(249 * time.Millisecond))
		Expect(ok).To(BeFalse())

		b, ok := d.Due(t0.Add(250 * time.Millisecond))
		Expect(ok).To(BeTrue())
		Expect(b).To(Equal(field.Bounds{Width: 800, Height: 600}))
		Expect(d.Pending()).To(BeFalse())
	})

	It("keeps only the last size of a burst and restarts the wait", func() {
		d.Request(800, 600, t0)
		d.Request(1024, 768, t0.Add(200*time.Millisecond))

		_, ok := d.Due(t0.Add(300 * time.Millisecond))
		Expect(ok).To(BeFalse())

		b, ok := d.Due(t0.Add(450 * time.Millisecond))
		Expect(ok).To(BeTrue())
		Expect(b.Width).To(Equal(1024.0))
	})

	It("releases at once with no delay", func() {
		d = host.NewDebouncer(0)
		d.Request(10, 10, t0)
		_, ok := d.Due(t0)
		Expect(ok).To(BeTrue())
	})

	It("reports nothing when idle", func() {
		_, ok := d.Due(t0)
		Expect(ok).To(BeFalse())
	})
})
