package clic

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/irqhal/irq"
)

var _ = Describe("Comp", func() {
	var (
		comp       *Comp
		handle     irq.Handle
		delivered  []irq.ID
		deliveries []irq.Delivery
	)

	record := func(id irq.ID, _ any) {
		delivered = append(delivered, id)
	}

	BeforeEach(func() {
		comp = MakeBuilder().
			WithInterrupts(32).
			WithIntctlBits(3).
			Build("CLIC")
		handle = irq.NewHandle(comp)
		handle.Init()
		delivered = nil
		deliveries = nil

		comp.AcceptHook(irq.HookFunc(func(ctx irq.HookCtx) {
			if ctx.Pos == irq.HookPosDelivered {
				deliveries = append(deliveries, ctx.Item.(irq.Delivery))
			}
		}))
	})

	It("should declare its capabilities", func() {
		caps := handle.Capabilities()

		Expect(handle.Kind()).To(Equal(irq.KindCompactVectored))
		Expect(caps.IDs.String()).To(Equal("{0-31}"))
		Expect(caps.Priority).To(Equal(irq.MakeRange(0, 7)))
		Expect(caps.Threshold).To(Equal(irq.MakeRange(0, 7)))
		Expect(caps.VectorModes.Has(irq.VectorFull)).To(BeFalse())
		Expect(caps.VectorModes.Has(irq.VectorSelective)).To(BeTrue())
	})

	It("should deliver with default settings", func() {
		Expect(handle.RegisterHandler(20, record, nil)).To(Succeed())
		Expect(handle.Enable(20)).To(Succeed())

		Expect(handle.Trigger(20)).To(Succeed())

		Expect(delivered).To(Equal([]irq.ID{20}))
	})

	It("should mask levels at or below the threshold", func() {
		Expect(handle.RegisterHandler(20, record, nil)).To(Succeed())
		Expect(handle.Enable(20)).To(Succeed())
		Expect(handle.SetPriority(20, 3)).To(Succeed())
		Expect(handle.SetThreshold(3)).To(Succeed())

		Expect(handle.Trigger(20)).To(Succeed())
		Expect(delivered).To(BeEmpty())
		Expect(comp.Pending(20)).To(BeTrue())

		Expect(handle.SetThreshold(2)).To(Succeed())
		Expect(delivered).To(Equal([]irq.ID{20}))
	})

	It("should deliver pending ids from the highest level", func() {
		Expect(handle.SetThreshold(7)).To(Succeed())
		for _, id := range []irq.ID{17, 18, 19} {
			Expect(handle.RegisterHandler(id, record, nil)).To(Succeed())
			Expect(handle.Enable(id)).To(Succeed())
			Expect(handle.Trigger(id)).To(Succeed())
		}
		Expect(handle.SetPriority(17, 2)).To(Succeed())
		Expect(handle.SetPriority(18, 6)).To(Succeed())
		Expect(handle.SetPriority(19, 6)).To(Succeed())
		Expect(delivered).To(BeEmpty())

		Expect(handle.SetThreshold(1)).To(Succeed())

		Expect(delivered).To(Equal([]irq.ID{19, 18, 17}))
	})

	It("should enforce the level range without clamping", func() {
		Expect(handle.SetPriority(5, 7)).To(Succeed())
		Expect(handle.SetPriority(5, 8)).To(MatchError(irq.ErrOutOfRange))

		p, err := handle.Priority(5)
		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(Equal(uint32(7)))

		Expect(handle.SetThreshold(8)).To(MatchError(irq.ErrOutOfRange))
		th, err := handle.Threshold()
		Expect(err).ToNot(HaveOccurred())
		Expect(th).To(Equal(uint32(0)))
	})

	It("should reject ids out of range", func() {
		Expect(handle.SetPriority(32, 1)).To(MatchError(irq.ErrInvalidID))
		Expect(handle.Enable(-1)).To(MatchError(irq.ErrInvalidID))
		_, err := handle.Priority(40)
		Expect(err).To(MatchError(irq.ErrInvalidID))
		Expect(handle.VectorEnable(32, irq.VectorHardware)).
			To(MatchError(irq.ErrInvalidID))
	})

	It("should vector selected ids", func() {
		Expect(handle.RegisterHandler(21, record, nil)).To(Succeed())
		Expect(handle.RegisterHandler(22, record, nil)).To(Succeed())
		Expect(handle.Enable(21)).To(Succeed())
		Expect(handle.Enable(22)).To(Succeed())
		Expect(handle.VectorEnable(21, irq.VectorSelective)).To(Succeed())

		Expect(handle.Trigger(21)).To(Succeed())
		Expect(handle.Trigger(22)).To(Succeed())

		Expect(deliveries).To(HaveLen(2))
		Expect(deliveries[0].Vectored).To(BeTrue())
		Expect(deliveries[0].Mode).To(Equal(irq.VectorSelective))
		Expect(deliveries[1].Vectored).To(BeFalse())
		Expect(deliveries[1].Mode).To(Equal(irq.VectorDirect))

		Expect(handle.VectorDisable(21)).To(Succeed())
		Expect(comp.Vectored(21)).To(BeFalse())
	})

	It("should keep the vector mode of each id", func() {
		Expect(handle.RegisterHandler(5, record, nil)).To(Succeed())
		Expect(handle.RegisterHandler(6, record, nil)).To(Succeed())
		Expect(handle.Enable(5)).To(Succeed())
		Expect(handle.Enable(6)).To(Succeed())
		Expect(handle.VectorEnable(5, irq.VectorHardware)).To(Succeed())
		Expect(handle.VectorEnable(6, irq.VectorSelective)).To(Succeed())

		Expect(handle.Trigger(5)).To(Succeed())
		Expect(handle.Trigger(6)).To(Succeed())

		Expect(deliveries).To(HaveLen(2))
		Expect(deliveries[0].ID).To(Equal(irq.ID(5)))
		Expect(deliveries[0].Mode).To(Equal(irq.VectorHardware))
		Expect(deliveries[1].ID).To(Equal(irq.ID(6)))
		Expect(deliveries[1].Mode).To(Equal(irq.VectorSelective))
		Expect(comp.VectorMode(5)).To(Equal(irq.VectorHardware))
	})

	It("should reject full vectoring", func() {
		Expect(handle.VectorEnable(21, irq.VectorFull)).
			To(MatchError(irq.ErrInvalidMode))
	})

	It("should clear vectoring in direct mode", func() {
		Expect(handle.VectorEnable(21, irq.VectorHardware)).To(Succeed())
		Expect(comp.Vectored(21)).To(BeTrue())

		Expect(handle.VectorEnable(21, irq.VectorDirect)).To(Succeed())
		Expect(comp.Vectored(21)).To(BeFalse())
	})

	It("should raise its timer id", func() {
		Expect(handle.RegisterHandler(IDTimer, record, nil)).To(Succeed())
		Expect(handle.Enable(IDTimer)).To(Succeed())
		_, err := handle.CommandRequest(&irq.TimeCompareSet{Time: 20})
		Expect(err).ToNot(HaveOccurred())

		Expect(comp.AdvanceTime(20)).To(Succeed())

		Expect(delivered).To(Equal([]irq.ID{IDTimer}))
	})

	It("should raise its software id", func() {
		Expect(handle.RegisterHandler(IDSoftware, record, nil)).To(Succeed())
		Expect(handle.Enable(IDSoftware)).To(Succeed())

		_, err := handle.CommandRequest(&irq.SoftwareIPISet{})
		Expect(err).ToNot(HaveOccurred())

		Expect(delivered).To(Equal([]irq.ID{IDSoftware}))
	})

	It("should serve only hart 0", func() {
		_, err := handle.CommandRequest(&irq.SoftwareIPISet{Hart: 1})

		Expect(err).To(MatchError(irq.ErrInvalidID))
	})

	It("should reject unknown commands", func() {
		_, err := handle.CommandRequest(&irq.Complete{ID: 1})

		Expect(err).To(MatchError(irq.ErrUnsupported))
	})

	It("should validate the builder", func() {
		Expect(func() { MakeBuilder().WithIntctlBits(9).Build("C") }).To(Panic())
		Expect(func() { MakeBuilder().WithInterrupts(0).Build("C") }).To(Panic())
	})
})
