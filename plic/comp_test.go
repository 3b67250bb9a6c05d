package plic

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/irqhal/corelocal"
	"github.com/sarchlab/irqhal/irq"
)

var _ = Describe("Comp", func() {
	var (
		cpu       *corelocal.Comp
		comp      *Comp
		handle    irq.Handle
		delivered []irq.ID
		data      []any
		spurious  []irq.ID
	)

	record := func(id irq.ID, d any) {
		delivered = append(delivered, id)
		data = append(data, d)
	}

	BeforeEach(func() {
		cpu = corelocal.MakeBuilder().Build("CPU")
		parent := irq.NewHandle(cpu)
		parent.Init()

		comp = MakeBuilder().
			WithSources(16).
			WithParent(parent).
			Build("PLIC")
		handle = irq.NewHandle(comp)
		handle.Init()

		delivered = nil
		data = nil
		spurious = nil

		comp.AcceptHook(irq.HookFunc(func(ctx irq.HookCtx) {
			if ctx.Pos == irq.HookPosSpurious {
				spurious = append(spurious, ctx.Item.(irq.Delivery).ID)
			}
		}))
	})

	It("should declare its capabilities", func() {
		caps := handle.Capabilities()

		Expect(handle.Kind()).To(Equal(irq.KindPlatformPrioritized))
		Expect(caps.IDs.String()).To(Equal("{1-16}"))
		Expect(caps.Priority).To(Equal(irq.MakeRange(0, 7)))
		Expect(caps.Threshold).To(Equal(irq.MakeRange(0, 7)))
		Expect(caps.VectorModes.Empty()).To(BeTrue())
		Expect(caps.SupportsCommand(irq.CmdClaim)).To(BeTrue())
	})

	It("should attach to the external id of the parent", func() {
		Expect(cpu.Enabled(corelocal.IDExternal)).To(BeTrue())
	})

	It("should keep priorities within range", func() {
		Expect(handle.SetPriority(5, 7)).To(Succeed())
		Expect(handle.SetPriority(5, 8)).To(MatchError(irq.ErrOutOfRange))

		p, err := handle.Priority(5)

		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(Equal(uint32(7)))
	})

	It("should reserve id 0", func() {
		Expect(handle.Enable(0)).To(MatchError(irq.ErrInvalidID))
		Expect(handle.SetPriority(17, 1)).To(MatchError(irq.ErrInvalidID))
		Expect(handle.Trigger(0)).To(MatchError(irq.ErrInvalidID))
	})

	It("should not support vectoring", func() {
		Expect(handle.VectorEnable(5, irq.VectorDirect)).
			To(MatchError(irq.ErrUnsupported))
	})

	It("should deliver through the parent", func() {
		Expect(handle.RegisterHandler(5, record, "uart")).To(Succeed())
		Expect(handle.Enable(5)).To(Succeed())

		Expect(handle.Trigger(5)).To(Succeed())

		Expect(delivered).To(Equal([]irq.ID{5}))
		Expect(data).To(Equal([]any{"uart"}))
		Expect(comp.InService(5)).To(BeFalse())
		Expect(cpu.Pending(corelocal.IDExternal)).To(BeFalse())
	})

	It("should wait for the parent to be enabled", func() {
		Expect(handle.RegisterHandler(5, record, nil)).To(Succeed())
		Expect(handle.Enable(5)).To(Succeed())
		Expect(cpu.Disable(corelocal.IDExternal)).To(Succeed())

		Expect(handle.Trigger(5)).To(Succeed())
		Expect(delivered).To(BeEmpty())
		Expect(cpu.Pending(corelocal.IDExternal)).To(BeTrue())

		Expect(cpu.Enable(corelocal.IDExternal)).To(Succeed())
		Expect(delivered).To(Equal([]irq.ID{5}))
	})

	It("should gate sources at or below the threshold", func() {
		Expect(handle.RegisterHandler(5, record, nil)).To(Succeed())
		Expect(handle.Enable(5)).To(Succeed())
		Expect(handle.SetPriority(5, 2)).To(Succeed())
		Expect(handle.SetThreshold(2)).To(Succeed())

		Expect(handle.Trigger(5)).To(Succeed())
		Expect(delivered).To(BeEmpty())
		Expect(comp.Pending(5)).To(BeTrue())

		Expect(handle.SetThreshold(1)).To(Succeed())
		Expect(delivered).To(Equal([]irq.ID{5}))
	})

	It("should never fire priority 0", func() {
		Expect(handle.RegisterHandler(5, record, nil)).To(Succeed())
		Expect(handle.Enable(5)).To(Succeed())
		Expect(handle.SetPriority(5, 0)).To(Succeed())

		Expect(handle.Trigger(5)).To(Succeed())

		Expect(delivered).To(BeEmpty())
	})

	It("should claim by priority then by lowest id", func() {
		Expect(handle.SetThreshold(7)).To(Succeed())
		for _, id := range []irq.ID{2, 3, 4} {
			Expect(handle.RegisterHandler(id, record, nil)).To(Succeed())
			Expect(handle.Enable(id)).To(Succeed())
			Expect(handle.Trigger(id)).To(Succeed())
		}
		Expect(handle.SetPriority(2, 3)).To(Succeed())
		Expect(handle.SetPriority(3, 6)).To(Succeed())
		Expect(handle.SetPriority(4, 6)).To(Succeed())

		Expect(handle.SetThreshold(0)).To(Succeed())

		Expect(delivered).To(Equal([]irq.ID{3, 4, 2}))
	})

	It("should not deliver disabled sources", func() {
		Expect(handle.RegisterHandler(5, record, nil)).To(Succeed())

		Expect(handle.Trigger(5)).To(Succeed())

		Expect(delivered).To(BeEmpty())
		Expect(comp.Pending(5)).To(BeTrue())
	})

	It("should report sources without handler as spurious", func() {
		Expect(handle.Enable(6)).To(Succeed())

		Expect(handle.Trigger(6)).To(Succeed())

		Expect(spurious).To(Equal([]irq.ID{6}))
		Expect(comp.Pending(6)).To(BeFalse())
	})

	Context("when claiming manually", func() {
		BeforeEach(func() {
			Expect(cpu.Disable(corelocal.IDExternal)).To(Succeed())
			Expect(handle.Enable(9)).To(Succeed())
			Expect(handle.Trigger(9)).To(Succeed())
		})

		It("should claim and complete", func() {
			claim := &irq.Claim{}
			id, err := handle.CommandRequest(claim)

			Expect(err).ToNot(HaveOccurred())
			Expect(id).To(Equal(int32(9)))
			Expect(claim.ID).To(Equal(irq.ID(9)))
			Expect(comp.InService(9)).To(BeTrue())

			_, err = handle.CommandRequest(&irq.Complete{ID: 9})
			Expect(err).ToNot(HaveOccurred())
			Expect(comp.InService(9)).To(BeFalse())
		})

		It("should return 0 when nothing is claimable", func() {
			_, err := handle.CommandRequest(&irq.Claim{})
			Expect(err).ToNot(HaveOccurred())

			id, err := handle.CommandRequest(&irq.Claim{})

			Expect(err).ToNot(HaveOccurred())
			Expect(id).To(Equal(int32(0)))
		})

		It("should hold a source in service until completed", func() {
			_, err := handle.CommandRequest(&irq.Claim{})
			Expect(err).ToNot(HaveOccurred())
			Expect(handle.Trigger(9)).To(Succeed())

			id, _ := handle.CommandRequest(&irq.Claim{})
			Expect(id).To(Equal(int32(0)))

			_, err = handle.CommandRequest(&irq.Complete{ID: 9})
			Expect(err).ToNot(HaveOccurred())

			id, _ = handle.CommandRequest(&irq.Claim{})
			Expect(id).To(Equal(int32(9)))
		})

		It("should reject completing invalid ids", func() {
			_, err := handle.CommandRequest(&irq.Complete{ID: 0})

			Expect(err).To(MatchError(irq.ErrInvalidID))
		})
	})

	It("should reject timer commands", func() {
		_, err := handle.CommandRequest(&irq.TimeGet{})

		Expect(err).To(MatchError(irq.ErrUnsupported))
	})

	It("should require a parent", func() {
		Expect(func() { MakeBuilder().Build("PLIC") }).To(Panic())
	})
})
