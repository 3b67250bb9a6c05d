package irq

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type bareController struct {
	ControllerBase
}

func (c *bareController) Capabilities() Capabilities {
	return Capabilities{}
}

var _ = Describe("ControllerBase", func() {
	var c *bareController

	BeforeEach(func() {
		c = &bareController{
			ControllerBase: MakeControllerBase("Bare", KindCoreLocal, 0),
		}
	})

	It("should report every optional operation as unsupported", func() {
		h := NewHandle(c)

		Expect(h.RegisterHandler(1, func(ID, any) {}, nil)).
			To(MatchError(ErrUnsupported))
		Expect(h.Enable(1)).To(MatchError(ErrUnsupported))
		Expect(h.Disable(1)).To(MatchError(ErrUnsupported))
		Expect(h.VectorEnable(1, VectorFull)).To(MatchError(ErrUnsupported))
		Expect(h.VectorDisable(1)).To(MatchError(ErrUnsupported))
		Expect(h.SetThreshold(1)).To(MatchError(ErrUnsupported))
		Expect(h.SetPriority(1, 1)).To(MatchError(ErrUnsupported))
		Expect(h.Trigger(1)).To(MatchError(ErrUnsupported))

		_, err := h.Threshold()
		Expect(err).To(MatchError(ErrUnsupported))
		_, err = h.Priority(1)
		Expect(err).To(MatchError(ErrUnsupported))
		_, err = h.CommandRequest(&TimeGet{})
		Expect(err).To(MatchError(ErrUnsupported))
	})

	It("should name the controller and operation in the error", func() {
		err := NewHandle(c).SetPriority(4, 1)

		var opErr *Error
		Expect(errors.As(err, &opErr)).To(BeTrue())
		Expect(opErr.Controller).To(Equal("Bare"))
		Expect(opErr.Op).To(Equal("set_priority"))
		Expect(opErr.ID).To(Equal(ID(4)))
		Expect(err.Error()).To(Equal(
			"Bare: set_priority id 4: operation not supported"))
	})

	It("should leave the id out of errors not scoped to an id", func() {
		err := NewHandle(c).SetThreshold(2)

		Expect(err.Error()).To(Equal(
			"Bare: set_threshold: operation not supported"))
	})
})

var _ = Describe("Handle", func() {
	var (
		mockCtrl   *gomock.Controller
		controller *MockController
		hook       *MockHook
		handle     Handle
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		controller = NewMockController(mockCtrl)
		controller.EXPECT().Name().Return("PLIC").AnyTimes()
		controller.EXPECT().Kind().Return(KindPlatformPrioritized).AnyTimes()
		controller.EXPECT().Index().Return(0).AnyTimes()

		hook = NewMockHook(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("without hooks", func() {
		BeforeEach(func() {
			handle = NewHandle(controller)
		})

		It("should be valid", func() {
			Expect(handle.Valid()).To(BeTrue())
			Expect(Handle{}.Valid()).To(BeFalse())
			Expect(handle.Controller()).To(BeIdenticalTo(controller))
		})

		It("should forward enable", func() {
			controller.EXPECT().Enable(ID(5)).Return(nil)

			Expect(handle.Enable(5)).To(Succeed())
		})

		It("should return driver errors verbatim", func() {
			driverErr := NewError("set_priority", controller, 5, ErrOutOfRange)
			controller.EXPECT().SetPriority(ID(5), uint32(8)).Return(driverErr)

			err := handle.SetPriority(5, 8)

			Expect(err).To(BeIdenticalTo(driverErr))
		})

		It("should forward the priority read", func() {
			controller.EXPECT().Priority(ID(5)).Return(uint32(7), nil)

			p, err := handle.Priority(5)

			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal(uint32(7)))
		})

		It("should forward commands", func() {
			cmd := &Claim{}
			controller.EXPECT().CommandRequest(cmd).Return(int32(3), nil)

			v, err := handle.CommandRequest(cmd)

			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(int32(3)))
		})

		It("should forward vector mode", func() {
			controller.EXPECT().VectorEnable(ID(2), VectorSelective).Return(nil)
			controller.EXPECT().VectorDisable(ID(2)).Return(nil)

			Expect(handle.VectorEnable(2, VectorSelective)).To(Succeed())
			Expect(handle.VectorDisable(2)).To(Succeed())
		})

		It("should report unsupported trigger on a non-simulated controller", func() {
			Expect(handle.Trigger(1)).To(MatchError(ErrUnsupported))
		})

		It("should compare equal to its copies", func() {
			copied := handle

			Expect(copied == handle).To(BeTrue())
			Expect(NewHandle(NewMockController(mockCtrl)) == handle).
				To(BeFalse())
		})
	})

	Context("with hooks", func() {
		BeforeEach(func() {
			hooks := &HookableBase{}
			hooks.AcceptHook(hook)
			handle = Handle{c: controller, hooks: hooks}
		})

		It("should invoke hooks around the operation", func() {
			driverErr := NewError("set_threshold", controller, NoID, ErrOutOfRange)

			before := hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
				Expect(ctx.Pos).To(Equal(HookPosBeforeOp))
				op := ctx.Item.(*Op)
				Expect(op.Name).To(Equal(OpSetThreshold))
				Expect(op.Value).To(Equal(uint64(9)))
				Expect(op.Err).To(BeNil())
			})
			call := controller.EXPECT().SetThreshold(uint32(9)).
				Return(driverErr).After(before)
			hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
				Expect(ctx.Pos).To(Equal(HookPosAfterOp))
				Expect(ctx.Domain).To(BeIdenticalTo(controller))
				op := ctx.Item.(*Op)
				Expect(op.Controller).To(Equal("PLIC"))
				Expect(op.Kind).To(Equal(KindPlatformPrioritized))
				Expect(op.Err).To(BeIdenticalTo(driverErr))
			}).After(call)

			Expect(handle.SetThreshold(9)).To(MatchError(ErrOutOfRange))
		})

		It("should report command codes and results", func() {
			controller.EXPECT().CommandRequest(gomock.Any()).Return(int32(1), nil)
			hook.EXPECT().Func(gomock.Any())
			hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
				op := ctx.Item.(*Op)
				Expect(op.Command).To(Equal(CmdSoftwareIPIGet))
				Expect(op.Result).To(Equal(int64(1)))
			})

			_, err := handle.CommandRequest(&SoftwareIPIGet{Hart: 0})

			Expect(err).ToNot(HaveOccurred())
		})
	})
})
