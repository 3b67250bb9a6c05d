package datarecording

import (
	"sync"

	"github.com/rs/xid"
	"github.com/sarchlab/irqhal/irq"
)

// The tables written by a Recorder.
const (
	OpTable       = "ops"
	DeliveryTable = "deliveries"
)

// OpEntry is the row of one operation dispatched through a handle.
type OpEntry struct {
	RunID      string
	Seq        int64
	Controller string
	Kind       string
	Index      int
	Op         string
	ID         int
	Mode       string
	Command    string
	Value      int64
	Result     int64
	Error      string
}

// DeliveryEntry is the row of one interrupt reaching, or missing, a handler.
type DeliveryEntry struct {
	RunID      string
	Seq        int64
	Controller string
	ID         int
	Mode       string
	Vectored   bool
	Spurious   bool
}

// Recorder is a hook that stores every completed operation and every
// delivery it observes.
type Recorder struct {
	lock     sync.Mutex
	recorder DataRecorder
	exec     *execRecorder
	runID    xid.ID
	seq      int64
}

// NewRecorder creates the recorder tables in the DataRecorder and starts a
// new run.
func NewRecorder(recorder DataRecorder) *Recorder {
	recorder.CreateTable(OpTable, OpEntry{})
	recorder.CreateTable(DeliveryTable, DeliveryEntry{})

	r := &Recorder{
		recorder: recorder,
		exec:     newExecRecorder(recorder),
		runID:    xid.New(),
	}
	r.exec.Start(r.runID.String())

	return r
}

// RunID returns the id that tags the rows of this run.
func (r *Recorder) RunID() string {
	return r.runID.String()
}

// Func implements irq.Hook.
func (r *Recorder) Func(ctx irq.HookCtx) {
	r.lock.Lock()
	defer r.lock.Unlock()

	switch ctx.Pos {
	case irq.HookPosAfterOp:
		r.recordOp(ctx.Item.(*irq.Op))
	case irq.HookPosDelivered:
		r.recordDelivery(ctx.Item.(irq.Delivery), false)
	case irq.HookPosSpurious:
		r.recordDelivery(ctx.Item.(irq.Delivery), true)
	}
}

func (r *Recorder) recordOp(op *irq.Op) {
	r.seq++

	entry := OpEntry{
		RunID:      r.runID.String(),
		Seq:        r.seq,
		Controller: op.Controller,
		Kind:       op.Kind.String(),
		Index:      op.Index,
		Op:         op.Name,
		ID:         int(op.ID),
		Value:      int64(op.Value),
		Result:     op.Result,
	}

	if op.Name == irq.OpVectorEnable {
		entry.Mode = op.Mode.String()
	}

	if op.Name == irq.OpCommandRequest {
		entry.Command = op.Command.String()
	}

	if op.Err != nil {
		entry.Error = op.Err.Error()
	}

	r.recorder.InsertData(OpTable, entry)
}

func (r *Recorder) recordDelivery(d irq.Delivery, spurious bool) {
	r.seq++

	r.recorder.InsertData(DeliveryTable, DeliveryEntry{
		RunID:      r.runID.String(),
		Seq:        r.seq,
		Controller: d.Controller,
		ID:         int(d.ID),
		Mode:       d.Mode.String(),
		Vectored:   d.Vectored,
		Spurious:   spurious,
	})
}

// Flush writes the buffered rows.
func (r *Recorder) Flush() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.recorder.Flush()
}

// Close ends the run and closes the database.
func (r *Recorder) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.exec.End()

	return r.recorder.Close()
}

// NewRecordReader maps the recorder tables on a DataReader.
func NewRecordReader(reader DataReader) DataReader {
	reader.MapTable(OpTable, OpEntry{})
	reader.MapTable(DeliveryTable, DeliveryEntry{})
	reader.MapTable(execTableName, ExecInfo{})

	return reader
}
