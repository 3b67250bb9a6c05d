package datarecording

import (
	"os"
	"strings"
	"time"
)

const execTableName = "exec_info"

// ExecInfo is one property of the recorded execution.
type ExecInfo struct {
	Property string
	Value    string
}

// execRecorder records when and how the program ran.
type execRecorder struct {
	recorder DataRecorder
	entries  []ExecInfo
}

func newExecRecorder(recorder DataRecorder) *execRecorder {
	recorder.CreateTable(execTableName, ExecInfo{})

	return &execRecorder{recorder: recorder}
}

func (e *execRecorder) Start(runID string) {
	e.entries = append(e.entries,
		ExecInfo{"Run ID", runID},
		ExecInfo{"Start Time", now()},
		ExecInfo{"Command", strings.Join(os.Args, " ")},
	)

	if wd, err := os.Getwd(); err == nil {
		e.entries = append(e.entries, ExecInfo{"Working Directory", wd})
	}
}

func (e *execRecorder) End() {
	for _, entry := range e.entries {
		e.recorder.InsertData(execTableName, entry)
	}

	e.recorder.InsertData(execTableName, ExecInfo{"End Time", now()})
	e.entries = nil
}

func now() string {
	return time.Now().Format("2006-01-02 15:04:05.000000000")
}
