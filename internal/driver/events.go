package driver

import "time"

// Stage identifies a step of a unit's pipeline.
type Stage string

const (
	StageLoad  Stage = "load"
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
)

// Status describes where a unit is in a stage.
type Status string

const (
	// StatusQueued — файл ждёт свободного воркера.
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is one progress notification. File is empty for run-wide events.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. ParseFiles calls OnEvent from
// several goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChanSink forwards events to a channel, for the terminal progress view.
type ChanSink chan<- Event

func (c ChanSink) OnEvent(ev Event) { c <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}
