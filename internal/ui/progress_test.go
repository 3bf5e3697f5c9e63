package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ember/internal/driver"
)

func TestProgressModelFollowsEvents(t *testing.T) {
	m := newProgressModel("parsing", []string{"a.em", "b.em"}, nil)

	steps := []struct {
		ev      driver.Event
		status  []string
		percent float64
	}{
		{driver.Event{File: "a.em", Stage: driver.StageLoad, Status: driver.StatusWorking}, []string{"loading", "queued"}, 0.1},
		{driver.Event{File: "a.em", Stage: driver.StageLoad, Status: driver.StatusDone}, []string{"loaded", "queued"}, 0.1},
		{driver.Event{File: "a.em", Stage: driver.StageParse, Status: driver.StatusWorking}, []string{"parsing", "queued"}, 0.25},
		{driver.Event{File: "a.em", Stage: driver.StageParse, Status: driver.StatusDone}, []string{"done", "queued"}, 0.5},
		{driver.Event{File: "b.em", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("missing")}, []string{"done", "error"}, 1},
		{driver.Event{File: "b.em", Stage: driver.StageParse, Status: driver.StatusWorking}, []string{"done", "error"}, 1},
		{driver.Event{File: "other.em", Status: driver.StatusQueued}, []string{"done", "error"}, 1},
	}
	for i, step := range steps {
		m.Update(eventMsg(step.ev))
		for j, want := range step.status {
			if got := m.items[j].status; got != want {
				t.Fatalf("step %d: item %d status = %q, want %q", i, j, got, want)
			}
		}
		if got := m.percent(); got != step.percent {
			t.Fatalf("step %d: percent = %v, want %v", i, got, step.percent)
		}
	}

	view := m.View()
	if !strings.Contains(view, "parsing (2/2), 1 failed") {
		t.Fatalf("unexpected header:\n%s", view)
	}
	if !strings.Contains(view, "a.em") || !strings.Contains(view, "error") {
		t.Fatalf("file rows missing:\n%s", view)
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan driver.Event, 1)
	m := newProgressModel("parsing", []string{"a.em"}, events)
	events <- driver.Event{File: "a.em", Stage: driver.StageParse, Status: driver.StatusDone}
	close(events)

	first := m.listen()()
	if first != eventMsg(driver.Event{File: "a.em", Stage: driver.StageParse, Status: driver.StatusDone}) {
		t.Fatalf("unexpected first message %#v", first)
	}
	m.Update(first)
	msg := m.listen()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %#v", msg)
	}
	_, cmd := m.Update(msg)
	if !m.done || cmd == nil {
		t.Fatalf("model should finish and quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.Quit")
	}
	if !strings.Contains(m.View(), "done: parsing (1/1)") {
		t.Fatalf("finished view lacks the done marker:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.em", 20, "short.em"},
		{"a/very/long/path.em", 10, "a/very/..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
