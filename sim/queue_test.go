package sim

import (
	"sync"
	"testing"

	"github.com/lixenwraith/orrery/parameter"
)

func TestCommandQueueFIFO(t *testing.T) {
	q := NewCommandQueue()
	if got := q.Consume(); got != nil {
		t.Fatalf("empty queue returned %v", got)
	}
	q.Push(Command{Type: CmdStartTour})
	q.Push(Command{Type: CmdSetFocus, Payload: &FocusPayload{Target: 3}})
	q.Push(Command{Type: CmdStopTour})
	if q.Len() != 3 {
		t.Errorf("Len = %d, want 3", q.Len())
	}

	got := q.Consume()
	if len(got) != 3 {
		t.Fatalf("consumed %d, want 3", len(got))
	}
	want := []CommandType{CmdStartTour, CmdSetFocus, CmdStopTour}
	for i, c := range got {
		if c.Type != want[i] {
			t.Errorf("command %d = %v, want %v", i, c.Type, want[i])
		}
	}
	if q.Len() != 0 || q.Consume() != nil {
		t.Error("queue not drained")
	}
}

func TestCommandQueueOverflowKeepsNewest(t *testing.T) {
	q := NewCommandQueue()
	total := parameter.CommandQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(Command{Type: CmdStepSpeed, Payload: &SpeedPayload{Speed: float64(i)}})
	}
	got := q.Consume()
	if len(got) != parameter.CommandQueueSize {
		t.Fatalf("consumed %d, want %d", len(got), parameter.CommandQueueSize)
	}
	first := got[0].Payload.(*SpeedPayload).Speed
	last := got[len(got)-1].Payload.(*SpeedPayload).Speed
	if first != 10 || last != float64(total-1) {
		t.Errorf("kept range [%v, %v], want [10, %d]", first, last, total-1)
	}
}

func TestCommandQueueConcurrentProducers(t *testing.T) {
	q := NewCommandQueue()
	const producers, each = 4, 50
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Push(Command{Type: CmdTogglePause})
			}
		}()
	}
	wg.Wait()
	if got := len(q.Consume()); got != producers*each {
		t.Errorf("consumed %d, want %d", got, producers*each)
	}
}

func TestCommandTypeString(t *testing.T) {
	if CmdEarthMinute.String() != "EarthMinute" {
		t.Errorf("String = %q", CmdEarthMinute.String())
	}
	if CommandType(999).String() != "CommandType(999)" {
		t.Errorf("unknown String = %q", CommandType(999).String())
	}
}
