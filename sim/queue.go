package sim

import (
	"sync/atomic"

	"github.com/lixenwraith/orrery/parameter"
)

// CommandQueue is a lock-free MPSC ring buffer for commands
// Push is safe from any goroutine; Consume belongs to the tick goroutine
// When full the oldest commands are overwritten
type CommandQueue struct {
	commands  [parameter.CommandQueueSize]Command
	published [parameter.CommandQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                           // Read index
	tail      atomic.Uint64                           // Write index
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Push adds a command using CAS on the tail with a published flag per slot
func (q *CommandQueue) Push(cmd Command) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.CommandBufferMask

			q.commands[idx] = cmd
			q.published[idx].Store(true) // MUST be after write

			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.CommandQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.CommandQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending commands in FIFO order
func (q *CommandQueue) Consume() []Command {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		if available > parameter.CommandQueueSize {
			available = parameter.CommandQueueSize
			currentHead = currentTail - parameter.CommandQueueSize
		}

		result := make([]Command, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & parameter.CommandBufferMask
			if !q.published[idx].Load() {
				break // Writer incomplete
			}
			result = append(result, q.commands[idx])
			q.commands[idx] = Command{}
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns the approximate pending count
func (q *CommandQueue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.CommandQueueSize {
		return parameter.CommandQueueSize
	}
	return diff
}
