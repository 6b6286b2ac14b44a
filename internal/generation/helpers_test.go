package generation //nolint:testpackage

import (
	"context"
	"errors"
	"sync"

	"github.com/ahrav/levelforge/internal/domain"
	"github.com/ahrav/levelforge/internal/llm"
	"github.com/ahrav/levelforge/pkg/events"
)

// exampleLevel9 is the worked example from the prompt, rendered for level 9.
const exampleLevel9 = `import { GATE_TYPES } from './types';

export const level9 = {
    id: 'level9',
    title: 'Complex Gate Challenge',
    description: 'Create a circuit that implements a complex logic function using multiple gates. You must connect the gates in the correct order to achieve the desired output.',
    difficulty: 5,
    availableGates: [
        GATE_TYPES.AND,
        GATE_TYPES.OR,
        GATE_TYPES.NAND,
        GATE_TYPES.NOR
    ],
    initialNodes: [
        {
            id: 'input1',
            type: GATE_TYPES.INPUT,
            position: { x: 100, y: 100 },
            data: { value: 0 }
        },
        {
            id: 'input2',
            type: GATE_TYPES.INPUT,
            position: { x: 100, y: 300 },
            data: { value: 0 }
        },
        {
            id: 'nand1',
            type: GATE_TYPES.NAND,
            position: { x: 300, y: 100 },
            data: { value: null }
        },
        {
            id: 'and1',
            type: GATE_TYPES.AND,
            position: { x: 500, y: 200 },
            data: { value: null }
        },
        {
            id: 'or1',
            type: GATE_TYPES.OR,
            position: { x: 700, y: 200 },
            data: { value: null }
        },
        {
            id: 'output',
            type: GATE_TYPES.OUTPUT,
            position: { x: 900, y: 200 },
            data: { value: null }
        }
    ],
    expectedTruthTable: [
        { input1: 0, input2: 0, output: 1 },
        { input1: 0, input2: 1, output: 1 },
        { input1: 1, input2: 0, output: 1 },
        { input1: 1, input2: 1, output: 0 }
    ]
};`

var errModelDown = &llm.InvocationError{Type: llm.ErrorTypeUnavailable, Backend: llm.BackendCLI, Cause: errors.New("executable file not found")}

// stubClient returns a fixed output or error and records the prompts it saw.
type stubClient struct {
	mu      sync.Mutex
	output  domain.RawOutput
	err     error
	echo    bool
	prompts []domain.Prompt
}

func (s *stubClient) Invoke(_ context.Context, p domain.Prompt) (domain.RawOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, p)
	if s.err != nil {
		return "", s.err
	}
	if s.echo {
		return domain.RawOutput(p.Text), nil
	}
	return s.output, nil
}

func (s *stubClient) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// CapturingEventSink records emitted events, dropping duplicate idempotency keys.
type CapturingEventSink struct {
	mu       sync.RWMutex
	events   []events.Envelope
	seenKeys map[string]bool
}

func NewCapturingEventSink() *CapturingEventSink {
	return &CapturingEventSink{seenKeys: make(map[string]bool)}
}

func (c *CapturingEventSink) Append(_ context.Context, envelope events.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seenKeys[envelope.IdempotencyKey] {
		return nil
	}
	c.events = append(c.events, envelope)
	c.seenKeys[envelope.IdempotencyKey] = true
	return nil
}

// GetEventsByType returns events filtered by type.
func (c *CapturingEventSink) GetEventsByType(eventType string) []events.Envelope {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var filtered []events.Envelope
	for _, e := range c.events {
		if e.Type == eventType {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
