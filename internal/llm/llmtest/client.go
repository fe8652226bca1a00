// Package llmtest provides a scripted llm.Client implementation for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"
)

// ScriptedClient replays canned responses in order and records the prompts
// it was called with. Safe for concurrent use.
type ScriptedClient struct {
	mu sync.Mutex

	// Responses are returned one per generation call, in order.
	Responses []string
	// Err, when set, fails every call.
	Err error
	// Prompts records every prompt received.
	Prompts []string

	next int
}

func (c *ScriptedClient) generate(prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Prompts = append(c.Prompts, prompt)
	if c.Err != nil {
		return "", c.Err
	}
	if c.next >= len(c.Responses) {
		return "", fmt.Errorf("scripted client exhausted after %d responses", len(c.Responses))
	}
	response := c.Responses[c.next]
	c.next++
	return response, nil
}

// GenerateContent returns the next scripted response.
func (c *ScriptedClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	return c.generate(prompt)
}

// GenerateJSON returns the next scripted response.
func (c *ScriptedClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	return c.generate(prompt)
}

// Model returns a fixed fake model name.
func (c *ScriptedClient) Model() string { return "scripted-model" }

// Close is a no-op.
func (c *ScriptedClient) Close() error { return nil }

// Calls returns how many generation calls were made.
func (c *ScriptedClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Prompts)
}
