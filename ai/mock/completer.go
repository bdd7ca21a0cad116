// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import (
	"context"
	"sync"
)

// MockCompleter is a test double for ai.Completer with injectable behavior.
type MockCompleter struct {
	// CompleteFunc overrides the default completion behavior when set.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	mu         sync.Mutex
	callCount  int
	lastPrompt string
}

// NewMockCompleter creates a mock completer with default behavior.
// Note: Returns concrete type to allow test assertions on call state.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete returns the injected response, or an empty string by default.
// An empty response exercises the caller's degradation path, which is
// usually what a test without an explicit CompleteFunc wants.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastPrompt = prompt
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", nil
}

// CallCount returns how many times Complete was invoked.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastPrompt returns the prompt from the most recent Complete call.
func (m *MockCompleter) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}
