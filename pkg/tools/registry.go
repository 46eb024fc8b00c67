// Package tools defines the commerce tools and the registry the MCP server
// and CLI dispatch through. Every call ends in a single text result.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrDuplicateTool = errors.New("duplicate tool name")

// Tool is one externally invokable operation. InputSchema is a JSON Schema
// object describing the arguments.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Call        func(ctx context.Context, args map[string]any) string
}

type CallObserver interface {
	ObserveToolCall(tool string, duration time.Duration)
}

type Registry struct {
	mu       sync.RWMutex
	tools    []Tool
	index    map[string]int
	logger   *zap.Logger
	observer CallObserver
}

func NewRegistry(logger *zap.Logger, observer CallObserver) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		index:    make(map[string]int),
		logger:   logger.Named("tools"),
		observer: observer,
	}
}

func (r *Registry) Register(tools ...Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range tools {
		if t.Name == "" || t.Call == nil {
			return fmt.Errorf("tool %q is missing a name or handler", t.Name)
		}
		if _, exists := r.index[t.Name]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name)
		}
		r.index[t.Name] = len(r.tools)
		r.tools = append(r.tools, t)
	}
	return nil
}

// List returns the tools in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Call dispatches one tool call. A panic inside a handler is turned into a
// text result like any other failure.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (text string) {
	t, ok := r.Lookup(name)
	if !ok {
		return "Unknown tool: " + name
	}
	if args == nil {
		args = map[string]any{}
	}

	callID := uuid.NewString()
	logger := r.logger.With(zap.String("tool", name), zap.String("call_id", callID))
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("tool handler panicked", zap.Any("panic", rec))
			text = fmt.Sprintf("Tool %s failed unexpectedly.", name)
		}
		elapsed := time.Since(start)
		if r.observer != nil {
			r.observer.ObserveToolCall(name, elapsed)
		}
		logger.Info("tool call", zap.Duration("duration", elapsed), zap.Int("result_bytes", len(text)))
	}()

	logger.Debug("tool call started", zap.Any("arguments", args))
	return t.Call(ctx, args)
}
