package agent

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/SaiNageswarS/course-rag/schema"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// Tool is a capability the model can invoke during a query. Schema describes
// the tool to the model; Execute runs it with the model-provided arguments.
type Tool interface {
	Schema() api.Tool
	Execute(ctx context.Context, params api.ToolCallFunctionArguments) (*schema.ToolResult, error)
}

// ToolSchemaBuilder builds an api.Tool schema for the model.
type ToolSchemaBuilder struct {
	tool api.Tool
}

func NewToolSchemaBuilder(name, description string) *ToolSchemaBuilder {
	b := &ToolSchemaBuilder{
		tool: api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        name,
				Description: description,
			},
		},
	}

	b.tool.Function.Parameters.Type = "object"
	b.tool.Function.Parameters.Properties = make(map[string]api.ToolProperty, 8)
	// Required slice stays nil until first add
	return b
}

func (b *ToolSchemaBuilder) StringParam(name, desc string, required bool) *ToolSchemaBuilder {
	prop := api.ToolProperty{
		Type:        api.PropertyType{"string"},
		Description: desc,
	}

	b.setProp(name, prop, required)
	return b
}

func (b *ToolSchemaBuilder) IntParam(name, desc string, required bool) *ToolSchemaBuilder {
	prop := api.ToolProperty{
		Type:        api.PropertyType{"integer"},
		Description: desc,
	}

	b.setProp(name, prop, required)
	return b
}

func (b *ToolSchemaBuilder) Build() api.Tool {
	return b.tool
}

func (b *ToolSchemaBuilder) setProp(name string, p api.ToolProperty, required bool) {
	props := b.tool.Function.Parameters.Properties
	props[name] = p
	if required {
		req := b.tool.Function.Parameters.Required
		if !slices.Contains(req, name) {
			b.tool.Function.Parameters.Required = append(req, name)
		}
	}
}

// ToolRegistry holds the tools available to one in-flight query and tracks
// the sources surfaced by the most recent successful execution. Create a
// fresh registry per query so source attribution never leaks across
// concurrent requests.
type ToolRegistry struct {
	mu          sync.Mutex
	tools       map[string]Tool
	lastSources []schema.Source
}

func NewToolRegistry(tools ...Tool) *ToolRegistry {
	r := &ToolRegistry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

func (r *ToolRegistry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Schema().Function.Name] = t
}

// Schemas returns the api.Tool definitions of every registered tool.
func (r *ToolRegistry) Schemas() []api.Tool {
	r.mu.Lock()
	defer r.mu.Unlock()

	schemas := make([]api.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		schemas = append(schemas, t.Schema())
	}
	return schemas
}

// Execute runs the named tool and returns its textual output. Failures come
// back as model-readable text rather than errors so the conversation can
// continue.
func (r *ToolRegistry) Execute(ctx context.Context, name string, params api.ToolCallFunctionArguments) string {
	r.mu.Lock()
	tool, ok := r.tools[name]
	r.mu.Unlock()

	if !ok {
		return fmt.Sprintf("Tool '%s' is not registered.", name)
	}

	result, err := tool.Execute(ctx, params)
	if err != nil {
		logger.Error("Tool execution failed", zap.String("tool", name), zap.Error(err))
		return fmt.Sprintf("Tool '%s' failed: %v", name, err)
	}

	r.mu.Lock()
	r.lastSources = result.Sources
	r.mu.Unlock()

	return result.Content
}

// LastSources returns the sources of the most recent successful tool
// execution, replaced wholesale on each run.
func (r *ToolRegistry) LastSources() []schema.Source {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.lastSources)
}

func (r *ToolRegistry) ResetSources() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSources = nil
}
