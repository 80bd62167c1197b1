package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"waypilot/pkg/llmprovider"
)

// ToolRegistry manages available tools.
type ToolRegistry struct {
	tools map[string]Tool
}

// NewToolRegistry creates a new tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
func (r *ToolRegistry) Register(tool Tool) {
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools sorted by name.
func (r *ToolRegistry) List() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name() < tools[j].Name()
	})
	return tools
}

// ToFunctionDefinitions converts tools to the LLM function calling format.
func (r *ToolRegistry) ToFunctionDefinitions() []llmprovider.Tool {
	list := r.List()
	tools := make([]llmprovider.Tool, 0, len(list))
	for _, tool := range list {
		tools = append(tools, ToFunctionDefinition(tool))
	}
	return tools
}

// PromptDescriptions renders a human-readable tool list for the system prompt.
func (r *ToolRegistry) PromptDescriptions() string {
	var b strings.Builder
	for _, tool := range r.List() {
		b.WriteString("- ")
		b.WriteString(tool.Name())
		b.WriteString(": ")
		b.WriteString(tool.Description())
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// Execute resolves a tool by name and runs it. An unknown tool or a panic
// inside a tool becomes a failed result so the execution loop keeps going.
func (r *ToolRegistry) Execute(ctx context.Context, name string, params map[string]interface{}) (result ToolResult) {
	tool, ok := r.Get(name)
	if !ok {
		return Fail(NewTerminalError(fmt.Sprintf("unknown tool %q", name), nil))
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = Fail(NewTerminalError(fmt.Sprintf("tool %s panicked: %v", name, rec), nil))
		}
	}()

	return tool.Execute(ctx, params)
}
