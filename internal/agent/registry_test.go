package agent

import (
	"context"
	"strings"
	"testing"
)

type mockTool struct {
	name        string
	description string
	execute     func(ctx context.Context, params map[string]interface{}) ToolResult
}

func (m *mockTool) Name() string        { return m.name }
func (m *mockTool) Description() string { return m.description }
func (m *mockTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (m *mockTool) Execute(ctx context.Context, params map[string]interface{}) ToolResult {
	return m.execute(ctx, params)
}

func TestRegistryListSorted(t *testing.T) {
	r := NewToolRegistry()
	for _, name := range []string{"search_places", "ask_user", "compute_route"} {
		r.Register(&mockTool{name: name, description: name + " tool"})
	}

	list := r.List()
	want := []string{"ask_user", "compute_route", "search_places"}
	if len(list) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(list))
	}
	for i, tool := range list {
		if tool.Name() != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], tool.Name())
		}
	}

	defs := r.ToFunctionDefinitions()
	if len(defs) != 3 || defs[0].Name != "ask_user" {
		t.Errorf("function definitions should follow the sorted order, got %+v", defs)
	}
}

func TestRegistryExecuteUnknownTool(t *testing.T) {
	r := NewToolRegistry()

	result := r.Execute(context.Background(), "nope", nil)
	if result.Success {
		t.Error("unknown tool must fail")
	}
	if result.Err == nil || result.Err.Kind != ErrorKindTerminal {
		t.Errorf("expected terminal error, got %+v", result.Err)
	}
}

func TestRegistryExecuteRecoversPanic(t *testing.T) {
	r := NewToolRegistry()
	r.Register(&mockTool{
		name: "boom",
		execute: func(ctx context.Context, params map[string]interface{}) ToolResult {
			panic("kaboom")
		},
	})

	result := r.Execute(context.Background(), "boom", nil)
	if result.Success {
		t.Error("panicking tool must produce a failed result")
	}
	if result.Err == nil || !strings.Contains(result.Err.Message, "kaboom") {
		t.Errorf("expected panic message in error, got %+v", result.Err)
	}
}

func TestToolResultForModel(t *testing.T) {
	ok := Succeed(map[string]interface{}{"count": 2})
	payload := ok.ForModel()
	if payload["success"] != true || payload["data"] == nil {
		t.Errorf("unexpected success payload: %v", payload)
	}

	failed := Fail(NewRetryableError("upstream timeout", nil))
	payload = failed.ForModel()
	if payload["success"] != false {
		t.Errorf("failed result should report success=false: %v", payload)
	}
	if payload["error"] != "upstream timeout" || payload["error_kind"] != "retryable" {
		t.Errorf("unexpected error payload: %v", payload)
	}
}

func TestToolErrorKinds(t *testing.T) {
	retryable := NewRetryableError("rate limited", nil)
	if !retryable.Retryable() {
		t.Error("expected retryable")
	}

	terminal := MissingParamError("query")
	if terminal.Retryable() {
		t.Error("missing param must be terminal")
	}
	if terminal.Error() != "query parameter is required" {
		t.Errorf("unexpected message: %s", terminal.Error())
	}
}

func TestAskUserResult(t *testing.T) {
	result := AskUser("Which one?", []string{"A", "B"})
	if !result.NeedsUserInput || result.Question != "Which one?" || len(result.Options) != 2 {
		t.Errorf("unexpected ask result: %+v", result)
	}
}
