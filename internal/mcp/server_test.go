package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/diagrams"
)

func newTestServer() *Server {
	return NewServer(dataset.Default(), diagrams.Options{YesLabel: "Да", NoLabel: "Нет"})
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Content) == 0 {
		t.Fatal("empty result content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text, result.IsError
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"recommend_edition", recommendEditionTool, "recommend_edition"},
		{"compare_editions", compareEditionsTool, "compare_editions"},
		{"describe_node", describeNodeTool, "describe_node"},
		{"decision_tree_diagram", decisionDiagramTool, "decision_tree_diagram"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer()
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	tools := srv.mcp.ListTools()
	if len(tools) != 4 {
		t.Errorf("expected 4 registered tools, got %d", len(tools))
	}
	if srv.mcp.GetTool("recommend_edition") == nil {
		t.Error("recommend_edition not registered")
	}
}

func TestHandleRecommendEdition(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name    string
		args    map[string]any
		isError bool
		want    []string
	}{
		{
			name: "no answers",
			args: map[string]any{},
			want: []string{"Next question (root)", "Требуется ли сертификация ФСТЭК?", "Progress: 0%"},
		},
		{
			name: "partial answers",
			args: map[string]any{"answers": []any{"no"}},
			want: []string{"Next question (registry_node)", "root > registry_node"},
		},
		{
			name: "resolved by answers",
			args: map[string]any{"answers": []any{"no", "no"}},
			want: []string{"Recommended edition: Community Edition (community)", "Progress: 100%"},
		},
		{
			name: "resolved by features",
			args: map[string]any{"features": []any{"fstek_cert", "admin_ui"}},
			want: []string{"Answers: yes, yes", "cert_security_pro", "Интерфейс администратора (admin_ui): Планируется"},
		},
		{
			name:    "answer past a result",
			args:    map[string]any{"answers": []any{"no", "no", "yes"}},
			isError: true,
			want:    []string{"cannot apply answers"},
		},
		{
			name:    "bad answer",
			args:    map[string]any{"answers": []any{"maybe"}},
			isError: true,
			want:    []string{"invalid choice"},
		},
		{
			name:    "unknown feature",
			args:    map[string]any{"features": []any{"teleport"}},
			isError: true,
			want:    []string{"unknown feature"},
		},
		{
			name:    "both inputs",
			args:    map[string]any{"answers": []any{"no"}, "features": []any{"registry"}},
			isError: true,
			want:    []string{"not both"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, srv.handleRecommendEdition, tt.args)
			if isErr != tt.isError {
				t.Fatalf("IsError = %v, want %v: %s", isErr, tt.isError, text)
			}
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("result missing %q:\n%s", w, text)
				}
			}
		})
	}
}

func TestHandleCompareEditions(t *testing.T) {
	srv := newTestServer()

	text, isErr := call(t, srv.handleCompareEditions, map[string]any{
		"editions":       []any{"community", "enterprise"},
		"categories":     []any{"security"},
		"min_importance": float64(8),
	})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if !strings.Contains(text, "Сертификация ФСТЭК") || strings.Contains(text, "Проверка подписи") {
		t.Errorf("filter not applied:\n%s", text)
	}

	if _, isErr := call(t, srv.handleCompareEditions, map[string]any{"editions": []any{"ultimate"}}); !isErr {
		t.Error("expected error for unknown edition")
	}
}

func TestHandleDescribeNode(t *testing.T) {
	srv := newTestServer()

	text, isErr := call(t, srv.handleDescribeNode, map[string]any{"node_id": "vm_node"})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	for _, w := range []string{"question", "Запуск виртуальных машин (vm_support)", "On yes: standard_plus_result", "On no: standard_result"} {
		if !strings.Contains(text, w) {
			t.Errorf("result missing %q:\n%s", w, text)
		}
	}

	text, _ = call(t, srv.handleDescribeNode, map[string]any{"node_id": "enterprise_result"})
	if !strings.Contains(text, "terminal") || !strings.Contains(text, "## Установка") {
		t.Errorf("terminal description missing edition card:\n%s", text)
	}

	if _, isErr := call(t, srv.handleDescribeNode, map[string]any{"node_id": "nope"}); !isErr {
		t.Error("expected error for unknown node")
	}
	if _, isErr := call(t, srv.handleDescribeNode, map[string]any{}); !isErr {
		t.Error("expected error for missing node_id")
	}
}

func TestHandleDecisionDiagram(t *testing.T) {
	srv := newTestServer()

	text, _ := call(t, srv.handleDecisionDiagram, map[string]any{})
	if !strings.HasPrefix(text, "graph LR") || !strings.Contains(text, "|Да|") {
		t.Errorf("unexpected diagram:\n%s", text)
	}

	text, _ = call(t, srv.handleDecisionDiagram, map[string]any{"node_id": "community_result", "direction": "TD"})
	if !strings.HasPrefix(text, "graph TD") || !strings.Contains(text, "classDef current") {
		t.Errorf("path not highlighted:\n%s", text)
	}

	if _, isErr := call(t, srv.handleDecisionDiagram, map[string]any{"node_id": "nope"}); !isErr {
		t.Error("expected error for unknown node")
	}
}
