package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/edition-advisor/internal/catalog"
	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/diagrams"
	"github.com/ziadkadry99/edition-advisor/internal/traversal"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
)

// handleRecommendEdition walks the tree from explicit answers or from a set
// of required features.
func (s *Server) handleRecommendEdition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawAnswers := request.GetStringSlice("answers", nil)
	features := request.GetStringSlice("features", nil)
	if len(rawAnswers) > 0 && len(features) > 0 {
		return mcp.NewToolResultError("pass either answers or features, not both"), nil
	}

	var answers []dataset.Choice
	if len(features) > 0 {
		planned, err := traversal.Plan(s.ds, features)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		answers = planned
	} else {
		for _, a := range rawAnswers {
			c, err := dataset.ParseChoice(a)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			answers = append(answers, c)
		}
	}

	m := traversal.New(s.ds, nil)
	if err := m.Replay(answers); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot apply answers: %v", err)), nil
	}
	return mcp.NewToolResultText(formatTraversal(s.ds, m, answers, features)), nil
}

// handleCompareEditions renders the comparison table as Markdown.
func (s *Server) handleCompareEditions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := catalog.Filter{
		Editions:      request.GetStringSlice("editions", nil),
		MinImportance: request.GetInt("min_importance", 0),
	}
	for _, c := range request.GetStringSlice("categories", nil) {
		f.Categories = append(f.Categories, dataset.Category(c))
	}
	t, err := catalog.Compare(s.ds, f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(catalog.Markdown(t)), nil
}

// handleDescribeNode explains a single node.
func (s *Server) handleDescribeNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("node_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: node_id"), nil
	}
	n, ok := s.ds.Node(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("node %q not found", id)), nil
	}
	path, err := tree.ResolvePath(s.ds, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Node: %s (%s)\n", n.ID(), n.Kind())
	fmt.Fprintf(&sb, "Text: %s\n", n.Text())
	fmt.Fprintf(&sb, "Path: %s\n", path)
	if fid := n.FeatureID(); fid != "" {
		if f, ok := s.ds.Feature(fid); ok {
			fmt.Fprintf(&sb, "Feature: %s (%s)\n", f.Name, f.ID)
		}
	}
	for _, c := range dataset.Choices() {
		if target, ok := n.Target(c); ok {
			fmt.Fprintf(&sb, "On %s: %s\n", c, target)
		}
	}
	if result, ok := n.Result(); ok {
		if card, err := catalog.EditionCard(s.ds, result); err == nil {
			fmt.Fprintf(&sb, "\n%s", catalog.CardMarkdown(card))
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleDecisionDiagram returns the Mermaid flowchart.
func (s *Server) handleDecisionDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := s.diagram
	opts.Direction = request.GetString("direction", opts.Direction)
	if id := request.GetString("node_id", ""); id != "" {
		path, err := tree.ResolvePath(s.ds, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts.Path = path
	}
	return mcp.NewToolResultText(diagrams.DecisionDiagram(s.ds, opts)), nil
}

// formatTraversal describes where a set of answers leads, in a form meant
// for AI agent consumption.
func formatTraversal(ds *dataset.Dataset, m *traversal.Machine, answers []dataset.Choice, required []string) string {
	var sb strings.Builder
	if len(answers) > 0 {
		parts := make([]string, len(answers))
		for i, a := range answers {
			parts[i] = string(a)
		}
		fmt.Fprintf(&sb, "Answers: %s\n", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&sb, "Path: %s\n", m.Path())
	fmt.Fprintf(&sb, "Progress: %d%%\n", m.Progress())

	ed := m.Edition()
	if ed == nil {
		fmt.Fprintf(&sb, "\nNext question (%s): %s\n", m.Current().ID(), m.Current().Text())
		return sb.String()
	}

	fmt.Fprintf(&sb, "\nRecommended edition: %s (%s)\n%s\n", ed.Name, ed.ID, ed.Description)
	if missing := traversal.Missing(ds, ed, required); len(missing) > 0 {
		sb.WriteString("\nNot fully provided by this edition:\n")
		for _, f := range missing {
			fmt.Fprintf(&sb, "- %s (%s): %s\n", f.Name, f.ID, ed.Status(f.ID).Title())
		}
	}
	return sb.String()
}
