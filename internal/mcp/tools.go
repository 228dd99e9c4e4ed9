package mcp

import "github.com/mark3labs/mcp-go/mcp"

// recommendEditionTool defines the recommend_edition MCP tool.
var recommendEditionTool = mcp.NewTool("recommend_edition",
	mcp.WithDescription("Recommend a Deckhouse Kubernetes Platform edition. Pass either the yes/no answers to the advisor questions in order, or the feature ids the deployment requires. Returns the path taken and the next question or the recommended edition."),
	mcp.WithArray("answers",
		mcp.Description("Answers from the first question on, each \"yes\" or \"no\""),
		mcp.WithStringItems(mcp.Enum("yes", "no")),
	),
	mcp.WithArray("features",
		mcp.Description("Required feature ids, for example fstek_cert or vm_support"),
		mcp.WithStringItems(),
	),
)

// compareEditionsTool defines the compare_editions MCP tool.
var compareEditionsTool = mcp.NewTool("compare_editions",
	mcp.WithDescription("Compare feature availability across editions as a Markdown table."),
	mcp.WithArray("editions",
		mcp.Description("Edition ids to include (default all)"),
		mcp.WithStringItems(),
	),
	mcp.WithArray("categories",
		mcp.Description("Feature categories to include (default all)"),
		mcp.WithStringItems(mcp.Enum("general", "security", "network", "storage", "virtualization", "observability", "other")),
	),
	mcp.WithNumber("min_importance",
		mcp.Description("Only features at or above this importance (1-10)"),
	),
)

// describeNodeTool defines the describe_node MCP tool.
var describeNodeTool = mcp.NewTool("describe_node",
	mcp.WithDescription("Describe one decision tree node: its question or result, the feature it asks about, and where each answer leads."),
	mcp.WithString("node_id",
		mcp.Required(),
		mcp.Description("Node id, for example root or vm_node"),
	),
)

// decisionDiagramTool defines the decision_tree_diagram MCP tool.
var decisionDiagramTool = mcp.NewTool("decision_tree_diagram",
	mcp.WithDescription("Get a Mermaid flowchart of the decision tree, optionally highlighting the path to a node."),
	mcp.WithString("node_id",
		mcp.Description("Highlight the path from the root to this node"),
	),
	mcp.WithString("direction",
		mcp.Description("Flowchart direction"),
		mcp.Enum("LR", "TD"),
	),
)
