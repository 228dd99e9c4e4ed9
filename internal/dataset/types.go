package dataset

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// RootID is the id of the node every traversal starts from.
const RootID = "root"

// Status is the availability of a feature in an edition.
type Status string

const (
	StatusPresent     Status = "present"
	StatusAbsent      Status = "absent"
	StatusPlanned     Status = "planned"
	StatusConditional Status = "conditionally-available"
)

var statusTitles = map[Status]string{
	StatusPresent:     "Есть",
	StatusAbsent:      "Нет",
	StatusPlanned:     "Планируется",
	StatusConditional: "Условно доступно",
}

// Title returns the display text for the status.
func (s Status) Title() string {
	if t, ok := statusTitles[s]; ok {
		return t
	}
	return string(s)
}

// Statuses lists every known status, best first.
func Statuses() []Status {
	return []Status{StatusPresent, StatusConditional, StatusPlanned, StatusAbsent}
}

// Category groups features for display.
type Category string

const (
	CategoryGeneral        Category = "general"
	CategorySecurity       Category = "security"
	CategoryNetwork        Category = "network"
	CategoryStorage        Category = "storage"
	CategoryVirtualization Category = "virtualization"
	CategoryObservability  Category = "observability"
	CategoryOther          Category = "other"
)

var categoryTitles = map[Category]string{
	CategoryGeneral:        "Общее",
	CategorySecurity:       "Безопасность",
	CategoryNetwork:        "Сетевые возможности",
	CategoryStorage:        "Хранение данных",
	CategoryVirtualization: "Виртуализация",
	CategoryObservability:  "Наблюдаемость",
	CategoryOther:          "Прочее",
}

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategorySecurity,
		CategoryNetwork,
		CategoryStorage,
		CategoryVirtualization,
		CategoryObservability,
		CategoryOther,
	}
}

// Title returns the display name of the category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Feature is a named capability with an importance weight.
type Feature struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Category    Category `json:"category" validate:"required,oneof=general security network storage virtualization observability other"`
	Importance  int      `json:"importance" validate:"min=1,max=10"`
}

// Edition is a product tier with a fixed feature matrix.
type Edition struct {
	ID          string            `json:"id" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Features    map[string]Status `json:"features" validate:"dive,keys,required,endkeys,oneof=present absent planned conditionally-available"`
}

// clone returns a copy that shares no map with e.
func (e Edition) clone() Edition {
	e.Features = maps.Clone(e.Features)
	return e
}

// Status returns the availability of a feature. Unspecified features are absent.
func (e *Edition) Status(featureID string) Status {
	if s, ok := e.Features[featureID]; ok {
		return s
	}
	return StatusAbsent
}

// Choice is an answer to a question node.
type Choice string

const (
	Yes Choice = "yes"
	No  Choice = "no"
)

// Choices returns both answers in hierarchy order.
func Choices() []Choice { return []Choice{Yes, No} }

// ParseChoice accepts yes/no in English or Russian, full or abbreviated.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "да", "д":
		return Yes, nil
	case "no", "n", "нет", "н":
		return No, nil
	}
	return "", fmt.Errorf("invalid choice %q: must be yes or no", s)
}

// Kind tells question nodes from terminal nodes.
type Kind int

const (
	KindQuestion Kind = iota
	KindTerminal
)

func (k Kind) String() string {
	switch k {
	case KindQuestion:
		return "question"
	case KindTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a point in the decision graph. A question node has up to two
// outgoing edges and no result; a terminal node has a result and no edges.
// Use NewQuestion and NewTerminal to build one.
type Node struct {
	id        string
	kind      Kind
	text      string
	featureID string
	yes       string
	no        string
	result    string
}

// NewQuestion returns a question node. Empty targets mean the edge is absent.
func NewQuestion(id, question, featureID, yes, no string) *Node {
	return &Node{id: id, kind: KindQuestion, text: question, featureID: featureID, yes: yes, no: no}
}

// NewTerminal returns a terminal node recommending the given edition.
func NewTerminal(id, text, editionID string) *Node {
	return &Node{id: id, kind: KindTerminal, text: text, result: editionID}
}

func (n *Node) ID() string        { return n.id }
func (n *Node) Kind() Kind        { return n.kind }
func (n *Node) Text() string      { return n.text }
func (n *Node) FeatureID() string { return n.featureID }
func (n *Node) IsTerminal() bool  { return n.kind == KindTerminal }

// Target returns the node id reached by answering c, if that edge exists.
func (n *Node) Target(c Choice) (string, bool) {
	if n.kind != KindQuestion {
		return "", false
	}
	var id string
	switch c {
	case Yes:
		id = n.yes
	case No:
		id = n.no
	}
	return id, id != ""
}

// Result returns the recommended edition id of a terminal node.
func (n *Node) Result() (string, bool) {
	return n.result, n.kind == KindTerminal
}

type nodeJSON struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Question  string `json:"question"`
	FeatureID string `json:"featureId,omitempty"`
	Yes       string `json:"yes,omitempty"`
	No        string `json:"no,omitempty"`
	Result    string `json:"result,omitempty"`
}

// MarshalJSON encodes the node in the flat shape used by the HTTP API.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		ID:        n.id,
		Kind:      n.kind.String(),
		Question:  n.text,
		FeatureID: n.featureID,
		Yes:       n.yes,
		No:        n.no,
		Result:    n.result,
	})
}
