package expr

// Node is the interface for all formula AST nodes.
type Node interface {
	nodeType() string
}

// LiteralNode represents a numeric literal.
type LiteralNode struct {
	Value float64
}

func (n *LiteralNode) nodeType() string { return "Literal" }

// IdentNode represents a reference to an earlier estimate.
type IdentNode struct {
	Name string
}

func (n *IdentNode) nodeType() string { return "Ident" }

// BinaryNode represents an arithmetic operation (e.g., a + b, x / 2).
type BinaryNode struct {
	Op    TokenType
	Left  Node
	Right Node
}

func (n *BinaryNode) nodeType() string { return "Binary" }

// UnaryNode represents negation (e.g., -x).
type UnaryNode struct {
	Op      TokenType
	Operand Node
}

func (n *UnaryNode) nodeType() string { return "Unary" }

// CallNode represents a function call (e.g., to(1, 10), normal(0, 1)).
type CallNode struct {
	Name string
	Args []Node
}

func (n *CallNode) nodeType() string { return "Call" }

// ListNode represents a list literal (e.g., [1, 2, 3]).
type ListNode struct {
	Elements []Node
}

func (n *ListNode) nodeType() string { return "List" }
