package main

import "strconv"

// NodeKind represents different types of AST nodes
type NodeKind string

const (
	NodeProgram NodeKind = "NodeProgram"

	// Statements
	NodeLet    NodeKind = "NodeLet"
	NodeAssign NodeKind = "NodeAssign"
	NodeBlock  NodeKind = "NodeBlock"
	NodeFunc   NodeKind = "NodeFunc"
	NodeReturn NodeKind = "NodeReturn"
	NodeIf     NodeKind = "NodeIf"

	// Expressions
	NodeInteger NodeKind = "NodeInteger"
	NodeFloat   NodeKind = "NodeFloat"
	NodeBoolean NodeKind = "NodeBoolean"
	NodeIdent   NodeKind = "NodeIdent"
	NodeBinary  NodeKind = "NodeBinary"
	NodeCall    NodeKind = "NodeCall"
)

// ASTNode represents a node in the Abstract Syntax Tree. Nodes form a tree:
// each node owns its Children exclusively and the whole tree is discarded
// after code generation. An expression used in statement position is simply
// the expression node itself.
//
// Field usage per kind:
//
//	NodeProgram: Children (top-level statements)
//	NodeLet:     String (name), TypeName (declared type), Children[0] (initializer)
//	NodeAssign:  String (target), Children[0] (right-hand expression)
//	NodeBlock:   Children (statements)
//	NodeFunc:    String (name), TypeName (return type), ParamNames, Children[0] (body)
//	NodeReturn:  Children[0] (return expression)
//	NodeIf:      Children[0] (condition), Children[1] (consequence),
//	             Children[2] (optional alternative)
//	NodeBinary:  Op, Children[0] (left), Children[1] (right)
//	NodeCall:    String (callee), Children (arguments)
type ASTNode struct {
	Kind NodeKind

	// NodeIdent, NodeLet, NodeAssign, NodeFunc, NodeCall:
	String string
	// NodeInteger:
	Integer int64
	// NodeFloat:
	Float float64
	// NodeBoolean:
	Boolean bool
	// NodeBinary:
	Op string
	// NodeLet, NodeFunc:
	TypeName string

	Children   []*ASTNode
	ParamNames []string

	// Position of the token that began this node, for diagnostics.
	Line int
	Col  int
}

// ToSExpr converts an AST node to its s-expression string representation,
// used by debug dumps and by the markdown test suite.
func ToSExpr(node *ASTNode) string {
	if node == nil {
		return "()"
	}

	switch node.Kind {
	case NodeProgram:
		result := "(program"
		for _, child := range node.Children {
			result += " " + ToSExpr(child)
		}
		return result + ")"
	case NodeLet:
		return "(let \"" + node.String + "\" " + node.TypeName + " " + ToSExpr(node.Children[0]) + ")"
	case NodeAssign:
		return "(assign \"" + node.String + "\" " + ToSExpr(node.Children[0]) + ")"
	case NodeBlock:
		result := "(block"
		for _, child := range node.Children {
			result += " " + ToSExpr(child)
		}
		return result + ")"
	case NodeFunc:
		return "(fn \"" + node.String + "\" " + node.TypeName + " " + ToSExpr(node.Children[0]) + ")"
	case NodeReturn:
		return "(return " + ToSExpr(node.Children[0]) + ")"
	case NodeIf:
		result := "(if " + ToSExpr(node.Children[0]) + " " + ToSExpr(node.Children[1])
		if len(node.Children) == 3 {
			result += " " + ToSExpr(node.Children[2])
		}
		return result + ")"
	case NodeInteger:
		return "(integer " + strconv.FormatInt(node.Integer, 10) + ")"
	case NodeFloat:
		return "(float " + strconv.FormatFloat(node.Float, 'g', -1, 64) + ")"
	case NodeBoolean:
		if node.Boolean {
			return "(boolean true)"
		}
		return "(boolean false)"
	case NodeIdent:
		return "(ident \"" + node.String + "\")"
	case NodeBinary:
		return "(binary \"" + node.Op + "\" " + ToSExpr(node.Children[0]) + " " + ToSExpr(node.Children[1]) + ")"
	case NodeCall:
		result := "(call \"" + node.String + "\""
		for _, arg := range node.Children {
			result += " " + ToSExpr(arg)
		}
		return result + ")"
	default:
		return ""
	}
}
