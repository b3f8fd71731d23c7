package configschema

import (
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/google/jsonschema-go/jsonschema"
)

// JSON Schema type constants.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// inferType returns the JSON Schema type string for the given YAML AST
// node. Returns an empty string for null/empty values (maximally
// permissive).
func inferType(node ast.Node) string {
	node = unwrapNode(node)

	switch node.(type) {
	case *ast.BoolNode:
		return typeBoolean
	case *ast.IntegerNode:
		return typeInteger
	case *ast.FloatNode:
		return typeNumber
	case *ast.InfinityNode, *ast.NanNode:
		return typeNumber
	case *ast.StringNode, *ast.LiteralNode:
		return typeString
	case *ast.SequenceNode:
		return typeArray
	case *ast.MappingNode, *ast.MappingValueNode:
		return typeObject
	case *ast.NullNode:
		return ""
	}

	return ""
}

// unwrapNode resolves TagNode and AnchorNode wrappers to the underlying
// value node.
func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

// extractComment extracts a plain-text description from a mapping entry's
// head or inline comments. Returns an empty string if none is found.
func extractComment(mvn *ast.MappingValueNode) string {
	if desc := cleanComment(mvn.GetComment()); desc != "" {
		return desc
	}

	if mvn.Value != nil {
		if desc := cleanComment(mvn.Value.GetComment()); desc != "" {
			return desc
		}
	}

	if keyNode, ok := mvn.Key.(ast.Node); ok {
		if desc := cleanComment(keyNode.GetComment()); desc != "" {
			return desc
		}
	}

	return ""
}

// cleanComment strips comment markers and whitespace from a comment
// group, joining multi-line comments with spaces.
func cleanComment(comment *ast.CommentGroupNode) string {
	if comment == nil {
		return ""
	}

	lines := strings.Split(comment.String(), "\n")

	var parts []string

	for _, line := range lines {
		cleaned := strings.TrimSpace(stripCommentPrefix(line))
		if cleaned != "" {
			parts = append(parts, cleaned)
		}
	}

	return strings.Join(parts, " ")
}

// stripCommentPrefix removes leading "#" characters and a single space.
func stripCommentPrefix(line string) string {
	line = strings.TrimSpace(line)
	for strings.HasPrefix(line, "#") {
		line = strings.TrimPrefix(line, "#")
	}

	return strings.TrimPrefix(line, " ")
}

// inferItemsSchema creates an items schema from a sequence node's
// elements, widening mixed types. Returns nil for empty sequences or
// when the element types cannot be widened to one type. Mapping elements
// are typed only as "object" here; callers recurse structurally for
// sequences made entirely of mappings instead.
func inferItemsSchema(seq *ast.SequenceNode) *jsonschema.Schema {
	if len(seq.Values) == 0 {
		return nil
	}

	var resultType string

	first := true

	for _, val := range seq.Values {
		elemType := inferType(val)
		if first {
			resultType = elemType
			first = false

			continue
		}

		resultType = widenType(resultType, elemType)
	}

	if resultType == "" {
		return nil
	}

	return &jsonschema.Schema{Type: resultType}
}

// widenType returns the widened type when merging two type strings.
// Returns an empty string (no constraint) for incompatible types.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	if a == "" {
		return b
	}

	if b == "" {
		return a
	}

	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	return ""
}

// isBlank returns true if data contains only whitespace.
func isBlank(data []byte) bool {
	for _, b := range data {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}

	return true
}
