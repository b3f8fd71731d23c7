package configschema

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/google/jsonschema-go/jsonschema"
)

// Sentinel errors returned by [Generate].
var (
	ErrInvalidYAML = errors.New("invalid yaml")
	ErrReadInput   = errors.New("read input")
	ErrWriteOutput = errors.New("write output")
)

const schemaDraft07 = "http://json-schema.org/draft-07/schema#"

// Generate produces a Draft 7 JSON Schema describing the shape of a
// policy YAML document: the top-level default_mode/patterns/sources/modes
// keys, inferred recursively from the document's structure, with
// descriptions pulled from plain YAML comments where present.
//
// An empty or whitespace-only input produces the maximally permissive
// schema (an empty [jsonschema.Schema], which marshals to JSON "true").
func Generate(policyYAML []byte) (*jsonschema.Schema, error) {
	if len(policyYAML) == 0 || isBlank(policyYAML) {
		return emptySchema(), nil
	}

	file, err := parser.ParseBytes(policyYAML, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return emptySchema(), nil
	}

	anchors := buildAnchorMap(file.Docs[0].Body)

	schema := walkNode(file.Docs[0].Body, anchors)

	schema.Schema = schemaDraft07
	schema.Title = "envmask policy"
	schema.Description = "Masking policy: key and source glob rules, default mode, and per-mode options."

	if (schema.Type == typeObject || schema.Properties != nil) && schema.AdditionalProperties == nil {
		schema.AdditionalProperties = TrueSchema()
	}

	return schema, nil
}

// walkNode recursively generates a schema from a YAML AST node.
func walkNode(node ast.Node, anchors map[string]ast.Node) *jsonschema.Schema {
	node = resolveAliases(node, anchors)
	node = unwrapNode(node)

	if node == nil {
		return &jsonschema.Schema{}
	}

	switch n := node.(type) {
	case *ast.MappingNode:
		return walkMapping(n, anchors)
	case *ast.MappingValueNode:
		return walkMapping(nil, anchors, n)
	case *ast.SequenceNode:
		return walkSequence(n, anchors)
	default:
		return walkScalar(node)
	}
}

// walkMapping processes a mapping node into an object schema.
func walkMapping(mn *ast.MappingNode, anchors map[string]ast.Node, extraValues ...*ast.MappingValueNode) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:                 typeObject,
		Properties:           make(map[string]*jsonschema.Schema),
		AdditionalProperties: TrueSchema(),
	}

	var values []*ast.MappingValueNode
	if mn != nil {
		values = mn.Values
	}

	values = append(values, extraValues...)

	var (
		propertyOrder []string
		orderSeen     = make(map[string]bool)
	)

	for _, mvn := range values {
		keyName := mvn.Key.String()

		valueNode := resolveAliases(mvn.Value, anchors)
		valueNode = unwrapNode(valueNode)

		childSchema := walkNode(valueNode, anchors)
		if childSchema.Description == "" {
			childSchema.Description = extractComment(mvn)
		}

		schema.Properties[keyName] = childSchema

		if !orderSeen[keyName] {
			propertyOrder = append(propertyOrder, keyName)
			orderSeen[keyName] = true
		}
	}

	schema.PropertyOrder = propertyOrder

	if len(schema.Properties) == 0 {
		schema.Properties = nil
		schema.PropertyOrder = nil
	}

	return schema
}

// walkSequence processes a sequence node into an array schema, merging
// element schemas structurally when every element is a mapping (e.g. the
// policy file's patterns/sources lists of {glob, mode} entries).
func walkSequence(seq *ast.SequenceNode, anchors map[string]ast.Node) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:  typeArray,
		Items: inferItemsFromSequence(seq, anchors),
	}
}

func inferItemsFromSequence(seq *ast.SequenceNode, anchors map[string]ast.Node) *jsonschema.Schema {
	if len(seq.Values) == 0 {
		return nil
	}

	allMappings := true

	for _, val := range seq.Values {
		resolved := resolveAliases(val, anchors)
		resolved = unwrapNode(resolved)

		if _, ok := resolved.(*ast.MappingNode); !ok {
			allMappings = false

			break
		}
	}

	if !allMappings {
		return inferItemsSchema(seq)
	}

	var merged *jsonschema.Schema

	for _, val := range seq.Values {
		resolved := resolveAliases(val, anchors)
		resolved = unwrapNode(resolved)

		s := walkNode(resolved, anchors)
		if merged == nil {
			merged = s

			continue
		}

		merged = mergeObjectSchemas(merged, s)
	}

	return merged
}

// mergeObjectSchemas unions two object schemas' properties -- used only
// to combine the element schemas of a sequence of mapping entries into
// one items schema, never across multiple documents.
func mergeObjectSchemas(a, b *jsonschema.Schema) *jsonschema.Schema {
	if a.Properties == nil && b.Properties == nil {
		return a
	}

	merged := &jsonschema.Schema{
		Type:                 typeObject,
		Properties:           make(map[string]*jsonschema.Schema, len(a.Properties)+len(b.Properties)),
		AdditionalProperties: TrueSchema(),
	}

	for _, k := range a.PropertyOrder {
		merged.Properties[k] = a.Properties[k]
		merged.PropertyOrder = append(merged.PropertyOrder, k)
	}

	for _, k := range b.PropertyOrder {
		if _, exists := merged.Properties[k]; !exists {
			merged.Properties[k] = b.Properties[k]
			merged.PropertyOrder = append(merged.PropertyOrder, k)
		}
	}

	return merged
}

// walkScalar generates a schema for a scalar value node.
func walkScalar(node ast.Node) *jsonschema.Schema {
	t := inferType(node)
	if t == "" {
		return &jsonschema.Schema{}
	}

	return &jsonschema.Schema{Type: t}
}

// emptySchema returns the maximally permissive schema (validates
// everything).
func emptySchema() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// buildAnchorMap walks the AST and collects all anchor definitions.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)

	ast.Walk(&anchorVisitor{anchors: anchors}, node)

	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

// Visit implements the [ast.Visitor] interface.
func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		name := anchor.Name.String()
		v.anchors[name] = anchor.Value
	}

	return v
}

// resolveAliases resolves alias nodes using the anchor map.
func resolveAliases(node ast.Node, anchors map[string]ast.Node) ast.Node {
	if node == nil {
		return nil
	}

	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	name := alias.Value.String()
	if resolved, found := anchors[name]; found {
		return resolved
	}

	return nil
}

// TrueSchema returns a schema that validates everything (marshals to
// JSON true).
func TrueSchema() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// FalseSchema returns a schema that validates nothing (marshals to JSON
// false).
func FalseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
