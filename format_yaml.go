// File: strataconf/strata/format_yaml.go
package strata

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// yamlFormat parses and serializes YAML through yaml.Node trees so
// mapping key order is preserved and scalar tags decide between int,
// float, bool, null, and string.
type yamlFormat struct{}

func (yamlFormat) Name() string { return FormatYAML }

func (yamlFormat) Parse(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Null(), err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return TableValue(NewOrderedTable()), nil
	}
	return fromYAMLNode(doc.Content[0])
}

func fromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)
	case yaml.MappingNode:
		t := NewOrderedTable()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind == yaml.AliasNode {
				keyNode = keyNode.Alias
			}
			v, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return Null(), err
			}
			t.Set(keyNode.Value, v)
		}
		return TableValue(t), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := fromYAMLNode(item)
			if err != nil {
				return Null(), err
			}
			items = append(items, v)
		}
		return Array(items...), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	default:
		return Null(), fmt.Errorf("unsupported YAML node kind %d at line %d", node.Kind, node.Line)
	}
}

func fromYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return Null(), fmt.Errorf("invalid bool %q at line %d", node.Value, node.Line)
		}
		return Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return Null(), fmt.Errorf("invalid int %q at line %d", node.Value, node.Line)
		}
		return Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return Null(), fmt.Errorf("invalid float %q at line %d", node.Value, node.Line)
		}
		return Float(f), nil
	default:
		return String(node.Value), nil
	}
}

func (yamlFormat) Marshal(v Value) ([]byte, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func toYAMLNode(v Value) (*yaml.Node, error) {
	switch v.kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}, nil
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.i, 10)}, nil
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.f, 'g', -1, 64)}, nil
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}, nil
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for i := range v.a {
			child, err := toYAMLNode(v.a[i])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case KindTable:
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range v.t.Keys() {
			item, _ := v.t.Get(key)
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("cannot encode %s as YAML", v.kind)
	}
}
