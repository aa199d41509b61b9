package docgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/structure"
	"gopkg.in/yaml.v3"
)

// FormatJSONDoc renders a document as JSON indented by four spaces,
// keeping key order.
func FormatJSONDoc(doc structure.Dict) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return "", errors.Mark(errors.Wrap(err, "failed to encode JSON"), errors.ErrSerialization)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// FormatYAMLDoc renders a document as block-style YAML, keeping key order.
func FormatYAMLDoc(doc structure.Dict) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toNode(doc)); err != nil {
		return "", errors.Mark(errors.Wrap(err, "failed to encode YAML"), errors.ErrSerialization)
	}
	if err := enc.Close(); err != nil {
		return "", errors.Mark(errors.Wrap(err, "failed to encode YAML"), errors.ErrSerialization)
	}
	return buf.String(), nil
}

// toNode builds an explicit YAML node tree so mappings keep insertion
// order and collections are never written in flow style.
func toNode(v any) *yaml.Node {
	switch val := v.(type) {
	case structure.Dict:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			node.Content = append(node.Content, scalar("!!str", pair.Key), toNode(pair.Value))
		}
		return node
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			node.Content = append(node.Content, toNode(item))
		}
		return node
	case []string:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			node.Content = append(node.Content, scalar("!!str", item))
		}
		return node
	case nil:
		return scalar("!!null", "null")
	case string:
		node := scalar("!!str", val)
		if strings.Contains(val, "\n") {
			node.Style = yaml.LiteralStyle
		}
		return node
	case bool:
		return scalar("!!bool", strconv.FormatBool(val))
	case int:
		return scalar("!!int", strconv.Itoa(val))
	case int64:
		return scalar("!!int", strconv.FormatInt(val, 10))
	case float64:
		return scalar("!!float", strconv.FormatFloat(val, 'g', -1, 64))
	}
	return scalar("!!str", fmt.Sprint(v))
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
