package types

import (
	"bytes"
	"encoding/json"

	"github.com/cevaris/ordered_map"
	"gopkg.in/yaml.v3"
)

// Record is a flat aptly package record. Fields marshal in insertion order;
// overwriting a field keeps its original position.
type Record struct {
	fields *ordered_map.OrderedMap
}

func NewRecord() Record {
	return Record{fields: ordered_map.NewOrderedMap()}
}

func (r Record) Set(field string, value string) {
	r.fields.Set(field, value)
}

func (r Record) Get(field string) (string, bool) {
	if r.fields == nil {
		return "", false
	}
	value, ok := r.fields.Get(field)
	if !ok {
		return "", false
	}
	return value.(string), true
}

func (r Record) Fields() []string {
	if r.fields == nil {
		return nil
	}
	out := make([]string, 0, r.fields.Len())
	iter := r.fields.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		out = append(out, kv.Key.(string))
	}
	return out
}

func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range r.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, _ := r.Get(field)
		if err := writeJSONString(&buf, field); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range r.Fields() {
		value, _ := r.Get(field)
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
	}
	return node, nil
}

// writeJSONString encodes value without HTML escaping so descriptions and
// maintainer addresses survive as written.
func writeJSONString(buf *bytes.Buffer, value string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
