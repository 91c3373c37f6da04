package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an ordered mapping from field name to value.
type Object struct {
	*orderedmap.OrderedMap[string, any]
}

func NewObject() *Object {
	return &Object{orderedmap.New[string, any]()}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// ToMap converts the object, and any nested objects, into plain maps.
func (o *Object) ToMap() map[string]any {
	m := make(map[string]any, o.Len())
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = plain(pair.Value)
	}
	return m
}

func plain(v any) any {
	switch val := v.(type) {
	case *Object:
		return val.ToMap()
	case []*Object:
		out := make([]any, 0, len(val))
		for _, o := range val {
			out = append(out, o.ToMap())
		}
		return out
	default:
		return v
	}
}

// Instance is a model output that passed validation against its Target.
// It is only produced by Target.Decode.
type Instance struct {
	target *Target
	object *Object
}

func (i *Instance) Target() *Target { return i.target }

// Object returns the decoded values. With an envelope target it holds a
// single "objects" key whose value is a []*Object.
func (i *Instance) Object() *Object { return i.object }

func decodeDocument(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after the output object", ErrValidation)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: output is not an object", ErrValidation)
	}
	return doc, nil
}

func decodeRecord(rec *Record, doc map[string]any) (*Object, error) {
	obj := NewObject()
	for _, f := range rec.fields {
		raw, ok := doc[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrValidation, f.Name)
		}
		v, err := decodeField(f, raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		obj.Set(f.Name, v)
	}
	return obj, nil
}

func decodeField(f Field, raw any) (any, error) {
	if !f.Multiple {
		return coerce(f.Kind, raw)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list, got %T", ErrValidation, raw)
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		v, err := coerce(f.Kind, item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func coerce(k Kind, v any) (any, error) {
	switch k {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindInteger:
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
			// float64(math.MaxInt64) rounds up to 2^63, which is out of range.
			if f, err := n.Float64(); err == nil && f == math.Trunc(f) &&
				f >= math.MinInt64 && f < math.MaxInt64 {
				return int64(f), nil
			}
		}
	case KindFloat:
		if n, ok := v.(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				return f, nil
			}
		}
	case KindList:
		if l, ok := v.([]any); ok {
			return normalize(l)
		}
	case KindMapping:
		if m, ok := v.(map[string]any); ok {
			return normalize(m)
		}
	}
	return nil, fmt.Errorf("%w: expected %s, got %T", ErrValidation, k, v)
}

// normalize replaces json.Number values inside free-form lists and mappings.
// Numbers that do not fit a float64 are rejected.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %s out of range", ErrValidation, val)
		}
		return f, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return v, nil
	}
}
