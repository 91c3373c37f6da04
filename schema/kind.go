package schema

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Kind is the declared type of a field.
type Kind uint

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindList
	KindMapping
)

var kindNames = map[Kind]string{
	KindString:  "str",
	KindInteger: "int",
	KindFloat:   "float",
	KindBoolean: "bool",
	KindList:    "list",
	KindMapping: "dict",
}

var kindAliases = map[string]Kind{
	"str":     KindString,
	"string":  KindString,
	"text":    KindString,
	"int":     KindInteger,
	"integer": KindInteger,
	"float":   KindFloat,
	"number":  KindFloat,
	"bool":    KindBoolean,
	"boolean": KindBoolean,
	"list":    KindList,
	"array":   KindList,
	"dict":    KindMapping,
	"mapping": KindMapping,
	"object":  KindMapping,
}

// ParseKind maps a user-declared type name to a Kind.
func ParseKind(s string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedType, s)
	}
	return k, nil
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", uint(k))
}

// MarshalText lets a Kind round-trip through YAML and JSON as its short name.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedType, uint(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Kind) dataType() jsonschema.DataType {
	switch k {
	case KindInteger:
		return jsonschema.Integer
	case KindFloat:
		return jsonschema.Number
	case KindBoolean:
		return jsonschema.Boolean
	case KindList:
		return jsonschema.Array
	case KindMapping:
		return jsonschema.Object
	default:
		return jsonschema.String
	}
}
