package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/mudler/structura"
	"github.com/mudler/structura/schema"
)

func writeData(w io.Writer, data *structura.Data, format string) error {
	var (
		out []byte
		err error
	)
	switch format {
	case "json":
		out, err = json.MarshalIndent(data, "", "  ")
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(mapSlice(data))
	default:
		return fmt.Errorf("output format not supported: %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// mapSlice converts objects to yaml.MapSlice so fields keep schema order.
func mapSlice(v any) any {
	switch v := v.(type) {
	case *schema.Object:
		ms := yaml.MapSlice{}
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			ms = append(ms, yaml.MapItem{Key: pair.Key, Value: mapSlice(pair.Value)})
		}
		return ms
	case []*schema.Object:
		items := make([]any, 0, len(v))
		for _, o := range v {
			items = append(items, mapSlice(o))
		}
		return items
	case []any:
		items := make([]any, 0, len(v))
		for _, i := range v {
			items = append(items, mapSlice(i))
		}
		return items
	default:
		return v
	}
}
