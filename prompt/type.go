package prompt

import "fmt"

type PromptType uint

const (
	PromptStructuredOutputType PromptType = iota
	PromptFunctionCallingType
)

func (t PromptType) String() string {
	switch t {
	case PromptStructuredOutputType:
		return "structured_output"
	case PromptFunctionCallingType:
		return "function_calling"
	}
	return fmt.Sprintf("PromptType(%d)", uint(t))
}

var (
	defaultPromptMap PromptMap = map[PromptType]Prompt{
		PromptStructuredOutputType: PromptStructuredOutput,
		PromptFunctionCallingType:  PromptFunctionCalling,
	}

	PromptStructuredOutput = NewPrompt(`You are an AI assistant that extracts structured data from the user's message.
{{ if .Multiple }}
Extract every {{.Name}} mentioned in the message and return them as a list under "objects".
{{- else }}
Extract a single {{.Name}} from the message.
{{- end }}

Each {{.Name}} has the following fields:
{{ range $index, $field := .Fields }}
{{add1 $index}}. "{{$field.Name}}" ({{ if $field.Multiple }}list of {{ end }}{{$field.Kind}}){{ if $field.Description }}: {{$field.Description}}{{ end }}
{{- end }}

Reply only with a JSON document that conforms to the response schema.`)

	PromptFunctionCalling = NewPrompt(`You are an AI assistant that extracts structured data from the user's message.
{{ if .Multiple }}
Extract every {{.Name}} mentioned in the message and return them as a list under "objects".
{{- else }}
Extract a single {{.Name}} from the message.
{{- end }}

Fields:
{{ range $index, $field := .Fields }}
- "{{$field.Name}}" ({{ if $field.Multiple }}list of {{ end }}{{$field.Kind}}){{ if $field.Description }}: {{$field.Description}}{{ end }}
{{- end }}

You will use the "{{.Tool}}" tool to return the extracted data. Its arguments must follow this schema:
{{.Schema}}`)
)
