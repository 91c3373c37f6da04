package prompt_test

import (
	. "github.com/mudler/structura/prompt"
	"github.com/mudler/structura/schema"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Prompts", func() {
	fields := []schema.Field{
		{Name: "title", Description: "The title", Kind: schema.KindString},
		{Name: "years", Kind: schema.KindInteger, Multiple: true},
	}

	It("renders the structured output prompt", func() {
		out, err := PromptStructuredOutput.Render(struct {
			Name     string
			Multiple bool
			Fields   []schema.Field
		}{Name: "Book", Fields: fields})
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(ContainSubstring("Extract a single Book"))
		Expect(out).To(ContainSubstring(`1. "title" (str): The title`))
		Expect(out).To(ContainSubstring(`2. "years" (list of int)`))
		Expect(out).ToNot(ContainSubstring("objects"))
	})

	It("mentions the envelope when generating multiple", func() {
		out, err := PromptStructuredOutput.Render(struct {
			Name     string
			Multiple bool
			Fields   []schema.Field
		}{Name: "Book", Multiple: true, Fields: fields})
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(ContainSubstring(`Extract every Book`))
		Expect(out).To(ContainSubstring(`"objects"`))
	})

	It("falls back to the built-in prompts", func() {
		custom := NewPrompt("custom {{.Name}}")
		m := PromptMap{PromptFunctionCallingType: custom}

		Expect(m.GetPrompt(PromptFunctionCallingType)).To(Equal(custom))
		Expect(m.GetPrompt(PromptStructuredOutputType)).To(Equal(PromptStructuredOutput))

		out, err := m.GetPrompt(PromptFunctionCallingType).Render(map[string]string{"Name": "Book"})
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal("custom Book"))
	})

	It("reports template errors", func() {
		_, err := NewPrompt("{{ .Name ").Render(nil)
		Expect(err).To(HaveOccurred())
	})
})
