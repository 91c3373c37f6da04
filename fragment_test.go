package structura_test

import (
	. "github.com/mudler/structura"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sashabaranov/go-openai"
)

var _ = Describe("Fragment test", func() {
	Context("Basic operations", func() {
		It("Should add messages", func() {
			fragment := Fragment{}
			fragment = fragment.AddMessage("user", "Hello")
			fragment = fragment.AddMessage("assistant", "Hi!")
			fragment = fragment.AddStartMessage("system", "You are a helpful assistant.")

			Expect(len(fragment.Messages)).To(Equal(3))
			Expect(fragment.Messages[0].Role).To(Equal("system"))
			Expect(fragment.Messages[1].Role).To(Equal("user"))
			Expect(fragment.Messages[2].Role).To(Equal("assistant"))
			Expect(fragment.LastMessage().Content).To(Equal("Hi!"))
		})

		It("Should not have a last message when empty", func() {
			Expect(NewEmptyFragment().LastMessage()).To(BeNil())
		})

		It("Should print messages and tool calls", func() {
			fragment := NewFragment(
				openai.ChatCompletionMessage{Role: "user", Content: "Dune"},
				openai.ChatCompletionMessage{
					Role: "assistant",
					ToolCalls: []openai.ToolCall{
						{Function: openai.FunctionCall{Name: "json", Arguments: `{"title":"Dune"}`}},
					},
				},
			)

			Expect(fragment.String()).To(Equal("user: Dune\nassistant: \n  Tool call: json({\"title\":\"Dune\"})\n"))
		})
	})
})
