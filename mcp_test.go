package structura_test

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/mudler/structura"
	"github.com/mudler/structura/tests/mock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MCP server", func() {
	var (
		llm     *mock.MockStructuredLLM
		session *mcp.ClientSession
	)

	BeforeEach(func() {
		llm = mock.NewMockStructuredLLM()
		server := NewMCPServer(llm, "test", WithDisplayName("mcp"))

		clientTransport, serverTransport := mcp.NewInMemoryTransports()
		serverSession, err := server.Connect(context.Background(), serverTransport, nil)
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(func() { _ = serverSession.Close() })

		client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v1.0.0"}, nil)
		session, err = client.Connect(context.Background(), clientTransport, nil)
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(func() { _ = session.Close() })
	})

	It("lists the structured output tool", func() {
		tools, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
		Expect(err).ToNot(HaveOccurred())
		Expect(tools.Tools).To(HaveLen(1))
		Expect(tools.Tools[0].Name).To(Equal("structured_output"))
		Expect(tools.Tools[0].InputSchema).ToNot(BeNil())
	})

	It("extracts a record", func() {
		llm.AddDocument(`{"title": "Dune", "year": 1965}`)

		res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
			Name: "structured_output",
			Arguments: map[string]any{
				"input_value": "Dune was published in 1965",
				"schema_name": "Book",
				"output_schema": []map[string]any{
					{"name": "title", "type": "str"},
					{"name": "year", "type": "int"},
				},
			},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(res.IsError).To(BeFalse())
		Expect(res.Content).To(HaveLen(1))
		Expect(res.Content[0].(*mcp.TextContent).Text).To(Equal(`{"title":"Dune","year":1965}`))

		Expect(llm.Inputs).To(Equal([]string{"Dune was published in 1965"}))
		Expect(llm.Configs[0].RunName).To(Equal("mcp"))
	})

	It("returns node errors as tool errors", func() {
		res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
			Name: "structured_output",
			Arguments: map[string]any{
				"input_value":   "Dune",
				"output_schema": []map[string]any{},
			},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(res.IsError).To(BeTrue())
		Expect(res.Content[0].(*mcp.TextContent).Text).To(Equal(ErrEmptySchema.Error()))
		Expect(llm.Calls()).To(BeZero())
	})
})
