package schema_test

import (
	. "github.com/mudler/structura/schema"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sashabaranov/go-openai/jsonschema"
)

var _ = Describe("Schema builder", func() {
	Context("Kinds", func() {
		DescribeTable("parses declared types",
			func(in string, want Kind) {
				k, err := ParseKind(in)
				Expect(err).ToNot(HaveOccurred())
				Expect(k).To(Equal(want))
			},
			Entry("str", "str", KindString),
			Entry("text", "Text", KindString),
			Entry("int", "int", KindInteger),
			Entry("integer", " integer ", KindInteger),
			Entry("float", "float", KindFloat),
			Entry("number", "number", KindFloat),
			Entry("bool", "bool", KindBoolean),
			Entry("boolean", "BOOLEAN", KindBoolean),
			Entry("list", "list", KindList),
			Entry("dict", "dict", KindMapping),
			Entry("object", "object", KindMapping),
		)

		It("fails on unknown types", func() {
			_, err := ParseKind("datetime")
			Expect(err).To(MatchError(ErrUnsupportedType))
			Expect(err.Error()).To(ContainSubstring("datetime"))
		})

		It("round-trips through text", func() {
			var k Kind
			Expect(k.UnmarshalText([]byte("float"))).To(Succeed())
			Expect(k).To(Equal(KindFloat))
			b, err := k.MarshalText()
			Expect(err).ToNot(HaveOccurred())
			Expect(string(b)).To(Equal("float"))
		})
	})

	Context("Fields", func() {
		It("parses rows in order", func() {
			fields, err := ParseFields([]FieldSpec{
				{Name: "title", Description: "The title", Type: "str"},
				{Name: "tags", Type: "str", Multiple: true},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(fields).To(Equal([]Field{
				{Name: "title", Description: "The title", Kind: KindString},
				{Name: "tags", Kind: KindString, Multiple: true},
			}))
		})

		It("rejects names that are not identifiers", func() {
			_, err := ParseFields([]FieldSpec{{Name: "first name", Type: "str"}})
			Expect(err).To(MatchError(ErrInvalidFieldName))

			_, err = ParseFields([]FieldSpec{{Name: "1st", Type: "str"}})
			Expect(err).To(MatchError(ErrInvalidFieldName))
		})

		It("names the field with an unsupported type", func() {
			_, err := ParseFields([]FieldSpec{{Name: "when", Type: "date"}})
			Expect(err).To(MatchError(ErrUnsupportedType))
			Expect(err.Error()).To(ContainSubstring(`"when"`))
		})

		It("describes repeated fields as arrays", func() {
			def := Field{Name: "years", Description: "Years", Kind: KindInteger, Multiple: true}.Definition()
			Expect(def.Type).To(Equal(jsonschema.Array))
			Expect(def.Description).To(Equal("Years"))
			Expect(def.Items).ToNot(BeNil())
			Expect(def.Items.Type).To(Equal(jsonschema.Integer))
		})
	})

	Context("Records", func() {
		It("builds an object definition with every field required", func() {
			rec, err := BuildFromSpecs([]FieldSpec{
				{Name: "title", Description: "Book title", Type: "str"},
				{Name: "year", Type: "int"},
				{Name: "meta", Type: "dict"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Names()).To(Equal([]string{"title", "year", "meta"}))

			def := rec.Definition()
			Expect(def.Type).To(Equal(jsonschema.Object))
			Expect(def.Required).To(Equal([]string{"title", "year", "meta"}))
			Expect(def.AdditionalProperties).To(Equal(false))
			Expect(def.Properties).To(HaveKey("title"))
			Expect(def.Properties["title"].Description).To(Equal("Book title"))
			Expect(def.Properties["year"].Type).To(Equal(jsonschema.Integer))
			Expect(def.Properties["meta"].Type).To(Equal(jsonschema.Object))
		})

		It("rejects duplicate names", func() {
			_, err := Build([]Field{
				{Name: "title", Kind: KindString},
				{Name: "title", Kind: KindInteger},
			})
			Expect(err).To(MatchError(ErrDuplicateField))
		})

		It("rejects empty field lists", func() {
			_, err := Build(nil)
			Expect(err).To(MatchError(ErrNoFields))
		})

		It("rejects kinds outside the known set", func() {
			_, err := Build([]Field{{Name: "x", Kind: Kind(42)}})
			Expect(err).To(MatchError(ErrUnsupportedType))
		})

		It("does not share state with the caller", func() {
			fields := []Field{{Name: "title", Kind: KindString}}
			rec, err := Build(fields)
			Expect(err).ToNot(HaveOccurred())
			fields[0].Name = "changed"
			Expect(rec.Names()).To(Equal([]string{"title"}))
		})
	})
})
