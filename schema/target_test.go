package schema_test

import (
	"encoding/json"

	. "github.com/mudler/structura/schema"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sashabaranov/go-openai/jsonschema"
)

func bookRecord() *Record {
	rec, err := BuildFromSpecs([]FieldSpec{
		{Name: "title", Description: "The title", Type: "str"},
		{Name: "year", Description: "Publication year", Type: "int", Multiple: false},
	})
	Expect(err).ToNot(HaveOccurred())
	return rec
}

var _ = Describe("Targets", func() {
	Context("Without multiplicity", func() {
		It("is the record itself", func() {
			rec := bookRecord()
			t, err := NewTarget("", rec, false)
			Expect(err).ToNot(HaveOccurred())
			Expect(t.Envelope()).To(BeFalse())
			Expect(t.Name()).To(Equal(DefaultName))
			Expect(t.Definition()).To(Equal(rec.Definition()))
		})

		It("decodes a matching document", func() {
			t, err := NewTarget("Book", bookRecord(), false)
			Expect(err).ToNot(HaveOccurred())

			inst, err := t.Decode([]byte(`{"title": "Dune", "year": 1965}`))
			Expect(err).ToNot(HaveOccurred())
			Expect(inst.Target()).To(Equal(t))
			Expect(inst.Object().Keys()).To(Equal([]string{"title", "year"}))
			Expect(inst.Object().ToMap()).To(Equal(map[string]any{
				"title": "Dune",
				"year":  int64(1965),
			}))
		})

		It("keeps the declared field order", func() {
			t, err := NewTarget("Book", bookRecord(), false)
			Expect(err).ToNot(HaveOccurred())

			inst, err := t.Decode([]byte(`{"year": 1965, "title": "Dune"}`))
			Expect(err).ToNot(HaveOccurred())
			b, err := json.Marshal(inst.Object())
			Expect(err).ToNot(HaveOccurred())
			Expect(string(b)).To(Equal(`{"title":"Dune","year":1965}`))
		})

		DescribeTable("rejects documents that do not match",
			func(doc string) {
				t, err := NewTarget("Book", bookRecord(), false)
				Expect(err).ToNot(HaveOccurred())
				_, err = t.Decode([]byte(doc))
				Expect(err).To(MatchError(ErrValidation))
			},
			Entry("missing field", `{"title": "Dune"}`),
			Entry("wrong type", `{"title": "Dune", "year": "1965"}`),
			Entry("fractional integer", `{"title": "Dune", "year": 1965.5}`),
			Entry("extra field", `{"title": "Dune", "year": 1965, "isbn": "x"}`),
			Entry("not json", `Dune, 1965`),
			Entry("not an object", `["Dune", 1965]`),
			Entry("integer beyond int64", `{"title": "Dune", "year": 1e20}`),
			Entry("long integer beyond int64", `{"title": "Dune", "year": 100000000000000000000}`),
			Entry("trailing data", `{"title": "Dune", "year": 1965} {"title": "Foundation", "year": 1951}`),
		)
	})

	Context("With multiplicity", func() {
		It("requires a schema name", func() {
			_, err := NewTarget("  ", bookRecord(), true)
			Expect(err).To(MatchError(ErrEmptyName))
		})

		It("wraps the record in an objects list", func() {
			rec := bookRecord()
			t, err := NewTarget("Book", rec, true)
			Expect(err).ToNot(HaveOccurred())
			Expect(t.Description()).To(Equal("A list of Book."))

			def := t.Definition()
			Expect(def.Required).To(Equal([]string{EnvelopeField}))
			Expect(def.Properties).To(HaveLen(1))
			objects := def.Properties[EnvelopeField]
			Expect(objects.Type).To(Equal(jsonschema.Array))
			Expect(objects.Description).To(Equal("A list of Book."))
			Expect(*objects.Items).To(Equal(rec.Definition()))
		})

		It("decodes a list of records", func() {
			t, err := NewTarget("Book", bookRecord(), true)
			Expect(err).ToNot(HaveOccurred())

			inst, err := t.Decode([]byte(`{"objects": [
				{"title": "Dune", "year": 1965},
				{"title": "Foundation", "year": 1951}
			]}`))
			Expect(err).ToNot(HaveOccurred())
			Expect(inst.Object().Keys()).To(Equal([]string{EnvelopeField}))
			Expect(inst.Object().ToMap()).To(Equal(map[string]any{
				"objects": []any{
					map[string]any{"title": "Dune", "year": int64(1965)},
					map[string]any{"title": "Foundation", "year": int64(1951)},
				},
			}))
		})

		It("rejects a bare record", func() {
			t, err := NewTarget("Book", bookRecord(), true)
			Expect(err).ToNot(HaveOccurred())
			_, err = t.Decode([]byte(`{"title": "Dune", "year": 1965}`))
			Expect(err).To(MatchError(ErrValidation))
		})
	})

	Context("Free-form kinds", func() {
		It("normalizes numbers nested in lists and mappings", func() {
			rec, err := BuildFromSpecs([]FieldSpec{
				{Name: "scores", Type: "float", Multiple: true},
				{Name: "tags", Type: "list"},
				{Name: "meta", Type: "dict"},
				{Name: "ok", Type: "bool"},
			})
			Expect(err).ToNot(HaveOccurred())
			t, err := NewTarget("Stats", rec, false)
			Expect(err).ToNot(HaveOccurred())

			inst, err := t.Decode([]byte(`{"scores": [1, 2.5], "tags": ["a", 3], "meta": {"n": 4, "f": 0.5}, "ok": true}`))
			Expect(err).ToNot(HaveOccurred())
			Expect(inst.Object().ToMap()).To(Equal(map[string]any{
				"scores": []any{1.0, 2.5},
				"tags":   []any{"a", int64(3)},
				"meta":   map[string]any{"n": int64(4), "f": 0.5},
				"ok":     true,
			}))
		})

		It("rejects numbers that do not fit a float", func() {
			rec, err := BuildFromSpecs([]FieldSpec{{Name: "meta", Type: "dict"}})
			Expect(err).ToNot(HaveOccurred())
			t, err := NewTarget("Stats", rec, false)
			Expect(err).ToNot(HaveOccurred())

			_, err = t.Decode([]byte(`{"meta": {"huge": 1e400}}`))
			Expect(err).To(MatchError(ErrValidation))
		})

		It("is not strict compatible", func() {
			rec, err := BuildFromSpecs([]FieldSpec{
				{Name: "title", Type: "str"},
				{Name: "meta", Type: "dict"},
			})
			Expect(err).ToNot(HaveOccurred())
			t, err := NewTarget("Stats", rec, true)
			Expect(err).ToNot(HaveOccurred())
			Expect(t.StrictCompatible()).To(BeFalse())

			book, err := NewTarget("Book", bookRecord(), true)
			Expect(err).ToNot(HaveOccurred())
			Expect(book.StrictCompatible()).To(BeTrue())
		})
	})

	It("sanitizes the identifier", func() {
		t, err := NewTarget("My Book/v2", bookRecord(), true)
		Expect(err).ToNot(HaveOccurred())
		Expect(t.Identifier()).To(Equal("My_Book_v2"))
	})
})
