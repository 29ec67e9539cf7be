package fields

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chehxing/docx-to-excel/internal/docx"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func sampleDocument() *docx.Document {
	return &docx.Document{
		Paragraphs: []docx.Paragraph{
			{Text: "Annual Report", Style: "Title"},
			{Text: " Intro ", Style: "Heading 2"},
			{Text: "Invoice No: AB-123", Style: "Normal"},
			{Text: "Scope", Style: "Heading 2"},
			{Text: "Total: 450 USD", Style: "Normal"},
			{Text: "Applicant: Acme Corp ", Style: "Normal"},
			{Text: "Appendix", Style: "Heading 1"},
		},
		Tables: []docx.Table{
			{Rows: [][]string{{"Name", "Qty"}, {"apple", " 3 "}}, Columns: 2},
			{Rows: [][]string{{"only"}, {"a", "b", "c"}}, Columns: 3},
		},
	}
}

func TestEngineExtract(t *testing.T) {
	doc := sampleDocument()

	t.Run("Should produce one entry per rule in declared order", func(t *testing.T) {
		rules := []Rule{
			NewRule("scope", "", HeadingLocator{Location: "Heading2[1]"}),
			NewRule("qty", "0", CellLocator{Table: 0, Row: 1, Column: 1}),
			NewRule("invoice", "", PatternLocator{Pattern: `invoice no:\s*(\S+)`}),
			NewRule("missing", "n/a", PatternLocator{Pattern: `nothing here`}),
		}
		res := NewEngine(quietLogger()).Extract(doc, rules)

		assert.Equal(t, []string{"scope", "qty", "invoice", "missing"}, res.Names())
		assertValue(t, res, "scope", "Scope")
		assertValue(t, res, "qty", "3")
		assertValue(t, res, "invoice", "AB-123")
		assertValue(t, res, "missing", "n/a")
	})

	t.Run("Should record the default for an unknown kind and keep going", func(t *testing.T) {
		logger, logs := captureLogger()
		rules := []Rule{
			NewRule("first", "", HeadingLocator{Location: "Heading2[0]"}),
			{Name: "weird", Kind: "checkbox", Default: "fallback"},
			NewRule("last", "", CellLocator{Table: 0, Row: 0, Column: 0}),
		}
		res := NewEngine(logger).Extract(doc, rules)

		require.Equal(t, 3, res.Len())
		assertValue(t, res, "first", "Intro")
		assertValue(t, res, "weird", "fallback")
		assertValue(t, res, "last", "Name")
		assert.Contains(t, logs.String(), "unknown field type")
		assert.Contains(t, logs.String(), "RULE_RESOLUTION")
	})

	t.Run("Should skip rules with an empty name", func(t *testing.T) {
		rules := []Rule{
			NewRule("", "x", CellLocator{}),
			NewRule("a", "", CellLocator{}),
		}
		res := NewEngine(quietLogger()).Extract(doc, rules)
		assert.Equal(t, []string{"a"}, res.Names())
	})

	t.Run("Should let a later duplicate win while keeping the first position", func(t *testing.T) {
		rules := []Rule{
			NewRule("dup", "", CellLocator{Table: 0, Row: 0, Column: 0}),
			NewRule("other", "", CellLocator{Table: 0, Row: 0, Column: 1}),
			NewRule("dup", "", CellLocator{Table: 0, Row: 1, Column: 0}),
		}
		res := NewEngine(quietLogger()).Extract(doc, rules)

		assert.Equal(t, []string{"dup", "other"}, res.Names())
		assertValue(t, res, "dup", "apple")
	})

	t.Run("Should be idempotent for the same snapshot and rules", func(t *testing.T) {
		rules := []Rule{
			NewRule("b", "", PatternLocator{Pattern: `total:\s*(\d+)`}),
			NewRule("a", "", HeadingLocator{Pattern: `Applicant:\s*(.+)`}),
			NewRule("c", "d", CellLocator{Table: 9}),
		}
		engine := NewEngine(quietLogger())
		first, err := json.Marshal(engine.Extract(doc, rules))
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := json.Marshal(engine.Extract(doc, rules))
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
		assert.JSONEq(t, `{"b":"450","a":"Acme Corp","c":"d"}`, string(first))
	})

	t.Run("Should contain a strategy panic to the rule", func(t *testing.T) {
		logger, logs := captureLogger()
		rules := []Rule{
			NewRule("boom", "safe", CellLocator{}),
			NewRule("also", "fine", PatternLocator{Pattern: "x"}),
		}
		res := NewEngine(logger).Extract(nil, rules)

		assertValue(t, res, "boom", "safe")
		assertValue(t, res, "also", "fine")
		assert.Contains(t, logs.String(), "reason=panic")
	})

	t.Run("Should warn about an invalid pattern but not about a plain miss", func(t *testing.T) {
		logger, logs := captureLogger()
		res := NewEngine(logger).Extract(doc, []Rule{
			NewRule("bad", "d1", PatternLocator{Pattern: `(unclosed`}),
			NewRule("miss", "d2", PatternLocator{Pattern: `absent`}),
		})

		assertValue(t, res, "bad", "d1")
		assertValue(t, res, "miss", "d2")
		assert.Contains(t, logs.String(), "level=WARN msg=\"field extraction failed, using default\" field=bad")
		assert.Contains(t, logs.String(), "reason=invalid_pattern")
		assert.Contains(t, logs.String(), "level=DEBUG msg=fields.rule.default field=miss")
		assert.Contains(t, logs.String(), "reason=no_match")
	})

	t.Run("Should treat a runaway pattern as a failure", func(t *testing.T) {
		slow := &docx.Document{Paragraphs: []docx.Paragraph{{Text: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa!"}}}
		engine := NewEngine(quietLogger(), WithPatternTimeout(10*time.Millisecond))
		res := engine.Extract(slow, []Rule{NewRule("slow", "gave up", PatternLocator{Pattern: `^(a+)+$`})})
		assertValue(t, res, "slow", "gave up")
	})
}

func TestResult(t *testing.T) {
	r := NewResult(0)
	assert.False(t, r.Set("b", "1"))
	assert.False(t, r.Set("a", "2"))
	assert.True(t, r.Set("b", "3"))

	var seen []string
	r.Each(func(name, value string) { seen = append(seen, name+"="+value) })
	assert.Equal(t, []string{"b=3", "a=2"}, seen)

	names := r.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"b", "a"}, r.Names())

	_, ok := r.Get("zzz")
	assert.False(t, ok)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"3","a":"2"}`, string(out))

	empty, err := json.Marshal(NewResult(0))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func assertValue(t *testing.T, res *Result, name, want string) {
	t.Helper()
	got, ok := res.Get(name)
	require.True(t, ok, "field %q missing", name)
	assert.Equal(t, want, got, "field %q", name)
}
