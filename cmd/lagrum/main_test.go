package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/lagrum"
	"github.com/ava12/lagrum/internal/config"
	"github.com/ava12/lagrum/internal/document"
	"github.com/ava12/lagrum/langdef"
)

type result struct {
	out string
	log string
	err error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("LAGRUM_CONFIG", "")
	var out, log bytes.Buffer
	cmd := newRootCmd(&log)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&log)
	e := cmd.Execute()
	return result{out.String(), log.String(), e}
}

func jsonLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var result []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var record map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record), scanner.Text())
		result = append(result, record)
	}
	return result
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	name = filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(name, content, 0o644))
	return name
}

func requireCode(t *testing.T, code int, e error) {
	t.Helper()
	var le *lagrum.Error
	require.True(t, errors.As(e, &le), "expecting *lagrum.Error, got %v", e)
	assert.Equal(t, code, le.Code, le.Message)
}

func TestSegmentJSON(t *testing.T) {
	r := run(t, "3 § gäller.", "segment", "--rule", "annotated")
	require.NoError(t, r.err)

	records := jsonLines(t, r.out)
	require.Len(t, records, 4)
	var categories, texts []string
	for _, rec := range records {
		assert.Equal(t, "-", rec["document"])
		categories = append(categories, rec["category"].(string))
		texts = append(texts, rec["text"].(string))
	}
	assert.Equal(t, []string{"SectionRef", "whitespace", "word", "punctuation"}, categories)
	assert.Equal(t, "3 § gäller.", strings.Join(texts, ""))
	assert.Equal(t, map[string]any{"number": float64(3)}, records[0]["value"])
}

func TestSegmentTable(t *testing.T) {
	r := run(t, "7 §", "segment", "--table")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "CATEGORY")
	assert.Contains(t, r.out, `"§"`)
	assert.Contains(t, r.out, "1:3")
}

func TestSegmentSummary(t *testing.T) {
	r := run(t, "ett två 3", "segment", "--summary", "--json")
	require.NoError(t, r.err)

	records := jsonLines(t, r.out)
	require.Len(t, records, 1)
	assert.Equal(t, float64(5), records[0]["spans"])
	assert.Equal(t, map[string]any{"word": float64(2), "whitespace": float64(2), "number": float64(1)}, records[0]["categories"])
}

func TestSegmentWarnsAboutOtherSpans(t *testing.T) {
	r := run(t, "\x8f\x8f\x8f a", "segment")
	require.NoError(t, r.err)
	assert.Contains(t, r.log, "level=WARN")
	assert.Contains(t, r.log, "document=-")

	r = run(t, "\x8f\x8f\x8f a", "segment", "--other-threshold", "0.9")
	require.NoError(t, r.err)
	assert.NotContains(t, r.log, "level=WARN")
}

func TestSegmentFilesWithEncoding(t *testing.T) {
	first := writeFile(t, "first.txt", []byte{'3', 0x96, '5', ' ', 0xa7, 0xa7})
	second := writeFile(t, "second.txt", []byte("1 januari 1995"))
	r := run(t, "", "segment", "--encoding", "windows-1252", "--rule", "annotated", "--workers", "2", first, second)
	require.NoError(t, r.err)

	records := jsonLines(t, r.out)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0]["document"])
	assert.Equal(t, "SectionRange", records[0]["category"])
	assert.Equal(t, second, records[1]["document"])
	assert.Equal(t, "TextualDate", records[1]["category"])
}

func TestWorkers(t *testing.T) {
	r := run(t, "3 §", "segment", "--workers", "0")
	require.NoError(t, r.err)
	assert.Len(t, jsonLines(t, r.out), 3)

	r = run(t, "3 §", "segment", "--workers", "-1")
	requireCode(t, config.ValueError, r.err)
}

func TestTraceLogsMatchingStats(t *testing.T) {
	r := run(t, "3 § gäller.", "segment", "--trace")
	require.NoError(t, r.err)
	assert.Contains(t, r.log, "level=TRACE")
	assert.Contains(t, r.log, `msg="matching stats"`)
	assert.Contains(t, r.log, "evaluations=")
	assert.Contains(t, r.log, "memo_entries=")

	r = run(t, "3 § gäller.", "extract", "--rule", "SectionRef", "--trace")
	require.NoError(t, r.err)
	assert.Contains(t, r.log, `msg="matching stats"`)

	r = run(t, "3 § gäller.", "segment", "--debug")
	require.NoError(t, r.err)
	assert.NotContains(t, r.log, "matching stats")
}

func TestUnknownEncoding(t *testing.T) {
	r := run(t, "x", "segment", "--encoding", "koi8-r")
	requireCode(t, document.UnknownEncodingError, r.err)
}

func TestExtract(t *testing.T) {
	name := writeFile(t, "lag.txt", []byte("Lag 1994-01-01 och 1994-13-01."))
	r := run(t, "", "extract", "--rule", "ISODate", name)
	require.NoError(t, r.err)

	records := jsonLines(t, r.out)
	require.Len(t, records, 1)
	assert.Equal(t, "ISODate", records[0]["rule"])
	assert.Equal(t, "1994-01-01", records[0]["text"])
	assert.Equal(t, map[string]any{"year": float64(1994), "month": float64(1), "day": float64(1)}, records[0]["value"])
}

func TestExtractRequiresRule(t *testing.T) {
	r := run(t, "3 §", "extract")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "--rule")

	r = run(t, "3 §", "extract", "--rule", "Missing")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "Missing")
}

func TestGrammar(t *testing.T) {
	r := run(t, "", "grammar")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.out, "token "), r.out)
	assert.Contains(t, r.out, "ISODate")

	r = run(t, "", "grammar", "--json")
	require.NoError(t, r.err)
	var g map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.out), &g))
	assert.Equal(t, "token", g["start"])

	r = run(t, "", "grammar", "--source")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "# Swedish statute text")
}

func TestGrammarFile(t *testing.T) {
	name := writeFile(t, "valid.peg", []byte("s ::= a?\na ::= \"x\"\n"))
	r := run(t, "", "grammar", name)
	require.NoError(t, r.err)
	assert.Equal(t, "s ::= a?\na ::= \"x\"\n# rules matching empty text: s\n", r.out)

	name = writeFile(t, "invalid.peg", []byte("s ::= a, b\n"))
	r = run(t, "", "grammar", name)
	requireCode(t, langdef.UndefinedRuleError, r.err)

	r = run(t, "x", "segment", "--grammar", name)
	requireCode(t, langdef.UndefinedRuleError, r.err)
}

func TestClasses(t *testing.T) {
	r := run(t, "", "classes", "a§\x8f–")
	require.NoError(t, r.err)

	records := jsonLines(t, r.out)
	require.Len(t, records, 4)
	var categories []string
	for _, rec := range records {
		categories = append(categories, rec["category"].(string))
	}
	assert.Equal(t, []string{"word", "punctuation", "other", "punctuation"}, categories)
	assert.Equal(t, "U+2013", records[3]["codepoint"])
	assert.NotEmpty(t, records[3]["note"])

	r = run(t, "", "classes", "--table")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "section sign")
}

func TestEnv(t *testing.T) {
	t.Setenv("LAGRUM_WORKERS", "3")
	r := run(t, "", "env", "--json")
	require.NoError(t, r.err)

	var values map[string]string
	require.NoError(t, json.Unmarshal([]byte(r.out), &values))
	assert.Equal(t, "3", values["LAGRUM_WORKERS"])
	assert.Equal(t, "utf-8", values["LAGRUM_ENCODING"])
}

func TestConfigFile(t *testing.T) {
	name := writeFile(t, "lagrum.yaml", []byte("rule: annotated\nencoding: bogus\n"))
	r := run(t, "3 §", "segment", "--config", name)
	requireCode(t, document.UnknownEncodingError, r.err)

	r = run(t, "3 §", "segment", "--config", name, "--encoding", "utf-8")
	require.NoError(t, r.err)
	records := jsonLines(t, r.out)
	require.Len(t, records, 1)
	assert.Equal(t, "SectionRef", records[0]["category"])
}
