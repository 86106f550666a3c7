package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coop-loan-backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	b, err := BuildDocx(lines...)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), b, 0o644))
}

func TestDocx_Render_FillsPlaceholders(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "loan_application.docx",
		"Member: {{ member_name }} ({{.member_number}})",
		"Loan: {{ loan_type }} {{ loan_amount }}",
	)

	out, err := NewDocx(dir).Render(context.Background(), "loan_application.docx", map[string]any{
		"member_name":   "Sita & Ram",
		"member_number": "000000123",
		"loan_type":     "Kharkhacho",
		"loan_amount":   "50000",
	})
	require.NoError(t, err)

	text, err := DocumentText(out)
	require.NoError(t, err)
	assert.Contains(t, text, "Member: Sita &amp; Ram (000000123)")
	assert.Contains(t, text, "Loan: Kharkhacho 50000")
}

func TestDocx_Render_Loops(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "project.docx",
		"{{range .project_details}}[{{.project_name}}={{.total_cost}}]{{end}}",
	)
	out, err := NewDocx(dir).Render(context.Background(), "project.docx", map[string]any{
		"project_details": []map[string]any{
			{"project_name": "Goats", "total_cost": "5000"},
			{"project_name": "Shop <1>", "total_cost": "12000"},
		},
	})
	require.NoError(t, err)
	text, _ := DocumentText(out)
	assert.Equal(t, "[Goats=5000][Shop &lt;1&gt;=12000]", text)
}

func TestDocx_Render_PlaceholderSplitAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "loan_application.docx",
		// spell-check mark and bold run inside the placeholder
		`Member: {{</w:t></w:r><w:proofErr w:type="spellStart"/><w:r><w:rPr><w:b/></w:rPr><w:t>member_name</w:t></w:r><w:proofErr w:type="spellEnd"/><w:r><w:t>}} ok`,
		// braces themselves split between runs
		`Loan: {</w:t></w:r><w:r><w:t>{ loan_type }</w:t></w:r><w:r><w:t xml:space="preserve">}`,
	)

	out, err := NewDocx(dir).Render(context.Background(), "loan_application.docx", map[string]any{
		"member_name": "Ram",
		"loan_type":   "Kharkhacho",
	})
	require.NoError(t, err)
	text, err := DocumentText(out)
	require.NoError(t, err)
	assert.Equal(t, "Member: Ram ok\nLoan: Kharkhacho", text)
}

func TestJoinSplitActions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"untouched", `<w:t>{{ a }} and {{ b }}</w:t>`, `<w:t>{{ a }} and {{ b }}</w:t>`},
		{"split body", `<w:t>{{ a</w:t></w:r><w:r><w:t>b }}</w:t>`, `<w:t>{{ ab }}</w:t>`},
		{"split open", `<w:t>{</w:t></w:r><w:r><w:t>{a}}</w:t>`, `<w:t>{{a}}</w:t>`},
		{"split close", `<w:t>{{a}</w:t></w:r><w:r><w:t>}</w:t>`, `<w:t>{{a}}</w:t>`},
		{"markup outside actions kept", `<w:t>x</w:t></w:r><w:r><w:t>{{a}}</w:t>`, `<w:t>x</w:t></w:r><w:r><w:t>{{a}}</w:t>`},
		{"unclosed left alone", `<w:t>{{ a</w:t>`, `<w:t>{{ a</w:t>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinSplitActions(tt.in))
		})
	}
}

func TestDocx_Render_MissingKeyIsRenderError(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "tamasuk.docx", "{{ approved_by }}")

	_, err := NewDocx(dir).Render(context.Background(), "tamasuk.docx", map[string]any{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindRender, apperr.KindOf(err))
}

func TestDocx_Render_TemplateNotFound(t *testing.T) {
	_, err := NewDocx(t.TempDir()).Render(context.Background(), "nope.docx", nil)
	assert.True(t, errors.Is(err, ErrTemplateNotFound), "got %v", err)
	assert.Equal(t, apperr.KindRender, apperr.KindOf(err))
}

func TestDocx_Render_CorruptTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.docx"), []byte("not a zip"), 0o644))
	_, err := NewDocx(dir).Render(context.Background(), "bad.docx", nil)
	assert.Equal(t, apperr.KindRender, apperr.KindOf(err))
}

func TestDocx_Render_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDocx(t.TempDir()).Render(ctx, "x.docx", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFill_KeepsKeywords(t *testing.T) {
	out, err := fill("word/document.xml", []byte("{{range .xs}}{{ . }}{{ end }}"), map[string]any{"xs": []any{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "ab", string(out))
}

func TestEscapeValue(t *testing.T) {
	in := map[string]any{
		"s":    "<a>",
		"n":    42,
		"list": []map[string]any{{"x": "&"}},
	}
	got := escapeValue(in).(map[string]any)
	assert.Equal(t, "&lt;a&gt;", got["s"])
	assert.Equal(t, 42, got["n"])
	assert.Equal(t, "&amp;", got["list"].([]map[string]any)[0]["x"])
	assert.Equal(t, "<a>", in["s"], "input must not be mutated")
	assert.False(t, strings.Contains(got["s"].(string), "<"))
}
