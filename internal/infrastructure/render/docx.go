// Package render fills placeholders inside .docx templates.
//
// Templates are ordinary Word documents whose text contains placeholders such
// as {{ member_name }} or {{.member_name}}. Loops use text/template syntax:
// {{range .properties}}{{.owner_name}}{{end}}. Word often splits typed text
// into several runs (spell-check marks, revisions, formatting changes); such
// placeholders are joined back into the run where they start before parsing.
package render

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"coop-loan-backend/pkg/apperr"
)

var ErrTemplateNotFound = apperr.New(apperr.KindRender, "document template not found")

// Docx renders templates stored under a directory.
type Docx struct {
	dir string
}

func NewDocx(dir string) *Docx { return &Docx{dir: dir} }

// parts of the package that carry user-visible text
var reTextPart = regexp.MustCompile(`^word/(document|header\d*|footer\d*|footnotes|endnotes)\.xml$`)

// bare identifiers: {{ member_name }} -> {{.member_name}}
var reBareIdent = regexp.MustCompile(`\{\{-?\s*([A-Za-z_][A-Za-z0-9_]*)\s*-?\}\}`)

// markup Word leaves between the two braces of a split delimiter
var (
	reSplitOpen  = regexp.MustCompile(`\{(?:<[^>]*>)+\{`)
	reSplitClose = regexp.MustCompile(`\}(?:<[^>]*>)+\}`)
	reTag        = regexp.MustCompile(`<[^>]*>`)
)

var keywords = map[string]bool{
	"end": true, "else": true, "range": true, "if": true, "with": true,
	"break": true, "continue": true, "nil": true, "true": true, "false": true,
}

// Render fills the named template with data and returns the new document.
// Missing keys fail the render instead of leaving blanks behind.
func (d *Docx) Render(ctx context.Context, templateName string, data map[string]any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(d.dir, templateName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
		}
		return nil, apperr.Wrap(apperr.KindRender, "read template "+templateName, err)
	}
	out, err := RenderBytes(raw, data)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRender, "render "+templateName, err)
	}
	return out, nil
}

// RenderBytes renders an in-memory .docx package.
func RenderBytes(docx []byte, data map[string]any) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	escaped, _ := escapeValue(data).(map[string]any)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		if !reTextPart.MatchString(f.Name) {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}
		content, err := readZipFile(f)
		if err != nil {
			return nil, err
		}
		filled, err := fill(f.Name, content, escaped)
		if err != nil {
			return nil, err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: f.Modified})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(filled); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// joinSplitActions removes the markup inside every {{ ... }} so each action
// ends up as plain text in its first run. The removed tags close and reopen
// runs, so the surrounding XML stays balanced.
func joinSplitActions(src string) string {
	src = reSplitOpen.ReplaceAllString(src, "{{")
	src = reSplitClose.ReplaceAllString(src, "}}")

	var b strings.Builder
	for {
		open := strings.Index(src, "{{")
		if open < 0 {
			break
		}
		end := strings.Index(src[open+2:], "}}")
		if end < 0 {
			break
		}
		end += open + 2
		b.WriteString(src[:open])
		b.WriteString(reTag.ReplaceAllString(src[open:end], ""))
		b.WriteString("}}")
		src = src[end+2:]
	}
	b.WriteString(src)
	return b.String()
}

func fill(name string, content []byte, data map[string]any) ([]byte, error) {
	src := reBareIdent.ReplaceAllStringFunc(joinSplitActions(string(content)), func(m string) string {
		id := reBareIdent.FindStringSubmatch(m)[1]
		if keywords[id] {
			return m
		}
		return "{{." + id + "}}"
	})
	tpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	var out bytes.Buffer
	if err := tpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("fill %s: %w", name, err)
	}
	return out.Bytes(), nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// escapeValue XML-escapes every string reachable from v.
func escapeValue(v any) any {
	switch t := v.(type) {
	case string:
		var b strings.Builder
		_ = xml.EscapeText(&b, []byte(t))
		return b.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = escapeValue(val)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, m := range t {
			out[i], _ = escapeValue(m).(map[string]any)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = escapeValue(val)
		}
		return out
	default:
		return v
	}
}
