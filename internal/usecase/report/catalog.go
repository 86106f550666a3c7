package report

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog maps a report type to the template file that renders it.
type Catalog map[string]string

// DefaultCatalog covers the documents a loan file needs.
func DefaultCatalog() Catalog {
	return Catalog{
		"loan_application": "loan_application.docx",
		"tamasuk":          "tamasuk.docx",
		"loan_approval":    "loan_approval.docx",
		"debit_authority":  "debit_authority.docx",
		"manjurinama":      "manjurinama.docx",
		"guarantor":        "guarantor.docx",
	}
}

// Types returns the report types in name order.
func (c Catalog) Types() []string {
	out := make([]string, 0, len(c))
	for t := range c {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

type catalogFile struct {
	Reports map[string]string `yaml:"reports"`
}

// LoadCatalog reads a YAML file of the form
//
//	reports:
//	  loan_application: loan_application.docx
//
// An empty path yields the default catalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse report catalog %s: %w", path, err)
	}
	if len(f.Reports) == 0 {
		return nil, fmt.Errorf("report catalog %s lists no reports", path)
	}
	out := make(Catalog, len(f.Reports))
	for t, tmpl := range f.Reports {
		t, tmpl = strings.TrimSpace(t), strings.TrimSpace(tmpl)
		if t == "" || tmpl == "" {
			return nil, fmt.Errorf("report catalog %s: empty report type or template", path)
		}
		out[t] = tmpl
	}
	return out, nil
}
