package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/specialistvlad/modelgrid/internal/executor"
	"gopkg.in/yaml.v3"
)

// Report is the final state of the model after rule execution.
type Report struct {
	Rules       []RuleReport       `json:"rules" yaml:"rules"`
	Collections []CollectionReport `json:"collections" yaml:"collections"`
}

type RuleReport struct {
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

type CollectionReport struct {
	Path        string          `json:"path" yaml:"path"`
	ElementType string          `json:"element_type" yaml:"element_type"`
	Elements    []ElementReport `json:"elements" yaml:"elements"`
}

type ElementReport struct {
	Path       string         `json:"path" yaml:"path"`
	Type       string         `json:"type" yaml:"type"`
	CreatedBy  string         `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

func (a *App) buildReport(ctx context.Context, outcomes []executor.Outcome) (*Report, error) {
	r := &Report{Rules: make([]RuleReport, 0, len(outcomes)), Collections: []CollectionReport{}}
	for _, o := range outcomes {
		rr := RuleReport{Name: o.Rule, Status: o.Status.String()}
		if o.Err != nil {
			rr.Error = o.Err.Error()
		}
		r.Rules = append(r.Rules, rr)
	}

	for _, host := range a.graph.AllNodes(ctx) {
		if !host.IsCollection() {
			continue
		}
		cr := CollectionReport{Path: host.ID(), ElementType: host.ElementType.String(), Elements: []ElementReport{}}
		children, err := a.graph.Children(ctx, host.Address())
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			props, err := a.graph.Properties(ctx, child.Address())
			if err != nil {
				return nil, err
			}
			er := ElementReport{Path: child.ID(), Type: child.Type.String(), CreatedBy: child.CreatedBy, Properties: make(map[string]any, len(props))}
			for name, val := range props {
				native, err := a.converter.ToNative(val)
				if err != nil {
					return nil, fmt.Errorf("property '%s' of %s: %w", name, child.ID(), err)
				}
				er.Properties[name] = normalize(native)
			}
			cr.Elements = append(cr.Elements, er)
		}
		r.Collections = append(r.Collections, cr)
	}
	return r, nil
}

// normalize replaces json.Number with int64 or float64 so the YAML and
// text encoders render numbers rather than strings.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}

func writeReport(w io.Writer, format string, r *Report) error {
	switch format {
	case ReportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case ReportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeTextReport(w, r)
	}
}

func writeTextReport(w io.Writer, r *Report) error {
	var b strings.Builder
	for _, c := range r.Collections {
		fmt.Fprintf(&b, "%s (%s): %d element(s)\n", c.Path, c.ElementType, len(c.Elements))
		for _, e := range c.Elements {
			fmt.Fprintf(&b, "  %s %s\n", e.Path, e.Type)
			names := make([]string, 0, len(e.Properties))
			for name := range e.Properties {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(&b, "    %s = %s\n", name, renderText(e.Properties[name]))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderText(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(raw)
	}
}
