// Package datamodel holds the normalized schema produced by introspection and
// renders it as PSL-style model blocks.
package datamodel

import (
	"fmt"
	"strings"
)

// Datamodel is the normalized result of introspecting one schema or database.
type Datamodel struct {
	Models []Model
}

// Model is one table or collection.
type Model struct {
	Name   string
	Fields []Field
}

// Field is one column or inferred document field.
type Field struct {
	Name     string
	Type     string
	Optional bool
	IsID     bool
}

// Scalar type names used by the connectors' type mappers.
const (
	TypeString   = "String"
	TypeInt      = "Int"
	TypeFloat    = "Float"
	TypeBoolean  = "Boolean"
	TypeDateTime = "DateTime"
	TypeJSON     = "Json"
	TypeBytes    = "Bytes"
)

// Render emits the datamodel as model blocks, one per table, with aligned
// field types.
func (d *Datamodel) Render() string {
	var b strings.Builder
	for i, model := range d.Models {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(model.render())
	}
	return b.String()
}

func (m *Model) render() string {
	width := 0
	for _, f := range m.Fields {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "model %s {\n", m.Name)
	for _, f := range m.Fields {
		typ := f.Type
		if f.Optional {
			typ += "?"
		}
		fmt.Fprintf(&b, "  %-*s %s", width, f.Name, typ)
		if f.IsID {
			b.WriteString(" @id")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}
