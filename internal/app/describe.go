package app

import (
	"context"
	"fmt"
	"strings"
)

// describe prints the extracted property schema of typeName.
func (a *App) describe(ctx context.Context, typeName string) error {
	ps, err := a.schemas.SchemaFor(ctx, typeName)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Type %s\n", ps.TypeName())
	fmt.Fprintln(&b, "Properties:")
	for _, name := range ps.PropertyNames() {
		pd, _ := ps.Property(name)
		access := "read-write"
		switch {
		case !pd.Writable():
			access = "read-only"
		case !pd.Readable():
			access = "write-only"
		}
		fmt.Fprintf(&b, "  %s: %s (%s)\n", name, pd.ValueType(), access)
		for _, m := range pd.Getters {
			fmt.Fprintf(&b, "    get %s\n", m)
		}
		for _, m := range pd.Setters {
			fmt.Fprintf(&b, "    set %s\n", m)
		}
	}
	fmt.Fprintln(&b, "Methods:")
	for _, m := range ps.InstanceMethods() {
		fmt.Fprintf(&b, "  %s\n", m)
	}
	_, err = fmt.Fprint(a.outW, b.String())
	return err
}
