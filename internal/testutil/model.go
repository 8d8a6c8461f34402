package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ComponentModel declares a small library of components: a Component type
// with a defaulted size, a Library subtype, and a collection that one rule
// fills.
const ComponentModel = `
interface "Named" {
  method "getName" { returns = string }
}

type "Component" {
  implements = ["Named"]
  field "name" { type = string }
  field "size" {
    type    = number
    default = 1
  }
}

type "Library" {
  extends = "Component"
  field "shared" { type = bool }
}

collection "build.components" {
  element = Component
}

rule "addCore" {
  target = "build.components"
  append {
    name = "core"
  }
  append {
    name = "util"
    size = 3
  }
}
`

// WriteModel writes each file under a fresh temporary directory and returns
// the directory.
func WriteModel(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}
