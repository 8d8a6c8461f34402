package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/modelgrid/internal/config"
	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/fsutil"
)

const fileExtension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges their blocks
// into one model. Paths that do not exist are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.decodeInto(ctx, model, hclFile.Body, file); err != nil {
			return nil, nil, err
		}
	}

	logger.Debug("HCL loading complete.", "types", len(model.Types), "collections", len(model.Collections), "rules", len(model.Rules))
	return model, NewConverter(), nil
}

// LoadBytes parses a single in-memory file. It is used by tests and by
// callers that embed model sources.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	model := &config.Model{}
	if err := l.decodeInto(ctx, model, hclFile.Body, filename); err != nil {
		return nil, err
	}
	return model, nil
}

func (l *Loader) decodeInto(ctx context.Context, model *config.Model, body hcl.Body, file string) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	for _, block := range root.Interfaces {
		def, err := l.translateType(ctx, block, true, file)
		if err != nil {
			return err
		}
		model.Types = append(model.Types, def)
	}
	for _, block := range root.Types {
		def, err := l.translateType(ctx, block, false, file)
		if err != nil {
			return err
		}
		model.Types = append(model.Types, def)
	}
	for _, block := range root.Collections {
		def, err := l.translateCollection(block, file)
		if err != nil {
			return err
		}
		model.Collections = append(model.Collections, def)
	}
	for _, block := range root.Rules {
		def, err := l.translateRule(ctx, block, file)
		if err != nil {
			return err
		}
		model.Rules = append(model.Rules, def)
	}
	return nil
}

// findAllHCLFiles walks all given paths and returns a flat, de-duplicated
// list of the .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == fileExtension {
				add(path)
			}
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, fileExtension)
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	return allFiles, nil
}
