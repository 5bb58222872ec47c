// Package scaffold generates new extension skeletons from embedded templates.
// It powers the "new" command, producing a manifest, an extend file, and the
// conventional migrations and assets directories, then validating the
// generated manifest before reporting the result.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/miquelnez/extman/internal/manifest"
)

//go:embed templates
var templatesFS embed.FS

// Data holds the template variables available to skeleton templates.
type Data struct {
	Name        string // full package name, e.g. "acme/widget"
	Title       string // human-readable title
	Description string
	Version     string
	Year        int
}

// Result describes a generated skeleton.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewData derives template data from a package name. The title, when not
// given, is the package part of the name in title case.
func NewData(name, title, description string) (*Data, error) {
	vendor, pkg, ok := strings.Cut(name, "/")
	if !ok || vendor == "" || pkg == "" {
		return nil, fmt.Errorf("extension name %q must be of the form vendor/package", name)
	}
	if title == "" {
		title = cases.Title(language.Und).String(strings.ReplaceAll(pkg, "-", " "))
	}
	if description == "" {
		description = fmt.Sprintf("The %s extension.", title)
	}
	return &Data{
		Name:        name,
		Title:       title,
		Description: description,
		Version:     "0.1.0",
		Year:        time.Now().Year(),
	}, nil
}

// Generate writes a new extension skeleton into outputDir, which must be
// empty or absent. The generated manifest is validated; schema issues become
// warnings rather than errors so the author sees the skeleton either way.
func Generate(fsys afero.Fs, data *Data, outputDir string) (*Result, error) {
	if entries, err := afero.ReadDir(fsys, outputDir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty", outputDir)
	}
	if err := fsys.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{OutputDir: outputDir}

	entries, err := fs.ReadDir(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("reading embedded templates: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		raw, err := fs.ReadFile(templatesFS, "templates/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", entry.Name(), err)
		}

		tmpl, err := template.New(entry.Name()).Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(outputDir, outName)
		if err := afero.WriteFile(fsys, outPath, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, outName)
	}

	// Conventional directories, empty until the author fills them.
	for _, dir := range []string{"migrations", "assets"} {
		if err := fsys.MkdirAll(filepath.Join(outputDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s directory: %w", dir, err)
		}
		result.Files = append(result.Files, dir+string(filepath.Separator))
	}

	manifestPath := filepath.Join(outputDir, "extension.json")
	validation, err := manifest.ValidateFile(fsys, manifestPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not validate manifest: %v", err))
		return result, nil
	}
	if !validation.Valid {
		for _, issue := range validation.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			result.Warnings = append(result.Warnings, msg)
		}
	}

	return result, nil
}
