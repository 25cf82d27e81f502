// Package project creates project notes in a vault.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dir is the vault folder project notes are written to.
const Dir = "Projects"

var (
	ErrInvalidProject = errors.New("invalid project")
	ErrProjectExists  = errors.New("project already exists")
)

// Characters the note application does not allow in file names.
const forbidden = `*"\/<>:|?`

var titleCaser = cases.Title(language.English, cases.NoLower)

// Project is the front matter of a project note.
type Project struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Created     time.Time `yaml:"created"`
}

// Title returns the display title for a project name.
func Title(name string) string {
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}

// Validate checks that the name is usable as a note title.
func (p Project) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProject)
	}
	if i := strings.IndexAny(name, forbidden); i >= 0 {
		return fmt.Errorf("%w: name cannot contain %q", ErrInvalidProject, name[i])
	}
	return nil
}

// Path returns where the note for name lives in vault.
func Path(vault, name string) string {
	return filepath.Join(vault, Dir, Title(name)+".md")
}

// Create writes a new project note and returns its path. ID and Created
// are filled in when empty. An existing note is never overwritten.
func Create(vault string, p Project) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Created.IsZero() {
		p.Created = time.Now().UTC().Truncate(time.Second)
	}

	path := Path(vault, p.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", Dir, err)
	}

	data, err := render(p)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrProjectExists, filepath.Base(path))
		}
		return "", fmt.Errorf("creating project note: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("writing project note: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing project note: %w", err)
	}
	return path, nil
}

// Load reads the front matter of a project note.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project %s: %w", path, err)
	}
	front, ok := frontMatter(data)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no front matter", ErrInvalidProject, path)
	}
	var p Project
	if err := yaml.Unmarshal(front, &p); err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}
	return &p, nil
}

func render(p Project) ([]byte, error) {
	front, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling project: %w", err)
	}
	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n# ")
	b.WriteString(Title(p.Name))
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(p.Description)
		b.WriteString("\n")
	}
	return b.Bytes(), nil
}

func frontMatter(data []byte) ([]byte, bool) {
	rest, ok := bytes.CutPrefix(data, []byte("---\n"))
	if !ok {
		return nil, false
	}
	front, _, ok := bytes.Cut(rest, []byte("\n---\n"))
	return front, ok
}
