package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source records where a config value came from.
type Source struct {
	Kind   SourceKind
	Name   string // for defaults
	File   string
	Line   int
	Column int
}

func (s Source) position() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // YAML path -> file that set it last
	Files   []string          // loaded files, includes before includers
}

// DefaultConfigPath returns ~/.config/calibrate/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "calibrate", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources loads the standard config and keeps per-key sources for
// `config explain`.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and everything it includes. A missing file yields
// the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{visited: map[string]bool{}}

	merged := layer{sources: map[string]Source{}}
	if _, err := os.Stat(path); err == nil {
		merged, err = l.load(path)
		if err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg, err := BuildEffectiveConfig(merged.raw)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return nil, withSource(err, merged.sources)
	}

	return &LoadResult{
		Config:  cfg,
		Sources: merged.sources,
		Files:   l.files,
	}, nil
}

// layer is the merged content of one file and its includes.
type layer struct {
	raw     RawConfig
	sources map[string]Source
}

// over applies top on top of l.
func (l layer) over(top layer) layer {
	out := layer{raw: l.raw.merge(top.raw), sources: make(map[string]Source, len(l.sources)+len(top.sources))}
	for k, v := range l.sources {
		out.sources[k] = v
	}
	for k, v := range top.sources {
		out.sources[k] = v
	}
	return out
}

type loader struct {
	visited map[string]bool
	chain   []string
	files   []string
}

func (l *loader) load(path string) (layer, error) {
	file := resolveFile(path)
	if slices.Contains(l.chain, file) {
		return layer{}, fmt.Errorf("include cycle detected: %s -> %s", strings.Join(l.chain, " -> "), file)
	}
	// A file reached twice through different includes contributes once.
	if l.visited[file] {
		return layer{sources: map[string]Source{}}, nil
	}
	l.visited[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return layer{}, fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return layer{}, fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	self := layer{sources: map[string]Source{}}
	if err := decodeStrict(data, &self.raw); err != nil {
		return layer{}, fmt.Errorf("%s: %w", file, err)
	}
	walkSources(rootMapping(&doc), file, "", self.sources)

	l.chain = append(l.chain, file)
	defer func() { l.chain = l.chain[:len(l.chain)-1] }()

	merged := layer{sources: map[string]Source{}}
	for i, inc := range self.raw.Include {
		at := includeSource(self.sources, i)
		targets, err := includeTargets(file, inc)
		if err != nil {
			return layer{}, fmt.Errorf("%s: include %q: %w", at.position(), inc, err)
		}
		for _, target := range targets {
			child, err := l.load(target)
			if err != nil {
				return layer{}, err
			}
			merged = merged.over(child)
		}
	}

	l.files = append(l.files, file)
	return merged.over(self), nil
}

// includeSource finds the position of include entry i.
func includeSource(sources map[string]Source, i int) Source {
	if src, ok := sources["include["+strconv.Itoa(i)+"]"]; ok {
		return src
	}
	return sources["include"]
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// resolveFile returns an absolute, symlink-free path when possible.
func resolveFile(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// includeTargets expands one include entry. Directories contribute their
// *.yaml and *.yml files in name order.
func includeTargets(from, include string) ([]string, error) {
	if include == "" {
		return nil, errors.New("path is empty")
	}
	path, err := expandHome(include)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(from), path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			if !e.IsDir() {
				out = append(out, filepath.Join(path, e.Name()))
			}
		}
	}
	slices.Sort(out)
	return out, nil
}

func rootMapping(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

// walkSources records the position of every mapping value under its dotted
// path. Sequence items are recorded as path[i].
func walkSources(node *yaml.Node, file, prefix string, out map[string]Source) {
	at := func(n *yaml.Node) Source {
		return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
	}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i].Value, node.Content[i+1]
			if prefix != "" {
				key = prefix + "." + key
			}
			out[key] = at(val)
			walkSources(val, file, key, out)
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			out[prefix+"["+strconv.Itoa(i)+"]"] = at(item)
		}
	}
}

// withSource fills in the file position of a ValidationError.
func withSource(err error, sources map[string]Source) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return err
}
