package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dirtree/internal/tree"
	"github.com/oakwood-commons/dirtree/internal/view"
)

// dumpEntry is the serialized shape of an index entry for the
// structured output formats.
type dumpEntry struct {
	Path  string `json:"path" yaml:"path" toml:"path"`
	Name  string `json:"name" yaml:"name" toml:"name"`
	Depth int    `json:"depth" yaml:"depth" toml:"depth"`
}

type dumpDoc struct {
	Entries []dumpEntry `json:"entries" yaml:"entries" toml:"entries"`
}

// dump writes the index to w in the requested format. An empty format
// means "tree". A non-empty under restricts the dump to that directory
// and its descendants.
func dump(w io.Writer, store *tree.Store, format, filterExpr, under string) error {
	pred, err := compileFilter(filterExpr)
	if err != nil {
		return err
	}
	pred = restrictTo(under, pred)

	switch format {
	case "", "auto", "tree":
		for _, line := range view.RenderAll(store, dumpWidth(), pred) {
			fmt.Fprintln(w, line)
		}
		return nil
	case "paths":
		for e := store.First(); e != nil; e = e.Next() {
			if pred == nil || pred(e) {
				fmt.Fprintln(w, e.Path)
			}
		}
		return nil
	case "json", "yaml", "toml":
		doc := collect(store, pred)
		var out []byte
		var err error
		switch format {
		case "json":
			out, err = json.MarshalIndent(doc, "", "  ")
		case "yaml":
			out, err = yaml.Marshal(doc)
		case "toml":
			out, err = toml.Marshal(doc)
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", format, err)
		}
		w.Write(out)
		if len(out) > 0 && out[len(out)-1] != '\n' {
			fmt.Fprintln(w)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want tree, paths, json, yaml or toml)", format)
	}
}

// restrictTo narrows pred to entries at or below the root directory.
func restrictTo(root string, pred func(*tree.Entry) bool) func(*tree.Entry) bool {
	if root == "" || root == "/" {
		return pred
	}
	root = strings.TrimRight(filepath.ToSlash(filepath.Clean(root)), "/")
	return func(e *tree.Entry) bool {
		if e.Path != root && !strings.HasPrefix(e.Path, root+"/") {
			return false
		}
		return pred == nil || pred(e)
	}
}

func collect(store *tree.Store, pred func(*tree.Entry) bool) dumpDoc {
	doc := dumpDoc{Entries: []dumpEntry{}}
	for e := store.First(); e != nil; e = e.Next() {
		if pred != nil && !pred(e) {
			continue
		}
		doc.Entries = append(doc.Entries, dumpEntry{Path: e.Path, Name: e.Name, Depth: e.Depth})
	}
	return doc
}

func dumpWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(cols), "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return defaultTermWidth
}
