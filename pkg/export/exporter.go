package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the conventional export directory.
const DefaultDir = "exportaciones_banco"

// Exporter writes rendered statements into Dir, creating it on demand.
type Exporter struct {
	Dir string
}

// NewExporter creates a new Exporter.
func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir}
}

// Result is the outcome of exporting one selector.
type Result struct {
	Selector string
	Format   string
	Path     string
	Err      error
}

// Export renders s with r into <Dir>/<base><ext>, overwriting an existing file,
// and returns the written path. A blank base is rejected before touching the filesystem.
func (e *Exporter) Export(s Statement, base string, r Renderer) (string, error) {
	base = SanitizeFilename(strings.TrimSpace(base))
	if base == "" {
		return "", ErrBlankName
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", e.Dir, err)
	}

	path := filepath.Join(e.Dir, base+r.Extension())
	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("failed to create %s file: %w", r.Name(), err)
	}
	w := bufio.NewWriter(f)
	if err := r.Render(w, s); err != nil {
		f.Close()
		return path, fmt.Errorf("failed to render %s: %w", r.Name(), err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return path, fmt.Errorf("failed to write %s file: %w", r.Name(), err)
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("failed to close %s file: %w", r.Name(), err)
	}
	return path, nil
}

// ExportAll exports s once per selector. Unknown selectors yield ErrUnknownFormat
// in their Result and do not stop the remaining ones.
func (e *Exporter) ExportAll(s Statement, base string, selectors []string) []Result {
	results := make([]Result, 0, len(selectors))
	for _, sel := range selectors {
		res := Result{Selector: sel}
		r, ok := Lookup(sel)
		if !ok {
			res.Err = fmt.Errorf("%w: %q", ErrUnknownFormat, sel)
			results = append(results, res)
			continue
		}
		res.Format = r.Name()
		res.Path, res.Err = e.Export(s, base, r)
		results = append(results, res)
	}
	return results
}
