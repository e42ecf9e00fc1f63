// Package export writes the site out as static files by requesting every
// page from the router in-process.
package export

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"

	"buildwith.dev/internal/render"
	"buildwith.dev/internal/services"
)

// NotFoundPath is requested to produce 404.html.
const NotFoundPath = "/404"

// Exporter renders pages through Handler and writes them under OutputDir.
type Exporter struct {
	Handler   http.Handler
	Source    services.Source
	Static    fs.FS
	OutputDir string
	// Progress receives one line per file; nil discards it.
	Progress io.Writer
}

// Report summarises an export run.
type Report struct {
	Pages  int
	Assets int
	// Failed lists the paths that could not be exported.
	Failed []string
}

// Paths lists every page path of the site, listing pages first.
func Paths(ctx context.Context, src services.Source) ([]string, error) {
	paths := []string{"/", "/projects", "/blogs"}

	projects, err := src.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	for _, p := range projects {
		paths = append(paths, render.ProjectURL(p.Slug))
	}

	blogs, err := src.Blogs(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	for _, b := range blogs {
		paths = append(paths, render.BlogURL(b.Slug))
	}
	return paths, nil
}

// Export writes every page and static asset. A page that fails to render
// is reported and skipped; the run only fails when listing or writing does.
func (e *Exporter) Export(ctx context.Context) (*Report, error) {
	if e.Progress == nil {
		e.Progress = io.Discard
	}
	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths, err := Paths(ctx, e.Source)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fmt.Fprintf(e.Progress, "Rendering %s...\n", p)
		body, status := e.get(ctx, p)
		if status != http.StatusOK {
			fmt.Fprintf(e.Progress, "  ERROR: status %d\n", status)
			report.Failed = append(report.Failed, p)
			continue
		}

		file := PageFile(p)
		if err := e.write(file, body); err != nil {
			return report, err
		}
		report.Pages++
		fmt.Fprintf(e.Progress, "  Created %s\n", file)
	}

	if body, status := e.get(ctx, NotFoundPath); status == http.StatusNotFound {
		if err := e.write("404.html", body); err != nil {
			return report, err
		}
		report.Pages++
	}

	if e.Static != nil {
		n, err := e.copyStatic()
		if err != nil {
			return report, err
		}
		report.Assets = n
		fmt.Fprintf(e.Progress, "Copied %d static assets\n", n)
	}

	return report, nil
}

// PageFile maps a page path to its file under the output directory.
func PageFile(p string) string {
	clean := path.Clean("/" + p)
	if clean == "/" {
		return "index.html"
	}
	return filepath.FromSlash(clean[1:] + "/index.html")
}

func (e *Exporter) get(ctx context.Context, p string) ([]byte, int) {
	req := httptest.NewRequest(http.MethodGet, p, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	e.Handler.ServeHTTP(rec, req)
	return rec.Body.Bytes(), rec.Code
}

func (e *Exporter) write(file string, body []byte) error {
	dst := filepath.Join(e.OutputDir, file)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

func (e *Exporter) copyStatic() (int, error) {
	n := 0
	err := fs.WalkDir(e.Static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(e.Static, p)
		if err != nil {
			return err
		}
		if err := e.write(filepath.Join("static", filepath.FromSlash(p)), data); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}
