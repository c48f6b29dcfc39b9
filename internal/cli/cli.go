// Package cli implements the instantview command-line interface.
//
// # Commands
//
//   - layout: Compute the layout of a page document
//   - render: Draw a page document or a saved layout as SVG, PNG, PDF, JSON or DOT
//   - outline: Draw the block tree of a page document with Graphviz
//   - inspect: Browse the laid out items of a page in the terminal
//   - serve: Run the HTTP layout service
//   - cache: Manage the local cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/instantview/pkg/buildinfo"
	"github.com/matzehuels/instantview/pkg/cache"
	"github.com/matzehuels/instantview/pkg/errors"
	"github.com/matzehuels/instantview/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "instantview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Instant View lays out article pages for reading",
		Long: `Instant View computes the reader-mode layout of article pages: a tree of
typed blocks (titles, paragraphs, media, embeds, lists, collapsible
sections) is laid out for a viewport width into positioned text, media and
shape items.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/instantview/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the flags shared by every command that computes a layout.
type layoutFlags struct {
	opts    pipeline.Options
	noCache bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64VarP(&f.opts.Width, "width", "w", pipeline.DefaultWidth, "viewport width in points")
	fs.Float64Var(&f.opts.MaxContentWidth, "max-content-width", pipeline.DefaultMaxContentWidth, "cap on the content column width (0 = no cap)")
	fs.StringVar(&f.opts.Metrics, "metrics", pipeline.DefaultMetrics, "text measurer: estimate, truetype")
	fs.StringVar(&f.opts.Theme, "theme", "", "theme preset (default, dark) or a .toml theme file")
	fs.StringVar(&f.opts.AuthorDateTemplate, "author-date", "", `author/date line template, e.g. "%2$@ by %1$@"`)
	fs.BoolVar(&f.opts.Refresh, "refresh", false, "ignore cached results")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// readDocument loads a page document file into opts.
func readDocument(path string, opts *pipeline.Options) error {
	if err := errors.ValidateDocumentFilename(path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	opts.Source = path
	opts.Document = data
	opts.DocumentFormat = ""
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// isLayoutFile reports whether path names a saved layout rather than a page.
func isLayoutFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".layout.json")
}

// basePath derives the base output path from the output and input paths.
// Known format extensions and the .layout suffix are stripped.
func basePath(output, input string) string {
	p := output
	if p == "" {
		p = input
	}
	ext := filepath.Ext(p)
	if f := strings.ToLower(strings.TrimPrefix(ext, ".")); slices.Contains(pipeline.Formats, f) || f == pipeline.DocumentTOML {
		p = strings.TrimSuffix(p, ext)
	}
	return strings.TrimSuffix(p, ".layout")
}

// outputPath names the file for one format. A single format written with
// an explicit --output uses that path verbatim.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	if format == pipeline.FormatJSON {
		return basePath(output, input) + ".layout.json"
	}
	return basePath(output, input) + "." + format
}
