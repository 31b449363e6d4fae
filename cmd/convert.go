// Convert command.
// This is the main command that orchestrates the pipeline:
// read → decode request → normalize → markdown → render → write.
//
// It handles flag validation, option precedence, renderer selection, and
// single-document versus directory batch modes.
package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gaurav-prasanna/xhtml2md/core"
	"github.com/gaurav-prasanna/xhtml2md/core/convert"
	"github.com/gaurav-prasanna/xhtml2md/core/output"
	"github.com/gaurav-prasanna/xhtml2md/core/render"
	"github.com/gaurav-prasanna/xhtml2md/core/request"
	"github.com/gaurav-prasanna/xhtml2md/internal/logging"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagOutputDir string
	flagStdout    bool
	flagBase64    bool
	flagLogLevel  string
	flagOptions   string

	flagBaseURL            string
	flagPageID             string
	flagAttachmentTemplate string
	flagPreferAbsolute     bool
)

// inputExtensions are the file types picked up when converting a directory.
var inputExtensions = map[string]bool{
	".xhtml": true, ".xml": true, ".html": true, ".htm": true, ".json": true,
}

var convertCmd = &cobra.Command{
	Use:   "convert [file|dir|-]...",
	Short: "Convert storage-format documents to Markdown, JSON or PDF",
	Long: `Convert reads storage-format XHTML, normalizes it to allow-listed HTML,
renders Markdown and writes it in the selected output format.

An input is either raw XHTML or a JSON request document:
  {"xhtml": "...", "base_url": "...", "page_id": "...",
   "attachment_url_template": "...", "prefer_absolute_urls": true}

With no arguments (or "-") the document is read from stdin. Directories are
walked for .xhtml, .xml, .html, .htm and .json files and the output mirrors
their layout.

Examples:
  xhtml2md convert page.xhtml
  xhtml2md convert page.xhtml --page_id 123456 --base_url https://wiki.example.com --prefer_absolute_urls
  xhtml2md convert ./export --json --output_dir ./out
  cat request.json | xhtml2md convert --stdout`,
	Args: cobra.ArbitraryArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown (default)")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")

	// Conversion options.
	convertCmd.Flags().StringVar(&flagOptions, "options", "", "YAML or JSON file with conversion options")
	convertCmd.Flags().StringVar(&flagBaseURL, "base_url", "", "Root for absolute media URLs")
	convertCmd.Flags().StringVar(&flagPageID, "page_id", "", "Page id substituted for {page_id}")
	convertCmd.Flags().StringVar(&flagAttachmentTemplate, "attachment_url_template", "", "Attachment URL template (default \""+core.DefaultAttachmentURLTemplate+"\")")
	convertCmd.Flags().BoolVar(&flagPreferAbsolute, "prefer_absolute_urls", false, "Prefix media URLs with --base_url")
	convertCmd.Flags().BoolVar(&flagBase64, "base64", false, "Inputs are base64 encoded")

	// Output destination.
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	convertCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write results to stdout instead of files")

	convertCmd.Flags().StringVar(&flagLogLevel, "log_level", "info", "Log level: debug, info, warn, error")
}

// pipeline bundles what every document passes through.
type pipeline struct {
	converter *convert.Converter
	renderer  core.Renderer
	writer    *output.Writer
	base      core.Options
	flags     core.Options
	changed   func(name string) bool
	logger    *slog.Logger
	out       io.Writer
	errOut    io.Writer
}

func runConvert(cmd *cobra.Command, args []string) error {
	// --- Validate flags ---
	if err := validateFlags(); err != nil {
		return err
	}

	logger := logging.BuildLogger(cmd.ErrOrStderr(), flagLogLevel)

	renderer := selectRenderer()

	var base core.Options
	var err error
	if flagOptions != "" {
		base, err = core.LoadOptions(flagOptions)
		if err != nil {
			return err
		}
	}

	p := &pipeline{
		converter: convert.New(convert.WithLogger(logger)),
		renderer:  renderer,
		base:      base,
		flags: core.Options{
			BaseURL:               flagBaseURL,
			PageID:                flagPageID,
			AttachmentURLTemplate: flagAttachmentTemplate,
			PreferAbsoluteURLs:    flagPreferAbsolute,
		},
		changed: cmd.Flags().Changed,
		logger:  logger,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
	}

	if !flagStdout {
		p.writer, err = output.New(flagOutputDir)
		if err != nil {
			return fmt.Errorf("initializing output writer: %w", err)
		}
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	var failed int
	for _, arg := range args {
		info, statErr := os.Stat(arg)
		if arg != "-" && statErr == nil && info.IsDir() {
			failed += p.runAll(arg)
			continue
		}
		if err := p.runOnly(cmd.InOrStdin(), arg); err != nil {
			if len(args) == 1 {
				return err
			}
			fmt.Fprintf(p.errOut, "✗ %s: %v\n", arg, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) failed to convert", failed)
	}
	return nil
}

// runOnly converts a single file, or stdin for "-".
func (p *pipeline) runOnly(stdin io.Reader, source string) error {
	var raw []byte
	var err error
	if source == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}

	data, meta, err := p.process(source, raw)
	if err != nil {
		return err
	}

	if p.writer == nil {
		_, err = p.out.Write(data)
		return err
	}

	path, err := p.writer.WriteOnly(output.NameFor(source, meta.PageID), data, p.renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "✓ Written: %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
	return nil
}

// runAll converts every document below root and returns the failure count.
func (p *pipeline) runAll(root string) int {
	files, err := collectInputs(root)
	if err != nil {
		fmt.Fprintf(p.errOut, "✗ %s: %v\n", root, err)
		return 1
	}

	fmt.Fprintf(p.out, "Found %d documents in %s\n", len(files), root)

	var errCount int
	for i, rel := range files {
		source := filepath.Join(root, rel)
		fmt.Fprintf(p.out, "[%d/%d] Converting %s\n", i+1, len(files), source)

		raw, err := os.ReadFile(source)
		if err != nil {
			fmt.Fprintf(p.errOut, "  ✗ Read error: %v\n", err)
			errCount++
			continue
		}

		data, _, err := p.process(source, raw)
		if err != nil {
			fmt.Fprintf(p.errOut, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		if p.writer == nil {
			if _, err := p.out.Write(data); err != nil {
				errCount++
			}
			continue
		}

		path, err := p.writer.WriteAll(rel, data, p.renderer.Extension())
		if err != nil {
			fmt.Fprintf(p.errOut, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(p.out, "  ✓ Written: %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
	}

	if errCount > 0 {
		fmt.Fprintf(p.errOut, "\n%d/%d documents failed\n", errCount, len(files))
	}
	return errCount
}

// process runs one document through the pipeline.
func (p *pipeline) process(source string, raw []byte) ([]byte, core.PageMetadata, error) {
	// 1. Decode the request
	req, err := request.Decode(raw, flagBase64)
	if err != nil {
		return nil, core.PageMetadata{}, fmt.Errorf("request: %w", err)
	}

	// 2. Resolve options
	opts := p.resolveOptions(req.Options)

	// 3. Convert to Markdown
	markdown, err := p.converter.Convert(req.XHTML, opts)
	if err != nil {
		return nil, core.PageMetadata{}, fmt.Errorf("convert: %w", err)
	}

	meta := buildMetadata(source, opts, markdown)
	p.logger.Debug("document converted", "source", source, "title", meta.Title)

	// 4. Render to output format
	data, err := p.renderer.Render(markdown, meta)
	if err != nil {
		return nil, core.PageMetadata{}, fmt.Errorf("render: %w", err)
	}
	return data, meta, nil
}

// resolveOptions layers the options file, the request document and the
// flags the user actually set, in that order.
func (p *pipeline) resolveOptions(fromRequest core.Options) core.Options {
	opts := p.base.Merge(fromRequest)
	if p.changed("base_url") {
		opts.BaseURL = p.flags.BaseURL
	}
	if p.changed("page_id") {
		opts.PageID = p.flags.PageID
	}
	if p.changed("attachment_url_template") {
		opts.AttachmentURLTemplate = p.flags.AttachmentURLTemplate
	}
	if p.changed("prefer_absolute_urls") {
		opts.PreferAbsoluteURLs = p.flags.PreferAbsoluteURLs
	}
	return opts
}

// buildMetadata describes a converted document for the renderers.
func buildMetadata(source string, opts core.Options, markdown string) core.PageMetadata {
	if source == "-" {
		source = "stdin"
	}
	return core.PageMetadata{
		Source:      source,
		PageID:      opts.PageID,
		BaseURL:     opts.BaseURL,
		Title:       render.NewJSONRenderer().Title(markdown),
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// collectInputs lists convertible files below root, relative to it, sorted.
func collectInputs(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !inputExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// validateFlags checks that at most one output format is chosen.
func validateFlags() error {
	formatCount := 0
	for _, set := range []bool{flagMarkdown, flagJSON, flagPDF} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if flagStdout && flagOutputDir != "" {
		return fmt.Errorf("--stdout and --output_dir are mutually exclusive")
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() core.Renderer {
	switch {
	case flagJSON:
		return render.NewJSONRenderer()
	case flagPDF:
		return render.NewPDFRenderer()
	default:
		return render.NewMarkdownRenderer()
	}
}
