// Package generator orchestrates archive production: it lists the published
// documentation sets, applies the document filter, and writes one docset
// archive per selected set.
package generator

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"git.home.luguber.info/inful/docpack/internal/archive"
	"git.home.luguber.info/inful/docpack/internal/config"
	"git.home.luguber.info/inful/docpack/internal/devdocs"
	"git.home.luguber.info/inful/docpack/internal/errors"
	"git.home.luguber.info/inful/docpack/internal/metrics"
	"git.home.luguber.info/inful/docpack/internal/render"
	"git.home.luguber.info/inful/docpack/internal/version"
)

// archiveExtension is appended to the formatted archive name.
const archiveExtension = ".docset"

// progressInterval controls how often page progress is logged.
const progressInterval = 100

// missingPageHTML replaces pages that are indexed but absent from the
// content database of a set.
const missingPageHTML = "<p>This page of the documentation was not available " +
	"from DevDocs when the archive was produced.</p>"

const devdocsCopyright = "DevDocs is Copyright Thibaut Courouble and other contributors."

const devdocsLicense = "The DevDocs application is licensed under the terms of " +
	"the Mozilla Public License v2.0. The packaged documentation remains under " +
	"the licenses named in the attribution above."

// Options configure a Generator.
type Options struct {
	Client    *devdocs.Client
	Archive   config.ArchiveConfig
	Filter    DocFilter
	OutputDir string
	Recorder  metrics.Recorder
	// Clock supplies the production date; nil means time.Now.
	Clock func() time.Time
	// NewWriter creates the archive sink for one output path; nil means
	// the SQLite docset writer.
	NewWriter func(path string) (archive.Writer, error)
}

// Generator produces one archive per selected documentation set.
type Generator struct {
	client    *devdocs.Client
	archive   config.ArchiveConfig
	filter    DocFilter
	outputDir string
	renderer  *render.Renderer
	recorder  metrics.Recorder
	clock     func() time.Time
	newWriter func(path string) (archive.Writer, error)
}

// New creates a Generator.
func New(opts Options) (*Generator, error) {
	if opts.Client == nil {
		return nil, errors.InternalError("generator requires a client", nil)
	}
	if err := opts.Filter.Validate(); err != nil {
		return nil, err
	}

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	g := &Generator{
		client:    opts.Client,
		archive:   opts.Archive,
		filter:    opts.Filter,
		outputDir: opts.OutputDir,
		renderer:  renderer,
		recorder:  opts.Recorder,
		clock:     opts.Clock,
		newWriter: opts.NewWriter,
	}
	if g.outputDir == "" {
		g.outputDir = "."
	}
	if g.recorder == nil {
		g.recorder = metrics.NoopRecorder{}
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if g.newWriter == nil {
		g.newWriter = func(path string) (archive.Writer, error) {
			return archive.NewDocsetWriter(path)
		}
	}
	return g, nil
}

// Run lists the available documentation sets and produces an archive for
// each selected one. Format strings are validated for every selected set
// before anything is fetched or written. A failing set does not stop the
// run; the error returned at the end names how many sets failed.
func (g *Generator) Run(ctx context.Context) error {
	docs, err := g.client.ListDocs(ctx)
	if err != nil {
		return err
	}

	selected, err := g.filter.Apply(docs)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		slog.Warn("No documentation sets selected")
		return nil
	}
	slog.Info("Selected documentation sets", "count", len(selected), "available", len(docs))

	for _, doc := range selected {
		if _, err := g.archive.Format(doc.Placeholders(g.clock)); err != nil {
			return err
		}
	}

	css, err := g.client.ReadApplicationCSS(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "failed to create output directory")
	}

	failed := 0
	for _, doc := range selected {
		if err := ctx.Err(); err != nil {
			return errors.InternalError("generation cancelled", err)
		}
		start := time.Now()
		if err := g.generateArchive(ctx, doc, css); err != nil {
			failed++
			g.recorder.IncArchiveResult(metrics.ResultFailed)
			slog.Error("Archive generation failed", "slug", doc.Slug, "error", err)
			continue
		}
		g.recorder.ObserveArchiveDuration(doc.Slug, time.Since(start))
	}

	if failed > 0 {
		return errors.ArchiveFailed("run",
			fmt.Errorf("%d of %d archives failed", failed, len(selected)))
	}
	return nil
}

func (g *Generator) generateArchive(ctx context.Context, doc devdocs.Metadata, css string) error {
	formatted, err := g.archive.Format(doc.Placeholders(g.clock))
	if err != nil {
		return err
	}

	path := filepath.Join(g.outputDir, formatted.NameFormat+archiveExtension)
	if _, err := os.Stat(path); err == nil {
		slog.Warn("Archive already exists, skipping", "slug", doc.Slug, "path", path)
		g.recorder.IncArchiveResult(metrics.ResultSkipped)
		return nil
	}

	slog.Info("Generating archive", "slug", doc.Slug, "path", path)

	index, err := g.client.GetIndex(ctx, doc.Slug)
	if err != nil {
		return err
	}
	db, err := g.client.GetDB(ctx, doc.Slug)
	if err != nil {
		return err
	}

	titles := devdocs.PageTitles(index.Entries)
	titles[devdocs.LandingPage] = doc.LandingPageTitle()
	sections := devdocs.BuildNavigation(index)

	writer, err := g.newWriter(path)
	if err != nil {
		return err
	}
	finished := false
	defer func() {
		if !finished {
			if aborter, ok := writer.(interface{ Abort() }); ok {
				aborter.Abort()
			}
		}
	}()

	if err := writer.SetMetadata(archive.Metadata{
		Name:            formatted.NameFormat,
		Title:           formatted.TitleFormat,
		Creator:         formatted.Creator,
		Publisher:       formatted.Publisher,
		Description:     formatted.DescriptionFormat,
		LongDescription: formatted.LongDescriptionFormat,
		Tags:            formatted.Tags,
		Language:        "eng",
		Scraper:         version.Scraper(),
		Date:            g.clock().Format("2006-01-02"),
	}); err != nil {
		return err
	}

	if err := writer.AddAsset("application.css", "text/css", []byte(css)); err != nil {
		return err
	}

	licenses, err := g.renderer.RenderLicenses(render.LicensesData{
		Attribution: doc.Attribution,
		Copyright:   devdocsCopyright,
		License:     devdocsLicense,
	})
	if err != nil {
		return err
	}
	if err := writer.AddAsset("licenses.txt", "text/plain", []byte(licenses)); err != nil {
		return err
	}

	paths := make([]string, 0, len(titles))
	for page := range titles {
		paths = append(paths, page)
	}
	sort.Strings(paths)

	rendered := 0
	for _, page := range paths {
		content, ok := db[page]
		if !ok {
			slog.Warn("Page missing from content database", "slug", doc.Slug, "path", page)
			g.recorder.IncMissingPage()
			content = missingPageHTML
		}

		html, err := g.renderer.RenderPage(render.PageData{
			RelPrefix: render.RelPrefix(page),
			Title:     titles[page],
			Path:      page,
			Metadata:  doc,
			Sections:  sections,
			Content:   template.HTML(content),
		})
		if err != nil {
			return err
		}

		if err := writer.AddPage(page, titles[page], html, render.PlainText(content)); err != nil {
			return err
		}

		rendered++
		if rendered%progressInterval == 0 {
			slog.Info("Generation progress", "slug", doc.Slug, "pages", rendered, "total", len(paths))
		}
	}

	if err := writer.Finish(); err != nil {
		return err
	}
	finished = true

	g.recorder.AddPagesRendered(rendered)
	g.recorder.IncArchiveResult(metrics.ResultSuccess)
	slog.Info("Archive complete", "slug", doc.Slug, "pages", rendered, "path", path)
	return nil
}
