package services

import (
	"context"
	"fmt"

	"campus-map/config"
	"campus-map/models"
	"campus-map/render"
	"campus-map/storage"
	"campus-map/utils"
)

// Pipeline runs one map build: load, overlay, compose, assemble, write.
type Pipeline struct {
	cfg      *config.Config
	logger   *utils.Logger
	source   storage.DatasetSource
	boundary *BoundaryBuilder
	composer *MarkerComposer
	writer   *storage.ArtifactWriter
	summary  *SummaryService
}

// NewPipeline wires a Pipeline for cfg reading rows from source.
func NewPipeline(cfg *config.Config, source storage.DatasetSource, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		logger:   logger,
		source:   source,
		boundary: NewBoundaryBuilder(logger),
		composer: NewMarkerComposer(cfg, logger),
		writer:   storage.NewArtifactWriter(),
		summary:  NewSummaryService(logger),
	}
}

// Run executes the pipeline. Any failure other than a single bad row aborts
// the run before the artifact is written.
func (p *Pipeline) Run(ctx context.Context) (*models.RunSummary, error) {
	ds, err := p.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Info("[pipeline] Loaded %d rows from %s", len(ds.Rows), ds.Source)

	overlay, err := p.boundary.Build(p.cfg.BoundaryFile)
	if err != nil {
		return nil, err
	}

	outcomes := p.composer.Compose(ds)

	doc, err := p.Assemble(overlay, models.PlacedMarkers(outcomes))
	if err != nil {
		return nil, err
	}

	if err := p.writer.Write(p.cfg.OutputFile, doc.Render); err != nil {
		return nil, err
	}
	p.logger.Info("[pipeline] Wrote %d markers to %s", doc.MarkerCount(), p.cfg.OutputFile)

	report := p.summary.Generate(len(ds.Rows), outcomes, overlay)
	report.OutputPath = p.cfg.OutputFile
	return report, nil
}

// Assemble builds the map document from an overlay and composed markers.
func (p *Pipeline) Assemble(overlay *models.BoundaryOverlay, markers []*models.Marker) (*render.Document, error) {
	doc, err := render.NewDocument(p.cfg.Map, p.cfg.Popup.MaxWidth)
	if err != nil {
		return nil, fmt.Errorf("assemble map: %w", err)
	}
	doc.AddStyle(render.PopupStyle)
	doc.SetOverlay(overlay)
	doc.AddMarkers(markers...)
	return doc, nil
}

// Summary exposes the report printer for the caller.
func (p *Pipeline) Summary() *SummaryService {
	return p.summary
}
