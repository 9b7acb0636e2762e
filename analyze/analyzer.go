// Package analyze composes chunking, language detection, extraction,
// aggregation, and resolution into the per-source-entity pipeline: one
// Run per source entity, fed its text and flushed once to produce the
// mutated output entity plus any derived entities.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360studio/entity-analyzer/aggregate"
	"github.com/c360studio/entity-analyzer/chunk"
	"github.com/c360studio/entity-analyzer/emit"
	"github.com/c360studio/entity-analyzer/extract"
	"github.com/c360studio/entity-analyzer/geodb"
	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/namedb"
	"github.com/c360studio/entity-analyzer/nermodel"
	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/c360studio/entity-analyzer/resolve"
	"github.com/c360studio/entity-analyzer/vocabulary/entityanalyzer"
)

// ErrInputInvalid is the InputInvalid error taxonomy entry:
// the source entity lacks an id. Together with a wrapped
// nermodel.ErrModelLoad (returned by Flush), this is the only per-entity
// error that escapes to the caller; an unrecognized schema is a no-op, not
// an error.
var ErrInputInvalid = errors.New("analyze: source entity requires an id")

// Config is the entity-analyzer's configuration surface.
type Config struct {
	Chunk        chunk.Config
	MaxLanguages int
	DefaultLang  string

	UseConfidence       bool
	ConfidenceThreshold float64

	UseRigour               bool
	UseJudithaClassifier    bool
	UseJudithaValidator     bool
	UseJudithaLookup        bool
	UseGeonames             bool
	GeonamesRejectUnmatched bool
	LookupThreshold         float64

	Annotate      bool
	EnableTracing bool
}

// DefaultConfig returns every stage enabled, with confidence filtering
// on.
func DefaultConfig() Config {
	return Config{
		Chunk:                chunk.DefaultConfig(),
		MaxLanguages:         3,
		DefaultLang:          "eng",
		UseConfidence:        true,
		ConfidenceThreshold:  0.5,
		UseRigour:            true,
		UseJudithaClassifier: true,
		UseJudithaValidator:  true,
		UseJudithaLookup:     true,
		UseGeonames:          true,
		LookupThreshold:      0.8,
		Annotate:             true,
	}
}

// Analyzer holds the process-wide, reusable pipeline components: model
// and client instances safe for concurrent read-only use across many
// Runs.
type Analyzer struct {
	cfg        Config
	chunker    *chunk.Chunker
	langs      chunk.LanguageDetector
	extractors []extract.Extractor
	pipeline   *resolve.Pipeline
	aggCfg     aggregate.Config
	tracer     *Tracer
}

// New builds an Analyzer from cfg, a resolved NER backend, and the NameDB
// and GeoDB clients the configured stages call out to.
func New(cfg Config, ner nermodel.Backend, db namedb.Client, geo geodb.Client) (*Analyzer, error) {
	chunker, err := chunk.New(cfg.Chunk)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	var stages []resolve.Stage
	if cfg.UseRigour {
		stages = append(stages, resolve.NewRigourStage())
	}
	if cfg.UseJudithaClassifier {
		stages = append(stages, resolve.NewJudithaClassifierStage(db))
	}
	if cfg.UseJudithaValidator {
		stages = append(stages, resolve.NewJudithaValidatorStage(db))
	}
	if cfg.UseGeonames {
		stages = append(stages, resolve.NewGeonamesStage(geo, cfg.GeonamesRejectUnmatched))
	}
	if cfg.UseJudithaLookup {
		stages = append(stages, resolve.NewJudithaLookupStage(db, cfg.LookupThreshold))
	}

	var tracer *Tracer
	if cfg.EnableTracing {
		tracer = NewTracer()
	}

	return &Analyzer{
		cfg:     cfg,
		chunker: chunker,
		langs:   chunk.NewStopwordDetector(),
		extractors: []extract.Extractor{
			extract.NewNERExtractor(ner),
			extract.NewPatternExtractor(),
		},
		pipeline: resolve.NewPipeline(stages...),
		aggCfg:   aggregate.Config{UseConfidence: cfg.UseConfidence, Threshold: cfg.ConfidenceThreshold},
		tracer:   tracer,
	}, nil
}

// PurgeResolveMemos evicts every resolution stage's memoization cache.
// Intended for a periodic caller (see cmd/entity-analyzer's rescheduler,
// run by the serve subcommand) that wants a previously-missed NameDB/GeoDB lookup retried the
// next time its name recurs, without waiting for that stage's LRU to
// naturally evict it.
func (a *Analyzer) PurgeResolveMemos() {
	a.pipeline.PurgeMemos()
}

// Result is one Run's Flush output: the mutated output entity, any
// derived entities the factory emitted, and (when tracing is enabled) a
// diagnostic Summary.
type Result struct {
	Output  *ontology.Entity
	Derived []*ontology.Entity
	Trace   Summary
}

// Run is one source entity's analysis in progress. Feed accumulates extracted candidates; nothing is
// emitted until Flush runs resolution. If a Run is abandoned without
// Flush, the only cleanup needed is letting it be garbage collected —
// Feed never touches anything outside the Run itself.
type Run struct {
	a      *Analyzer
	source *ontology.Entity
	output *ontology.Entity
	agg    *aggregate.Aggregator
	rc     *mention.Context
	rt     *runTrace

	rawText strings.Builder
	skipped bool
	fatal   error
}

// NewRun starts analyzing source. Returns ErrInputInvalid if source has no
// id. A source whose schema isn't Analyzable
// yields a Run whose Flush is a no-op passthrough.
func (a *Analyzer) NewRun(ctx context.Context, source *ontology.Entity) (*Run, error) {
	if source == nil || source.ID == "" {
		return nil, ErrInputInvalid
	}

	run := &Run{
		a:      a,
		source: source,
		output: source.Clone(),
		agg:    aggregate.New(a.aggCfg),
		rc:     mention.NewContext(),
	}

	if !ontology.IsAnalyzable(source.Schema) {
		run.skipped = true
		return run, nil
	}
	if a.tracer != nil {
		_, run.rt = a.tracer.start(ctx, source.ID)
	}
	return run, nil
}

// Feed chunks text, runs every configured extractor over each chunk, and
// adds the results to the run's aggregator. Safe to call multiple times
// for a multi-valued text property.
func (r *Run) Feed(ctx context.Context, text string) {
	if r.skipped || strings.TrimSpace(text) == "" {
		return
	}
	r.rawText.WriteString(text)
	r.rawText.WriteString("\n")

	guesses := r.a.langs.Detect(text, r.a.cfg.MaxLanguages)
	langs := make([]string, 0, len(guesses))
	for _, g := range guesses {
		r.output.Add(entityanalyzer.Language, g.Code)
		langs = append(langs, g.Code)
	}
	if len(langs) == 0 && r.a.cfg.DefaultLang != "" {
		langs = []string{r.a.cfg.DefaultLang}
	}

	for _, slice := range r.a.chunker.Chunk(text) {
		ec := extract.Context{Entity: r.output, Text: slice.Text, Langs: langs}
		for _, ex := range r.a.extractors {
			results, err := ex.Extract(ctx, ec)
			if err != nil {
				// An unloadable model aborts the whole run; any other
				// per-chunk failure is logged and skipped, leaving the
				// remaining extractors and chunks unaffected.
				if errors.Is(err, nermodel.ErrModelLoad) {
					r.fatal = fmt.Errorf("analyze: %w", err)
					return
				}
				slog.Warn("entity-analyzer: extractor failed on chunk",
					slog.String("extractor", ex.Name()), slog.String("error", err.Error()))
				continue
			}
			for _, res := range results {
				r.agg.Add(res)
			}
		}
	}
}

// Flush runs resolution over every aggregated group, emits derived
// entities, and returns the finished Result. Call it once per Run: the
// aggregator is not cleared, so a second call resolves the same groups
// again into the same, already-populated output entity.
func (r *Run) Flush(ctx context.Context) (*Result, error) {
	if r.fatal != nil {
		return nil, r.fatal
	}
	if r.skipped {
		return &Result{Output: r.output}, nil
	}

	ann := emit.NewAnnotator()
	var derived []*ontology.Entity

	for _, agr := range r.agg.IterResults() {
		if !agr.Tag.IsNER() {
			r.flushNonNER(agr, ann, &derived)
			continue
		}
		r.flushNER(ctx, agr, ann, &derived)
	}

	for _, c := range r.rc.Countries() {
		r.output.Add(entityanalyzer.Country, c)
	}

	if r.a.cfg.Annotate {
		rendered := ann.Render(r.rawText.String())
		r.output.Set(entityanalyzer.IndexText, []any{entityanalyzer.AnnotatedTextMarker + rendered})
	}

	result := &Result{Output: r.output, Derived: derived}
	if r.rt != nil {
		result.Trace = r.rt.finish()
	}
	return result, nil
}

// flushNonNER handles EMAIL/PHONE/IBAN/COUNTRY groups directly: these
// never carry a plausible NameDB schema prediction, so routing them
// through mention.FromAggregated + resolve.Pipeline would make
// JudithaClassifierStage reject every one of them as OTHER. They
// bypass the mention/resolve machinery entirely.
func (r *Run) flushNonNER(agr aggregate.Result, ann *emit.Annotator, derived *[]*ontology.Entity) {
	pred := entityanalyzer.PredicateForTag(string(agr.Tag))
	if pred == "" {
		return
	}
	for _, v := range agr.RawValues {
		r.output.Add(pred, v)

		// Country codes are never annotated: a two-letter code like "in"
		// would substitute inside ordinary prose.
		if agr.Tag == ontology.TagCountry {
			continue
		}

		if agr.Tag != ontology.TagIBAN {
			if r.a.cfg.Annotate {
				ann.Record(v, []string{v}, nil, []string{pred})
			}
			continue
		}

		acct, err := emit.NewBankAccountEntity(v, r.source.ID)
		if err != nil {
			if r.rt != nil {
				r.rt.emissionError(err)
			}
			continue
		}
		*derived = append(*derived, acct)
		if r.a.cfg.Annotate {
			ann.Record(v, []string{v}, []ontology.Schema{ontology.SchemaBankAccount}, []string{pred})
		}
	}
}

// flushNER wraps a PER/ORG/LOC group in a Mention, runs it through the
// resolution pipeline, and emits whatever entity the factory produces for
// a surviving mention.
func (r *Run) flushNER(ctx context.Context, agr aggregate.Result, ann *emit.Annotator, derived *[]*ontology.Entity) {
	m := mention.FromAggregated(agr.Key, agr.Tag, agr.RawValues, agr.SourceLabels, r.source.ID)
	r.a.pipeline.Resolve(ctx, m, r.rc)
	if m.Rejected {
		if r.rt != nil {
			r.rt.rejection(m.Stage, m.Reason)
		}
		return
	}

	pred := entityanalyzer.PredicateForTag(string(m.NERTag))
	for _, n := range emit.CleanNamesForTag(m.NERTag, m.AnnotateValues()) {
		r.output.Add(pred, n)
	}

	var entity *ontology.Entity
	var err error
	if m.ResolvedSchema != "" {
		entity, err = emit.NewResolvedEntity(m, r.rc)
	} else {
		entity, err = emit.NewMentionEntity(m, r.rc)
	}
	if err != nil {
		if r.rt != nil {
			r.rt.emissionError(err)
		}
		return
	}
	if entity != nil {
		*derived = append(*derived, entity)
	}

	if r.a.cfg.Annotate {
		var schemata []ontology.Schema
		if m.ResolvedSchema != "" {
			schemata = append(schemata, m.ResolvedSchema)
		}
		if s := ontology.SchemaForNERTag(m.NERTag); s != "" {
			schemata = append(schemata, s)
		}

		props := []string{pred}
		if m.NERTag == ontology.TagPerson || m.NERTag == ontology.TagOrg {
			props = append(props, entityanalyzer.NamesMentioned)
		}
		ann.Record(m.Caption(), m.AllNames(), schemata, props)
		for _, v := range m.AnnotateValues() {
			ann.Record(v, m.AllNames(), schemata, props)
		}
	}
}
