// Package entityanalyzerproc wires the analyze pipeline into a semstreams
// processor component: a source entity arrives on source.in, analyze.Analyzer
// runs one Feed/Flush cycle over it, and the mutated output entity plus any
// derived entities are published to graph.out.
package entityanalyzerproc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/entity-analyzer/analyze"
	"github.com/c360studio/entity-analyzer/config"
	"github.com/c360studio/entity-analyzer/geodb"
	"github.com/c360studio/entity-analyzer/graph"
	"github.com/c360studio/entity-analyzer/namedb"
	"github.com/c360studio/entity-analyzer/nermodel"
	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/c360studio/entity-analyzer/vocabulary/entityanalyzer"
	"github.com/c360studio/entity-analyzer/webdoc"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
)

var entityAnalyzerSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

const graphIngestSubject = "graph.ingest.entity"

// RawTextPredicate is the inbound source-entity property the component
// reads document text from. It's this processor's wire contract, not a
// core ontology predicate: whatever upstream ingester builds the
// graph.EntityPayload is responsible for setting it.
const RawTextPredicate = "rawText"

// RawHTMLPredicate is the inbound source-entity property a Webpage source
// entity carries its fetched HTML on. PrepareText isolates the article
// body from it before the analyzer ever sees the markup.
const RawHTMLPredicate = "rawHTML"

var htmlConverter = webdoc.NewConverter()

var (
	rejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_analyzer_rejections_total",
		Help: "Mentions rejected by the resolution pipeline, by stage and reason.",
	}, []string{"reason"})
	entitiesAnalyzed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "entity_analyzer_entities_analyzed_total",
		Help: "Source entities run through Feed/Flush.",
	})
	analyzeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "entity_analyzer_errors_total",
		Help: "Analysis requests that failed before producing output.",
	})
)

func init() {
	prometheus.MustRegister(rejectionsTotal, entitiesAnalyzed, analyzeErrors)
}

// Component implements the entity-analyzer processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger
	platform   component.PlatformMeta
	analyzer   *analyze.Analyzer

	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	processed      atomic.Int64
	errors         atomic.Int64
	lastActivityMu sync.RWMutex
	lastActivity   time.Time
}

// NewComponent creates a new entity-analyzer processor component.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var cfg Config
	if err := json.Unmarshal(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Ports == nil {
		cfg = DefaultConfig()
		if err := json.Unmarshal(rawConfig, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	analyzer, err := buildAnalyzer(cfg.Analyzer)
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	c := &Component{
		name:       "entity-analyzer",
		config:     cfg,
		natsClient: deps.NATSClient,
		logger:     deps.GetLogger(),
		platform:   deps.Platform,
		analyzer:   analyzer,
	}

	return c, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins consuming source entities for analysis.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}
	c.running = true
	c.startTime = time.Now()
	c.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	go c.consumeMessages(runCtx)

	c.logger.Info("entity-analyzer started",
		"stream", c.config.Analyzer.NATS.StreamName,
		"consumer", c.config.Analyzer.NATS.ConsumerName)

	return nil
}

func (c *Component) consumeMessages(ctx context.Context) {
	js, err := c.natsClient.JetStream()
	if err != nil {
		c.logger.Error("failed to get JetStream context", "error", err)
		return
	}

	consumer, err := js.Consumer(ctx, c.config.Analyzer.NATS.StreamName, c.config.Analyzer.NATS.ConsumerName)
	if err != nil {
		c.logger.Error("failed to get consumer", "error", err,
			"stream", c.config.Analyzer.NATS.StreamName, "consumer", c.config.Analyzer.NATS.ConsumerName)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := consumer.Fetch(1, jetstream.FetchMaxWait(5*time.Second))
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}

		for msg := range msgs.Messages() {
			select {
			case <-ctx.Done():
				_ = msg.Nak()
				return
			default:
				c.handleMessage(ctx, msg)
			}
		}
	}
}

// handleMessage runs a single source entity through one Feed/Flush cycle.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	c.updateLastActivity()

	var payload graph.EntityPayload
	if err := json.Unmarshal(msg.Data(), &payload); err != nil {
		c.logger.Warn("failed to parse source payload", "error", err)
		analyzeErrors.Inc()
		c.errors.Add(1)
		_ = msg.Nak()
		return
	}
	if err := payload.Validate(); err != nil {
		c.logger.Warn("invalid source payload", "error", err)
		analyzeErrors.Inc()
		c.errors.Add(1)
		_ = msg.Ack()
		return
	}

	source := ontology.NewEntity(payload.EntityID_, payload.SchemaName)
	for _, t := range payload.TripleData {
		source.Add(t.Predicate, t.Object)
	}

	texts, err := PrepareText(source)
	if err != nil {
		c.logger.Warn("failed to prepare source text", "entity_id", payload.EntityID_, "error", err)
		analyzeErrors.Inc()
		c.errors.Add(1)
		_ = msg.Nak()
		return
	}

	run, err := c.analyzer.NewRun(ctx, source)
	if err != nil {
		c.logger.Error("failed to start run", "entity_id", payload.EntityID_, "error", err)
		analyzeErrors.Inc()
		c.errors.Add(1)
		_ = msg.Nak()
		return
	}

	for _, text := range texts {
		run.Feed(ctx, text)
	}

	result, err := run.Flush(ctx)
	if err != nil {
		c.logger.Error("failed to flush run", "entity_id", payload.EntityID_, "error", err)
		analyzeErrors.Inc()
		c.errors.Add(1)
		_ = msg.Nak()
		return
	}

	for reason, count := range result.Trace.Rejections {
		rejectionsTotal.WithLabelValues(reason).Add(float64(count))
	}

	if err := c.publishEntity(ctx, result.Output); err != nil {
		c.logger.Error("failed to publish output entity", "entity_id", result.Output.ID, "error", err)
		c.errors.Add(1)
		_ = msg.Nak()
		return
	}
	for _, derived := range result.Derived {
		if err := c.publishEntity(ctx, derived); err != nil {
			c.logger.Error("failed to publish derived entity", "entity_id", derived.ID, "error", err)
			c.errors.Add(1)
		}
	}

	c.processed.Add(1)
	entitiesAnalyzed.Inc()
	_ = msg.Ack()
}

// PrepareText returns the plain text Feed should run over for source. A
// Webpage source carries fetched HTML on RawHTMLPredicate; PrepareText
// isolates each value's article body with webdoc and records the
// extracted title back onto source so it survives into the output
// entity's Clone. Every other analyzable schema is fed its RawTextPredicate
// values directly. Exported so cmd/entity-analyzer's standalone serve
// command shares the same wire contract.
func PrepareText(source *ontology.Entity) ([]string, error) {
	if source.Schema != "Webpage" {
		var texts []string
		for _, v := range source.Get(RawTextPredicate) {
			if text, ok := v.(string); ok {
				texts = append(texts, text)
			}
		}
		return texts, nil
	}

	var texts []string
	for _, v := range source.Get(RawHTMLPredicate) {
		rawHTML, ok := v.(string)
		if !ok {
			continue
		}
		doc, err := htmlConverter.Extract(rawHTML, "")
		if err != nil {
			return nil, fmt.Errorf("extract webpage content: %w", err)
		}
		if doc.Title != "" {
			source.Add(entityanalyzer.Title, doc.Title)
		}
		texts = append(texts, doc.Text)
	}
	return texts, nil
}

func (c *Component) publishEntity(ctx context.Context, entity *ontology.Entity) error {
	payload := &graph.EntityPayload{
		EntityID_:  entity.ID,
		SchemaName: entity.Schema,
		TripleData: entity.Triples("entity-analyzer"),
		UpdatedAt:  time.Now(),
	}
	msg := message.NewBaseMessage(graph.EntityType, payload, "entity-analyzer")
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal entity message: %w", err)
	}
	return c.natsClient.PublishToStream(ctx, graphIngestSubject, data)
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}

// Stop halts message consumption.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.running = false
	c.logger.Info("entity-analyzer stopped",
		"processed", c.processed.Load(), "errors", c.errors.Load())
	return nil
}

// Discoverable interface implementation

func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "entity-analyzer",
		Type:        "processor",
		Description: "Extracts and resolves entities (people, orgs, locations, bank accounts, communication identifiers) from source document text",
		Version:     "0.1.0",
	}
}

func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}
	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = buildPort(portDef, component.DirectionInput)
	}
	return ports
}

func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}
	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = buildPort(portDef, component.DirectionOutput)
	}
	return ports
}

func buildPort(portDef component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        portDef.Name,
		Direction:   direction,
		Required:    portDef.Required,
		Description: portDef.Description,
	}
	if portDef.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: portDef.StreamName,
			Subjects:   []string{portDef.Subject},
		}
	} else {
		port.Config = component.NATSPort{Subject: portDef.Subject}
	}
	return port
}

func (c *Component) ConfigSchema() component.ConfigSchema {
	return entityAnalyzerSchema
}

func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	if running {
		status = "running"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.errors.Load()),
		Uptime:     time.Since(startTime),
		Status:     status,
	}
}

func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		MessagesPerSecond: 0,
		BytesPerSecond:    0,
		ErrorRate:         0,
		LastActivity:      c.getLastActivity(),
	}
}

// buildAnalyzer translates the shared config.Config surface into an
// analyze.Analyzer: resolving the named NER backend from the registry and
// choosing real HTTP-backed NameDB/GeoDB clients when ServicesConfig gives
// them a URL, falling back to the in-memory fakes otherwise.
func buildAnalyzer(cfg config.Config) (*analyze.Analyzer, error) {
	ner, err := nermodel.Global().ResolveNamed(cfg.NER.Engine)
	if err != nil {
		return nil, fmt.Errorf("resolve NER backend %q: %w", cfg.NER.Engine, err)
	}

	var db namedb.Client
	if cfg.Services.NameDBURL != "" {
		db = namedb.NewHTTPClient(cfg.Services.NameDBURL, cfg.Services.Timeout)
	} else {
		db = namedb.NewFake()
	}

	var geo geodb.Client
	if cfg.Services.GeonamesURL != "" {
		geo = geodb.NewHTTPClient(cfg.Services.GeonamesURL, cfg.Services.Timeout)
	} else {
		geo = geodb.NewFake()
	}

	ac := analyze.DefaultConfig()
	ac.Chunk.MaxChars = cfg.Chunk.MaxChars
	ac.Chunk.MinChars = cfg.Chunk.MinChars
	ac.MaxLanguages = cfg.NER.MaxLanguages
	ac.DefaultLang = cfg.NER.DefaultLang
	ac.UseConfidence = cfg.NER.UseConfidence
	ac.ConfidenceThreshold = cfg.NER.TypeModelConfidence
	ac.UseRigour = cfg.Resolve.UseRigour
	ac.UseJudithaClassifier = cfg.Resolve.UseJudithaClassifier
	ac.UseJudithaValidator = cfg.Resolve.UseJudithaValidator
	ac.UseJudithaLookup = cfg.Resolve.UseJudithaLookup
	ac.UseGeonames = cfg.Resolve.UseGeonames
	ac.GeonamesRejectUnmatched = cfg.Resolve.GeonamesRejectUnmatched
	ac.LookupThreshold = cfg.Resolve.LookupThreshold
	ac.Annotate = cfg.Output.Annotate
	ac.EnableTracing = cfg.Output.EnableTracing

	return analyze.New(ac, ner, db, geo)
}
