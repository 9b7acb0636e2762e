package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/entity-analyzer/analyze"
	"github.com/c360studio/entity-analyzer/config"
	"github.com/c360studio/entity-analyzer/geodb"
	"github.com/c360studio/entity-analyzer/namedb"
	"github.com/c360studio/entity-analyzer/nermodel"
)

// App wires together the analyzer and, for serve mode, the NATS connection
// it consumes source entities from and publishes results to.
type App struct {
	cfg      *config.Config
	analyzer *analyze.Analyzer

	embeddedServer *server.Server
	natsConn       *nats.Conn
	js             jetstream.JetStream
}

// NewApp builds the Analyzer from cfg. NATS is not touched until Start.
func NewApp(cfg *config.Config) (*App, error) {
	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}
	return &App{cfg: cfg, analyzer: analyzer}, nil
}

// buildAnalyzer translates the shared config.Config into an
// analyze.Analyzer: resolving the named NER backend from the registry and
// preferring HTTP-backed NameDB/GeoDB clients when ServicesConfig names a
// URL, falling back to the in-memory fakes otherwise. Duplicated (rather
// than shared) with processor/entity-analyzer's buildAnalyzer so neither
// entry point depends on the other.
func buildAnalyzer(cfg *config.Config) (*analyze.Analyzer, error) {
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

// StartNATS connects to NATS, embedded or external depending on cfg.NATS.
func (a *App) StartNATS(ctx context.Context) error {
	if a.cfg.NATS.URL != "" {
		fmt.Printf("Connecting to NATS at %s...\n", a.cfg.NATS.URL)
		conn, err := nats.Connect(a.cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		a.natsConn = conn
	} else {
		fmt.Println("Starting embedded NATS server...")
		opts := &server.Options{
			Port:      -1,
			JetStream: true,
			NoLog:     true,
			NoSigs:    true,
		}

		ns, err := server.NewServer(opts)
		if err != nil {
			return fmt.Errorf("create embedded NATS server: %w", err)
		}

		go ns.Start()

		if !ns.ReadyForConnections(5 * time.Second) {
			ns.Shutdown()
			return fmt.Errorf("embedded NATS server failed to start")
		}

		a.embeddedServer = ns

		conn, err := nats.Connect(ns.ClientURL())
		if err != nil {
			ns.Shutdown()
			return fmt.Errorf("connect to embedded NATS: %w", err)
		}
		a.natsConn = conn
	}

	js, err := jetstream.New(a.natsConn)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}
	a.js = js

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     a.cfg.NATS.StreamName,
		Subjects: []string{"entity.analyze.>"},
	})
	if err != nil {
		return fmt.Errorf("create source stream: %w", err)
	}
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     "GRAPH",
		Subjects: []string{"graph.ingest.>"},
	})
	if err != nil {
		return fmt.Errorf("create graph stream: %w", err)
	}

	return nil
}

// Shutdown drains and closes the NATS connection, if one was started.
func (a *App) Shutdown(_ time.Duration) {
	if a.natsConn != nil {
		a.natsConn.Drain()
		a.natsConn.Close()
	}
	if a.embeddedServer != nil {
		a.embeddedServer.Shutdown()
		a.embeddedServer.WaitForShutdown()
	}
}

// marshalIndented is a small convenience used by both subcommands to print
// entities for human inspection.
func marshalIndented(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
