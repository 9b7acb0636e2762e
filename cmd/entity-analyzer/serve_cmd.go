package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	"github.com/c360studio/entity-analyzer/config"
	"github.com/c360studio/entity-analyzer/graph"
	"github.com/c360studio/entity-analyzer/ontology"
	entityanalyzerproc "github.com/c360studio/entity-analyzer/processor/entity-analyzer"
	"github.com/c360studio/semstreams/message"
)

func newServeCmd(configPath *string) *cobra.Command {
	var natsURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Consume source entities from NATS JetStream and publish resolved entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if natsURL != "" {
				cfg.NATS.URL = natsURL
			}

			app, err := NewApp(cfg)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}

			ctx := cmd.Context()
			if err := app.StartNATS(ctx); err != nil {
				return fmt.Errorf("start NATS: %w", err)
			}
			defer app.Shutdown(5 * time.Second)

			if cfg.NATS.RescheduleCron != "" {
				resched, err := newRescheduler(cfg.NATS.RescheduleCron, func() { app.analyzer.PurgeResolveMemos() })
				if err != nil {
					return err
				}
				resched.Start()
				defer resched.Stop(context.Background())
			}

			var watcher interface{ Close() error }
			if *configPath != "" {
				w, err := config.NewWatcher(*configPath, slog.Default(), func(reloaded *config.Config) {
					analyzer, err := buildAnalyzer(reloaded)
					if err != nil {
						slog.Default().Warn("reloaded config produced an invalid analyzer, keeping previous", "error", err)
						return
					}
					app.cfg = reloaded
					app.analyzer = analyzer
				})
				if err == nil {
					watcher = w
					defer watcher.Close()
				}
			}

			fmt.Printf("entity-analyzer serving on stream %s, consumer %s\n",
				cfg.NATS.StreamName, cfg.NATS.ConsumerName)

			return app.consume(ctx)
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (default: embedded)")
	return cmd
}

// consume runs the Fetch/handle loop directly against JetStream, grounded
// on the same shape the entity-analyzer processor component uses when
// deployed inside the semstreams platform (see
// processor/entity-analyzer/component.go's consumeMessages), but wired
// straight to app.js instead of a natsclient.Client.
func (a *App) consume(ctx context.Context) error {
	consumer, err := a.js.CreateOrUpdateConsumer(ctx, a.cfg.NATS.StreamName, jetstream.ConsumerConfig{
		Durable: a.cfg.NATS.ConsumerName,
	})
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msgs, err := consumer.Fetch(1, jetstream.FetchMaxWait(5*time.Second))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}

		for msg := range msgs.Messages() {
			a.handleSourceMessage(ctx, msg)
		}
	}
}

func (a *App) handleSourceMessage(ctx context.Context, msg jetstream.Msg) {
	var payload graph.EntityPayload
	if err := json.Unmarshal(msg.Data(), &payload); err != nil {
		slog.Default().Warn("failed to parse source payload", "error", err)
		_ = msg.Nak()
		return
	}
	if err := payload.Validate(); err != nil {
		slog.Default().Warn("invalid source payload", "error", err)
		_ = msg.Ack()
		return
	}

	source := ontology.NewEntity(payload.EntityID_, payload.SchemaName)
	for _, t := range payload.TripleData {
		source.Add(t.Predicate, t.Object)
	}

	texts, err := entityanalyzerproc.PrepareText(source)
	if err != nil {
		slog.Default().Warn("failed to prepare source text", "entity_id", payload.EntityID_, "error", err)
		_ = msg.Nak()
		return
	}

	run, err := a.analyzer.NewRun(ctx, source)
	if err != nil {
		slog.Default().Error("failed to start run", "entity_id", payload.EntityID_, "error", err)
		_ = msg.Nak()
		return
	}
	for _, text := range texts {
		run.Feed(ctx, text)
	}

	result, err := run.Flush(ctx)
	if err != nil {
		slog.Default().Error("failed to flush run", "entity_id", payload.EntityID_, "error", err)
		_ = msg.Nak()
		return
	}

	if err := a.publish(ctx, result.Output); err != nil {
		slog.Default().Error("failed to publish output entity", "entity_id", result.Output.ID, "error", err)
		_ = msg.Nak()
		return
	}
	for _, derived := range result.Derived {
		if err := a.publish(ctx, derived); err != nil {
			slog.Default().Error("failed to publish derived entity", "entity_id", derived.ID, "error", err)
		}
	}

	_ = msg.Ack()
}

func (a *App) publish(ctx context.Context, entity *ontology.Entity) error {
	payload := &graph.EntityPayload{
		EntityID_:  entity.ID,
		SchemaName: entity.Schema,
		TripleData: entity.Triples("entity-analyzer"),
		UpdatedAt:  time.Now(),
	}
	msg := message.NewBaseMessage(graph.EntityType, payload, "entity-analyzer")
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = a.js.Publish(ctx, "graph.ingest.entity", data)
	return err
}
