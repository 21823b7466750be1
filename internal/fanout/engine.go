package fanout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/anonto42/hooly/backend/internal/envelope"
	"github.com/anonto42/hooly/backend/internal/models"
)

// Directory resolves profiles to their accounts.
type Directory interface {
	UsersByProfileIDs(ctx context.Context, profileIDs []uint) ([]models.User, error)
}

// Notifier hands a composed alert over for delivery to a user. Implementations
// used on the request path should only queue the alert.
type Notifier interface {
	Notify(ctx context.Context, recipient models.User, actor models.User, alert Alert) error
}

// Options tune a single fan-out.
type Options struct {
	// Action selects the notification sent to recipients; ActionNone sends none.
	Action Action
	// EchoActor also syncs the change back to the actor.
	EchoActor bool
	// Extra is merged into the sync envelope data.
	Extra map[string]any
}

// Report summarizes a fan-out.
type Report struct {
	Found      bool
	Recipients []uint
	Records    []models.SyncRecord
	Enqueued   int
	Notified   int
	Failures   int
}

// Engine runs the full fan-out pipeline for one change.
type Engine struct {
	resolver    *Resolver
	issuer      *Issuer
	composer    Composer
	dispatcher  *Dispatcher
	directory   Directory
	notifier    Notifier
	concurrency int
	logger      *slog.Logger
}

// NewEngine wires an engine. notifier may be nil to disable push notifications.
func NewEngine(resolver *Resolver, issuer *Issuer, dispatcher *Dispatcher, directory Directory, notifier Notifier, concurrency int, logger *slog.Logger) *Engine {
	if concurrency < 1 {
		concurrency = 8
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		resolver:    resolver,
		issuer:      issuer,
		dispatcher:  dispatcher,
		directory:   directory,
		notifier:    notifier,
		concurrency: concurrency,
		logger:      logger.With("component", "fanout"),
	}
}

// Fanout propagates a change of ref made by actor. Sync records are stored
// before it returns; deliveries are only enqueued. A failure for one recipient
// is logged and counted without affecting the others. A missing target yields
// a report with Found false and no error.
func (e *Engine) Fanout(ctx context.Context, actor models.User, ref Ref, opts Options) (Report, error) {
	start := time.Now()
	ctx, span := otel.Tracer("hooly/fanout").Start(ctx, "fanout")
	defer span.End()
	span.SetAttributes(
		attribute.String("media.type", string(ref.Type)),
		attribute.String("media.id", ref.ID),
		attribute.Int("actor.profile_id", int(actor.ProfileID)),
	)
	defer func() {
		fanoutDuration.WithLabelValues(string(ref.Type)).Observe(time.Since(start).Seconds())
	}()

	res, err := e.resolver.Resolve(ctx, ref, actor.ProfileID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve failed")
		return Report{}, envelope.NewPersistence("could not resolve recipients", err)
	}
	if !res.Found() {
		return Report{}, nil
	}

	report := Report{Found: true, Recipients: res.Recipients}
	users, err := e.audience(ctx, actor, res.Recipients, opts.EchoActor)
	if err != nil {
		span.RecordError(err)
		return report, envelope.NewPersistence("could not load recipients", err)
	}
	span.SetAttributes(attribute.Int("fanout.recipients", len(users)))

	// Recipients already resolved are synced even if the caller goes away.
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	g.SetLimit(e.concurrency)
	for _, user := range users {
		g.Go(func() error {
			out := e.deliver(gctx, actor, user, res.Target, opts)
			mu.Lock()
			defer mu.Unlock()
			if out.record != nil {
				report.Records = append(report.Records, *out.record)
			}
			report.Enqueued += out.enqueued
			if out.notified {
				report.Notified++
			}
			report.Failures += out.failures
			return nil
		})
	}
	_ = g.Wait()

	if report.Failures > 0 {
		span.SetAttributes(attribute.Int("fanout.failures", report.Failures))
	}
	e.logger.InfoContext(ctx, "fanout complete",
		"media", ref.String(),
		"actor_profile_id", actor.ProfileID,
		"recipients", len(users),
		"records", len(report.Records),
		"enqueued", report.Enqueued,
		"failures", report.Failures,
	)
	return report, nil
}

// audience loads the accounts of recipients, with the actor first when echoed.
// Profiles without an account are skipped.
func (e *Engine) audience(ctx context.Context, actor models.User, recipients []uint, echo bool) ([]models.User, error) {
	var users []models.User
	if echo {
		users = append(users, actor)
	}
	if len(recipients) == 0 {
		return users, nil
	}
	found, err := e.directory.UsersByProfileIDs(ctx, recipients)
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		if u.ProfileID == actor.ProfileID {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

type outcome struct {
	record   *models.SyncRecord
	enqueued int
	notified bool
	failures int
}

func (e *Engine) deliver(ctx context.Context, actor, user models.User, target *Target, opts Options) outcome {
	var out outcome
	log := e.logger.With("media", target.Ref.String(), "recipient_profile_id", user.ProfileID)

	record, err := e.issuer.Issue(ctx, target, user.ProfileID)
	if err != nil {
		fanoutFailures.WithLabelValues("issue").Inc()
		log.ErrorContext(ctx, "sync record not issued", "error", err)
		out.failures++
		return out
	}
	out.record = &record
	syncRecordsIssued.WithLabelValues(string(target.Type)).Inc()

	env := envelope.Sync(syncMessage(target.Type), syncData(target, record.SyncToken, opts.Extra))
	n, err := e.dispatcher.Dispatch(ctx, user.ID, target.Ref, env)
	out.enqueued = n
	deliveriesEnqueued.WithLabelValues(string(target.Type)).Add(float64(n))
	if err != nil {
		fanoutFailures.WithLabelValues("dispatch").Inc()
		log.WarnContext(ctx, "delivery not enqueued", "error", err)
		out.failures++
	}

	if user.ProfileID == actor.ProfileID || e.notifier == nil {
		return out
	}
	kind, ok := opts.Action.Kind(user.ProfileID == target.OwnerID)
	if !ok {
		return out
	}
	alert := e.composer.Compose(actor, kind, target.Ref)
	if err := e.notifier.Notify(ctx, user, actor, alert); err != nil {
		fanoutFailures.WithLabelValues("notify").Inc()
		log.WarnContext(ctx, "notification not sent", "error", err)
		out.failures++
		return out
	}
	out.notified = true
	return out
}

func syncMessage(t models.MediaType) string {
	return fmt.Sprintf("%ss", t)
}

func syncData(target *Target, token string, extra map[string]any) map[string]any {
	key := "events"
	if target.Type == models.MediaPost {
		key = "posts"
	}
	data := map[string]any{
		key:          []any{target.View},
		"sync_token": token,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
