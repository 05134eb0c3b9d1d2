package bot

import (
	"context"

	"github.com/lojasmm/calbot/internal/line"
	"github.com/lojasmm/calbot/internal/logger"
	"github.com/lojasmm/calbot/internal/metrics"
	"github.com/lojasmm/calbot/internal/nutrition"
	"github.com/lojasmm/calbot/internal/session"
	"github.com/lojasmm/calbot/internal/store"
)

// EventFunc handles one inbound event of a given kind.
type EventFunc func(ctx context.Context, ev line.Event)

type Handler struct {
	analyzer nutrition.Analyzer
	replier  line.Replier
	store    store.Store
	sessions *session.Manager
	dispatch map[line.EventKind]EventFunc
}

func NewHandler(a nutrition.Analyzer, r line.Replier, s store.Store, sessions *session.Manager) *Handler {
	h := &Handler{
		analyzer: a,
		replier:  r,
		store:    s,
		sessions: sessions,
	}
	h.dispatch = map[line.EventKind]EventFunc{
		line.KindTextMessage: h.handleText,
		line.KindOther:       h.ignore,
	}
	return h
}

// HandleEvent is the line.EventHandler for verified webhook deliveries.
func (h *Handler) HandleEvent(ctx context.Context, ev line.Event) {
	kind := ev.Kind()
	metrics.WebhookEvents.WithLabelValues(kind.String()).Inc()

	fn, ok := h.dispatch[kind]
	if !ok {
		fn = h.ignore
	}
	h.sessions.WithLock(ev.Source.UserID, func() {
		fn(ctx, ev)
	})
}

func (h *Handler) ignore(ctx context.Context, ev line.Event) {
	logger.FromContext(ctx).Debug().
		Str("event_type", ev.Type).
		Str("event_id", ev.WebhookEventID).
		Msg("bot: ignoring non-text event")
}

func (h *Handler) handleText(ctx context.Context, ev line.Event) {
	log := logger.FromContext(ctx)

	first, err := h.store.MarkProcessed(ev.WebhookEventID)
	if err != nil {
		// the event is still answered when the store is unavailable
		log.Err(err).Str("event_id", ev.WebhookEventID).Msg("bot: dedupe store error")
	} else if !first {
		log.Info().
			Str("event_id", ev.WebhookEventID).
			Bool("redelivery", ev.DeliveryContext.IsRedelivery).
			Msg("bot: event already answered, skipping")
		return
	}

	reply := h.analyze(ctx, ev.Text())

	if err := h.replier.Reply(ctx, ev.ReplyToken, reply); err != nil {
		metrics.LineReplies.WithLabelValues("error").Inc()
		log.Err(err).Str("user_id", ev.Source.UserID).Msg("bot: failed to send reply")
		return
	}
	metrics.LineReplies.WithLabelValues("ok").Inc()
}

// analyze runs one lookup and turns its result into reply text.
func (h *Handler) analyze(ctx context.Context, text string) string {
	foods, err := h.analyzer.Analyze(ctx, text)

	outcome := nutrition.Outcome(foods, err)
	metrics.NutritionRequests.WithLabelValues(outcome).Inc()

	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn().Err(err).Str("outcome", outcome).Msg("bot: nutrition lookup failed")
	} else {
		log.Info().Str("outcome", outcome).Int("items", len(foods)).Msg("bot: nutrition lookup")
	}

	return nutrition.BuildReply(foods, err)
}
