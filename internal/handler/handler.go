// Package handler implements the webhook processing pipeline: authentication, schema validation and event dispatch.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/bitego/snipcart-webhook-app/internal/helpers"
	"github.com/bitego/snipcart-webhook-app/internal/metrics"
	"github.com/bitego/snipcart-webhook-app/internal/models"
	"github.com/bitego/snipcart-webhook-app/internal/snipcart"
	"github.com/bitego/snipcart-webhook-app/internal/taxes"
	"github.com/bitego/snipcart-webhook-app/internal/validation"
	"github.com/bitego/snipcart-webhook-app/internal/webhook/event"
)

// TaxProviderIntegrated is the provider value for which the tax calculation
// handler actually computes. Any other provider short-circuits to 204.
const TaxProviderIntegrated = "integrated"

// Option is a function that applies an option to a Handler.
type Option func(*Handler)

// HandlerFunc processes one validated webhook payload and commits the response.
type HandlerFunc func(ctx context.Context, payload *models.Payload) (models.Response, error)

// Observer is a post-hoc extension point. Observers run after the base
// handler has committed its status and body; they may observe but not
// intercept the response.
type Observer func(evt event.Type, payload *models.Payload, response models.Response)

// Handler drives one webhook request through authentication, payload
// validation and event dispatch. It holds no per-request state and is safe
// for concurrent use.
type Handler struct {
	ctx            context.Context
	logger         *slog.Logger
	snipcartClient *snipcart.Client
	authenticator  *validation.RequestAuthenticator
	validator      *validation.PayloadValidator
	taxEngine      *taxes.Engine
	taxProvider    string
	localDev       bool
	routes         map[event.Type]HandlerFunc
	routeOverrides map[event.Type]HandlerFunc
	observers      []Observer
}

// NewWebhookHandler creates a webhook handler with the default event routes.
func NewWebhookHandler(options ...Option) (*Handler, error) {
	_inst := &Handler{
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		taxProvider: TaxProviderIntegrated,
	}
	for _, opt := range options {
		opt(_inst)
	}

	if _inst.ctx == nil {
		_inst.ctx = context.Background()
	}
	if _inst.snipcartClient == nil {
		_inst.snipcartClient = snipcart.NewClient(
			snipcart.WithLogger(_inst.logger.With("component", "snipcart-client")))
	}
	if _inst.taxEngine == nil {
		_inst.taxEngine = taxes.NewEngine(nil,
			taxes.WithLogger(_inst.logger.With("component", "tax-engine")))
	}

	_inst.authenticator = validation.NewRequestAuthenticator(_inst.snipcartClient,
		validation.WithLogger(_inst.logger.With("component", "authenticator")),
		validation.WithLocalDevelopment(_inst.localDev))
	_inst.validator = validation.NewPayloadValidator(
		validation.WithPayloadLogger(_inst.logger.With("component", "payload-validator")))
	_inst.routes = _inst.defaultRoutes()
	for evt, fn := range _inst.routeOverrides {
		if fn == nil {
			delete(_inst.routes, evt)
			continue
		}
		_inst.routes[evt] = fn
	}

	return _inst, nil
}

// RegisterObserver appends a post-hoc observer invoked after every dispatched handler.
func (h *Handler) RegisterObserver(obs Observer) {
	h.observers = append(h.observers, obs)
}

// Process drives one inbound request through the pipeline and returns the
// response to emit. Headers are expected with lower-cased keys.
func (h *Handler) Process(req models.Request) (models.Response, error) {
	logger := h.logger.With(slog.String("deliveryId", uuid.NewString()))
	logger.Info("processing request...")

	if err := h.authenticator.Authenticate(h.ctx, req.Method, req.Headers); err != nil {
		logger.Warn("request rejected", slog.Any("error", err))
		logger.Debug("rejected request detail",
			slog.Any("headers", req.Headers),
			slog.String("body", helpers.Truncate(string(req.Body), 1024)))
		metrics.WebhookRejections.WithLabelValues("authentication").Inc()
		return models.Response{StatusCode: http.StatusNotFound}, err
	}

	evt, payload, err := h.validator.Validate(req.Body)
	if err != nil {
		logger.Warn("payload rejected", slog.Any("error", err))
		logger.Debug("rejected payload detail", slog.String("body", helpers.Truncate(string(req.Body), 1024)))
		metrics.WebhookRejections.WithLabelValues("schema").Inc()
		return models.Response{StatusCode: http.StatusBadRequest}, err
	}

	logger = logger.With(slog.String("event", string(evt)), slog.String("mode", string(payload.Mode)))

	fn, bound := h.routes[evt]
	if !bound {
		logger.Error("no handler bound for recognized event")
		metrics.WebhookRejections.WithLabelValues("unbound").Inc()
		return models.Response{StatusCode: http.StatusInternalServerError}, &UnboundHandlerError{Event: string(evt)}
	}

	response, err := fn(h.ctx, payload)
	if err != nil {
		var precondition *taxes.PreconditionError
		if errors.As(err, &precondition) {
			logger.Warn("handler rejected payload content", slog.Any("error", err))
			response = models.Response{StatusCode: http.StatusBadRequest}
		} else {
			logger.Error("handler failed", slog.Any("error", err))
			response = models.Response{StatusCode: http.StatusInternalServerError}
		}
	}

	for _, obs := range h.observers {
		obs(evt, payload, response)
	}

	metrics.WebhookRequests.WithLabelValues(string(evt), strconv.Itoa(response.StatusCode)).Inc()
	logger.Info("request processed", slog.Int("status", response.StatusCode))
	return response, err
}
