// internal/functions/generate-product/handler.go
package generateproduct

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cardgen/internal/common/config"
	apperrors "cardgen/internal/common/errors"
	"cardgen/internal/common/logger"
	"cardgen/internal/common/metrics"
	"cardgen/internal/common/observability"
	"cardgen/internal/common/validation"
	"cardgen/internal/models"
)

type Handler struct {
	config      *Config
	locale      Locale
	credentials config.CredentialProvider
	newClient   models.ChatClientFactory
	logger      logger.Logger
	errors      *apperrors.ErrorHandler
}

func NewHandler(cfg *Config, credentials config.CredentialProvider, newClient models.ChatClientFactory, log logger.Logger) *Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log = log.With(map[string]interface{}{"function": FunctionName})
	return &Handler{
		config:      cfg,
		locale:      LocaleFor(cfg.Locale),
		credentials: credentials,
		newClient:   newClient,
		logger:      log,
		errors:      apperrors.NewErrorHandler(log),
	}
}

// Handle runs one invocation. It never panics and always returns a response.
func (h *Handler) Handle(ctx context.Context, req models.Request) (resp models.Response) {
	start := time.Now()
	method := req.Method()

	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.ContextWithRequestID(ctx, requestID)
	}
	log := h.logger.With(map[string]interface{}{
		"requestId": requestID,
		"method":    method,
	})

	ctx, span := observability.Tracer(FunctionName).Start(ctx, FunctionName,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("request.id", requestID),
		))

	defer func() {
		if r := recover(); r != nil {
			_, resp = h.errors.ToResponse(panicError(r), map[string]interface{}{
				"requestId": requestID,
				"panic":     true,
			})
		}

		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		if resp.StatusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, resp.Body)
		}
		span.End()

		elapsed := time.Since(start)
		metrics.InvocationsTotal.WithLabelValues(FunctionName, method, strconv.Itoa(resp.StatusCode)).Inc()
		metrics.InvocationDuration.WithLabelValues(FunctionName).Observe(elapsed.Seconds())
		log.Info("invocation finished", map[string]interface{}{
			"statusCode": resp.StatusCode,
			"durationMs": elapsed.Milliseconds(),
		})
	}()

	switch method {
	case http.MethodOptions:
		return models.Response{
			StatusCode: http.StatusOK,
			Headers:    models.PreflightHeaders(),
			Body:       "",
		}
	case http.MethodPost:
	default:
		_, resp = h.errors.ToResponse(apperrors.NewMethodNotAllowedError(method), map[string]interface{}{
			"requestId": requestID,
		})
		return resp
	}

	result, err := h.execute(ctx, req, log)
	if err != nil {
		_, resp = h.errors.ToResponse(err, map[string]interface{}{"requestId": requestID})
		return resp
	}

	resp, err = models.NewJSONResponse(http.StatusOK, models.ProductCard{
		Title:       result.Title,
		Description: result.Description,
	})
	if err != nil {
		_, resp = h.errors.ToResponse(err, map[string]interface{}{"requestId": requestID})
	}
	return resp
}

func (h *Handler) execute(ctx context.Context, req models.Request, log logger.Logger) (*Result, error) {
	payload := decodePayload(req.RawBody(), log)
	name, category, features := payload.Name(), payload.Category(), payload.Features()

	if name == "" || category == "" {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"productName present: %t, productCategory present: %t", name != "", category != ""))
	}

	apiKey := h.credentials.OpenAIKey()
	if apiKey == "" {
		return nil, apperrors.NewConfigurationError()
	}

	chatReq := models.ChatRequest{
		Model:       h.config.Model,
		Messages:    h.locale.messages(h.locale.BuildPrompt(name, category, features)),
		Temperature: h.config.Temperature,
		MaxTokens:   h.config.MaxTokens,
	}

	log.Debug("requesting generation", map[string]interface{}{
		"model":       chatReq.Model,
		"locale":      h.locale.Code,
		"hasFeatures": features != "",
	})

	chatResp, err := h.complete(ctx, apiKey, chatReq)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	card, filled := ApplyFallbacks(ParseCard(text, h.locale), text, name, category, h.locale)
	for _, field := range filled {
		metrics.CardFallbacksTotal.WithLabelValues(field).Inc()
	}
	if len(filled) > 0 {
		log.Info("applied card fallbacks", map[string]interface{}{"fields": filled})
	}

	h.checkQuality(card, log)

	return &Result{
		Title:       card.Title,
		Description: card.Description,
		Fallbacks:   filled,
	}, nil
}

func (h *Handler) complete(ctx context.Context, apiKey string, req models.ChatRequest) (*models.ChatResponse, error) {
	ctx, span := observability.Tracer(FunctionName).Start(ctx, "chat.completion",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.model", req.Model),
			attribute.Int("llm.max_tokens", req.MaxTokens),
		))
	defer span.End()

	resp, err := h.newClient(apiKey).CreateChatCompletion(ctx, req)
	if err == nil && (resp == nil || len(resp.Choices) == 0) {
		err = ErrNoChoices
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("llm.finish_reason", resp.Choices[0].FinishReason))
	return resp, nil
}

// checkQuality records cards outside the intended length bounds. It never
// changes the response.
func (h *Handler) checkQuality(card models.ProductCard, log logger.Logger) {
	result := validation.ValidateCard(card)
	if result.Valid {
		return
	}
	for _, e := range result.Errors {
		metrics.CardQualityViolationsTotal.WithLabelValues(e.Field).Inc()
	}
	log.Warn("generated card outside length bounds", map[string]interface{}{
		"violations": result.Errors,
	})
}

// decodePayload treats a missing or malformed body as an empty payload.
func decodePayload(body string, log logger.Logger) models.ProductPayload {
	var payload models.ProductPayload
	if body == "" {
		return payload
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		log.Debug("request body is not a JSON object", map[string]interface{}{"error": err})
		return models.ProductPayload{}
	}
	return payload
}

func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
