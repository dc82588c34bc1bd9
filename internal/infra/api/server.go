package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"vendor-subscription-checkout/internal/domain"
	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/infra/logging"
	"vendor-subscription-checkout/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// webhookBodyLimit caps the raw webhook payload read before verification.
const webhookBodyLimit = 1 << 20

// Options carries the HTTP-level settings of the server.
type Options struct {
	// TrustProxy honours X-Forwarded-Proto / X-Forwarded-Host for redirect URLs.
	TrustProxy  bool
	CORSOrigins []string
}

// Server wires the checkout, webhook and sales routes to their use cases.
type Server struct {
	checkoutUC usecase.CheckoutUseCase
	webhookUC  usecase.WebhookUseCase
	salesUC    usecase.SalesUseCase
	opts       Options
	log        *zerolog.Logger
}

func NewServer(
	checkoutUC usecase.CheckoutUseCase,
	webhookUC usecase.WebhookUseCase,
	salesUC usecase.SalesUseCase,
	opts Options,
	logger *zerolog.Logger,
) *Server {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{
		checkoutUC: checkoutUC,
		webhookUC:  webhookUC,
		salesUC:    salesUC,
		opts:       opts,
		log:        logger,
	}
}

// Router builds the chi router with all routes and global middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(s.log), TraceID(), RequestLog(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusOK, "OK")
	})
	r.Handle("/metrics", promhttp.Handler())

	// Stripe posts server-to-server; no CORS on the webhook.
	r.Post("/api/webhook-stripe", s.handleWebhook)

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Post("/api/create-subscription-session", s.handleCreateSession)
		r.Get("/api/vendor-sales-status", s.handleSalesStatus)
		// group middleware only runs on a matched method, so preflights need a route
		r.Options("/api/create-subscription-session", noContent)
		r.Options("/api/vendor-sales-status", noContent)
	})

	r.Get("/success", s.handleSuccess)
	r.Get("/cancel", s.handleCancel)
	return r
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Error: "Invalid request body"})
		return
	}

	session, err := s.checkoutUC.CreateSession(r.Context(), req, s.baseURL(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: usecase.FailureMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, SessionID: session.ID})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, webhookBodyLimit)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		logging.With(r.Context(), s.log).Warn().Err(err).Msg("webhook body unreadable")
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Error: "Invalid request body"})
		return
	}

	outcome, err := s.webhookUC.Handle(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	switch {
	case errors.Is(err, domain.ErrInvalidSignature):
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Error: "Invalid signature"})
		return
	case errors.Is(err, domain.ErrInvalidPayload):
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Error: "Invalid event payload"})
		return
	case err != nil:
		// non-2xx makes Stripe redeliver
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "Failed to record subscription"})
		return
	}

	switch outcome {
	case usecase.OutcomeActivated:
		writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Subscription activated"})
	case usecase.OutcomePaymentFailed:
		// The event was processed; the payment it describes failed.
		writeJSON(w, http.StatusOK, apiResponse{Success: false, Error: "Payment failed"})
	default:
		writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Event ignored"})
	}
}

func (s *Server) handleSalesStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.salesUC.VendorSalesStatus(r.Context(), r.URL.Query().Get("vendorId"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "Failed to get sales status"})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSuccess(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Success! Session: "+r.URL.Query().Get("session_id"))
}

func (s *Server) handleCancel(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "Payment canceled")
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// baseURL returns scheme://host of the current request.
func (s *Server) baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host
	if s.opts.TrustProxy {
		if p := firstHeaderValue(r.Header.Get("X-Forwarded-Proto")); p != "" {
			scheme = strings.ToLower(p)
		}
		if h := firstHeaderValue(r.Header.Get("X-Forwarded-Host")); h != "" {
			host = h
		}
	}
	return scheme + "://" + host
}

func firstHeaderValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
