package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortization/internal/currency"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/output"
	"github.com/iwvelando/loan-amortization/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	generator      *amortization.Generator
	resolver       *currency.Resolver
	limiter        *rateLimiter
	proxies        TrustedProxies
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// amortization API. A nil resolver always reports the default currency symbol.
// Forwarding headers are honoured only on requests arriving from proxies.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string, resolver *currency.Resolver, limits RateLimitConfig, proxies TrustedProxies) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		generator:      amortization.NewGenerator(logger),
		resolver:       resolver,
		limiter:        newRateLimiter(limits),
		proxies:        proxies,
	}

	mux := http.NewServeMux()

	// Schedule calculation for the web form
	mux.HandleFunc("/calculate", h.rateLimited(h.handleCalculate))

	// Downloadable schedule export
	mux.HandleFunc("/api/export", h.rateLimited(h.handleExport))

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type calculateResponse struct {
	amortization.Comparison
	CurrencySymbol string   `json:"currency_symbol"`
	Warnings       []string `json:"warnings,omitempty"`
}

// loanRequest is the JSON form of a calculation request. Field names match
// the web form.
type loanRequest struct {
	PurchasePrice   *float64 `json:"purchase_price"`
	InterestRate    *float64 `json:"interest_rate"`
	DownPayment     *float64 `json:"down_payment"`
	LoanTerm        *int     `json:"loan_term"`
	StartDate       string   `json:"start_date"`
	CustomRepayment *float64 `json:"custom_repayment"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	in, err := h.readLoanInput(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	comparison, err := h.generator.Compare(r.Context(), in)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	response := calculateResponse{
		Comparison:     comparison,
		CurrencySymbol: h.resolver.Symbol(r.Context(), h.proxies.ClientIP(r)),
		Warnings:       validation.ValidateLoan(in),
	}

	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("periods", comparison.Original.Months()),
		zap.String("currency_symbol", response.CurrencySymbol),
		zap.Duration("duration", time.Since(start)),
	}
	if comparison.Difference != nil {
		fields = append(fields, zap.Int("months_diff", comparison.Difference.MonthsDiff))
	}
	h.logger.Info("amortization computed", fields...)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = constants.OutputFormatCSV
	}
	if err := validation.ValidateExportFormat(format); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	in, err := h.readLoanInput(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	comparison, err := h.generator.Compare(r.Context(), in)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	var body, contentType string
	switch format {
	case constants.OutputFormatYAML:
		body, err = output.YAMLString(comparison)
		contentType = "application/yaml"
	default:
		body, err = output.CsvString(comparison)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render export: %v", err), op)
		return
	}

	filename := fmt.Sprintf("amortization-%s.%s", in.StartDate.String(), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		h.logger.Error("failed to write export",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.allow(h.proxies.ClientIP(r)) {
			w.Header().Set("Retry-After", h.limiter.retryAfter())
			h.respondErrorWithOp(w, http.StatusTooManyRequests, "rate limit exceeded", "server.rateLimited")
			return
		}
		next(w, r)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// readLoanInput decodes the loan parameters from a JSON body or from form
// fields, depending on the request content type.
func (h *handler) readLoanInput(w http.ResponseWriter, r *http.Request) (amortization.Input, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		var req loanRequest
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return amortization.Input{}, err
			}
			return amortization.Input{}, amortization.NewInvalidInputError("", "failed to decode request: %v", err)
		}
		return req.toInput()
	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.maxRequestSize); err != nil {
			return amortization.Input{}, formError(err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return amortization.Input{}, formError(err)
		}
	}
	return formInput(r)
}

func formError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return amortization.NewInvalidInputError("", "failed to parse form: %v", err)
}

func formInput(r *http.Request) (amortization.Input, error) {
	var req loanRequest
	var err error

	if req.PurchasePrice, err = formFloat(r, "purchase_price"); err != nil {
		return amortization.Input{}, err
	}
	if req.InterestRate, err = formFloat(r, "interest_rate"); err != nil {
		return amortization.Input{}, err
	}
	if req.DownPayment, err = formFloat(r, "down_payment"); err != nil {
		return amortization.Input{}, err
	}
	if req.CustomRepayment, err = formFloat(r, "custom_repayment"); err != nil {
		return amortization.Input{}, err
	}
	if raw := strings.TrimSpace(r.FormValue("loan_term")); raw != "" {
		term, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return amortization.Input{}, amortization.NewInvalidInputError("loan_term", "%q is not a whole number of years", raw)
		}
		req.LoanTerm = &term
	}
	req.StartDate = r.FormValue("start_date")

	return req.toInput()
}

// formFloat returns nil for an absent or blank field.
func formFloat(r *http.Request, field string) (*float64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, amortization.NewInvalidInputError(field, "%q is not a number", raw)
	}
	return &value, nil
}

func (req loanRequest) toInput() (amortization.Input, error) {
	if req.PurchasePrice == nil {
		return amortization.Input{}, amortization.NewInvalidInputError("purchase_price", "is required")
	}
	if req.InterestRate == nil {
		return amortization.Input{}, amortization.NewInvalidInputError("interest_rate", "is required")
	}
	if req.LoanTerm == nil {
		return amortization.Input{}, amortization.NewInvalidInputError("loan_term", "is required")
	}

	startDate, err := datetime.ParseDate(req.StartDate)
	if err != nil {
		return amortization.Input{}, amortization.NewInvalidInputError("start_date", "%v", err)
	}

	in := amortization.Input{
		PurchasePrice: *req.PurchasePrice,
		InterestRate:  *req.InterestRate,
		TermYears:     *req.LoanTerm,
		StartDate:     startDate,
	}
	if req.DownPayment != nil {
		in.DownPayment = *req.DownPayment
	}
	if req.CustomRepayment != nil {
		in = in.WithCustom(*req.CustomRepayment)
	}

	if err := amortization.Validate(in); err != nil {
		return amortization.Input{}, err
	}
	return in, nil
}

// respondRequestError maps input errors to 400, oversized bodies to 413 and
// everything else to 500.
func (h *handler) respondRequestError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
	case errors.Is(err, amortization.ErrInvalidInput):
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
	default:
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to compute schedule: %v", err), op)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	log := h.logger.Error
	if status < http.StatusInternalServerError {
		log = h.logger.Warn
	}
	log("amortization request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before sending the status so an encoding failure
// can still be reported as a 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
