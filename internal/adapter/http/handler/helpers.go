package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status mapDomainError picks for it.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, mapDomainError(err), message, err.Error())
}

var notFoundErrors = []error{
	domain.ErrAccountNotFound,
	domain.ErrTransactionNotFound,
	domain.ErrPayeeNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrRecurringRuleNotFound,
}

var badRequestErrors = []error{
	domain.ErrInvalidAmount,
	domain.ErrInvalidCurrency,
	domain.ErrCurrencyMismatch,
	domain.ErrZeroEntryAmount,
	domain.ErrInvalidTransactionType,
	domain.ErrForeignEntry,
	domain.ErrTooManyEntries,
	domain.ErrUnbalancedTransfer,
	domain.ErrWrongEntryCount,
	domain.ErrWrongEntrySign,
	domain.ErrNonPositiveAmount,
	domain.ErrFutureDate,
	domain.ErrPayeeNotAllowed,
	domain.ErrCategoryNotAllowed,
	domain.ErrPayeeRequired,
	domain.ErrCategoryRequired,
	domain.ErrAmountTooLarge,
	domain.ErrInvalidAccountKind,
	domain.ErrInvalidAccountName,
	domain.ErrInvalidName,
	domain.ErrSameAccount,
	domain.ErrInvalidRange,
	domain.ErrInvalidCadence,
	domain.ErrInvalidRecurringRule,
	domain.ErrInvalidDueDay,
	domain.ErrInvalidShiftDirection,
	domain.ErrYearOutOfRange,
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoPaymentSchedule), errors.Is(err, domain.ErrNoOpenDayFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrInconsistentLedger):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(r *http.Request, key string, defaultValue time.Time) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return domain.Day(defaultValue), nil
	}
	return dto.ParseDate(key, val)
}

// decodeJSON decodes the request body into v and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}
