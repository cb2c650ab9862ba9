package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// HolidayCalendar is a closed-day calendar that can list its named holidays.
type HolidayCalendar interface {
	domain.Calendar
	Holidays(year int) ([]domain.Holiday, error)
}

// NoOpenDayRecorder counts due-date searches that ran out of open days.
type NoOpenDayRecorder interface {
	RecordNoOpenDayFound()
}

// CalendarHandler exposes the settlement calendar and the due-date engine.
// It has no storage dependency.
type CalendarHandler struct {
	calendar HolidayCalendar
	clock    domain.Clock
	alerts   NoOpenDayRecorder
	logger   zerolog.Logger
}

// CalendarOption configures a CalendarHandler.
type CalendarOption func(*CalendarHandler)

// WithCalendarAlerts reports exhausted due-date searches to recorder and logger.
func WithCalendarAlerts(recorder NoOpenDayRecorder, logger zerolog.Logger) CalendarOption {
	return func(h *CalendarHandler) {
		if recorder != nil {
			h.alerts = recorder
		}
		h.logger = logger
	}
}

// NewCalendarHandler creates a CalendarHandler. A nil calendar means TARGET2.
func NewCalendarHandler(calendar HolidayCalendar, opts ...CalendarOption) *CalendarHandler {
	if calendar == nil {
		calendar = domain.Target2Calendar{}
	}
	h := &CalendarHandler{
		calendar: calendar,
		clock:    domain.SystemClock{},
		alerts:   usecase.NopMetrics{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Easter returns Easter Sunday of {year}.
func (h *CalendarHandler) Easter(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	easter, err := domain.EasterSunday(year)
	if err != nil {
		writeDomainError(w, "failed to compute easter", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DateResponse{Date: easter.Format(domain.DateLayout)})
}

// Holidays lists the named closed days of {year}.
func (h *CalendarHandler) Holidays(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	holidays, err := h.calendar.Holidays(year)
	if err != nil {
		writeDomainError(w, "failed to list holidays", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"year": year, "holidays": dto.HolidaysFromDomain(holidays)})
}

// Closed tells whether ?date is closed for settlement.
func (h *CalendarHandler) Closed(w http.ResponseWriter, r *http.Request) {
	day, err := parseDateQuery(r, "date", h.clock.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	closed, err := h.calendar.IsClosed(day)
	if err != nil {
		writeDomainError(w, "failed to check date", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClosedDayResponse{Date: day.Format(domain.DateLayout), Closed: closed})
}

// DueDate computes the next due date for ?day and ?shift on or after ?from.
func (h *CalendarHandler) DueDate(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(r.URL.Query().Get("day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day", "day must be an integer between 1 and 28")
		return
	}

	shift, err := domain.ParseShiftDirection(r.URL.Query().Get("shift"))
	if err != nil {
		writeDomainError(w, "invalid shift", err)
		return
	}

	from, err := parseDateQuery(r, "from", h.clock.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}

	schedule, err := domain.NewExpectedPaymentDueDate(day, shift)
	if err != nil {
		writeDomainError(w, "invalid schedule", err)
		return
	}

	due, err := schedule.WithCalendar(h.calendar).NextDueDate(from)
	if errors.Is(err, domain.ErrNoOpenDayFound) {
		h.alerts.RecordNoOpenDayFound()
		h.logger.Error().
			Err(err).
			Int("due_day", day).
			Str("shift", string(shift)).
			Str("from", from.Format(domain.DateLayout)).
			Msg("closed-day calendar exhausted")
	}
	if err != nil {
		writeDomainError(w, "failed to compute due date", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DateResponse{Date: due.Format(domain.DateLayout)})
}

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err.Error())
		return 0, false
	}
	return year, true
}
