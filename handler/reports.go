package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jellydator/ttlcache/v3"
	"github.com/vqhuy/librarian/data/dto"
	"github.com/vqhuy/librarian/service"
)

func (h *Handler) createReportHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateReportRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	report, err := h.service.CreateReport(requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/reports/%d", report.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"report": report}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showReportHandler(w http.ResponseWriter, r *http.Request) {
	reportID, err := h.readIDParam(r, "reportId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	report, err := h.service.GetReport(reportID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"report": report}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listReportsHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"reports": reports}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listReportsByTypeHandler(w http.ResponseWriter, r *http.Request) {
	reportType := chi.URLParam(r, "type")
	reports, err := h.service.ListReportsByType(reportType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"reports": reports}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listReportsByDateRangeHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	start, err := time.Parse("2006-01-02", h.readString(qs, "start", ""))
	if err != nil {
		h.badRequestResponse(w, r, errors.New("start must be a date in YYYY-MM-DD format"))
		return
	}
	end, err := time.Parse("2006-01-02", h.readString(qs, "end", ""))
	if err != nil {
		h.badRequestResponse(w, r, errors.New("end must be a date in YYYY-MM-DD format"))
		return
	}
	reports, err := h.service.ListReportsByDateRange(start, end)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"reports": reports}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateReportHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.UpdateReportRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	reportID, err := h.readIDParam(r, "reportId")
	if err != nil || reportID < 1 {
		h.notFoundResponse(w, r)
		return
	}
	report, err := h.service.UpdateReport(reportID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"report": report}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteReportHandler(w http.ResponseWriter, r *http.Request) {
	reportID, err := h.readIDParam(r, "reportId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteReport(reportID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "report successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showBorrowStatsHandler(w http.ResponseWriter, r *http.Request) {
	month := h.readString(r.URL.Query(), "month", "")
	// Check whether the month's stats are found in cache
	cached := h.cache.Get(month)
	if cached == nil {
		// If the stats are not found, compute them and set to cache
		stats, err := h.service.GetBorrowStats(month)
		if err != nil {
			h.serverErrorResponse(w, r, err)
			return
		}
		h.cache.Set(month, stats, ttlcache.DefaultTTL)
		cached = h.cache.Get(month)
	}
	err := h.encodeJSON(w, http.StatusOK, envelope{"stats": cached.Value()}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showLateReturnStatsHandler(w http.ResponseWriter, r *http.Request) {
	date := h.readString(r.URL.Query(), "date", "")
	stats, err := h.service.GetLateReturnStats(date)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"stats": stats}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
