package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vqhuy/librarian/data/dto"
	"github.com/vqhuy/librarian/service"
)

func (h *Handler) createFineReceiptHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateFineReceiptRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	receipt, err := h.service.CreateFineReceipt(requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/fine-receipts/%d", receipt.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"fine_receipt": receipt}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showFineReceiptHandler(w http.ResponseWriter, r *http.Request) {
	receiptID, err := h.readIDParam(r, "receiptId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	receipt, err := h.service.GetFineReceipt(receiptID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"fine_receipt": receipt}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listFineReceiptsHandler(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.service.ListFineReceipts()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"fine_receipts": receipts}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listMemberFineReceiptsHandler(w http.ResponseWriter, r *http.Request) {
	memberID, err := h.readIDParam(r, "memberId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	receipts, err := h.service.ListMemberFineReceipts(memberID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"fine_receipts": receipts}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listUnpaidFineReceiptsHandler(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.service.ListUnpaidFineReceipts()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"fine_receipts": receipts}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateFineReceiptHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.UpdateFineReceiptRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	receiptID, err := h.readIDParam(r, "receiptId")
	if err != nil || receiptID < 1 {
		h.notFoundResponse(w, r)
		return
	}
	receipt, err := h.service.UpdateFineReceipt(receiptID, requestBody)
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
	err = h.encodeJSON(w, http.StatusOK, envelope{"fine_receipt": receipt}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showFineReceiptStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetFineReceiptStats()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"stats": stats}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
