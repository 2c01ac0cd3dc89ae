package handler

import (
	"errors"
	"net/http"

	"github.com/vqhuy/librarian/data/dto"
	"github.com/vqhuy/librarian/service"
)

func (h *Handler) createBorrowHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateBorrowRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	borrows, err := h.service.CreateBorrow(requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrMemberInactive), errors.Is(err, service.ErrNotAvailable):
			h.conflictResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"borrows": borrows}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showBorrowHandler(w http.ResponseWriter, r *http.Request) {
	borrowID, err := h.readIDParam(r, "borrowId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	borrow, err := h.service.GetBorrow(borrowID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrow": borrow}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listBorrowsHandler(w http.ResponseWriter, r *http.Request) {
	borrows, err := h.service.ListBorrows()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrows": borrows}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listMemberBorrowsHandler(w http.ResponseWriter, r *http.Request) {
	memberID, err := h.readIDParam(r, "memberId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	borrows, err := h.service.ListMemberBorrows(memberID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrows": borrows}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listBookBorrowsHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	borrows, err := h.service.ListBookBorrows(bookID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrows": borrows}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listOverdueBorrowsHandler(w http.ResponseWriter, r *http.Request) {
	borrows, err := h.service.ListOverdueBorrows()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrows": borrows}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) returnBorrowHandler(w http.ResponseWriter, r *http.Request) {
	borrowID, err := h.readIDParam(r, "borrowId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	borrow, err := h.service.ReturnBorrow(borrowID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrAlreadyReturned), errors.Is(err, service.ErrOutstandingDebt):
			h.conflictResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrow": borrow}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateBorrowPaidHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.UpdateBorrowPaidRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	borrowID, err := h.readIDParam(r, "borrowId")
	if err != nil || borrowID < 1 {
		h.notFoundResponse(w, r)
		return
	}
	borrow, err := h.service.UpdateBorrowPaid(borrowID, requestBody)
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
	err = h.encodeJSON(w, http.StatusOK, envelope{"borrow": borrow}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
