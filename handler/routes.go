package handler

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()

	router.NotFound(h.notFoundResponse)
	router.MethodNotAllowed(h.methodNotAllowed)

	router.Route("/api/books", func(r chi.Router) {
		r.Get("/", h.listBooksHandler)
		r.Post("/", h.createBookHandler)
		r.Get("/search", h.searchBooksHandler)
		r.Get("/{bookId}", h.showBookHandler)
		r.Put("/{bookId}", h.updateBookHandler)
		r.Delete("/{bookId}", h.deleteBookHandler)
		r.Patch("/{bookId}/cover", h.updateBookCoverHandler)
		r.Get("/{bookId}/copies", h.listBookCopiesHandler)
		r.Post("/{bookId}/copies", h.createBookCopiesHandler)
	})
	router.Patch("/api/book-copies/{copyId}", h.updateBookCopyHandler)

	router.Route("/api/members", func(r chi.Router) {
		r.Get("/", h.listMembersHandler)
		r.Post("/", h.createMemberHandler)
		r.Get("/search", h.searchMembersHandler)
		r.Get("/{memberId}", h.showMemberHandler)
		r.Put("/{memberId}", h.updateMemberHandler)
		r.Delete("/{memberId}", h.deleteMemberHandler)
		r.Get("/{memberId}/stats", h.showMemberStatsHandler)
	})

	router.Route("/api/borrows", func(r chi.Router) {
		r.Get("/", h.listBorrowsHandler)
		r.Post("/", h.createBorrowHandler)
		r.Get("/overdue", h.listOverdueBorrowsHandler)
		r.Get("/member/{memberId}", h.listMemberBorrowsHandler)
		r.Get("/book/{bookId}", h.listBookBorrowsHandler)
		r.Get("/{borrowId}", h.showBorrowHandler)
		r.Put("/{borrowId}/return", h.returnBorrowHandler)
		r.Patch("/{borrowId}/update-paid", h.updateBorrowPaidHandler)
	})

	router.Route("/api/fine-receipts", func(r chi.Router) {
		r.Get("/", h.listFineReceiptsHandler)
		r.Post("/", h.createFineReceiptHandler)
		r.Get("/unpaid", h.listUnpaidFineReceiptsHandler)
		r.Get("/stats", h.showFineReceiptStatsHandler)
		r.Get("/member/{memberId}", h.listMemberFineReceiptsHandler)
		r.Get("/{receiptId}", h.showFineReceiptHandler)
		r.Put("/{receiptId}", h.updateFineReceiptHandler)
	})

	router.Route("/api/rules", func(r chi.Router) {
		r.Get("/", h.listRulesHandler)
		r.Post("/", h.createRuleHandler)
		r.Get("/active", h.listActiveRulesHandler)
		r.Get("/name/{name}", h.showRuleByNameHandler)
		r.Get("/{ruleId}", h.showRuleHandler)
		r.Put("/{ruleId}", h.updateRuleHandler)
		r.Delete("/{ruleId}", h.deleteRuleHandler)
	})

	router.Route("/api/reports", func(r chi.Router) {
		r.Get("/", h.listReportsHandler)
		r.Post("/", h.createReportHandler)
		r.Get("/type/{type}", h.listReportsByTypeHandler)
		r.Get("/date-range", h.listReportsByDateRangeHandler)
		r.Get("/borrow-stats", h.showBorrowStatsHandler)
		r.Get("/late-return-stats", h.showLateReturnStatsHandler)
		r.Get("/{reportId}", h.showReportHandler)
		r.Put("/{reportId}", h.updateReportHandler)
		r.Delete("/{reportId}", h.deleteReportHandler)
	})

	router.Get("/api/healthcheck", h.healthcheckHandler)
	router.Get("/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	// Swagger routes
	router.Get("/spec", h.handleSwaggerFile())
	router.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.recoverPanic(h.enableCORS(h.rateLimit(h.metrics(router))))
}
