package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"noteup/internal/core"
	"noteup/internal/ledger"
	"noteup/internal/report"
)

// recordView is the wire shape of one transaction. Amount stays raw with a
// currency tag; Display carries the formatted string for table rendering.
type recordView struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Kind     string `json:"kind"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
	Note     string `json:"note,omitempty"`
	Display  string `json:"display"`
}

func viewOf(r core.Record) recordView {
	return recordView{
		ID:       r.ID,
		Date:     r.Date.String(),
		Kind:     string(r.Kind),
		Amount:   r.Amount,
		Currency: r.Currency,
		Note:     r.Note,
		Display:  displayAmount(r.Amount, r.Currency),
	}
}

type createRequest struct {
	Date     string      `json:"date"`
	Kind     string      `json:"kind"`
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
	Note     string      `json:"note"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := draftFrom(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	rec, err := s.ledger.Create(r.Context(), draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(rec))
}

func draftFrom(req createRequest) (core.Record, error) {
	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		return core.Record{}, err
	}
	if req.Date == "" {
		return core.Record{}, core.ErrMissingDate
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Record{}, core.ErrMissingDate
	}
	amount, err := core.ParseAmount(req.Amount.String())
	if err != nil {
		return core.Record{}, err
	}
	return core.Record{
		Date:     date,
		Kind:     kind,
		Amount:   amount,
		Currency: req.Currency,
		Note:     req.Note,
	}, nil
}

type patchRequest struct {
	Date     *string      `json:"date"`
	Kind     *string      `json:"kind"`
	Amount   *json.Number `json:"amount"`
	Currency *string      `json:"currency"`
	Note     *string      `json:"note"`
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch, err := patchFrom(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	rec, err := s.ledger.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(rec))
}

func patchFrom(req patchRequest) (ledger.Patch, error) {
	var p ledger.Patch
	if req.Date != nil {
		date, err := core.ParseDate(*req.Date)
		if err != nil {
			return ledger.Patch{}, core.ErrMissingDate
		}
		p.Date = &date
	}
	if req.Kind != nil {
		kind, err := core.ParseKind(*req.Kind)
		if err != nil {
			return ledger.Patch{}, err
		}
		p.Kind = &kind
	}
	if req.Amount != nil {
		amount, err := core.ParseAmount(req.Amount.String())
		if err != nil {
			return ledger.Patch{}, err
		}
		p.Amount = &amount
	}
	p.Currency = req.Currency
	p.Note = req.Note
	return p, nil
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	deleted, err := s.ledger.Delete(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	pageIndex := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			pageIndex = n
		}
	}

	page := s.ledger.Page(pageIndex)
	items := make([]recordView, 0, len(page.Items))
	for _, rec := range page.Items {
		items = append(items, viewOf(rec))
	}

	writeJSON(w, http.StatusOK, struct {
		Items        []recordView `json:"items"`
		PageIndex    int          `json:"page"`
		TotalPages   int          `json:"totalPages"`
		TotalRecords int          `json:"totalRecords"`
	}{items, page.PageIndex, page.TotalPages, page.TotalRecords})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary := s.ledger.Summary()
	currency := s.ledger.Currency()
	writeJSON(w, http.StatusOK, struct {
		report.Summary
		Currency       string `json:"currency,omitempty"`
		IncomeDisplay  string `json:"incomeDisplay"`
		ExpenseDisplay string `json:"expenseDisplay"`
		BalanceDisplay string `json:"balanceDisplay"`
	}{
		Summary:        summary,
		Currency:       currency,
		IncomeDisplay:  displayAmount(summary.Income, currency),
		ExpenseDisplay: displayAmount(summary.Expense, currency),
		BalanceDisplay: displayAmount(summary.Balance, currency),
	})
}

// handleChart emits the chart data contract: one label axis and
// equal-length numeric series sharing it.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	window, err := report.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	buckets := s.ledger.Chart(window)
	labels := make([]string, len(buckets))
	income := make([]int64, len(buckets))
	expense := make([]int64, len(buckets))
	balance := make([]int64, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Date.String()
		income[i] = b.Income
		expense[i] = b.Expense
		balance[i] = b.Cumulative
	}

	writeJSON(w, http.StatusOK, struct {
		Window   string   `json:"window"`
		Currency string   `json:"currency,omitempty"`
		Labels   []string `json:"labels"`
		Income   []int64  `json:"income"`
		Expense  []int64  `json:"expense"`
		Balance  []int64  `json:"balance"`
	}{windowName(window), s.ledger.Currency(), labels, income, expense, balance})
}

func windowName(w report.Window) string {
	if w == report.WindowAll {
		return "all"
	}
	return strconv.Itoa(int(w))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+s.ledger.ExportFilename()+`"`)
	if err := s.ledger.Export(w); err != nil {
		slog.ErrorContext(r.Context(), "Export failed", "error", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, 10<<20)
	defer body.Close()

	n, err := s.ledger.Import(r.Context(), body)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}
