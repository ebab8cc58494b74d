package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/hugohenrick/erp-caixa/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-caixa/internal/domain/bill"
	"github.com/hugohenrick/erp-caixa/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

func createBill(t *testing.T, api *testAPI, name string) bill.Bill {
	t.Helper()
	var b bill.Bill
	api.mustDo(t, http.MethodPost, "/bills", map[string]interface{}{
		"name":      name,
		"amount":    "89.90",
		"due_date":  epoch.Add(72 * time.Hour),
		"frequency": "monthly",
	}, http.StatusCreated, &b)
	return b
}

func TestBillTogglePaid(t *testing.T) {
	api := newTestAPI(t)
	internet := createBill(t, api, "Internet")

	var toggled bill.Bill
	api.mustDo(t, http.MethodPost, "/bills/"+internet.ID+"/toggle-paid", nil, http.StatusOK, &toggled)
	if !toggled.IsPaid {
		t.Fatal("bill not paid")
	}

	var txs dto.TransactionListResponse
	api.mustDo(t, http.MethodGet, "/transactions?type=outflow", nil, http.StatusOK, &txs)
	if txs.Total != 1 || txs.Transactions[0].Description != "Pago: Internet" || txs.Transactions[0].Category != bill.DefaultCategory {
		t.Fatalf("transactions = %+v", txs)
	}

	api.mustDo(t, http.MethodPost, "/bills/"+internet.ID+"/toggle-paid", nil, http.StatusOK, &toggled)
	if toggled.IsPaid {
		t.Fatal("bill still paid")
	}
	api.mustDo(t, http.MethodPost, "/bills/"+internet.ID+"/toggle-paid?create_transaction=false", nil, http.StatusOK, &toggled)

	var summary transaction.Summary
	api.mustDo(t, http.MethodGet, "/transactions/summary", nil, http.StatusOK, &summary)
	if summary.Count != 1 || !summary.Balance.Equal(decimal.RequireFromString("-89.90")) {
		t.Fatalf("summary = %+v", summary)
	}

	api.mustDo(t, http.MethodPost, "/bills/missing/toggle-paid", nil, http.StatusNotFound, nil)
	api.mustDo(t, http.MethodPost, "/bills/"+internet.ID+"/toggle-paid?create_transaction=talvez", nil, http.StatusBadRequest, nil)
}

func TestBillListAndUpdate(t *testing.T) {
	api := newTestAPI(t)
	internet := createBill(t, api, "Internet")
	createBill(t, api, "Luz")

	var updated bill.Bill
	api.mustDo(t, http.MethodPut, "/bills/"+internet.ID, map[string]interface{}{"is_paid": true}, http.StatusOK, &updated)
	if !updated.IsPaid {
		t.Fatalf("updated = %+v", updated)
	}

	var list dto.BillListResponse
	api.mustDo(t, http.MethodGet, "/bills?is_paid=false", nil, http.StatusOK, &list)
	if list.Total != 1 || list.Bills[0].Name != "Luz" {
		t.Fatalf("unpaid list = %+v", list)
	}

	api.mustDo(t, http.MethodPost, "/bills", map[string]interface{}{
		"name": "X", "amount": "1", "due_date": epoch, "frequency": "weekly",
	}, http.StatusBadRequest, nil)
	api.mustDo(t, http.MethodDelete, "/bills/"+internet.ID, nil, http.StatusNoContent, nil)
	api.mustDo(t, http.MethodGet, "/bills/"+internet.ID, nil, http.StatusNotFound, nil)
}

func TestTransactionEndpoints(t *testing.T) {
	api := newTestAPI(t)

	var tx transaction.Transaction
	api.mustDo(t, http.MethodPost, "/transactions", map[string]interface{}{
		"type": "inflow", "description": "Aporte", "amount": "500",
	}, http.StatusCreated, &tx)
	if !tx.Timestamp.Equal(epoch) {
		t.Fatalf("timestamp = %v", tx.Timestamp)
	}

	var txs dto.TransactionListResponse
	api.mustDo(t, http.MethodGet, "/transactions?end_date=2026-03-10", nil, http.StatusOK, &txs)
	if txs.Total != 1 {
		t.Fatalf("end_date same day = %+v", txs)
	}
	api.mustDo(t, http.MethodGet, "/transactions?start_date=2026-03-11", nil, http.StatusOK, &txs)
	if txs.Total != 0 {
		t.Fatalf("start_date next day = %+v", txs)
	}

	api.mustDo(t, http.MethodGet, "/transactions?start_date=ontem", nil, http.StatusBadRequest, nil)
	api.mustDo(t, http.MethodPost, "/transactions", map[string]interface{}{"type": "refund", "amount": "1"}, http.StatusBadRequest, nil)
	api.mustDo(t, http.MethodGet, "/transactions/missing", nil, http.StatusNotFound, nil)
}
