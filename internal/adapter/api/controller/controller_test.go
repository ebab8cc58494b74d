package controller_test

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/route"
	"github.com/hugohenrick/erp-caixa/internal/adapter/repository"
	"github.com/hugohenrick/erp-caixa/internal/service"
	"github.com/hugohenrick/erp-caixa/pkg/clock"
	"github.com/hugohenrick/erp-caixa/pkg/idgen"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var epoch = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	router *gin.Engine
	store  *repository.MemoryStore
	clock  *clock.FakeClock
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	clk := clock.Fake(epoch)
	var mu sync.Mutex
	n := 0
	deps := service.Deps{
		Store: store,
		IDs: idgen.Func(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		Clock:  clk,
		Logger: logger.NewNop(),
	}
	catalog := service.NewCatalog(deps)
	ledger := service.NewLedger(deps)

	router := gin.New()
	api := router.Group("/api/v1")
	route.RegisterProductRoutes(api, controller.NewProductController(catalog, deps.Logger))
	route.RegisterSaleRoutes(api, controller.NewSaleController(service.NewCheckout(catalog, ledger, deps.Logger), deps.Logger))
	route.RegisterTransactionRoutes(api, controller.NewTransactionController(ledger, deps.Logger))
	route.RegisterDebtRoutes(api, controller.NewDebtController(service.NewDebts(deps, ledger), deps.Logger))
	route.RegisterBillRoutes(api, controller.NewBillController(service.NewBills(deps, ledger), deps.Logger))
	route.RegisterEventRoutes(api, controller.NewEventController(store, deps.Logger))

	return &testAPI{router: router, store: store, clock: clk}
}

// do executa a requisição e decodifica a resposta em out, se informado
func (a *testAPI) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func (a *testAPI) mustDo(t *testing.T, method, path string, body interface{}, want int, out interface{}) {
	t.Helper()
	var errBody dto.ErrorResponse
	target := out
	if target == nil {
		target = &errBody
	}
	if code := a.do(t, method, path, body, target); code != want {
		t.Fatalf("%s %s = %d, want %d (%+v)", method, path, code, want, target)
	}
}
