package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sweetshop/sweetshop-api/internal/api/metrics"
	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/core/ports"
)

type stubSweetService struct {
	createFn   func(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error)
	listFn     func(ctx context.Context, filter ports.SweetFilter) ([]domain.Sweet, error)
	getFn      func(ctx context.Context, id uint) (*domain.Sweet, error)
	updateFn   func(ctx context.Context, id uint, fields ports.SweetUpdate) (*domain.Sweet, error)
	deleteFn   func(ctx context.Context, id uint) error
	purchaseFn func(ctx context.Context, id uint, quantity int) (*domain.Sweet, int, error)
	restockFn  func(ctx context.Context, id uint, quantity int) (*domain.Sweet, error)
}

func (s *stubSweetService) Create(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
	return s.createFn(ctx, input)
}

func (s *stubSweetService) List(ctx context.Context, filter ports.SweetFilter) ([]domain.Sweet, error) {
	return s.listFn(ctx, filter)
}

func (s *stubSweetService) GetByID(ctx context.Context, id uint) (*domain.Sweet, error) {
	return s.getFn(ctx, id)
}

func (s *stubSweetService) Update(ctx context.Context, id uint, fields ports.SweetUpdate) (*domain.Sweet, error) {
	return s.updateFn(ctx, id, fields)
}

func (s *stubSweetService) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubSweetService) Purchase(ctx context.Context, id uint, quantity int) (*domain.Sweet, int, error) {
	return s.purchaseFn(ctx, id, quantity)
}

func (s *stubSweetService) Restock(ctx context.Context, id uint, quantity int) (*domain.Sweet, error) {
	return s.restockFn(ctx, id, quantity)
}

func newSweetContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSweetHandler_List_ParsesFilters(t *testing.T) {
	e := newEcho()
	var captured ports.SweetFilter
	stub := &stubSweetService{
		listFn: func(ctx context.Context, filter ports.SweetFilter) ([]domain.Sweet, error) {
			captured = filter
			return []domain.Sweet{}, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := newSweetContext(e, http.MethodGet, "/api/sweets?name=Gummy&category=Candy&minPrice=1.5&maxPrice=9.99", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Name != "Gummy" || captured.Category != "Candy" {
		t.Fatalf("unexpected filter: %+v", captured)
	}
	if captured.MinPrice == nil || *captured.MinPrice != 1.5 {
		t.Fatalf("minPrice not parsed: %+v", captured.MinPrice)
	}
	if captured.MaxPrice == nil || *captured.MaxPrice != 9.99 {
		t.Fatalf("maxPrice not parsed: %+v", captured.MaxPrice)
	}
}

func TestSweetHandler_List_RejectsBadPrice(t *testing.T) {
	e := newEcho()
	stub := &stubSweetService{
		listFn: func(ctx context.Context, filter ports.SweetFilter) ([]domain.Sweet, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, _ := newSweetContext(e, http.MethodGet, "/api/sweets?minPrice=cheap", "")
	err := handler.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestSweetHandler_Get_NonNumericID(t *testing.T) {
	e := newEcho()
	stub := &stubSweetService{
		getFn: func(ctx context.Context, id uint) (*domain.Sweet, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, _ := newSweetContext(e, http.MethodGet, "/api/sweets/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.Get(c); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

func TestSweetHandler_Create_Success(t *testing.T) {
	e := newEcho()
	stub := &stubSweetService{
		createFn: func(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
			return &domain.Sweet{
				ID:       1,
				Name:     input.Name,
				Category: input.Category,
				Price:    input.Price,
				Quantity: input.Quantity,
			}, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := newSweetContext(e, http.MethodPost, "/api/sweets",
		`{"name":"Test","category":"Candy","price":3.99,"quantity":10}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp domain.Sweet
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 1 || resp.Name != "Test" || resp.Price != 3.99 || resp.Quantity != 10 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSweetHandler_Create_Validation(t *testing.T) {
	e := newEcho()
	stub := &stubSweetService{
		createFn: func(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
			t.Fatalf("service must not be called on invalid input")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	cases := []string{
		`{"category":"Candy","price":3.99,"quantity":10}`,
		`{"name":"Test","price":3.99,"quantity":10}`,
		`{"name":"Test","category":"Candy","price":0,"quantity":10}`,
		`{"name":"Test","category":"Candy","price":3.99,"quantity":-1}`,
	}

	for _, body := range cases {
		c, _ := newSweetContext(e, http.MethodPost, "/api/sweets", body)
		err := handler.Create(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %v", body, err)
		}
	}
}

func TestSweetHandler_Update_PassesOnlySuppliedFields(t *testing.T) {
	e := newEcho()
	var captured ports.SweetUpdate
	stub := &stubSweetService{
		updateFn: func(ctx context.Context, id uint, fields ports.SweetUpdate) (*domain.Sweet, error) {
			captured = fields
			return &domain.Sweet{ID: id}, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := newSweetContext(e, http.MethodPut, "/api/sweets/7", `{"price":5.49}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Price == nil || *captured.Price != 5.49 {
		t.Fatalf("price not passed: %+v", captured)
	}
	if captured.Name != nil || captured.Category != nil || captured.Quantity != nil {
		t.Fatalf("absent fields must stay nil: %+v", captured)
	}
}

func TestSweetHandler_Delete(t *testing.T) {
	e := newEcho()
	stub := &stubSweetService{
		deleteFn: func(ctx context.Context, id uint) error {
			if id != 3 {
				t.Fatalf("unexpected id %d", id)
			}
			return nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := newSweetContext(e, http.MethodDelete, "/api/sweets/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "message") {
		t.Fatalf("expected message envelope, got %s", rec.Body.String())
	}
}

func TestSweetHandler_Purchase_DefaultQuantity(t *testing.T) {
	e := newEcho()
	var captured int
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id uint, quantity int) (*domain.Sweet, int, error) {
			captured = quantity
			return &domain.Sweet{ID: id, Quantity: 4}, 1, nil
		},
	}
	handler := NewSweetHandler(stub)

	// Empty body: quantity is absent and the service receives zero, which it
	// treats as one unit.
	c, rec := newSweetContext(e, http.MethodPost, "/api/sweets/5/purchase", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured != 0 {
		t.Fatalf("expected raw quantity 0 forwarded, got %d", captured)
	}
}

// The units-sold counter must track the quantity the service reports as
// applied, not the raw request value.
func TestSweetHandler_Purchase_CountsAppliedUnits(t *testing.T) {
	e := newEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id uint, quantity int) (*domain.Sweet, int, error) {
			return &domain.Sweet{ID: id, Quantity: 2}, 3, nil
		},
	}
	handler := NewSweetHandler(stub)

	before := testutil.ToFloat64(metrics.UnitsSoldTotal)

	c, rec := newSweetContext(e, http.MethodPost, "/api/sweets/5/purchase", `{"quantity":-7}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if got := testutil.ToFloat64(metrics.UnitsSoldTotal) - before; got != 3 {
		t.Fatalf("expected 3 units counted, got %v", got)
	}
}

func TestSweetHandler_Purchase_InsufficientStock(t *testing.T) {
	e := newEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id uint, quantity int) (*domain.Sweet, int, error) {
			return nil, 0, domain.ErrInsufficientStock
		},
	}
	handler := NewSweetHandler(stub)

	c, _ := newSweetContext(e, http.MethodPost, "/api/sweets/5/purchase", `{"quantity":10}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.Purchase(c); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock to propagate, got %v", err)
	}
}

func TestSweetHandler_Restock_Validation(t *testing.T) {
	e := newEcho()
	stub := &stubSweetService{
		restockFn: func(ctx context.Context, id uint, quantity int) (*domain.Sweet, error) {
			t.Fatalf("service must not be called on invalid input")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	for _, body := range []string{`{}`, `{"quantity":0}`, `{"quantity":-5}`} {
		c, _ := newSweetContext(e, http.MethodPost, "/api/sweets/5/restock", body)
		c.SetParamNames("id")
		c.SetParamValues("5")

		err := handler.Restock(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %v", body, err)
		}
	}
}

func TestSweetHandler_Restock_Success(t *testing.T) {
	e := newEcho()
	stub := &stubSweetService{
		restockFn: func(ctx context.Context, id uint, quantity int) (*domain.Sweet, error) {
			if quantity != 25 {
				t.Fatalf("unexpected quantity %d", quantity)
			}
			return &domain.Sweet{ID: id, Quantity: 60}, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := newSweetContext(e, http.MethodPost, "/api/sweets/5/restock", `{"quantity":25}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.Restock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
