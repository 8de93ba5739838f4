package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kvv7ma/bento-order-system/models"
)

func testCatalog() []models.MenuItem {
	return []models.MenuItem{
		{ID: 1, Name: "唐揚げ弁当", Description: "ジューシーな唐揚げ", Price: 500},
		{ID: 2, Name: "のり弁当", Description: "定番ののり弁", Price: 380},
		{ID: 3, Name: "幕の内弁当", Description: "彩り豊かなおかず", Price: 650},
		{ID: 4, Name: "Salmon Bento", Description: "grilled salmon", Price: 720},
		{ID: 5, Name: "Veggie Bento", Description: "vegetables only", Price: 450},
	}
}

func newTestView() *MenuView {
	v := NewMenuView()
	v.SetCatalog(testCatalog())
	return v
}

func ids(items []models.MenuItem) []int64 {
	out := make([]int64, len(items))
	for i, m := range items {
		out[i] = m.ID
	}
	return out
}

func equalIDs(a []models.MenuItem, want []int64) bool {
	got := ids(a)
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestApplyFilter(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		min, max int64
		want     []int64
	}{
		{"no filter", "", 0, 0, []int64{1, 2, 3, 4, 5}},
		{"term matches name case-insensitive", "salmon", 0, 0, []int64{4}},
		{"term matches description", "定番", 0, 0, []int64{2}},
		{"term matches name or description", "bento", 0, 0, []int64{4, 5}},
		{"price range inclusive", "", 450, 650, []int64{1, 3, 5}},
		{"term and price combined", "弁当", 400, 600, []int64{1}},
		{"no match", "ramen", 0, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestView()
			v.ApplyFilter(tt.term, tt.min, tt.max)
			if !equalIDs(v.VisibleItems(), tt.want) {
				t.Errorf("filtered ids = %v, want %v", ids(v.VisibleItems()), tt.want)
			}
			if v.CurrentPage() != 1 {
				t.Errorf("page = %d, want 1 after filter change", v.CurrentPage())
			}
		})
	}
}

func TestApplyFilterIdempotent(t *testing.T) {
	v := newTestView()
	v.ApplyFilter("弁当", 400, 700)
	first := ids(v.VisibleItems())
	v.ApplyFilter("弁当", 400, 700)
	second := ids(v.VisibleItems())
	if len(first) != len(second) {
		t.Fatalf("re-applying the same filter changed the result: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("re-applying the same filter changed the result: %v vs %v", first, second)
		}
	}
}

func TestApplyFilterPreservesCatalogOrder(t *testing.T) {
	v := newTestView()
	v.ApplyFilter("", 0, 0)
	if !equalIDs(v.VisibleItems(), []int64{1, 2, 3, 4, 5}) {
		t.Errorf("filtered view should preserve catalog order, got %v", ids(v.VisibleItems()))
	}
}

func TestClearFilter(t *testing.T) {
	v := newTestView()
	v.ApplyFilter("salmon", 0, 0)
	if v.ResultCount() != 1 {
		t.Fatalf("ResultCount = %d, want 1", v.ResultCount())
	}
	v.ClearFilter()
	if v.ResultCount() != 5 {
		t.Errorf("ResultCount after clear = %d, want 5", v.ResultCount())
	}
	if v.CurrentPage() != 1 {
		t.Errorf("page after clear = %d, want 1", v.CurrentPage())
	}
}

func TestAdjustQuantityClamps(t *testing.T) {
	v := newTestView()

	for i := 0; i < 15; i++ {
		v.AdjustQuantity(1, QtyIncrease)
	}
	if got := v.Quantity(1); got != models.MaxOrderQuantity {
		t.Errorf("quantity after 15 increases = %d, want %d", got, models.MaxOrderQuantity)
	}

	for i := 0; i < 15; i++ {
		v.AdjustQuantity(1, QtyDecrease)
	}
	if got := v.Quantity(1); got != 0 {
		t.Errorf("quantity after 15 decreases = %d, want 0", got)
	}
}

func TestAdjustQuantitySaturationIsNoOp(t *testing.T) {
	v := newTestView()
	if _, changed := v.AdjustQuantity(1, QtyDecrease); changed {
		t.Error("decrease at 0 should report no change")
	}
	v.SetQuantity(1, models.MaxOrderQuantity)
	if _, changed := v.AdjustQuantity(1, QtyIncrease); changed {
		t.Error("increase at the cap should report no change")
	}
}

func TestZeroQuantityLeavesNoEntry(t *testing.T) {
	v := newTestView()
	v.AdjustQuantity(1, QtyIncrease)
	v.AdjustQuantity(2, QtyIncrease)
	v.AdjustQuantity(2, QtyIncrease)
	if v.SelectionSize() != 2 {
		t.Fatalf("SelectionSize = %d, want 2", v.SelectionSize())
	}
	v.AdjustQuantity(1, QtyDecrease)
	if v.SelectionSize() != 1 {
		t.Errorf("SelectionSize after dropping to 0 = %d, want 1", v.SelectionSize())
	}
	v.SetQuantity(2, 0)
	if v.SelectionSize() != 0 {
		t.Errorf("SelectionSize after SetQuantity(0) = %d, want 0", v.SelectionSize())
	}
}

func TestSetQuantityOverwrites(t *testing.T) {
	v := newTestView()
	v.SetQuantity(3, 7)
	v.SetQuantity(3, 1) // ordering from the detail view forces exactly 1
	if got := v.Quantity(3); got != 1 {
		t.Errorf("quantity = %d, want 1", got)
	}
	v.SetQuantity(3, 25)
	if got := v.Quantity(3); got != models.MaxOrderQuantity {
		t.Errorf("quantity = %d, want clamped to %d", got, models.MaxOrderQuantity)
	}
}

func TestSubtotal(t *testing.T) {
	v := newTestView()
	v.SetQuantity(1, 3)
	if got := v.Subtotal(1); got != 1500 {
		t.Errorf("Subtotal = %d, want 1500", got)
	}
	if got := v.Subtotal(2); got != 0 {
		t.Errorf("Subtotal for unselected item = %d, want 0", got)
	}
}

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		minRaw, maxRaw string
		wantMin        int64
		wantMax        int64
	}{
		{"500", "1000", 500, 1000},
		{"", "", 0, PriceUnbounded},
		{"abc", "xyz", 0, PriceUnbounded},
		{"-5", "0", 0, PriceUnbounded},
		{" 300 ", "", 300, PriceUnbounded},
	}
	for _, tt := range tests {
		min, max := ParsePriceRange(tt.minRaw, tt.maxRaw)
		if min != tt.wantMin || max != tt.wantMax {
			t.Errorf("ParsePriceRange(%q, %q) = (%d, %d), want (%d, %d)",
				tt.minRaw, tt.maxRaw, min, max, tt.wantMin, tt.wantMax)
		}
	}
}

type fakePlacer struct {
	calls []models.CreateOrderInput
	resp  *models.Order
	err   error
}

func (f *fakePlacer) CreateOrder(_ context.Context, _ string, in models.CreateOrderInput) (*models.Order, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestPlaceOrderUnconfirmedIsNoOp(t *testing.T) {
	v := NewMenuView()
	v.SetCatalog([]models.MenuItem{{ID: 7, Name: "特製弁当", Price: 500}})
	v.SetQuantity(7, 3)

	placer := &fakePlacer{}
	order, err := v.PlaceOrder(context.Background(), placer, "tok", 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != nil {
		t.Error("unconfirmed submit should return no order")
	}
	if len(placer.calls) != 0 {
		t.Errorf("unconfirmed submit issued %d network calls, want 0", len(placer.calls))
	}
	if got := v.Quantity(7); got != 3 {
		t.Errorf("selection changed to %d, want 3", got)
	}
}

func TestPlaceOrderConfirmed(t *testing.T) {
	v := NewMenuView()
	v.SetCatalog([]models.MenuItem{{ID: 7, Name: "特製弁当", Price: 500}})
	v.SetQuantity(7, 3)

	placer := &fakePlacer{resp: &models.Order{ID: 42}}
	order, err := v.PlaceOrder(context.Background(), placer, "tok", 7, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order == nil || order.ID != 42 {
		t.Fatalf("order = %+v, want id 42", order)
	}
	if len(placer.calls) != 1 {
		t.Fatalf("network calls = %d, want 1", len(placer.calls))
	}
	in := placer.calls[0]
	if in.MenuID != 7 || in.Quantity != 3 || in.Notes != "" {
		t.Errorf("request = %+v, want {menu_id:7 quantity:3 notes:\"\"}", in)
	}
	if v.SelectionSize() != 0 {
		t.Errorf("selection entry not removed after success, size = %d", v.SelectionSize())
	}
}

func TestPlaceOrderFailureKeepsSelection(t *testing.T) {
	v := NewMenuView()
	v.SetCatalog([]models.MenuItem{{ID: 7, Name: "特製弁当", Price: 500}})
	v.SetQuantity(7, 3)

	placer := &fakePlacer{err: errors.New("HTTP error! status: 500")}
	if _, err := v.PlaceOrder(context.Background(), placer, "tok", 7, true); err == nil {
		t.Fatal("expected error from backend failure")
	}
	if got := v.Quantity(7); got != 3 {
		t.Errorf("selection after failure = %d, want 3 so the user can retry", got)
	}
}

func TestPlaceOrderPreconditions(t *testing.T) {
	v := NewMenuView()
	v.SetCatalog([]models.MenuItem{{ID: 7, Name: "特製弁当", Price: 500}})

	placer := &fakePlacer{}
	if _, err := v.PlaceOrder(context.Background(), placer, "tok", 7, true); !errors.Is(err, ErrNoQuantity) {
		t.Errorf("err = %v, want ErrNoQuantity", err)
	}
	v.SetQuantity(99, 1)
	if _, err := v.PlaceOrder(context.Background(), placer, "tok", 99, true); !errors.Is(err, ErrUnknownMenu) {
		t.Errorf("err = %v, want ErrUnknownMenu", err)
	}
	if len(placer.calls) != 0 {
		t.Errorf("precondition failures issued %d network calls, want 0", len(placer.calls))
	}
}

func TestSetCatalogResetsFilterAndPage(t *testing.T) {
	v := newTestView()
	v.ApplyFilter("salmon", 0, 0)
	v.SetCatalog(testCatalog())
	if v.ResultCount() != 5 {
		t.Errorf("ResultCount after reload = %d, want 5 (filter reset)", v.ResultCount())
	}
	if v.CurrentPage() != 1 {
		t.Errorf("page after reload = %d, want 1", v.CurrentPage())
	}
}
