package services

import (
	"strings"
	"testing"

	"github.com/kvv7ma/bento-order-system/lang"
	"github.com/kvv7ma/bento-order-system/models"
)

func testOrders() []models.Order {
	return []models.Order{
		{ID: 11, Menu: models.MenuItem{ID: 1, Name: "唐揚げ弁当", Price: 500}, Quantity: 2, TotalPrice: 1000, Status: models.OrderStatusPending, OrderedAt: "2026-08-29T12:30:00"},
		{ID: 12, Menu: models.MenuItem{ID: 2, Name: "のり弁当", Price: 380}, Quantity: 1, TotalPrice: 380, Status: models.OrderStatusCompleted, OrderedAt: "2026-08-28T11:00:00"},
		{ID: 13, Menu: models.MenuItem{ID: 1, Name: "唐揚げ弁当", Price: 500}, Quantity: 1, TotalPrice: 500, Status: models.OrderStatusPending, Notes: "ご飯少なめ", OrderedAt: "2026-08-27T18:45:00"},
	}
}

func TestOrdersViewStatusFilter(t *testing.T) {
	v := NewOrdersView()
	v.SetOrders(testOrders())

	if v.ResultCount() != 3 {
		t.Fatalf("ResultCount = %d, want 3", v.ResultCount())
	}
	v.FilterStatus(models.OrderStatusPending)
	if v.ResultCount() != 2 {
		t.Errorf("pending ResultCount = %d, want 2", v.ResultCount())
	}
	if v.CurrentPage() != 1 {
		t.Errorf("page = %d, want 1 after filter change", v.CurrentPage())
	}
	v.FilterStatus("")
	if v.ResultCount() != 3 {
		t.Errorf("ResultCount after clearing filter = %d, want 3", v.ResultCount())
	}
}

func TestOrdersViewPagination(t *testing.T) {
	orders := make([]models.Order, 25)
	for i := range orders {
		orders[i] = models.Order{ID: int64(i + 1), Status: models.OrderStatusCompleted}
	}
	v := NewOrdersView()
	v.SetOrders(orders)

	if got := v.PageCount(); got != 3 {
		t.Fatalf("PageCount = %d, want 3 for 25 orders at 10 per page", got)
	}
	if got := len(v.VisibleOrders()); got != 10 {
		t.Errorf("page 1 size = %d, want 10", got)
	}
	if !v.SetPage(3) {
		t.Fatal("SetPage(3) rejected")
	}
	if got := len(v.VisibleOrders()); got != 5 {
		t.Errorf("page 3 size = %d, want 5", got)
	}
	if v.SetPage(4) {
		t.Error("SetPage(4) should be rejected")
	}
}

func TestCanCancel(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{models.OrderStatusPending, true},
		{models.OrderStatusConfirmed, false},
		{models.OrderStatusPreparing, false},
		{models.OrderStatusCompleted, false},
		{models.OrderStatusCancelled, false},
	}
	for _, tt := range tests {
		o := models.Order{Status: tt.status}
		if got := o.CanCancel(); got != tt.want {
			t.Errorf("CanCancel(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusLabelAndBadge(t *testing.T) {
	if got := StatusLabel(lang.Ja, models.OrderStatusPreparing); got != "調理中" {
		t.Errorf("StatusLabel(ja, preparing) = %q, want 調理中", got)
	}
	if got := StatusLabel(lang.En, models.OrderStatusReady); got != "Ready for pickup" {
		t.Errorf("StatusLabel(en, ready) = %q", got)
	}
	if got := StatusLabel(lang.Ja, "weird"); got != "weird" {
		t.Errorf("unknown status should render as-is, got %q", got)
	}
	seen := map[string]bool{}
	for _, st := range models.OrderStatuses {
		badge := StatusBadge(st)
		if badge == "" {
			t.Errorf("no badge for status %s", st)
		}
		seen[badge] = true
	}
	if len(seen) != len(models.OrderStatuses) {
		t.Errorf("status badges are not distinct: %d markers for %d statuses", len(seen), len(models.OrderStatuses))
	}
}

func TestBuildOrdersPageActions(t *testing.T) {
	v := NewOrdersView()
	v.SetOrders(testOrders())
	card := BuildOrdersPage(v, lang.Ja)

	if !strings.Contains(card.Text, "注文 #11") {
		t.Errorf("card text should reference order 11:\n%s", card.Text)
	}
	if !strings.Contains(card.Text, "備考: ご飯少なめ") {
		t.Errorf("card text should include notes when present:\n%s", card.Text)
	}

	var cancelTargets, reorderCount int
	for _, row := range card.Buttons {
		for _, btn := range row {
			if strings.HasPrefix(btn.CallbackData, "oc:") {
				cancelTargets++
			}
			if strings.HasPrefix(btn.CallbackData, "ro:") {
				reorderCount++
			}
		}
	}
	if cancelTargets != 2 {
		t.Errorf("cancel buttons = %d, want 2 (pending orders only)", cancelTargets)
	}
	if reorderCount != 3 {
		t.Errorf("reorder buttons = %d, want one per order", reorderCount)
	}
}

func TestBuildOrdersPagePlaceholders(t *testing.T) {
	v := NewOrdersView()
	v.SetOrders(nil)
	empty := BuildOrdersPage(v, lang.Ja)

	v2 := NewOrdersView()
	v2.SetOrders(testOrders())
	v2.FilterStatus(models.OrderStatusCancelled)
	noMatch := BuildOrdersPage(v2, lang.Ja)

	if empty.Text == noMatch.Text {
		t.Error("empty-history and filtered-empty placeholders must differ")
	}
}
