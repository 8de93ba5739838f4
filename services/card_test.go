package services

import (
	"strings"
	"testing"

	"github.com/kvv7ma/bento-order-system/lang"
	"github.com/kvv7ma/bento-order-system/models"
)

func TestBuildMenuPagePlaceholders(t *testing.T) {
	empty := NewMenuView()
	empty.SetCatalog(nil)
	emptyCard := BuildMenuPage(empty, lang.Ja)

	noMatch := newTestView()
	noMatch.ApplyFilter("存在しない", 0, 0)
	noMatchCard := BuildMenuPage(noMatch, lang.Ja)

	if emptyCard.Text == noMatchCard.Text {
		t.Error("empty-catalog and filtered-empty placeholders must differ")
	}
	if len(emptyCard.Buttons) != 0 {
		t.Error("empty catalog offers no controls")
	}
	// Filtered-empty still offers the way out.
	found := false
	for _, row := range noMatchCard.Buttons {
		for _, btn := range row {
			if btn.CallbackData == "mf:clear" {
				found = true
			}
		}
	}
	if !found {
		t.Error("filtered-empty placeholder should offer a clear-filter button")
	}
}

func TestBuildMenuPageSubtotalOnlyWhenSelected(t *testing.T) {
	v := newTestView()
	card := BuildMenuPage(v, lang.Ja)
	if strings.Contains(card.Text, "小計") {
		t.Error("subtotal should not appear with nothing selected")
	}
	v.SetQuantity(1, 3)
	card = BuildMenuPage(v, lang.Ja)
	if !strings.Contains(card.Text, "小計: 1500円") {
		t.Errorf("subtotal line missing:\n%s", card.Text)
	}
}

func TestBuildMenuPagePaginatorLinks(t *testing.T) {
	items := make([]models.MenuItem, 25)
	for i := range items {
		items[i] = models.MenuItem{ID: int64(i + 1), Name: "弁当", Price: 500}
	}
	v := NewMenuView()
	v.SetCatalog(items)
	v.SetPage(3)

	card := BuildMenuPage(v, lang.Ja)
	for _, row := range card.Buttons {
		for _, btn := range row {
			if !strings.HasPrefix(btn.CallbackData, "mp:") {
				continue
			}
			p := strings.TrimPrefix(btn.CallbackData, "mp:")
			if p == "0" || p == "4" {
				t.Errorf("paginator rendered out-of-range link %s", btn.CallbackData)
			}
		}
	}
}

func TestBuildOrderConfirmEchoesSelection(t *testing.T) {
	m := models.MenuItem{ID: 7, Name: "特製弁当", Price: 500}
	card := BuildOrderConfirm(m, 3, lang.Ja)
	for _, want := range []string{"特製弁当", "3個", "1500円"} {
		if !strings.Contains(card.Text, want) {
			t.Errorf("confirmation text missing %q:\n%s", want, card.Text)
		}
	}
	if len(card.Buttons) != 1 || len(card.Buttons[0]) != 2 {
		t.Fatalf("confirmation should offer exactly yes/no, got %v", card.Buttons)
	}
	if card.Buttons[0][0].CallbackData != "ordok:7" || card.Buttons[0][1].CallbackData != "ordno:7" {
		t.Errorf("confirmation callbacks = %v", card.Buttons[0])
	}
}

func TestBuildMenuDetail(t *testing.T) {
	withDesc := BuildMenuDetail(models.MenuItem{ID: 1, Name: "唐揚げ弁当", Description: "ジューシー", Price: 500}, lang.Ja)
	if !strings.Contains(withDesc.Text, "ジューシー") {
		t.Errorf("detail should include the description:\n%s", withDesc.Text)
	}
	noDesc := BuildMenuDetail(models.MenuItem{ID: 2, Name: "のり弁当", Price: 380}, lang.Ja)
	if !strings.Contains(noDesc.Text, "メニューの説明はありません") {
		t.Errorf("detail without description should say so:\n%s", noDesc.Text)
	}
}
