package services

import (
	"fmt"
	"strconv"

	"github.com/kvv7ma/bento-order-system/lang"
	"github.com/kvv7ma/bento-order-system/models"
)

// Button is one inline button (text + callback data).
type Button struct {
	Text         string
	CallbackData string
}

// Card is a render description: message text plus inline keyboard rows.
// The bot materializes it into Telegram types; nothing here touches the API.
type Card struct {
	Text    string
	Buttons [][]Button
}

func fmtPrice(langCode string, price int64) string {
	return lang.T(langCode, "price_fmt", price)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// BuildMenuPage renders the whole menu view: placeholder states, the visible
// item lines with any selected subtotals, per-item quantity/order/detail
// controls, filter controls and the paginator.
func BuildMenuPage(v *MenuView, langCode string) Card {
	if v.CatalogLen() == 0 {
		return Card{Text: lang.T(langCode, "menu_empty")}
	}
	if v.ResultCount() == 0 {
		return Card{
			Text: lang.T(langCode, "menu_no_match"),
			Buttons: [][]Button{
				{{Text: lang.T(langCode, "btn_clear_filter"), CallbackData: "mf:clear"}},
			},
		}
	}

	text := lang.T(langCode, "menu_header") + "\n"
	text += lang.T(langCode, "result_count", v.ResultCount())
	if v.PageCount() > 1 {
		text += " — " + lang.T(langCode, "page_info", v.CurrentPage(), v.PageCount())
	}
	text += "\n"

	var rows [][]Button
	for _, m := range v.VisibleItems() {
		qty := v.Quantity(m.ID)
		line := fmt.Sprintf("\n• %s — %s", m.Name, fmtPrice(langCode, m.Price))
		if qty > 0 {
			line += fmt.Sprintf(" ×%d（%s）", qty, lang.T(langCode, "subtotal", fmtPrice(langCode, v.Subtotal(m.ID))))
		}
		text += line

		id := strconv.FormatInt(m.ID, 10)
		rows = append(rows, []Button{
			{Text: "−", CallbackData: "qty:dec:" + id},
			{Text: fmt.Sprintf("%s ×%d", truncate(m.Name, 12), qty), CallbackData: "det:" + id},
			{Text: "＋", CallbackData: "qty:inc:" + id},
			{Text: "🛒", CallbackData: "ord:" + id},
		})
	}

	rows = append(rows, paginatorRow(v.CurrentPage(), v.PageCount(), "mp:", langCode)...)
	rows = append(rows, []Button{
		{Text: lang.T(langCode, "btn_search"), CallbackData: "mf:search"},
		{Text: lang.T(langCode, "btn_price_filter"), CallbackData: "mf:price"},
		{Text: lang.T(langCode, "btn_clear_filter"), CallbackData: "mf:clear"},
	})
	return Card{Text: text, Buttons: rows}
}

// paginatorRow builds the page-link row: up to five numbered links centered
// on the current page, with prev/next on the ends when applicable. Links are
// only ever offered inside [1, pageCount].
func paginatorRow(current, pageCount int, prefix, langCode string) [][]Button {
	links := PageLinks(current, pageCount)
	if links == nil {
		return nil
	}
	var row []Button
	if current > 1 {
		row = append(row, Button{Text: lang.T(langCode, "prev"), CallbackData: prefix + strconv.Itoa(current-1)})
	}
	for _, p := range links {
		label := strconv.Itoa(p)
		if p == current {
			label = "·" + label + "·"
		}
		row = append(row, Button{Text: label, CallbackData: prefix + strconv.Itoa(p)})
	}
	if current < pageCount {
		row = append(row, Button{Text: lang.T(langCode, "next"), CallbackData: prefix + strconv.Itoa(current+1)})
	}
	return [][]Button{row}
}

// BuildMenuDetail renders the read-only detail view of one item.
func BuildMenuDetail(m models.MenuItem, langCode string) Card {
	desc := m.Description
	if desc == "" {
		desc = lang.T(langCode, "detail_no_description")
	}
	text := fmt.Sprintf("🍱 %s\n\n%s\n\n%s", m.Name, desc, fmtPrice(langCode, m.Price))
	id := strconv.FormatInt(m.ID, 10)
	return Card{
		Text: text,
		Buttons: [][]Button{{
			{Text: lang.T(langCode, "btn_close"), CallbackData: "detclose"},
			{Text: lang.T(langCode, "btn_order_one"), CallbackData: "detord:" + id},
		}},
	}
}

// BuildOrderConfirm renders the confirmation step, echoing item name,
// quantity and the computed total.
func BuildOrderConfirm(m models.MenuItem, qty int, langCode string) Card {
	total := m.Price * int64(qty)
	id := strconv.FormatInt(m.ID, 10)
	return Card{
		Text: lang.T(langCode, "order_confirm", m.Name, qty, fmtPrice(langCode, total)),
		Buttons: [][]Button{{
			{Text: lang.T(langCode, "btn_confirm_yes"), CallbackData: "ordok:" + id},
			{Text: lang.T(langCode, "btn_confirm_no"), CallbackData: "ordno:" + id},
		}},
	}
}
