package services

import (
	"fmt"
	"strconv"

	"github.com/kvv7ma/bento-order-system/lang"
	"github.com/kvv7ma/bento-order-system/models"
)

const OrdersPerPage = 10

// OrdersView is the order-history view-model: the fetched orders, an
// optional status filter and the page window. Read-only over backend data.
type OrdersView struct {
	orders   []models.Order
	filtered []models.Order
	status   string
	page     int
	perPage  int
}

func NewOrdersView() *OrdersView {
	return &OrdersView{page: 1, perPage: OrdersPerPage}
}

func (v *OrdersView) SetOrders(orders []models.Order) {
	v.orders = orders
	v.status = ""
	v.page = 1
	v.recompute()
}

// FilterStatus keeps only orders in the given status; empty means all.
// Resets the window to page 1.
func (v *OrdersView) FilterStatus(status string) {
	v.status = status
	v.page = 1
	v.recompute()
}

func (v *OrdersView) recompute() {
	v.filtered = v.filtered[:0]
	for _, o := range v.orders {
		if v.status == "" || o.Status == v.status {
			v.filtered = append(v.filtered, o)
		}
	}
	v.page = ClampPage(v.page, PageCount(len(v.filtered), v.perPage))
}

func (v *OrdersView) Status() string { return v.status }
func (v *OrdersView) Len() int       { return len(v.orders) }
func (v *OrdersView) ResultCount() int { return len(v.filtered) }
func (v *OrdersView) CurrentPage() int { return v.page }
func (v *OrdersView) PageCount() int { return PageCount(len(v.filtered), v.perPage) }

func (v *OrdersView) SetPage(page int) bool {
	if page < 1 || page > v.PageCount() {
		return false
	}
	v.page = page
	return true
}

func (v *OrdersView) VisibleOrders() []models.Order {
	start, end := PageBounds(len(v.filtered), v.page, v.perPage)
	return v.filtered[start:end]
}

func (v *OrdersView) Order(orderID int64) (models.Order, bool) {
	for _, o := range v.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// StatusLabel returns the localized label for an order status; unknown
// statuses render as-is.
func StatusLabel(langCode, status string) string {
	switch status {
	case models.OrderStatusPending, models.OrderStatusConfirmed,
		models.OrderStatusPreparing, models.OrderStatusReady,
		models.OrderStatusCompleted, models.OrderStatusCancelled:
		return lang.T(langCode, "status_"+status)
	}
	return status
}

// StatusBadge returns the severity marker for a status (the fixed
// status → color mapping of the web UI, as emoji).
func StatusBadge(status string) string {
	switch status {
	case models.OrderStatusPending:
		return "🟡"
	case models.OrderStatusConfirmed:
		return "🔵"
	case models.OrderStatusPreparing:
		return "🔷"
	case models.OrderStatusReady:
		return "🟢"
	case models.OrderStatusCompleted:
		return "⚪"
	case models.OrderStatusCancelled:
		return "🔴"
	}
	return "⚪"
}

func orderedAtDate(s string) string {
	if len(s) >= 16 {
		return s[:10] + " " + s[11:16]
	}
	return s
}

// BuildOrdersPage renders the order-history view: placeholders, one block
// per visible order with status badge and per-order actions (cancel only
// while pending, reorder always), the status filter and the paginator.
func BuildOrdersPage(v *OrdersView, langCode string) Card {
	if v.Len() == 0 {
		return Card{Text: lang.T(langCode, "orders_empty")}
	}
	if v.ResultCount() == 0 {
		return Card{
			Text: lang.T(langCode, "orders_no_match"),
			Buttons: [][]Button{
				{{Text: lang.T(langCode, "btn_clear_filter"), CallbackData: "of:"}},
			},
		}
	}

	text := lang.T(langCode, "orders_header")
	if v.PageCount() > 1 {
		text += " — " + lang.T(langCode, "page_info", v.CurrentPage(), v.PageCount())
	}

	var rows [][]Button
	for _, o := range v.VisibleOrders() {
		text += "\n\n" + lang.T(langCode, "order_line_id", o.ID)
		text += fmt.Sprintf("  %s %s", StatusBadge(o.Status), StatusLabel(langCode, o.Status))
		text += "\n" + orderedAtDate(o.OrderedAt)
		text += "\n" + lang.T(langCode, "order_line_qty", fmt.Sprintf("%s（%s）", o.Menu.Name, fmtPrice(langCode, o.Menu.Price)), o.Quantity)
		text += "\n" + lang.T(langCode, "order_line_total", fmtPrice(langCode, o.TotalPrice))
		if o.Notes != "" {
			text += "\n" + lang.T(langCode, "notes_label", o.Notes)
		}

		row := []Button{}
		if o.CanCancel() {
			row = append(row, Button{
				Text:         fmt.Sprintf("❌ #%d %s", o.ID, lang.T(langCode, "btn_cancel_order")),
				CallbackData: "oc:" + strconv.FormatInt(o.ID, 10),
			})
		}
		row = append(row, Button{
			Text:         fmt.Sprintf("🔁 #%d %s", o.ID, lang.T(langCode, "btn_reorder")),
			CallbackData: "ro:" + strconv.FormatInt(o.Menu.ID, 10),
		})
		rows = append(rows, row)
	}

	rows = append(rows, paginatorRow(v.CurrentPage(), v.PageCount(), "op:", langCode)...)
	rows = append(rows, []Button{{Text: lang.T(langCode, "btn_filter_status"), CallbackData: "of:pick"}})
	return Card{Text: text, Buttons: rows}
}

// BuildStatusFilterPicker renders the status filter choices.
func BuildStatusFilterPicker(langCode string) Card {
	rows := [][]Button{
		{{Text: lang.T(langCode, "status_all"), CallbackData: "of:"}},
	}
	for _, st := range models.OrderStatuses {
		rows = append(rows, []Button{{
			Text:         StatusBadge(st) + " " + StatusLabel(langCode, st),
			CallbackData: "of:" + st,
		}})
	}
	return Card{Text: lang.T(langCode, "btn_filter_status"), Buttons: rows}
}

// BuildCancelConfirm renders the cancellation confirmation step.
func BuildCancelConfirm(o models.Order, langCode string) Card {
	id := strconv.FormatInt(o.ID, 10)
	text := lang.T(langCode, "order_line_id", o.ID) + "\n" + lang.T(langCode, "cancel_order_confirm")
	return Card{
		Text: text,
		Buttons: [][]Button{{
			{Text: lang.T(langCode, "btn_confirm_yes"), CallbackData: "ocok:" + id},
			{Text: lang.T(langCode, "btn_confirm_no"), CallbackData: "ocno"},
		}},
	}
}
