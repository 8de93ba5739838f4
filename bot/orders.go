package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/kvv7ma/bento-order-system/lang"
	"github.com/kvv7ma/bento-order-system/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// openOrders loads the order history and renders it as one message, newest
// first as the backend returns them.
func (b *Bot) openOrders(ctx context.Context, chatID int64) {
	s, ok := b.session(ctx, chatID)
	if !ok {
		return
	}
	l := b.getLang(chatID)
	st := b.state(chatID)

	loadingID := b.sendCard(chatID, services.Card{Text: lang.T(l, "orders_loading")})

	orders, err := b.client.ListOrders(ctx, s.Token)
	if err != nil {
		b.editCard(chatID, loadingID, services.Card{Text: lang.T(l, "orders_load_failed")})
		b.notifyError(chatID, err)
		return
	}

	st.orders = services.NewOrdersView()
	st.orders.SetOrders(orders)
	st.ordersMsgID = b.editCard(chatID, loadingID, services.BuildOrdersPage(st.orders, l))
}

func (b *Bot) renderOrders(chatID int64, st *chatState) {
	if st.orders == nil {
		return
	}
	st.ordersMsgID = b.editCard(chatID, st.ordersMsgID, services.BuildOrdersPage(st.orders, b.getLang(chatID)))
}

func (b *Bot) handleOrdersCallback(ctx context.Context, cq *tgbotapi.CallbackQuery, chatID int64, data string) {
	st := b.state(chatID)
	l := b.getLang(chatID)

	// Reorder works even when the history view is gone: it navigates back to
	// the menu with the item pre-selected at quantity 1, when it still exists.
	if strings.HasPrefix(data, "ro:") {
		b.answer(cq.ID, "")
		b.openMenu(ctx, chatID)
		menuID, err := strconv.ParseInt(strings.TrimPrefix(data, "ro:"), 10, 64)
		if err != nil {
			return
		}
		if st.menu != nil {
			if _, ok := st.menu.Item(menuID); ok {
				st.menu.SetQuantity(menuID, 1)
				b.renderMenu(chatID, st)
			}
		}
		return
	}

	if st.orders == nil {
		b.answer(cq.ID, "")
		b.openOrders(ctx, chatID)
		return
	}

	switch {
	case strings.HasPrefix(data, "op:"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "op:"))
		if err != nil || !st.orders.SetPage(page) {
			b.answer(cq.ID, "")
			return
		}
		b.answer(cq.ID, "")
		b.renderOrders(chatID, st)

	case data == "of:pick":
		b.answer(cq.ID, "")
		b.sendCard(chatID, services.BuildStatusFilterPicker(l))

	case strings.HasPrefix(data, "of:"):
		b.answer(cq.ID, "")
		st.orders.FilterStatus(strings.TrimPrefix(data, "of:"))
		b.renderOrders(chatID, st)

	case strings.HasPrefix(data, "ocok:"):
		orderID, err := strconv.ParseInt(strings.TrimPrefix(data, "ocok:"), 10, 64)
		if err != nil {
			b.answer(cq.ID, "")
			return
		}
		b.answer(cq.ID, "")
		b.cancelOrder(ctx, chatID, st, cq.Message.MessageID, orderID)

	case data == "ocno":
		b.answer(cq.ID, "")
		b.deleteMessage(chatID, cq.Message.MessageID)

	case strings.HasPrefix(data, "oc:"):
		orderID, err := strconv.ParseInt(strings.TrimPrefix(data, "oc:"), 10, 64)
		if err != nil {
			b.answer(cq.ID, "")
			return
		}
		order, ok := st.orders.Order(orderID)
		if !ok || !order.CanCancel() {
			b.answer(cq.ID, lang.T(l, "cancel_order_failed"))
			return
		}
		b.answer(cq.ID, "")
		b.sendCard(chatID, services.BuildCancelConfirm(order, l))

	default:
		b.answer(cq.ID, "")
	}
}

// cancelOrder requests the status transition; whether it happens is the
// backend's decision. The history is reloaded afterwards so the view shows
// whatever the backend now says.
func (b *Bot) cancelOrder(ctx context.Context, chatID int64, st *chatState, confirmMsgID int, orderID int64) {
	l := b.getLang(chatID)
	s, ok := b.session(ctx, chatID)
	if !ok {
		return
	}

	if _, err := b.client.CancelOrder(ctx, s.Token, orderID); err != nil {
		b.editCard(chatID, confirmMsgID, services.Card{Text: lang.T(l, "cancel_order_failed")})
		b.notifyError(chatID, err)
		return
	}
	b.editCard(chatID, confirmMsgID, services.Card{Text: lang.T(l, "cancel_order_success")})

	orders, err := b.client.ListOrders(ctx, s.Token)
	if err != nil {
		b.notifyError(chatID, err)
		return
	}
	st.orders.SetOrders(orders)
	b.renderOrders(chatID, st)
}
