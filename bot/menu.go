package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/kvv7ma/bento-order-system/lang"
	"github.com/kvv7ma/bento-order-system/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// openMenu loads the catalog and renders the menu page as one message that
// later actions edit in place. Navigation always starts a fresh view, so
// filters and selected quantities from a previous visit are discarded.
func (b *Bot) openMenu(ctx context.Context, chatID int64) {
	s, ok := b.session(ctx, chatID)
	if !ok {
		return
	}
	l := b.getLang(chatID)
	st := b.state(chatID)

	loadingID := b.sendCard(chatID, services.Card{Text: lang.T(l, "menu_loading")})

	items, err := b.client.ListMenus(ctx, s.Token)
	if err != nil {
		b.editCard(chatID, loadingID, services.Card{Text: lang.T(l, "menu_load_failed")})
		b.notifyError(chatID, err)
		return
	}

	st.menu = services.NewMenuView()
	st.menu.SetCatalog(items)
	st.menuMsgID = b.editCard(chatID, loadingID, services.BuildMenuPage(st.menu, l))
}

func (b *Bot) renderMenu(chatID int64, st *chatState) {
	if st.menu == nil {
		return
	}
	st.menuMsgID = b.editCard(chatID, st.menuMsgID, services.BuildMenuPage(st.menu, b.getLang(chatID)))
}

func (b *Bot) handleMenuCallback(ctx context.Context, cq *tgbotapi.CallbackQuery, chatID int64, data string) {
	st := b.state(chatID)
	l := b.getLang(chatID)

	if st.menu == nil {
		// Stale buttons from before a restart: reload the view.
		b.answer(cq.ID, "")
		b.openMenu(ctx, chatID)
		return
	}

	switch {
	case strings.HasPrefix(data, "qty:inc:"), strings.HasPrefix(data, "qty:dec:"):
		dir := services.QtyIncrease
		idStr := strings.TrimPrefix(data, "qty:inc:")
		if strings.HasPrefix(data, "qty:dec:") {
			dir = services.QtyDecrease
			idStr = strings.TrimPrefix(data, "qty:dec:")
		}
		menuID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			b.answer(cq.ID, "")
			return
		}
		qty, changed := st.menu.AdjustQuantity(menuID, dir)
		b.answer(cq.ID, "×"+strconv.Itoa(qty))
		if changed {
			b.renderMenu(chatID, st)
		}

	case strings.HasPrefix(data, "det:"):
		menuID, err := strconv.ParseInt(strings.TrimPrefix(data, "det:"), 10, 64)
		if err != nil {
			b.answer(cq.ID, "")
			return
		}
		item, ok := st.menu.Item(menuID)
		if !ok {
			b.answer(cq.ID, lang.T(l, "menu_not_found"))
			return
		}
		b.answer(cq.ID, "")
		b.sendCard(chatID, services.BuildMenuDetail(item, l))

	case data == "detclose":
		b.answer(cq.ID, "")
		b.deleteMessage(chatID, cq.Message.MessageID)

	case strings.HasPrefix(data, "detord:"):
		// Order from the detail view: quantity becomes exactly 1, then the
		// regular confirmation contract applies. The detail message turns
		// into the confirmation step.
		menuID, err := strconv.ParseInt(strings.TrimPrefix(data, "detord:"), 10, 64)
		if err != nil {
			b.answer(cq.ID, "")
			return
		}
		item, ok := st.menu.Item(menuID)
		if !ok {
			b.answer(cq.ID, lang.T(l, "menu_not_found"))
			return
		}
		b.answer(cq.ID, "")
		st.menu.SetQuantity(menuID, 1)
		b.renderMenu(chatID, st)
		b.editCard(chatID, cq.Message.MessageID, services.BuildOrderConfirm(item, 1, l))

	case strings.HasPrefix(data, "ordok:"):
		menuID, err := strconv.ParseInt(strings.TrimPrefix(data, "ordok:"), 10, 64)
		if err != nil {
			b.answer(cq.ID, "")
			return
		}
		b.answer(cq.ID, "")
		b.submitOrder(ctx, chatID, st, cq.Message.MessageID, menuID)

	case strings.HasPrefix(data, "ordno:"):
		b.answer(cq.ID, "")
		b.editCard(chatID, cq.Message.MessageID, services.Card{Text: lang.T(l, "order_declined")})

	case strings.HasPrefix(data, "ord:"):
		menuID, err := strconv.ParseInt(strings.TrimPrefix(data, "ord:"), 10, 64)
		if err != nil {
			b.answer(cq.ID, "")
			return
		}
		item, ok := st.menu.Item(menuID)
		if !ok {
			b.answer(cq.ID, lang.T(l, "menu_not_found"))
			return
		}
		qty := st.menu.Quantity(menuID)
		if qty <= 0 {
			b.answer(cq.ID, lang.T(l, "qty_required"))
			return
		}
		b.answer(cq.ID, "")
		b.sendCard(chatID, services.BuildOrderConfirm(item, qty, l))

	case strings.HasPrefix(data, "mp:"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "mp:"))
		if err != nil || !st.menu.SetPage(page) {
			b.answer(cq.ID, "")
			return
		}
		b.answer(cq.ID, "")
		b.renderMenu(chatID, st)

	case data == "mf:search":
		b.answer(cq.ID, "")
		st.pending = &inputFlow{Step: "search_term"}
		b.sendLang(chatID, "search_prompt")

	case data == "mf:price":
		b.answer(cq.ID, "")
		st.pending = &inputFlow{Step: "price_range"}
		b.sendLang(chatID, "price_prompt")

	case data == "mf:clear":
		b.answer(cq.ID, lang.T(l, "filter_cleared"))
		st.menu.ClearFilter()
		b.renderMenu(chatID, st)

	default:
		b.answer(cq.ID, "")
	}
}

// submitOrder runs the confirmed submission. The confirmation keyboard is
// replaced by an in-progress text first, which is what keeps a rapid second
// tap from double-submitting.
func (b *Bot) submitOrder(ctx context.Context, chatID int64, st *chatState, confirmMsgID int, menuID int64) {
	l := b.getLang(chatID)
	s, ok := b.session(ctx, chatID)
	if !ok {
		return
	}
	item, found := st.menu.Item(menuID)
	qty := st.menu.Quantity(menuID)

	b.editCard(chatID, confirmMsgID, services.Card{Text: lang.T(l, "order_submitting")})

	order, err := st.menu.PlaceOrder(ctx, b.client, s.Token, menuID, true)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoQuantity):
			b.editCard(chatID, confirmMsgID, services.Card{Text: lang.T(l, "qty_required")})
		case errors.Is(err, services.ErrUnknownMenu):
			b.editCard(chatID, confirmMsgID, services.Card{Text: lang.T(l, "menu_not_found")})
		default:
			// Selection is kept so the user can retry without re-entering
			// the quantity.
			b.editCard(chatID, confirmMsgID, services.Card{Text: lang.T(l, "order_failed")})
			b.notifyError(chatID, err)
		}
		return
	}
	if !found {
		return
	}
	b.editCard(chatID, confirmMsgID, services.Card{
		Text: lang.T(l, "order_success", item.Name, qty, order.ID),
	})
	b.renderMenu(chatID, st)
}

// handleFilterInput applies the typed search term or price range.
func (b *Bot) handleFilterInput(chatID int64, st *chatState, text string) {
	flow := st.pending
	st.pending = nil
	if st.menu == nil {
		return
	}
	l := b.getLang(chatID)

	switch flow.Step {
	case "search_term":
		st.menu.SetSearchTerm(text)
	case "price_range":
		fields := strings.Fields(text)
		minRaw, maxRaw := "", ""
		if len(fields) > 0 {
			minRaw = fields[0]
		}
		if len(fields) > 1 {
			maxRaw = fields[1]
		}
		min, max := services.ParsePriceRange(minRaw, maxRaw)
		st.menu.SetPriceRange(min, max)
	}
	b.send(chatID, lang.T(l, "filter_applied")+"\n"+lang.T(l, "result_count", st.menu.ResultCount()))
	b.renderMenu(chatID, st)
}
