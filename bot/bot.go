package bot

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/kvv7ma/bento-order-system/api"
	"github.com/kvv7ma/bento-order-system/config"
	"github.com/kvv7ma/bento-order-system/lang"
	"github.com/kvv7ma/bento-order-system/models"
	"github.com/kvv7ma/bento-order-system/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// logoutDelay is how long a chat gets to read the session-expired message
// before the session is torn down and the login prompt appears.
const logoutDelay = 2 * time.Second

// chatState is one chat's in-memory presentation state. The view-models are
// recreated on every navigation, so selected quantities and filters live
// exactly as long as the chat stays on the view.
type chatState struct {
	menu        *services.MenuView
	orders      *services.OrdersView
	menuMsgID   int
	ordersMsgID int
	pending     *inputFlow
}

// inputFlow is a step-state text-input conversation (login, registration,
// filter prompts).
type inputFlow struct {
	Step     string
	Username string
	Email    string
	Password string
	FullName string
	Role     string
}

type Bot struct {
	tg     *tgbotapi.BotAPI
	cfg    *config.Config
	client *api.Client

	states   map[int64]*chatState
	statesMu sync.RWMutex

	chatLang   map[int64]string
	chatLangMu sync.RWMutex
}

func New(cfg *config.Config, client *api.Client) (*Bot, error) {
	tg, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		tg:       tg,
		cfg:      cfg,
		client:   client,
		states:   make(map[int64]*chatState),
		chatLang: make(map[int64]string),
	}, nil
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "ホーム / Home"},
			{Command: "menu", Description: "メニュー / Menu"},
			{Command: "orders", Description: "注文履歴 / My orders"},
			{Command: "language", Description: "言語 / Language"},
			{Command: "logout", Description: "ログアウト / Log out"},
		},
	}
	_, err := b.tg.Request(cfg)
	return err
}

// Start consumes updates on a single goroutine, so handlers for a chat never
// interleave and the view-models need no locking of their own.
func (b *Bot) Start() {
	_ = b.setBotCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)

	for update := range updates {
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil {
			continue
		}
		msg := update.Message
		chatID := msg.Chat.ID
		text := strings.TrimSpace(msg.Text)

		switch text {
		case "/start":
			b.handleStart(chatID)
		case "/menu":
			b.openMenu(context.Background(), chatID)
		case "/orders":
			b.openOrders(context.Background(), chatID)
		case "/language":
			b.sendLanguagePicker(chatID)
		case "/logout":
			b.handleLogoutPrompt(chatID)
		default:
			b.handleInput(chatID, text)
		}
	}
}

func (b *Bot) state(chatID int64) *chatState {
	b.statesMu.Lock()
	defer b.statesMu.Unlock()
	st, ok := b.states[chatID]
	if !ok {
		st = &chatState{}
		b.states[chatID] = st
	}
	return st
}

func (b *Bot) resetState(chatID int64) {
	b.statesMu.Lock()
	delete(b.states, chatID)
	b.statesMu.Unlock()
}

func (b *Bot) getLang(chatID int64) string {
	b.chatLangMu.RLock()
	l := b.chatLang[chatID]
	b.chatLangMu.RUnlock()
	if l == lang.Ja || l == lang.En {
		return l
	}
	if stored, ok := services.GetChatLanguage(context.Background(), chatID); ok && (stored == lang.Ja || stored == lang.En) {
		b.chatLangMu.Lock()
		b.chatLang[chatID] = stored
		b.chatLangMu.Unlock()
		return stored
	}
	return lang.Ja
}

func (b *Bot) setLang(chatID int64, code string) {
	if code != lang.Ja && code != lang.En {
		return
	}
	b.chatLangMu.Lock()
	b.chatLang[chatID] = code
	b.chatLangMu.Unlock()
	_ = services.SetChatLanguage(context.Background(), chatID, code)
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.tg.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) sendLang(chatID int64, key string, args ...interface{}) {
	b.send(chatID, lang.T(b.getLang(chatID), key, args...))
}

// cardMarkup converts services.Card buttons to a Telegram inline keyboard.
func cardMarkup(c services.Card) *tgbotapi.InlineKeyboardMarkup {
	if len(c.Buttons) == 0 {
		return nil
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range c.Buttons {
		var btns []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
		}
		rows = append(rows, btns)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// sendCard sends a render description as a new message and returns its id.
func (b *Bot) sendCard(chatID int64, c services.Card) int {
	msg := tgbotapi.NewMessage(chatID, c.Text)
	if kb := cardMarkup(c); kb != nil {
		msg.ReplyMarkup = *kb
	}
	sent, err := b.tg.Send(msg)
	if err != nil {
		log.Printf("send error: %v", err)
		return 0
	}
	return sent.MessageID
}

// editCard re-renders an existing message in place. "not modified" is not an
// error; "not found" (user deleted the message) falls back to sending a new
// one and returns the new id.
func (b *Bot) editCard(chatID int64, messageID int, c services.Card) int {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, c.Text)
	if kb := cardMarkup(c); kb != nil {
		edit.ReplyMarkup = kb
	} else {
		emptyKb := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
		edit.ReplyMarkup = &emptyKb
	}
	if _, err := b.tg.Send(edit); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "not modified") {
			return messageID
		}
		if strings.Contains(errStr, "not found") {
			return b.sendCard(chatID, c)
		}
		log.Printf("edit error: %v", err)
	}
	return messageID
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.tg.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		log.Printf("delete message: %v", err)
	}
}

// answer acknowledges a callback, optionally with a short toast.
func (b *Bot) answer(cqID, text string) {
	if _, err := b.tg.Request(tgbotapi.NewCallback(cqID, text)); err != nil {
		log.Printf("answer callback: %v", err)
	}
}

// errorText maps a backend failure to its localized message. Kinds without a
// dedicated template fall back to the generic one with the raw message.
func (b *Bot) errorText(chatID int64, err error) string {
	l := b.getLang(chatID)
	if key, ok := api.MessageKey(api.Classify(err)); ok {
		return lang.T(l, key)
	}
	return lang.T(l, "err_generic", err.Error())
}

// notifyError surfaces a failure as an alert and, on a 401, schedules the
// session teardown.
func (b *Bot) notifyError(chatID int64, err error) {
	b.send(chatID, b.errorText(chatID, err))
	if api.IsSessionExpired(err) {
		b.scheduleLogout(chatID)
	}
}

// scheduleLogout tears the session down after a short delay so the user can
// read the expiry message first.
func (b *Bot) scheduleLogout(chatID int64) {
	time.AfterFunc(logoutDelay, func() {
		if err := services.DeleteSession(context.Background(), chatID); err != nil {
			log.Printf("delete session chat_id=%d: %v", chatID, err)
		}
		b.resetState(chatID)
		b.sendWelcome(chatID)
	})
}

// session loads the chat's session and enforces the customer role. A missing
// or expired session prompts for login and returns ok=false.
func (b *Bot) session(ctx context.Context, chatID int64) (*services.Session, bool) {
	s, err := services.GetSession(ctx, chatID)
	if err != nil {
		log.Printf("get session chat_id=%d: %v", chatID, err)
	}
	if s == nil {
		b.sendWelcome(chatID)
		return nil, false
	}
	if services.TokenExpired(s.Token, time.Now()) {
		b.sendLang(chatID, "err_session_expired")
		_ = services.DeleteSession(ctx, chatID)
		b.resetState(chatID)
		b.sendWelcome(chatID)
		return nil, false
	}
	if s.User.Role != models.RoleCustomer {
		b.sendLang(chatID, "store_role_unsupported")
		_ = services.DeleteSession(ctx, chatID)
		b.resetState(chatID)
		return nil, false
	}
	return s, true
}

func (b *Bot) handleStart(chatID int64) {
	ctx := context.Background()
	if _, ok := services.GetChatLanguage(ctx, chatID); !ok {
		b.sendLanguagePicker(chatID)
		return
	}
	s, err := services.GetSession(ctx, chatID)
	if err != nil {
		log.Printf("get session chat_id=%d: %v", chatID, err)
	}
	if s != nil && !services.TokenExpired(s.Token, time.Now()) && s.User.Role == models.RoleCustomer {
		b.sendHome(chatID, s)
		return
	}
	b.sendWelcome(chatID)
}

func (b *Bot) sendLanguagePicker(chatID int64) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("日本語", "lang:ja"),
			tgbotapi.NewInlineKeyboardButtonData("English", "lang:en"),
		),
	)
	msg := tgbotapi.NewMessage(chatID, lang.T(lang.Ja, "choose_lang"))
	msg.ReplyMarkup = kb
	if _, err := b.tg.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) sendWelcome(chatID int64) {
	l := b.getLang(chatID)
	b.sendCard(chatID, services.Card{
		Text: lang.T(l, "welcome"),
		Buttons: [][]services.Button{
			{
				{Text: lang.T(l, "btn_login"), CallbackData: "auth:login"},
				{Text: lang.T(l, "btn_register"), CallbackData: "auth:register"},
			},
			{{Text: lang.T(l, "btn_demo_login"), CallbackData: "auth:demo"}},
		},
	})
}

func (b *Bot) sendHome(chatID int64, s *services.Session) {
	l := b.getLang(chatID)
	text := lang.T(l, "user_info", s.User.FullName, lang.T(l, "role_"+s.User.Role)) +
		"\n" + lang.T(l, "home_hint")
	b.sendCard(chatID, services.Card{
		Text: text,
		Buttons: [][]services.Button{
			{
				{Text: lang.T(l, "btn_menu"), CallbackData: "home:menu"},
				{Text: lang.T(l, "btn_orders"), CallbackData: "home:orders"},
			},
			{{Text: lang.T(l, "btn_logout"), CallbackData: "logout"}},
		},
	})
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		b.answer(cq.ID, "")
		return
	}
	chatID := cq.Message.Chat.ID
	data := cq.Data
	ctx := context.Background()

	switch {
	case strings.HasPrefix(data, "lang:"):
		b.answer(cq.ID, "")
		code := strings.TrimPrefix(data, "lang:")
		b.setLang(chatID, code)
		b.sendLang(chatID, "lang_changed")
		b.handleStart(chatID)

	case strings.HasPrefix(data, "auth:"), strings.HasPrefix(data, "demo:"),
		strings.HasPrefix(data, "reg_role:"):
		b.handleAuthCallback(ctx, cq, chatID, data)

	case data == "logout":
		b.answer(cq.ID, "")
		b.handleLogoutPrompt(chatID)
	case data == "logoutok":
		b.answer(cq.ID, "")
		if err := services.DeleteSession(ctx, chatID); err != nil {
			log.Printf("delete session chat_id=%d: %v", chatID, err)
		}
		b.resetState(chatID)
		b.editCard(chatID, cq.Message.MessageID, services.Card{Text: lang.T(b.getLang(chatID), "logout_done")})
	case data == "logoutno":
		b.answer(cq.ID, "")
		b.deleteMessage(chatID, cq.Message.MessageID)

	case data == "home:menu":
		b.answer(cq.ID, "")
		b.openMenu(ctx, chatID)
	case data == "home:orders":
		b.answer(cq.ID, "")
		b.openOrders(ctx, chatID)

	case strings.HasPrefix(data, "qty:"), strings.HasPrefix(data, "det"),
		strings.HasPrefix(data, "ord"), strings.HasPrefix(data, "mp:"),
		strings.HasPrefix(data, "mf:"):
		b.handleMenuCallback(ctx, cq, chatID, data)

	case strings.HasPrefix(data, "op:"), strings.HasPrefix(data, "of:"),
		strings.HasPrefix(data, "oc"), strings.HasPrefix(data, "ro:"):
		b.handleOrdersCallback(ctx, cq, chatID, data)

	default:
		b.answer(cq.ID, "")
	}
}

func (b *Bot) handleLogoutPrompt(chatID int64) {
	l := b.getLang(chatID)
	b.sendCard(chatID, services.Card{
		Text: lang.T(l, "logout_confirm"),
		Buttons: [][]services.Button{{
			{Text: lang.T(l, "btn_confirm_yes"), CallbackData: "logoutok"},
			{Text: lang.T(l, "btn_confirm_no"), CallbackData: "logoutno"},
		}},
	})
}

// handleInput dispatches free text to the chat's pending step-state flow.
// Text with no flow in progress is ignored, matching the web page's behavior
// of doing nothing for containers that are not present.
func (b *Bot) handleInput(chatID int64, text string) {
	st := b.state(chatID)
	if st.pending == nil || text == "" {
		return
	}
	switch {
	case strings.HasPrefix(st.pending.Step, "login_"), strings.HasPrefix(st.pending.Step, "reg_"):
		b.handleAuthInput(chatID, st, text)
	case st.pending.Step == "search_term", st.pending.Step == "price_range":
		b.handleFilterInput(chatID, st, text)
	default:
		st.pending = nil
	}
}
