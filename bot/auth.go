package bot

import (
	"context"
	"log"
	"strings"

	"github.com/kvv7ma/bento-order-system/api"
	"github.com/kvv7ma/bento-order-system/lang"
	"github.com/kvv7ma/bento-order-system/models"
	"github.com/kvv7ma/bento-order-system/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Demo accounts seeded by the backend, offered as one-tap logins.
var demoAccounts = []struct {
	Username string
	Password string
}{
	{"customer1", "password123"},
	{"customer2", "password123"},
	{"customer3", "password123"},
}

func (b *Bot) handleAuthCallback(ctx context.Context, cq *tgbotapi.CallbackQuery, chatID int64, data string) {
	b.answer(cq.ID, "")
	st := b.state(chatID)
	l := b.getLang(chatID)

	switch {
	case data == "auth:login":
		st.pending = &inputFlow{Step: "login_username"}
		b.sendLang(chatID, "login_username")

	case data == "auth:register":
		st.pending = &inputFlow{Step: "reg_username"}
		b.sendLang(chatID, "register_username")

	case data == "auth:demo":
		var rows [][]services.Button
		for _, acc := range demoAccounts {
			rows = append(rows, []services.Button{{
				Text:         "👤 " + acc.Username,
				CallbackData: "demo:" + acc.Username,
			}})
		}
		b.sendCard(chatID, services.Card{Text: lang.T(l, "btn_demo_login"), Buttons: rows})

	case strings.HasPrefix(data, "demo:"):
		username := strings.TrimPrefix(data, "demo:")
		for _, acc := range demoAccounts {
			if acc.Username == username {
				b.doLogin(ctx, chatID, acc.Username, acc.Password)
				return
			}
		}

	case data == "auth:cancel":
		st.pending = nil
		b.sendLang(chatID, "cancel_input")

	case strings.HasPrefix(data, "reg_role:"):
		if st.pending == nil || st.pending.Step != "reg_role" {
			return
		}
		role := strings.TrimPrefix(data, "reg_role:")
		if role != models.RoleCustomer && role != models.RoleStore {
			return
		}
		st.pending.Role = role
		b.finishRegistration(ctx, chatID, st)
	}
}

func (b *Bot) handleAuthInput(chatID int64, st *chatState, text string) {
	ctx := context.Background()
	flow := st.pending

	switch flow.Step {
	case "login_username":
		if !services.ValidRequired(text) {
			b.sendLang(chatID, "vld_username_required")
			return
		}
		flow.Username = text
		flow.Step = "login_password"
		b.sendLang(chatID, "login_password")

	case "login_password":
		st.pending = nil
		b.doLogin(ctx, chatID, flow.Username, text)

	case "reg_username":
		if !services.ValidUsername(text) {
			b.sendLang(chatID, "vld_username_short")
			return
		}
		flow.Username = text
		flow.Step = "reg_email"
		b.sendLang(chatID, "register_email")

	case "reg_email":
		if !services.ValidEmail(text) {
			b.sendLang(chatID, "vld_email_invalid")
			return
		}
		flow.Email = text
		flow.Step = "reg_password"
		b.sendLang(chatID, "register_password")

	case "reg_password":
		if !services.ValidPassword(text) {
			b.sendLang(chatID, "vld_password_short")
			return
		}
		flow.Password = text
		flow.Step = "reg_fullname"
		b.sendLang(chatID, "register_fullname")

	case "reg_fullname":
		if !services.ValidRequired(text) {
			b.sendLang(chatID, "vld_fullname_required")
			return
		}
		flow.FullName = text
		flow.Step = "reg_role"
		l := b.getLang(chatID)
		b.sendCard(chatID, services.Card{
			Text: lang.T(l, "register_role"),
			Buttons: [][]services.Button{{
				{Text: lang.T(l, "role_customer"), CallbackData: "reg_role:customer"},
				{Text: lang.T(l, "role_store"), CallbackData: "reg_role:store"},
			}},
		})
	}
}

// doLogin authenticates against the backend, honoring the chat's cooldown,
// and persists the session on success.
func (b *Bot) doLogin(ctx context.Context, chatID int64, username, password string) {
	if wait, _ := services.LoginThrottleWaitSeconds(ctx, chatID); wait > 0 {
		b.sendLang(chatID, "login_cooldown", wait)
		return
	}

	tr, err := b.client.Login(ctx, username, password)
	if err != nil {
		if recErr := services.RecordLoginFailed(ctx, chatID); recErr != nil {
			log.Printf("record login failed chat_id=%d: %v", chatID, recErr)
		}
		switch api.Classify(err) {
		case api.KindBadCredentials:
			b.sendLang(chatID, "err_bad_credentials")
		case api.KindInactiveUser:
			b.sendLang(chatID, "err_inactive_user")
		default:
			b.sendLang(chatID, "login_failed", err.Error())
		}
		return
	}
	if recErr := services.RecordLoginSuccess(ctx, chatID); recErr != nil {
		log.Printf("record login success chat_id=%d: %v", chatID, recErr)
	}

	if tr.User.Role != models.RoleCustomer {
		b.sendLang(chatID, "store_role_unsupported")
		return
	}

	s := &services.Session{ChatID: chatID, Token: tr.AccessToken, User: tr.User}
	if err := services.SaveSession(ctx, s); err != nil {
		log.Printf("save session chat_id=%d: %v", chatID, err)
	}
	b.sendLang(chatID, "login_success", tr.User.FullName)
	b.sendHome(chatID, s)
}

func (b *Bot) finishRegistration(ctx context.Context, chatID int64, st *chatState) {
	flow := st.pending
	st.pending = nil

	_, err := b.client.Register(ctx, api.RegisterInput{
		Username: flow.Username,
		Email:    flow.Email,
		Password: flow.Password,
		FullName: flow.FullName,
		Role:     flow.Role,
	})
	if err != nil {
		b.sendLang(chatID, "register_failed", b.errorText(chatID, err))
		return
	}
	b.sendLang(chatID, "register_success")
	b.sendWelcome(chatID)
}
