package lang

import "fmt"

const (
	Ja = "ja"
	En = "en"
)

// T returns the template for key in the given language, formatted with args
// when present. Falls back to Japanese, then to the key itself so a missing
// translation is visible instead of silent.
func T(langCode string, key string, args ...interface{}) string {
	m, ok := messages[langCode]
	if !ok {
		m = messages[Ja]
	}
	tmpl, ok := m[key]
	if !ok {
		tmpl, ok = messages[Ja][key]
		if !ok {
			return key
		}
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

var messages = map[string]map[string]string{
	Ja: {
		"choose_lang":    "言語を選択してください / Choose your language",
		"lang_changed":   "言語を日本語に変更しました",
		"welcome":        "🍱 弁当注文システムへようこそ！\nご利用にはログインが必要です。",
		"home_hint":      "メニューから操作を選んでください。",
		"user_info":      "%sさん（%s）",
		"role_customer":  "お客様",
		"role_store":     "店舗",
		"need_login":     "ログインしてください（/start）",
		"store_role_unsupported": "店舗アカウントはこのボットでは利用できません。お客様アカウントでログインしてください。",

		// auth flow
		"btn_login":           "🔑 ログイン",
		"btn_register":        "📝 新規登録",
		"btn_demo_login":      "👤 デモログイン",
		"login_username":      "ユーザー名を入力してください",
		"login_password":      "パスワードを入力してください",
		"login_success":       "%sさん、ログインしました",
		"login_failed":        "ログインに失敗しました: %s",
		"login_cooldown":      "ログイン試行が多すぎます。%d秒後にもう一度お試しください。",
		"register_username":   "ユーザー名を入力してください（3文字以上）",
		"register_email":      "メールアドレスを入力してください",
		"register_password":   "パスワードを入力してください（6文字以上）",
		"register_fullname":   "お名前を入力してください",
		"register_role":       "アカウント種別を選択してください",
		"register_success":    "アカウントが作成されました。ログインしてください。",
		"register_failed":     "登録に失敗しました: %s",
		"cancel_input":        "入力を中止しました",
		"btn_cancel":          "❌ 中止",
		"vld_username_required": "ユーザー名を入力してください",
		"vld_username_short":    "ユーザー名は3文字以上で入力してください",
		"vld_email_invalid":     "有効なメールアドレスを入力してください",
		"vld_password_short":    "パスワードは6文字以上で入力してください",
		"vld_fullname_required": "お名前を入力してください",
		"logout_confirm": "ログアウトしますか？",
		"logout_done":    "ログアウトしました。ご利用ありがとうございました。",

		// error classification
		"err_session_expired": "認証が切れました。再度ログインしてください。",
		"err_forbidden":       "この操作を実行する権限がありません。",
		"err_not_found":       "選択されたメニューは現在利用できません。",
		"err_bad_request":     "注文内容に問題があります。数量を確認してください。",
		"err_server":          "サーバーエラーが発生しました。しばらく時間をおいて再度お試しください。",
		"err_bad_credentials": "ユーザー名またはパスワードが正しくありません",
		"err_inactive_user":   "アカウントが無効になっています",
		"err_generic":         "エラー: %s",

		// menu view
		"btn_menu":         "🍱 メニュー",
		"btn_orders":       "📋 注文履歴",
		"btn_logout":       "🚪 ログアウト",
		"menu_loading":     "メニューを読み込み中...",
		"menu_load_failed": "メニューの読み込みに失敗しました",
		"menu_empty":       "🍱 メニューがありません\n現在、利用可能なメニューがありません。",
		"menu_no_match":    "🔍 メニューが見つかりません\n検索条件を変更してみてください",
		"menu_header":      "🍱 メニュー一覧",
		"result_count":     "%d件のメニューが見つかりました",
		"page_info":        "%d / %d ページ",
		"price_fmt":        "%d円",
		"subtotal":         "小計: %s",
		"btn_search":       "🔍 検索",
		"btn_price_filter": "💴 価格帯",
		"btn_clear_filter": "↩️ 条件クリア",
		"search_prompt":    "検索キーワードを入力してください",
		"price_prompt":     "価格帯を「最低 最高」の形式で入力してください（例: 500 1000）",
		"filter_applied":   "検索条件を適用しました",
		"filter_cleared":   "検索条件をクリアしました",
		"btn_detail":       "詳細",
		"btn_order_now":    "🛒 今すぐ注文",
		"prev":             "« 前",
		"next":             "次 »",

		// detail view
		"detail_no_description": "メニューの説明はありません。",
		"btn_close":             "閉じる",
		"btn_order_one":         "注文する",

		// ordering
		"order_confirm":    "%s を %d個 注文しますか？\n合計金額: %s",
		"btn_confirm_yes":  "✅ 注文する",
		"btn_confirm_no":   "❌ やめる",
		"order_declined":   "注文を中止しました",
		"order_submitting": "注文中...",
		"order_success":    "%s を %d個 注文しました！\n注文番号: %d",
		"order_failed":     "注文に失敗しました",
		"qty_required":     "数量を選択してください",
		"menu_not_found":   "メニューが見つかりません",

		// order history
		"orders_loading":     "注文履歴を読み込み中...",
		"orders_load_failed": "注文履歴の読み込みに失敗しました",
		"orders_empty":       "📋 注文履歴がありません\nまだ注文をされていません。",
		"orders_no_match":    "🔍 該当する注文がありません\n検索条件を変更してみてください。",
		"orders_header":      "📋 注文履歴",
		"order_line_id":      "注文 #%d",
		"order_line_qty":     "%s × %d個",
		"order_line_total":   "合計: %s",
		"notes_label":        "備考: %s",
		"btn_cancel_order":   "キャンセル",
		"btn_reorder":        "再注文",
		"btn_filter_status":  "📎 状態で絞り込み",
		"status_all":         "すべて",
		"cancel_order_confirm": "この注文をキャンセルしますか？",
		"cancel_order_success": "注文をキャンセルしました",
		"cancel_order_failed":  "注文のキャンセルに失敗しました",

		// status labels
		"status_pending":   "注文受付",
		"status_confirmed": "注文確認済み",
		"status_preparing": "調理中",
		"status_ready":     "受取準備完了",
		"status_completed": "受取完了",
		"status_cancelled": "キャンセル",
	},
	En: {
		"choose_lang":    "言語を選択してください / Choose your language",
		"lang_changed":   "Language switched to English",
		"welcome":        "🍱 Welcome to the bento ordering system!\nPlease log in to continue.",
		"home_hint":      "Pick an action from the menu below.",
		"user_info":      "%s (%s)",
		"role_customer":  "customer",
		"role_store":     "store",
		"need_login":     "Please log in first (/start)",
		"store_role_unsupported": "Store accounts are not supported in this bot. Please log in with a customer account.",

		"btn_login":           "🔑 Log in",
		"btn_register":        "📝 Register",
		"btn_demo_login":      "👤 Demo login",
		"login_username":      "Enter your username",
		"login_password":      "Enter your password",
		"login_success":       "Welcome back, %s!",
		"login_failed":        "Login failed: %s",
		"login_cooldown":      "Too many login attempts. Try again in %d seconds.",
		"register_username":   "Enter a username (at least 3 characters)",
		"register_email":      "Enter your email address",
		"register_password":   "Enter a password (at least 6 characters)",
		"register_fullname":   "Enter your full name",
		"register_role":       "Choose the account type",
		"register_success":    "Account created. Please log in.",
		"register_failed":     "Registration failed: %s",
		"cancel_input":        "Input cancelled",
		"btn_cancel":          "❌ Cancel",
		"vld_username_required": "Username is required",
		"vld_username_short":    "Username must be at least 3 characters",
		"vld_email_invalid":     "Please enter a valid email address",
		"vld_password_short":    "Password must be at least 6 characters",
		"vld_fullname_required": "Full name is required",
		"logout_confirm": "Log out?",
		"logout_done":    "Logged out. See you again!",

		"err_session_expired": "Your session has expired. Please log in again.",
		"err_forbidden":       "You are not allowed to perform this action.",
		"err_not_found":       "The selected menu is not available right now.",
		"err_bad_request":     "There is a problem with the order. Please check the quantity.",
		"err_server":          "A server error occurred. Please try again later.",
		"err_bad_credentials": "Incorrect username or password",
		"err_inactive_user":   "This account has been deactivated",
		"err_generic":         "Error: %s",

		"btn_menu":         "🍱 Menu",
		"btn_orders":       "📋 My orders",
		"btn_logout":       "🚪 Log out",
		"menu_loading":     "Loading menus...",
		"menu_load_failed": "Failed to load menus",
		"menu_empty":       "🍱 No menus\nThere are no menus available right now.",
		"menu_no_match":    "🔍 No menus found\nTry changing the search filters",
		"menu_header":      "🍱 Menu",
		"result_count":     "%d menus found",
		"page_info":        "page %d / %d",
		"price_fmt":        "¥%d",
		"subtotal":         "Subtotal: %s",
		"btn_search":       "🔍 Search",
		"btn_price_filter": "💴 Price range",
		"btn_clear_filter": "↩️ Clear filters",
		"search_prompt":    "Enter a search keyword",
		"price_prompt":     "Enter a price range as \"min max\" (e.g. 500 1000)",
		"filter_applied":   "Filters applied",
		"filter_cleared":   "Filters cleared",
		"btn_detail":       "Details",
		"btn_order_now":    "🛒 Order now",
		"prev":             "« Prev",
		"next":             "Next »",

		"detail_no_description": "No description for this menu.",
		"btn_close":             "Close",
		"btn_order_one":         "Order",

		"order_confirm":    "Order %s × %d?\nTotal: %s",
		"btn_confirm_yes":  "✅ Place order",
		"btn_confirm_no":   "❌ Never mind",
		"order_declined":   "Order cancelled",
		"order_submitting": "Placing order...",
		"order_success":    "%s × %d ordered!\nOrder number: %d",
		"order_failed":     "Failed to place the order",
		"qty_required":     "Please choose a quantity first",
		"menu_not_found":   "Menu not found",

		"orders_loading":     "Loading order history...",
		"orders_load_failed": "Failed to load order history",
		"orders_empty":       "📋 No orders yet\nYou have not placed any orders.",
		"orders_no_match":    "🔍 No matching orders\nTry changing the filters.",
		"orders_header":      "📋 Order history",
		"order_line_id":      "Order #%d",
		"order_line_qty":     "%s × %d",
		"order_line_total":   "Total: %s",
		"notes_label":        "Notes: %s",
		"btn_cancel_order":   "Cancel",
		"btn_reorder":        "Reorder",
		"btn_filter_status":  "📎 Filter by status",
		"status_all":         "All",
		"cancel_order_confirm": "Cancel this order?",
		"cancel_order_success": "The order has been cancelled",
		"cancel_order_failed":  "Failed to cancel the order",

		"status_pending":   "Pending",
		"status_confirmed": "Confirmed",
		"status_preparing": "Preparing",
		"status_ready":     "Ready for pickup",
		"status_completed": "Completed",
		"status_cancelled": "Cancelled",
	},
}
