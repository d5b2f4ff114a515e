package catalog

import "github.com/oukeidos/caplet/internal/language"

// Display string keys.
const (
	KeyCaptionsActive = "captions_active"
	KeyPanelTitle     = "panel_title"
	KeySubtitles      = "subtitles"
	KeyAudio          = "audio"
	KeySubtitleSize   = "subtitle_size"
	KeySettings       = "settings"
	KeyLanguage       = "language"
	KeySignIn         = "sign_in"
	KeySignOut        = "sign_out"
	KeyEmail          = "email"
	KeyPassword       = "password"
	KeyLogin          = "login"
	KeyRegister       = "register"
	KeyLoggingIn      = "logging_in"
	KeyRegistering    = "registering"
)

// uiStrings holds per-language display strings. Partial tables are fine:
// missing keys fall back to the default language's bundle.
var uiStrings = map[language.Code]map[string]string{
	"en": {
		KeyCaptionsActive: "Translated captions active",
		KeyPanelTitle:     "Translation",
		KeySubtitles:      "Subtitles",
		KeyAudio:          "Dubbed audio",
		KeySubtitleSize:   "Subtitle size",
		KeySettings:       "Settings",
		KeyLanguage:       "Language",
		KeySignIn:         "Sign in",
		KeySignOut:        "Sign out",
		KeyEmail:          "Email",
		KeyPassword:       "Password",
		KeyLogin:          "Log in",
		KeyRegister:       "Create account",
		KeyLoggingIn:      "Signing in…",
		KeyRegistering:    "Creating account…",
	},
	"es": {
		KeyCaptionsActive: "Subtítulos traducidos activos",
		KeyPanelTitle:     "Traducción",
		KeySubtitles:      "Subtítulos",
		KeyAudio:          "Audio doblado",
		KeySubtitleSize:   "Tamaño de subtítulos",
		KeySettings:       "Ajustes",
		KeyLanguage:       "Idioma",
		KeySignIn:         "Iniciar sesión",
		KeySignOut:        "Cerrar sesión",
		KeyEmail:          "Correo electrónico",
		KeyPassword:       "Contraseña",
		KeyLogin:          "Entrar",
		KeyRegister:       "Crear cuenta",
	},
	"pt": {
		KeyCaptionsActive: "Legendas traduzidas ativas",
		KeyPanelTitle:     "Tradução",
		KeySubtitles:      "Legendas",
		KeyAudio:          "Áudio dublado",
		KeySubtitleSize:   "Tamanho das legendas",
		KeySettings:       "Configurações",
		KeyLanguage:       "Idioma",
		KeySignIn:         "Entrar",
		KeySignOut:        "Sair",
		KeyEmail:          "E-mail",
		KeyPassword:       "Senha",
		KeyLogin:          "Entrar",
		KeyRegister:       "Criar conta",
	},
	"fr": {
		KeyCaptionsActive: "Sous-titres traduits actifs",
		KeyPanelTitle:     "Traduction",
		KeySubtitles:      "Sous-titres",
		KeyAudio:          "Audio doublé",
		KeySubtitleSize:   "Taille des sous-titres",
		KeySettings:       "Paramètres",
		KeyLanguage:       "Langue",
		KeySignIn:         "Se connecter",
		KeySignOut:        "Se déconnecter",
		KeyEmail:          "E-mail",
		KeyPassword:       "Mot de passe",
		KeyLogin:          "Connexion",
		KeyRegister:       "Créer un compte",
	},
	"de": {
		KeyCaptionsActive: "Übersetzte Untertitel aktiv",
		KeyPanelTitle:     "Übersetzung",
		KeySubtitles:      "Untertitel",
		KeyAudio:          "Synchronisierter Ton",
		KeySubtitleSize:   "Untertitelgröße",
		KeySettings:       "Einstellungen",
		KeyLanguage:       "Sprache",
		KeySignIn:         "Anmelden",
		KeySignOut:        "Abmelden",
		KeyEmail:          "E-Mail",
		KeyPassword:       "Passwort",
		KeyLogin:          "Anmelden",
		KeyRegister:       "Konto erstellen",
	},
	"ja": {
		KeyCaptionsActive: "翻訳字幕が有効です",
		KeyPanelTitle:     "翻訳",
		KeySubtitles:      "字幕",
		KeyAudio:          "吹き替え音声",
		KeySubtitleSize:   "字幕サイズ",
		KeySettings:       "設定",
		KeyLanguage:       "言語",
		KeySignIn:         "ログイン",
		KeySignOut:        "ログアウト",
		KeyEmail:          "メールアドレス",
		KeyPassword:       "パスワード",
		KeyLogin:          "ログイン",
		KeyRegister:       "アカウント作成",
	},
	"ko": {
		KeyCaptionsActive: "번역 자막 사용 중",
		KeyPanelTitle:     "번역",
		KeySubtitles:      "자막",
		KeyAudio:          "더빙 오디오",
		KeySubtitleSize:   "자막 크기",
		KeySettings:       "설정",
		KeyLanguage:       "언어",
		KeySignIn:         "로그인",
		KeySignOut:        "로그아웃",
		KeyEmail:          "이메일",
		KeyPassword:       "비밀번호",
		KeyLogin:          "로그인",
		KeyRegister:       "계정 만들기",
	},
}
