// Package i18n holds the English and Russian string tables for the terminal
// client and a small placeholder-substituting lookup.
package i18n

import (
	"os"
	"strings"
)

// Language is a UI language code.
type Language string

const (
	LangEN Language = "en"
	LangRU Language = "ru"
)

// Detect derives the preferred language from the process locale.
// Anything that does not look Russian falls back to English.
func Detect() Language {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(v), "ru") {
			return LangRU
		}
		return LangEN
	}
	return LangEN
}

// Parse normalizes a user-supplied language code; unknown values map to English.
func Parse(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), string(LangRU)) {
		return LangRU
	}
	return LangEN
}

// T looks up key in the table for lang and substitutes {placeholders} from
// args. Missing keys fall back to English, then to the key itself.
func T(lang Language, key string, args ...map[string]string) string {
	table, ok := translations[lang]
	if !ok {
		table = translations[LangEN]
	}
	s, ok := table[key]
	if !ok {
		if s, ok = translations[LangEN][key]; !ok {
			return key
		}
	}
	for _, m := range args {
		for k, v := range m {
			s = strings.ReplaceAll(s, "{"+k+"}", v)
		}
	}
	return s
}

var translations = map[Language]map[string]string{
	LangEN: {
		"appName":           "AllBox",
		"tagline":           "Share files through password-protected dialogs. No registration required.",
		"createDialog":      "Create New Dialog",
		"enterDialog":       "Enter Dialog",
		"myDialogs":         "My Dialogs",
		"archivedDialogs":   "Archived Dialogs",
		"noArchivedDialogs": "No archived dialogs",
		"savePassword":      "Save your password",
		"passwordWarning":   "This password will NOT be shown again. Anyone with this password can access your dialog.",
		"downloadPassword":  "Download password",
		"dialogCode":        "Dialog Code",
		"enterPrompt":       "Enter the numeric password to access the dialog",
		"wrongPassword":     "Wrong password. Please try again.",
		"dialog":            "Dialog",
		"youAre":            "You are",
		"devices":           "device(s)",
		"files":             "Files",
		"messages":          "Messages",
		"noFiles":           "No files yet. Upload something!",
		"noMessages":        "No messages yet. Send something!",
		"maxSize":           "Max {size} per file",
		"uploading":         "Uploading...",
		"uploadSuccess":     "Uploaded {n} file(s)",
		"uploadFailed":      "Failed to upload {name}",
		"fileDeleted":       "File deleted",
		"deleteFailed":      "Failed to delete",
		"exitDialog":        "Exit to Archive",
		"leaveDialog":       "Leave Completely",
		"restoreDialog":     "Restore",
		"deviceName":        "Device Name",
		"lightTheme":        "Light",
		"darkTheme":         "Dark",
		"noAccess":          "No access to this dialog",
		"createFailed":      "Failed to create dialog",
		"newContent":        "New content available",
	},
	LangRU: {
		"appName":           "AllBox",
		"tagline":           "Делитесь файлами через диалоги, защищённые паролем. Без регистрации.",
		"createDialog":      "Создать новый диалог",
		"enterDialog":       "Войти в диалог",
		"myDialogs":         "Мои диалоги",
		"archivedDialogs":   "Архив диалогов",
		"noArchivedDialogs": "Нет архивных диалогов",
		"savePassword":      "Сохраните пароль",
		"passwordWarning":   "Этот пароль больше НЕ будет показан. Любой, у кого он есть, получит доступ к диалогу.",
		"downloadPassword":  "Скачать пароль",
		"dialogCode":        "Код диалога",
		"enterPrompt":       "Введите числовой пароль для доступа к диалогу",
		"wrongPassword":     "Неверный пароль. Попробуйте ещё раз.",
		"dialog":            "Диалог",
		"youAre":            "Вы",
		"devices":           "устройств(а)",
		"files":             "Файлы",
		"messages":          "Сообщения",
		"noFiles":           "Файлов пока нет. Загрузите что-нибудь!",
		"noMessages":        "Сообщений пока нет. Напишите что-нибудь!",
		"maxSize":           "Максимум {size} на файл",
		"uploading":         "Загрузка...",
		"uploadSuccess":     "Загружено файлов: {n}",
		"uploadFailed":      "Не удалось загрузить {name}",
		"fileDeleted":       "Файл удалён",
		"deleteFailed":      "Не удалось удалить",
		"exitDialog":        "Выйти в архив",
		"leaveDialog":       "Покинуть навсегда",
		"restoreDialog":     "Восстановить",
		"deviceName":        "Имя устройства",
		"lightTheme":        "Светлая",
		"darkTheme":         "Тёмная",
		"noAccess":          "Нет доступа к этому диалогу",
		"createFailed":      "Не удалось создать диалог",
		"newContent":        "Есть новое содержимое",
	},
}
