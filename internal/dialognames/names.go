// Package dialognames supplies the pool of display names assigned to newly
// created dialogs. Names are sharing-themed and exist in both UI languages.
package dialognames

import (
	"math/rand"

	"github.com/allbox-app/allbox/internal/i18n"
)

var names = map[i18n.Language][]string{
	i18n.LangEN: {
		"Share Freely", "Open Exchange", "Quick Share", "Easy Transfer",
		"Fast Link", "Seamless Flow", "Smooth Sync", "Team Space",
		"Group Hub", "Unity Box",
		"Safe Haven", "Trust Zone", "Secure Drop", "Private Path",
		"Hidden Gem", "Secret Vault", "Guard Box", "Shield Space",
		"Swift Send", "Rapid Route", "Flash Drive", "Instant Move",
		"Speed Link", "Quick Drop", "Fast Track", "Turbo Share",
		"Bridge Point", "Link Hub", "Connect Flow", "Bond Space",
		"Sync Point", "Join Force", "Unite Now", "Merge Path",
		"Free Flow", "Open Sky", "Clear Path", "Bright Link",
		"New Wave", "Fresh Start", "Bold Move", "Next Step",
	},
	i18n.LangRU: {
		"Общий Путь", "Связь Друзей", "Быстрый Обмен", "Лёгкая Передача",
		"Простой Путь", "Плавный Поток", "Синхро Точка", "Командный Дух",
		"Групповой Хаб", "Единый Центр",
		"Тихая Гавань", "Зона Доверия", "Безопасный Сейф", "Тайный Путь",
		"Скрытое Сокровище", "Секретный Бокс", "Надёжный Щит", "Охранная Зона",
		"Быстрый Старт", "Молния Связь", "Мгновенный Путь", "Скоростной Канал",
		"Турбо Обмен", "Флеш Доставка", "Ракетный Путь", "Экспресс Линк",
		"Мост Связи", "Точка Встречи", "Поток Данных", "Узел Связи",
		"Синхронный Мир", "Сила Вместе", "Общий Импульс", "Путь Вперёд",
		"Свободный Поток", "Открытый Мир", "Ясный Путь", "Яркая Связь",
		"Новая Волна", "Чистый Старт", "Смелый Шаг", "Новый Горизонт",
	},
}

// Random picks a random dialog name for the given language.
// Unknown languages use the English pool.
func Random(lang i18n.Language) string {
	pool, ok := names[lang]
	if !ok {
		pool = names[i18n.LangEN]
	}
	return pool[rand.Intn(len(pool))]
}
