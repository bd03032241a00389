// Package leaderboard содержит доменную модель лидерборда StudySpark.
// Лидерборд - это детерминированный топ-N всех пользователей: при одних
// и тех же записях порядок всегда одинаковый.
package leaderboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/studyspark/studyspark/internal/domain/user"
)

// DefaultTopN - размер лидерборда по умолчанию.
const DefaultTopN = 10

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD ENTRY
// ══════════════════════════════════════════════════════════════════════════════

// Entry представляет одну строку лидерборда.
type Entry struct {
	// Rank - позиция в рейтинге, начиная с 1. Ранги непрерывны:
	// даже при полном равенстве ключей места не делятся.
	Rank int

	// UserID - внутренний идентификатор пользователя.
	UserID string

	// Username - имя пользователя.
	Username string

	// Streak - текущая серия учебных дней.
	Streak int

	// Points - накопленные очки.
	Points float64

	// BadgeCount - количество значков.
	BadgeCount int
}

// String возвращает строковое представление записи для логирования.
func (e Entry) String() string {
	return fmt.Sprintf(
		"Entry{Rank: %d, Username: %s, Streak: %d, Points: %.1f, Badges: %d}",
		e.Rank, e.Username, e.Streak, e.Points, e.BadgeCount,
	)
}

// Board представляет построенный лидерборд.
type Board struct {
	// Entries - записи в порядке рангов.
	Entries []Entry

	// TotalUsers - сколько пользователей участвовало в ранжировании.
	TotalUsers int

	// GeneratedAt - время построения.
	GeneratedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// RANKER
// Ключ сортировки по убыванию приоритета:
//   1) серия (по убыванию)
//   2) очки (по убыванию)
//   3) количество значков (по убыванию)
// Дальше ничья не разрешается: стабильная сортировка сохраняет исходный
// порядок коллекции, что и делает результат детерминированным.
// ══════════════════════════════════════════════════════════════════════════════

// Ranker строит топ-N лидерборда.
type Ranker struct {
	topN int
}

// NewRanker создаёт ранкер с размером топа по умолчанию.
func NewRanker() *Ranker {
	return &Ranker{topN: DefaultTopN}
}

// NewRankerWithSize создаёт ранкер с заданным размером топа.
func NewRankerWithSize(topN int) *Ranker {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Ranker{topN: topN}
}

// Rank строит лидерборд по всем пользователям.
// Длина результата - min(topN, len(users)). Вход не мутируется.
func (r *Ranker) Rank(users []*user.User) *Board {
	ordered := make([]*user.User, len(users))
	copy(ordered, users)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Streak != b.Streak {
			return a.Streak > b.Streak
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.BadgeCount() > b.BadgeCount()
	})

	n := r.topN
	if n > len(ordered) {
		n = len(ordered)
	}

	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		u := ordered[i]
		entries = append(entries, Entry{
			Rank:       i + 1,
			UserID:     u.ID,
			Username:   u.Username.String(),
			Streak:     u.Streak,
			Points:     float64(u.Points),
			BadgeCount: u.BadgeCount(),
		})
	}

	return &Board{
		Entries:     entries,
		TotalUsers:  len(users),
		GeneratedAt: time.Now().UTC(),
	}
}
