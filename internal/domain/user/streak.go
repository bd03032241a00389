package user

import (
	"time"

	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// STREAK (Серия учебных дней)
// Правило применяется не чаще одного раза в календарный день:
//   - первая активность          → серия = 1
//   - следующий день подряд      → серия + 1
//   - пропуск хотя бы одного дня → серия = 1
//   - тот же день                → без изменений (идемпотентно)
//   - дата в прошлом             → отклоняется как аномалия данных
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStreak обновляет серию по дате today и записывает LastStudyDate.
// Повторный вызов в тот же день ничего не меняет: именно это делает
// повторный вход за день безопасным.
//
// Если today раньше LastStudyDate (перевод часов, кривые данные клиента),
// пользователь не изменяется и возвращается ErrStreakDateAnomaly -
// серия никогда не уменьшается из-за подозрительной даты.
func (u *User) UpdateStreak(today time.Time) error {
	day := timeutil.DateOf(today)

	if u.LastStudyDate == nil {
		u.Streak = 1
		u.LastStudyDate = &day
		u.UpdatedAt = time.Now().UTC()
		return nil
	}

	switch diff := timeutil.DaysBetween(*u.LastStudyDate, day); {
	case diff < 0:
		return shared.ErrStreakDateAnomaly
	case diff == 0:
		// Уже засчитано сегодня
		return nil
	case diff == 1:
		u.Streak++
	default:
		// Пропущены дни - серия начинается заново
		u.Streak = 1
	}

	u.LastStudyDate = &day
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// StreakBracket возвращает мотивационную категорию серии для отчёта:
// 0, 1-2, 3-6 или 7+ дней.
func (u *User) StreakBracket() StreakBracket {
	switch {
	case u.Streak == 0:
		return StreakBracketNone
	case u.Streak < 3:
		return StreakBracketStarting
	case u.Streak < 7:
		return StreakBracketBuilding
	default:
		return StreakBracketStrong
	}
}

// StreakBracket - категория серии для генерации сообщений.
type StreakBracket int

const (
	// StreakBracketNone - серия равна нулю.
	StreakBracketNone StreakBracket = iota
	// StreakBracketStarting - серия 1-2 дня.
	StreakBracketStarting
	// StreakBracketBuilding - серия 3-6 дней.
	StreakBracketBuilding
	// StreakBracketStrong - серия 7 дней и больше.
	StreakBracketStrong
)
