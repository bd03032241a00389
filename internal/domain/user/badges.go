package user

import "time"

// ══════════════════════════════════════════════════════════════════════════════
// BADGES (Значки)
// Закрытый каталог: новые значки добавляются только здесь.
// Значок выдаётся один раз и никогда не отзывается.
// ══════════════════════════════════════════════════════════════════════════════

// BadgeID представляет тип значка.
type BadgeID string

const (
	// BadgeSevenDayStreak - серия 7 дней подряд.
	BadgeSevenDayStreak BadgeID = "seven_day_streak"
	// BadgeThirtyDayStreak - серия 30 дней подряд.
	BadgeThirtyDayStreak BadgeID = "thirty_day_streak"
	// BadgeThousandPoints - накоплено 1000 очков.
	BadgeThousandPoints BadgeID = "thousand_points"
)

// IsValid проверяет, что значок входит в каталог.
func (b BadgeID) IsValid() bool {
	switch b {
	case BadgeSevenDayStreak, BadgeThirtyDayStreak, BadgeThousandPoints:
		return true
	default:
		return false
	}
}

// BadgeDefinition описывает значок.
type BadgeDefinition struct {
	ID          BadgeID
	Name        string
	Description string
	Emoji       string
}

// BadgeDefinitions возвращает все определения значков в порядке каталога.
func BadgeDefinitions() []BadgeDefinition {
	return []BadgeDefinition{
		{BadgeSevenDayStreak, "7-Day Streak", "Studied 7 days in a row", "🔥"},
		{BadgeThirtyDayStreak, "30-Day Streak", "Studied 30 days in a row", "💪"},
		{BadgeThousandPoints, "1000 Points", "Earned 1000 study points", "🏆"},
	}
}

// BadgeDefinitionFor возвращает определение значка по идентификатору.
func BadgeDefinitionFor(id BadgeID) (BadgeDefinition, bool) {
	for _, def := range BadgeDefinitions() {
		if def.ID == id {
			return def, true
		}
	}
	return BadgeDefinition{}, false
}

// Awarded представляет выданный значок с временем получения.
type Awarded struct {
	ID        BadgeID
	AwardedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// BADGE EVALUATOR
// ══════════════════════════════════════════════════════════════════════════════

// BadgeEvaluator проверяет пороги и выдаёт новые значки.
// Условия независимы: порядок проверки не влияет на результат,
// за один вызов могут сработать сразу несколько.
type BadgeEvaluator struct{}

// NewBadgeEvaluator создаёт проверщик значков.
func NewBadgeEvaluator() *BadgeEvaluator {
	return &BadgeEvaluator{}
}

// Evaluate выдаёт пользователю все значки, пороги которых достигнуты,
// и возвращает только новые. Уже полученный значок не выдаётся повторно,
// поэтому повторный вызов на неизменном пользователе возвращает пустой срез.
func (e *BadgeEvaluator) Evaluate(u *User) []BadgeID {
	var awarded []BadgeID

	award := func(id BadgeID, qualified bool) {
		if qualified && u.AwardBadge(id) {
			awarded = append(awarded, id)
		}
	}

	award(BadgeSevenDayStreak, u.Streak >= 7)
	award(BadgeThirtyDayStreak, u.Streak >= 30)
	award(BadgeThousandPoints, u.Points >= 1000)

	return awarded
}
