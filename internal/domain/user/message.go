package user

import "fmt"

// ══════════════════════════════════════════════════════════════════════════════
// PERSONALIZED MESSAGE
// Три независимых предложения: по серии, по очкам, по значкам.
// Каждая категория отображается ровно в один шаблон. Это косметика,
// но границы категорий - часть контракта отчёта.
// ══════════════════════════════════════════════════════════════════════════════

// PointsBracket - категория очков для генерации сообщений.
type PointsBracket int

const (
	// PointsBracketLow - меньше 100 очков.
	PointsBracketLow PointsBracket = iota
	// PointsBracketMid - от 100 до 499 очков.
	PointsBracketMid
	// PointsBracketHigh - 500 очков и больше.
	PointsBracketHigh
)

// PointsBracketOf возвращает категорию очков пользователя.
func (u *User) PointsBracketOf() PointsBracket {
	switch {
	case u.Points < 100:
		return PointsBracketLow
	case u.Points < 500:
		return PointsBracketMid
	default:
		return PointsBracketHigh
	}
}

// PersonalizedMessage составляет мотивационное сообщение из трёх
// предложений. Категории: серия (0 / 1-2 / 3-6 / 7+), очки
// (<100 / 100-499 / 500+), значки (0 / >0).
func PersonalizedMessage(u *User) string {
	var streakPart string
	switch u.StreakBracket() {
	case StreakBracketNone:
		streakPart = "It's a great day to start a new streak!"
	case StreakBracketStarting:
		streakPart = fmt.Sprintf("Your %d-day streak is a good start! Keep it going.", u.Streak)
	case StreakBracketBuilding:
		streakPart = fmt.Sprintf("Awesome! You're on a %d-day streak. You're building great habits!", u.Streak)
	default:
		streakPart = fmt.Sprintf("Wow! A %d-day streak! You're crushing it!", u.Streak)
	}

	var pointsPart string
	switch u.PointsBracketOf() {
	case PointsBracketLow:
		pointsPart = "Every minute of study counts. Keep adding to your points!"
	case PointsBracketMid:
		pointsPart = fmt.Sprintf("You've earned %.0f points already. Great progress!", float64(u.Points))
	default:
		pointsPart = fmt.Sprintf("With %.0f points, you're showing serious dedication!", float64(u.Points))
	}

	var badgePart string
	if u.BadgeCount() == 0 {
		badgePart = "Complete challenges to earn your first badge!"
	} else {
		badgePart = fmt.Sprintf("Your %d badges show your commitment!", u.BadgeCount())
	}

	return streakPart + " " + pointsPart + " " + badgePart
}
