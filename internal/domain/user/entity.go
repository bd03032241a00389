// Package user содержит доменную модель пользователя StudySpark.
// Это ядро бизнес-логики - здесь живут правила серий, очков и значков.
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studyspark/studyspark/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Username представляет уникальное имя пользователя.
// Неизменяемо после регистрации.
type Username string

// IsValid проверяет корректность имени пользователя.
func (u Username) IsValid() bool {
	s := string(u)
	return len(s) >= 2 && len(s) <= 50 && !strings.ContainsAny(s, " \t\n\r")
}

// String возвращает строковое представление имени.
func (u Username) String() string {
	return string(u)
}

// Points представляет накопленные очки (одна минута учёбы = одно очко).
// Дробные значения допустимы, отрицательные - нет.
type Points float64

// IsValid проверяет, что очки неотрицательные.
func (p Points) IsValid() bool {
	return p >= 0
}

// Add складывает очки. Отрицательная дельта игнорируется:
// очки никогда не убывают.
func (p Points) Add(delta Points) Points {
	if delta < 0 {
		return p
	}
	return p + delta
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: USER
// ══════════════════════════════════════════════════════════════════════════════

// User - центральная сущность системы.
type User struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// Username - уникальное имя пользователя.
	Username Username

	// PasswordHash - bcrypt-хеш пароля. Заполняется слоем аутентификации,
	// доменные правила его не читают.
	PasswordHash string

	// Streak - текущая серия последовательных учебных дней.
	Streak int

	// Points - накопленные очки.
	Points Points

	// Badges - полученные значки. Множество: каждый значок не более одного раза.
	Badges []BadgeID

	// LastStudyDate - дата последней учебной активности (полночь UTC).
	// nil, пока пользователь ни разу не занимался.
	LastStudyDate *time.Time

	// CreatedAt - время регистрации.
	CreatedAt time.Time

	// UpdatedAt - время последнего обновления.
	UpdatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidUsername - невалидное имя пользователя.
	ErrInvalidUsername = errors.New("invalid username: must be 2-50 chars without whitespace")

	// ErrInvalidPoints - невалидное значение очков.
	ErrInvalidPoints = errors.New("invalid points: must be non-negative")

	// ErrInvalidStreak - невалидная серия.
	ErrInvalidStreak = errors.New("invalid streak: must be non-negative")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewUserParams содержит параметры для создания нового пользователя.
type NewUserParams struct {
	ID           string
	Username     Username
	PasswordHash string
}

// NewUser создаёт нового пользователя с нулевой серией, нулевыми очками
// и пустым множеством значков.
func NewUser(params NewUserParams) (*User, error) {
	if params.ID == "" {
		return nil, errors.New("user id is required")
	}
	if !params.Username.IsValid() {
		return nil, ErrInvalidUsername
	}

	now := time.Now().UTC()

	return &User{
		ID:            params.ID,
		Username:      params.Username,
		PasswordHash:  params.PasswordHash,
		Streak:        0,
		Points:        0,
		Badges:        nil,
		LastStudyDate: nil,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS (Business Logic)
// ══════════════════════════════════════════════════════════════════════════════

// AddPoints начисляет очки за завершённую сессию.
// Отрицательная дельта отклоняется: очки монотонно не убывают.
func (u *User) AddPoints(delta Points) error {
	if delta < 0 {
		return shared.NewDomainError("user", "AddPoints", shared.ErrNegativeValue, "points delta cannot be negative")
	}
	u.Points = u.Points.Add(delta)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// HasBadge проверяет наличие значка.
func (u *User) HasBadge(id BadgeID) bool {
	for _, b := range u.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// AwardBadge добавляет значок, если его ещё нет.
// Возвращает true, если значок был добавлен.
func (u *User) AwardBadge(id BadgeID) bool {
	if u.HasBadge(id) {
		return false
	}
	u.Badges = append(u.Badges, id)
	u.UpdatedAt = time.Now().UTC()
	return true
}

// BadgeCount возвращает количество полученных значков.
func (u *User) BadgeCount() int {
	return len(u.Badges)
}

// String возвращает строковое представление пользователя для логирования.
func (u *User) String() string {
	return fmt.Sprintf(
		"User{ID: %s, Username: %s, Streak: %d, Points: %.1f, Badges: %d}",
		u.ID, u.Username, u.Streak, float64(u.Points), len(u.Badges),
	)
}

// Clone создаёт глубокую копию пользователя.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	clone := *u
	if u.LastStudyDate != nil {
		d := *u.LastStudyDate
		clone.LastStudyDate = &d
	}
	if u.Badges != nil {
		clone.Badges = make([]BadgeID, len(u.Badges))
		copy(clone.Badges, u.Badges)
	}
	return &clone
}
