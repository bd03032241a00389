package user

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Контракт хранилища пользовательских записей.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции над записями пользователей.
// Save - это upsert: серия, очки и значки одного пользователя
// записываются атомарно относительно чтений той же записи.
type Repository interface {
	// Create создаёт нового пользователя.
	// Возвращает shared.ErrUserAlreadyExists, если имя занято.
	Create(ctx context.Context, u *User) error

	// GetByID возвращает пользователя по внутреннему ID.
	// Возвращает shared.ErrUserNotFound, если пользователь не найден.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByUsername возвращает пользователя по имени.
	// Возвращает shared.ErrUserNotFound, если пользователь не найден.
	GetByUsername(ctx context.Context, username Username) (*User, error)

	// Save сохраняет изменённую запись (upsert).
	Save(ctx context.Context, u *User) error

	// List возвращает всех пользователей в порядке регистрации.
	// Используется лидербордом.
	List(ctx context.Context) ([]*User, error)

	// ExistsByUsername проверяет занятость имени.
	ExistsByUsername(ctx context.Context, username Username) (bool, error)

	// Count возвращает общее количество пользователей.
	Count(ctx context.Context) (int, error)
}
