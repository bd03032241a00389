package leaderboard

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// CACHE INTERFACE
// Горячий лидерборд кешируется (обычно в Redis), чтобы не ранжировать
// всю коллекцию пользователей на каждый запрос. Кеш - ускорение, а не
// источник истины: промах или ошибка кеша означает пересчёт из хранилища.
// ══════════════════════════════════════════════════════════════════════════════

// Cache определяет операции кеширования построенного лидерборда.
type Cache interface {
	// Get возвращает кешированный лидерборд.
	// Возвращает ok=false при промахе или устаревании.
	Get(ctx context.Context) (board *Board, ok bool, err error)

	// Set сохраняет лидерборд с временем жизни ttl.
	Set(ctx context.Context, board *Board, ttl time.Duration) error

	// Invalidate сбрасывает кеш (после изменения очков или серии).
	Invalidate(ctx context.Context) error
}
