package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evn/sop_backendl/internal/pkg/permissions"
)

// PermissionRepository читает уже посчитанные права пользователя.
// Сам расчет прав делает внешний движок, здесь только выборка булевых флагов.
type PermissionRepository struct {
	db *sql.DB
}

func NewPermissionRepository(db *sql.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) LoadCapabilities(ctx context.Context, userID int) (string, permissions.Capabilities, error) {
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1`, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, fmt.Errorf("пользователь %d не найден", userID)
	}
	if err != nil {
		return "", nil, fmt.Errorf("ошибка выборки роли: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT permission FROM user_permissions WHERE user_id = $1`, userID)
	if err != nil {
		return "", nil, fmt.Errorf("ошибка выборки прав: %w", err)
	}
	defer rows.Close()

	caps := permissions.Capabilities{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", nil, fmt.Errorf("ошибка чтения права: %w", err)
		}
		caps[name] = true
	}
	return role, caps, rows.Err()
}
