package repository

import (
	"context"

	"toolLendingManagement/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, name, rfidTag string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByRFID(ctx context.Context, rfidTag string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
}

// AdminRepositoryI defines operations on Admin entities.
type AdminRepositoryI interface {
	Create(ctx context.Context, username, passwordHash string, rfidTag *string) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetByRFID(ctx context.Context, rfidTag string) (*models.Admin, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}

// ToolRepositoryI defines operations on Tool entities.
type ToolRepositoryI interface {
	Create(ctx context.Context, t *models.Tool) (*models.Tool, error)
	GetByID(ctx context.Context, id int64) (*models.Tool, error)
	GetByBarcode(ctx context.Context, barcode string) (*models.Tool, error)
	List(ctx context.Context) ([]models.Tool, error)
	Delete(ctx context.Context, id int64) error
}

// SettingRepositoryI defines operations on the settings key/value table.
type SettingRepositoryI interface {
	Get(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]models.Setting, error)
	AutoLogoutSeconds(ctx context.Context) (int, error)
}
