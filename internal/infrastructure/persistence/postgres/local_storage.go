package postgres

import (
	"context"
	"database/sql"
	"errors"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/infrastructure/monitoring"
)

type LocalStorage struct {
	db *sql.DB
}

func NewLocalStorage(conn *Connection) *LocalStorage {
	return &LocalStorage{db: conn.GetDB()}
}

func (s *LocalStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, domainErrors.ErrStorageKeyEmpty
	}

	var value string
	err := monitoring.InstrumentQueryRow(ctx, s.db, "select", "local_storage",
		`SELECT value FROM local_storage WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}

	return value, true, nil
}

func (s *LocalStorage) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return domainErrors.ErrStorageKeyEmpty
	}

	_, err := monitoring.InstrumentExec(ctx, s.db, "upsert", "local_storage", `
INSERT INTO local_storage (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value, updated_at = NOW()`, key, value)
	return err
}

func (s *LocalStorage) RemoveItem(ctx context.Context, key string) error {
	_, err := monitoring.InstrumentExec(ctx, s.db, "delete", "local_storage",
		`DELETE FROM local_storage WHERE key = $1`, key)
	return err
}

func (s *LocalStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
