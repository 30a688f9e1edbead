package ports

import (
	"context"
)

// LocalStorage is a string key/value store playing the role of browser local
// storage. GetItem reports found=false for absent keys.
type LocalStorage interface {
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
