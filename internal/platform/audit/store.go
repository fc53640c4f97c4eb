// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package audit

import "context"

// Repository persists and reads the admin action log.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	ListRecent(ctx context.Context, limit int) ([]*Entry, error)
	Stats(ctx context.Context) (*Stats, error)
}
