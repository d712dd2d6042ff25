// Package txdb lets gorm repositories run on a *sql.Tx opened by a service.
package txdb

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Conn returns a gorm handle scoped to ctx. When tx is non-nil every statement
// built from the handle is executed on tx instead of the pool.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	g := db.WithContext(ctx)
	if tx != nil {
		g.Statement.ConnPool = tx
	}
	return g
}
