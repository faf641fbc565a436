package migrations

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/wallcal/wallcal.go/db/models"
)

/* Since this init will reflect the latest model fields when run on a fresh db
make sure that when you add/remove columns in subsequent migrations
IfNotExists/IfExists is used, otherwise it's going to result in errors. */
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if _, err := db.NewCreateTable().
			Model((*models.User)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().
			Model((*models.Event)(nil)).
			IfNotExists().
			ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model((*models.Event)(nil)).
			IfNotExists().
			Index("idx_events_date").
			Column("date").
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model((*models.Event)(nil)).
			IfNotExists().
			Index("idx_events_user_id").
			Column("user_id").
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, nil)
}
