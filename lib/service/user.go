package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"github.com/wallcal/wallcal.go/db/models"
)

// FindUserByAddress resolves the identity registered for a network
// address. Returns nil without error when the address is unknown.
func (svc *WallcalService) FindUserByAddress(ctx context.Context, address string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("ip = ?", address).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RegisterUser claims a display name for a network address. Both columns
// are unique, so the pre-checks inside the transaction decide which
// conflict to report; the constraints themselves remain the backstop.
func (svc *WallcalService) RegisterUser(ctx context.Context, address, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	user := &models.User{
		IP:   address,
		Name: name,
	}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.User)(nil)).Where("name = ?", name).Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrNameTaken
		}
		exists, err = tx.NewSelect().Model((*models.User)(nil)).Where("ip = ?", address).Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrAddressTaken
		}
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			// lost a race with a concurrent registration from the
			// same address
			if isUniqueViolation(err) {
				return ErrAddressTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "SQLSTATE=23505") // postgres
}
