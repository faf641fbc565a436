package service

import (
	"errors"

	"github.com/labstack/gommon/random"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

const alphaNumBytes = random.Alphanumeric

// Errors the controllers translate into HTTP responses. Everything else
// coming out of the service layer is treated as a storage fault.
var (
	ErrInvalidName   = errors.New("invalid or missing name")
	ErrNameTaken     = errors.New("name already taken")
	ErrAddressTaken  = errors.New("address already registered with a user")
	ErrInvalidEvent  = errors.New("missing or invalid date/title")
	ErrEventNotFound = errors.New("event does not exist")
	ErrNotEventOwner = errors.New("event belongs to another user")
)

type WallcalService struct {
	Config      *Config
	DB          *bun.DB
	Logger      *lecho.Logger
	EventPubSub *Pubsub
}
