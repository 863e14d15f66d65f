package handler

import (
	"context"

	"go.uber.org/zap"

	"appointment-booking-api/internal/booking"
	"appointment-booking-api/internal/model"
)

// UserStore is the slice of the store the auth endpoints need.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
}

type Handler struct {
	users  UserStore
	svc    *booking.Service
	secret string
	log    *zap.Logger
}

func New(users UserStore, svc *booking.Service, secret string, log *zap.Logger) *Handler {
	return &Handler{users: users, svc: svc, secret: secret, log: log}
}
