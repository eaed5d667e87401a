package session

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/user"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

const (
	loggedInKey   = "isLoggedIn"
	userKey       = "user"
	loggedInValue = "true"
)

type medium interface {
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Session is the login flag and display profile kept in the medium.
// It gates views for convenience and is not a trust boundary.
type Session struct {
	medium medium
}

func New(m medium) *Session {
	return &Session{medium: m}
}

// Current reports the logged-in profile. Unparsable session keys read as logged out.
func (s *Session) Current(ctx context.Context) (user.Profile, bool, error) {
	flag, ok, err := s.medium.Read(ctx, loggedInKey)
	if err != nil {
		return user.Profile{}, false, errors.Wrap(err, "read session")
	}
	if !ok || flag != loggedInValue {
		return user.Profile{}, false, nil
	}

	raw, ok, err := s.medium.Read(ctx, userKey)
	if err != nil {
		return user.Profile{}, false, errors.Wrap(err, "read session")
	}
	if !ok {
		return user.Profile{}, false, nil
	}

	var p user.Profile
	if err = json.Unmarshal([]byte(raw), &p); err != nil {
		logger.Warn("malformed session user, treating as logged out", zap.Error(err))
		return user.Profile{}, false, nil
	}
	return p, true, nil
}

// Require returns the current profile or customerr.ErrNotLoggedIn.
func (s *Session) Require(ctx context.Context) (user.Profile, error) {
	p, ok, err := s.Current(ctx)
	if err != nil {
		return user.Profile{}, err
	}
	if !ok {
		return user.Profile{}, customerr.ErrNotLoggedIn
	}
	return p, nil
}

// Establish stores the profile first so the flag never points at a missing user.
func (s *Session) Establish(ctx context.Context, p user.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encode session user")
	}
	if err = s.medium.Write(ctx, userKey, string(raw)); err != nil {
		return &customerr.WriteError{Key: userKey, Err: err}
	}
	if err = s.medium.Write(ctx, loggedInKey, loggedInValue); err != nil {
		return &customerr.WriteError{Key: loggedInKey, Err: err}
	}
	return nil
}

// Clear removes the flag first so a failure halfway leaves the user logged out.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.medium.Delete(ctx, loggedInKey); err != nil {
		return errors.Wrap(err, "clear session")
	}
	if err := s.medium.Delete(ctx, userKey); err != nil {
		return errors.Wrap(err, "clear session")
	}
	return nil
}
