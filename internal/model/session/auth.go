package session

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/user"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/records"
)

const (
	minPasswordLength = 8

	demoUserID   = "demo-user-id"
	demoUserName = "Demo User"
)

type recordStore interface {
	List(ctx context.Context, collection string) ([]records.Record, error)
	Insert(ctx context.Context, collection string, rec records.Record) (records.Record, error)
}

type config interface {
	DemoCredentials() (email, password string)
}

// Auth is the local mock authentication over the users collection.
type Auth struct {
	store        recordStore
	session      *Session
	demoEmail    string
	demoPassword string
}

func NewAuth(store recordStore, session *Session, cfg config) *Auth {
	email, password := cfg.DemoCredentials()
	return &Auth{
		store:        store,
		session:      session,
		demoEmail:    email,
		demoPassword: password,
	}
}

func (a *Auth) Session() *Session {
	return a.session
}

// Signup validates the form, stores the account and logs the user in.
func (a *Auth) Signup(ctx context.Context, name, email, password, confirm string) (user.Profile, error) {
	logger.Info("Signup - start", zap.String("email", email))
	defer logger.Info("Signup - end")

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	switch {
	case name == "":
		return user.Profile{}, customerr.Invalid("name", "Name is required")
	case email == "" || !strings.Contains(email, "@"):
		return user.Profile{}, customerr.Invalid("email", "A valid email is required")
	case password != confirm:
		return user.Profile{}, customerr.Invalid("password", "Passwords do not match")
	case len(password) < minPasswordLength:
		return user.Profile{}, customerr.Invalid("password", "Password must be at least 8 characters long")
	}

	users, err := a.users(ctx)
	if err != nil {
		return user.Profile{}, errors.Wrap(err, "signup")
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return user.Profile{}, customerr.ErrEmailTaken
		}
	}

	stored, err := a.store.Insert(ctx, records.Users, records.Record{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return user.Profile{}, errors.Wrap(err, "signup")
	}

	id, _ := stored.ID()
	profile := user.Profile{
		ID:    strconv.FormatInt(id, 10),
		Name:  name,
		Email: email,
	}
	if err = a.session.Establish(ctx, profile); err != nil {
		return user.Profile{}, errors.Wrap(err, "signup")
	}
	return profile, nil
}

// Login checks the demo credentials, then the stored accounts. ok is false
// for unknown credentials, err is reserved for storage failures.
func (a *Auth) Login(ctx context.Context, email, password string) (user.Profile, bool, error) {
	email = strings.TrimSpace(email)

	var profile user.Profile
	if a.demoEmail != "" && email == a.demoEmail && password == a.demoPassword {
		profile = user.Profile{ID: demoUserID, Name: demoUserName, Email: email}
	} else {
		users, err := a.users(ctx)
		if err != nil {
			return user.Profile{}, false, errors.Wrap(err, "login")
		}
		found := false
		for _, u := range users {
			if strings.EqualFold(u.Email, email) && u.Password == password {
				profile = user.Profile{
					ID:    strconv.FormatInt(u.ID, 10),
					Name:  u.Name,
					Email: u.Email,
				}
				found = true
				break
			}
		}
		if !found {
			return user.Profile{}, false, nil
		}
	}

	if err := a.session.Establish(ctx, profile); err != nil {
		return user.Profile{}, false, errors.Wrap(err, "login")
	}
	return profile, true, nil
}

func (a *Auth) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *Auth) users(ctx context.Context) ([]user.Credentials, error) {
	recs, err := a.store.List(ctx, records.Users)
	if err != nil {
		return nil, err
	}

	res := make([]user.Credentials, 0, len(recs))
	for _, rec := range recs {
		var u user.Credentials
		if err = records.Decode(rec, &u); err != nil {
			logger.Warn("skip malformed user record", zap.Error(err))
			continue
		}
		res = append(res, u)
	}
	return res, nil
}
