package service

import (
	"context"
	"errors"

	"github.com/examhall/backend/internal/domain/quiz"
	"github.com/examhall/backend/internal/domain/scope"
	"github.com/examhall/backend/internal/domain/subject"
	"github.com/examhall/backend/internal/domain/user"
)

type accessStore interface {
	scope.Lookup
	GetSubject(ctx context.Context, id string) (*subject.Subject, error)
	HasAccess(ctx context.Context, subjectID, userID string) (bool, error)
}

// Access answers "may this user do that here". Every check resolves the
// scope to its owning subject first.
type Access struct {
	store accessStore
}

func NewAccess(s accessStore) *Access {
	return &Access{store: s}
}

// CanTakeTest allows admins, the subject's author and subscribed users.
func (a *Access) CanTakeTest(ctx context.Context, u *user.User, s scope.Scope) (bool, error) {
	if u.IsAdmin {
		return true, nil
	}
	subj, err := a.owningSubject(ctx, s)
	if err != nil {
		return false, err
	}
	if subj.IsAuthor(u.ID) {
		return true, nil
	}
	ok, err := a.store.HasAccess(ctx, subj.ID, u.ID)
	if err != nil {
		return false, classify(err)
	}
	return ok, nil
}

// CanAuthor allows admins and the subject's author. Unattached questions
// have no author and are admin-only.
func (a *Access) CanAuthor(ctx context.Context, u *user.User, s scope.Scope) (bool, error) {
	if u.IsAdmin {
		return true, nil
	}
	subj, err := a.owningSubject(ctx, s)
	if errors.Is(err, scope.ErrUnattached) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return subj.IsAuthor(u.ID), nil
}

// OwnsTest reports whether u took the test.
func (a *Access) OwnsTest(u *user.User, t *quiz.Test) bool {
	return t.UserID == u.ID
}

// CanViewTest allows the owner and admins.
func (a *Access) CanViewTest(u *user.User, t *quiz.Test) bool {
	return u.IsAdmin || a.OwnsTest(u, t)
}

func (a *Access) owningSubject(ctx context.Context, s scope.Scope) (*subject.Subject, error) {
	subjectID, err := scope.ResolveSubject(ctx, s, a.store)
	if errors.Is(err, scope.ErrUnattached) {
		return nil, err
	}
	if err != nil {
		return nil, classify(err)
	}
	subj, err := a.store.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, classify(err)
	}
	return subj, nil
}
