// Package scope models "what does this object belong to" for permission
// checks. Every variant eventually resolves to the Subject that owns it.
package scope

import (
	"context"
	"errors"
	"fmt"
)

// Scope is a closed set of variants; only this package can add new ones.
type Scope interface {
	isScope()
}

type Subject struct{ ID string }

type Part struct{ ID string }

type Link struct{ ID string }

type Question struct{ ID string }

type Test struct{ ID string }

func (Subject) isScope()  {}
func (Part) isScope()     {}
func (Link) isScope()     {}
func (Question) isScope() {}
func (Test) isScope()     {}

// Lookup supplies the parent relations needed to walk up to a subject.
type Lookup interface {
	PartSubjectID(ctx context.Context, partID string) (string, error)
	LinkPartID(ctx context.Context, linkID string) (string, error)
	// QuestionPartID returns "" for unattached questions.
	QuestionPartID(ctx context.Context, questionID string) (string, error)
	// TestScope returns the part or the subject id the test was generated for.
	TestScope(ctx context.Context, testID string) (partID, subjectID string, err error)
}

// ErrUnattached is returned for questions that belong to no part.
var ErrUnattached = errors.New("scope has no owning subject")

// ResolveSubject walks from any variant up to its owning subject id.
func ResolveSubject(ctx context.Context, s Scope, l Lookup) (string, error) {
	switch v := s.(type) {
	case Subject:
		return v.ID, nil
	case Part:
		return l.PartSubjectID(ctx, v.ID)
	case Link:
		partID, err := l.LinkPartID(ctx, v.ID)
		if err != nil {
			return "", err
		}
		return ResolveSubject(ctx, Part{ID: partID}, l)
	case Question:
		partID, err := l.QuestionPartID(ctx, v.ID)
		if err != nil {
			return "", err
		}
		if partID == "" {
			return "", ErrUnattached
		}
		return ResolveSubject(ctx, Part{ID: partID}, l)
	case Test:
		partID, subjectID, err := l.TestScope(ctx, v.ID)
		if err != nil {
			return "", err
		}
		if subjectID != "" {
			return subjectID, nil
		}
		return ResolveSubject(ctx, Part{ID: partID}, l)
	default:
		return "", fmt.Errorf("unknown scope %T", s)
	}
}
