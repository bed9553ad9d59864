package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/examhall/backend/internal/domain/statistics"
	"github.com/examhall/backend/internal/domain/subject"
	"github.com/examhall/backend/internal/domain/user"
)

type statsStore interface {
	ListSubjects(ctx context.Context) ([]*subject.Subject, error)
	ListSubjectsByAuthor(ctx context.Context, authorID string) ([]*subject.Subject, error)
	ListParts(ctx context.Context) ([]*subject.Part, error)
	ListPartsByAuthor(ctx context.Context, authorID string) ([]*subject.Part, error)
	ListUsers(ctx context.Context) ([]*user.User, error)
	ListUsersTestedByAuthor(ctx context.Context, authorID string) ([]*user.User, error)

	SummaryBySubject(ctx context.Context, subjectID string) (statistics.Summary, error)
	SummaryByPart(ctx context.Context, partID string) (statistics.Summary, error)
	SummaryByUser(ctx context.Context, userID string) (statistics.Summary, error)
	SummaryByUserForAuthor(ctx context.Context, userID, authorID string) (statistics.Summary, error)
}

// Aggregator reports score statistics over the scopes a viewer may see.
// Admins see every scope. Other viewers see the subjects and parts they
// author, and the users who took tests on those subjects, counting only
// those tests.
type Aggregator struct {
	store       statsStore
	concurrency int
}

func NewAggregator(s statsStore, concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{store: s, concurrency: concurrency}
}

type scopeRef struct {
	id    string
	label string
}

func (a *Aggregator) Summarize(ctx context.Context, viewer *user.User, kind statistics.Kind) ([]statistics.ScopeStatistics, error) {
	refs, summarize, err := a.scopes(ctx, viewer, kind)
	if err != nil {
		return nil, classify(err)
	}

	out := make([]statistics.ScopeStatistics, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			sum, err := summarize(gctx, ref.id)
			if err != nil {
				return err
			}
			out[i] = statistics.ScopeStatistics{Kind: kind, ID: ref.id, Label: ref.label, Summary: sum}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

type summarizer func(ctx context.Context, id string) (statistics.Summary, error)

func (a *Aggregator) scopes(ctx context.Context, viewer *user.User, kind statistics.Kind) ([]scopeRef, summarizer, error) {
	switch kind {
	case statistics.KindSubject:
		var subjects []*subject.Subject
		var err error
		if viewer.IsAdmin {
			subjects, err = a.store.ListSubjects(ctx)
		} else {
			subjects, err = a.store.ListSubjectsByAuthor(ctx, viewer.ID)
		}
		refs := make([]scopeRef, 0, len(subjects))
		for _, s := range subjects {
			refs = append(refs, scopeRef{id: s.ID, label: s.Title})
		}
		return refs, a.store.SummaryBySubject, err

	case statistics.KindPart:
		var parts []*subject.Part
		var err error
		if viewer.IsAdmin {
			parts, err = a.store.ListParts(ctx)
		} else {
			parts, err = a.store.ListPartsByAuthor(ctx, viewer.ID)
		}
		refs := make([]scopeRef, 0, len(parts))
		for _, p := range parts {
			refs = append(refs, scopeRef{id: p.ID, label: p.Title})
		}
		return refs, a.store.SummaryByPart, err

	case statistics.KindUser:
		var users []*user.User
		var err error
		summarize := a.store.SummaryByUser
		if viewer.IsAdmin {
			users, err = a.store.ListUsers(ctx)
		} else {
			users, err = a.store.ListUsersTestedByAuthor(ctx, viewer.ID)
			summarize = func(ctx context.Context, id string) (statistics.Summary, error) {
				return a.store.SummaryByUserForAuthor(ctx, id, viewer.ID)
			}
		}
		refs := make([]scopeRef, 0, len(users))
		for _, u := range users {
			refs = append(refs, scopeRef{id: u.ID, label: u.Email})
		}
		return refs, summarize, err
	}
	return nil, nil, invalid("kind", statistics.ErrUnknownKind)
}
