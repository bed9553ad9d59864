// Package seed loads demo or test content from a YAML fixture.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/examhall/backend/internal/domain/question"
	"github.com/examhall/backend/internal/domain/subject"
	"github.com/examhall/backend/internal/domain/user"
	"github.com/examhall/backend/internal/store"
)

type Fixture struct {
	Users    []User    `yaml:"users"`
	Subjects []Subject `yaml:"subjects"`
}

type User struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Admin     bool   `yaml:"admin"`
}

type Subject struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Author      string   `yaml:"author"` // user email
	Subscribers []string `yaml:"subscribers"`
	Parts       []Part   `yaml:"parts"`
}

type Part struct {
	Title            string     `yaml:"title"`
	Description      string     `yaml:"description"`
	Content          string     `yaml:"content"`
	Position         int        `yaml:"position"`
	QuestionsPerTest int        `yaml:"questions_per_test"`
	Links            []Link     `yaml:"links"`
	Questions        []Question `yaml:"questions"`
}

type Link struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// Question answers use the "!" shorthand for the correct option.
type Question struct {
	Title      string   `yaml:"title"`
	Difficulty int      `yaml:"difficulty"`
	Answers    []string `yaml:"answers"`
}

// Result counts what Apply created.
type Result struct {
	Users     int
	Subjects  int
	Parts     int
	Questions int
}

func Load(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *store.Tx) error) error
}

// Apply writes the fixture in a single transaction. Users that already
// exist (matched by email) are reused.
func Apply(ctx context.Context, s txRunner, f *Fixture) (Result, error) {
	var res Result
	err := s.WithTx(ctx, func(tx *store.Tx) error {
		res = Result{}
		byEmail := make(map[string]*user.User)
		for _, fu := range f.Users {
			u, created, err := ensureUser(ctx, tx, fu)
			if err != nil {
				return err
			}
			if created {
				res.Users++
			}
			byEmail[u.Email] = u
		}
		resolve := func(email string) (*user.User, error) {
			if u, ok := byEmail[email]; ok {
				return u, nil
			}
			u, err := tx.GetUserByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("user %q: %w", email, err)
			}
			byEmail[email] = u
			return u, nil
		}

		for _, fs := range f.Subjects {
			var authorID *string
			if fs.Author != "" {
				author, err := resolve(fs.Author)
				if err != nil {
					return err
				}
				authorID = &author.ID
			}
			subj, err := subject.New(fs.Title, fs.Description, authorID)
			if err != nil {
				return fmt.Errorf("subject %q: %w", fs.Title, err)
			}
			if err := tx.SaveSubject(ctx, subj); err != nil {
				return fmt.Errorf("save subject %q: %w", fs.Title, err)
			}
			res.Subjects++

			for _, email := range fs.Subscribers {
				u, err := resolve(email)
				if err != nil {
					return err
				}
				if err := tx.GrantAccess(ctx, subject.Grant{SubjectID: subj.ID, UserID: u.ID}); err != nil {
					return err
				}
			}

			for _, fp := range fs.Parts {
				n, err := applyPart(ctx, tx, subj.ID, fp)
				if err != nil {
					return fmt.Errorf("part %q: %w", fp.Title, err)
				}
				res.Parts++
				res.Questions += n
			}
		}
		return nil
	})
	return res, err
}

func ensureUser(ctx context.Context, tx *store.Tx, fu User) (*user.User, bool, error) {
	existing, err := tx.GetUserByEmail(ctx, fu.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}
	u, err := user.New(fu.Email, fu.FirstName, fu.LastName)
	if err != nil {
		return nil, false, fmt.Errorf("user %q: %w", fu.Email, err)
	}
	u.IsAdmin = fu.Admin
	if err := tx.SaveUser(ctx, u); err != nil {
		return nil, false, fmt.Errorf("save user %q: %w", fu.Email, err)
	}
	return u, true, nil
}

func applyPart(ctx context.Context, tx *store.Tx, subjectID string, fp Part) (int, error) {
	p, err := subject.NewPart(subjectID, fp.Title, fp.Position, fp.QuestionsPerTest)
	if err != nil {
		return 0, err
	}
	p.Description = fp.Description
	p.Content = fp.Content
	if err := tx.SavePart(ctx, p); err != nil {
		return 0, err
	}
	for _, fl := range fp.Links {
		l, err := subject.NewLink(p.ID, fl.Title, fl.URL)
		if err != nil {
			return 0, err
		}
		if err := tx.SaveLink(ctx, l); err != nil {
			return 0, err
		}
	}
	for _, fq := range fp.Questions {
		q, err := question.New(fq.Title, fq.Difficulty, &p.ID)
		if err != nil {
			return 0, fmt.Errorf("question %q: %w", fq.Title, err)
		}
		if err := q.SetAnswers(question.ParseAnswerInputs(fq.Answers)); err != nil {
			return 0, fmt.Errorf("question %q: %w", fq.Title, err)
		}
		if err := tx.SaveQuestion(ctx, q); err != nil {
			return 0, err
		}
	}
	return len(fp.Questions), nil
}
