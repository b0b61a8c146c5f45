package application

import (
	"context"
	"errors"
	"testing"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
)

func postFixture() (*PostService, *fakeAccounts, *fakePosts) {
	accounts := newFakeAccounts()
	posts := newFakePosts()
	// No search cluster in unit tests; indexing is best-effort and skipped.
	svc := NewPostService(accounts, posts, nil, "", nil, nil)
	return svc, accounts, posts
}

func TestCreatePost(t *testing.T) {
	svc, accounts, _ := postFixture()
	author := accounts.add("Dr. Ayu", "ayu@example.com", entity.RolePractitioner)

	p, err := svc.Create(context.Background(), author.ID, PostInput{
		Title:   "  Sleep hygiene basics  ",
		Content: "Start with a fixed wake time.",
		Tags:    []string{"sleep", "sleep", " habits "},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Title != "Sleep hygiene basics" {
		t.Errorf("title = %q, want trimmed", p.Title)
	}
	if p.AuthorName != "Dr. Ayu" {
		t.Errorf("author name = %q", p.AuthorName)
	}
	if len(p.Tags) != 2 {
		t.Errorf("tags = %v, want deduped and trimmed", p.Tags)
	}
}

func TestCreatePostConsumerForbidden(t *testing.T) {
	svc, accounts, _ := postFixture()
	c := accounts.add("Budi", "budi@example.com", entity.RoleConsumer)

	if _, err := svc.Create(context.Background(), c.ID, PostInput{Title: "t", Content: "c"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestCreatePostValidation(t *testing.T) {
	svc, accounts, _ := postFixture()
	author := accounts.add("Dr. Ayu", "ayu@example.com", entity.RolePractitioner)

	cases := []struct {
		name string
		in   PostInput
	}{
		{"empty title", PostInput{Content: "c"}},
		{"empty content", PostInput{Title: "t"}},
		{"whitespace only", PostInput{Title: "   ", Content: "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), author.ID, tc.in); !IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestUpdatePostOnlyAuthor(t *testing.T) {
	svc, accounts, _ := postFixture()
	author := accounts.add("Dr. Ayu", "ayu@example.com", entity.RolePractitioner)
	other := accounts.add("Dr. Sari", "sari@example.com", entity.RolePractitioner)

	p, err := svc.Create(context.Background(), author.ID, PostInput{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(context.Background(), other.ID, p.ID, PostInput{Title: "x", Content: "y"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign update err = %v, want ErrForbidden", err)
	}

	updated, err := svc.Update(context.Background(), author.ID, p.ID, PostInput{Title: "New title", Content: "New body"})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Title != "New title" {
		t.Errorf("title = %q", updated.Title)
	}
}

func TestRelatedWithoutSearchConfigured(t *testing.T) {
	svc, accounts, _ := postFixture()
	author := accounts.add("Dr. Ayu", "ayu@example.com", entity.RolePractitioner)

	p, err := svc.Create(context.Background(), author.ID, PostInput{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	related, err := svc.Related(context.Background(), p.ID, 5)
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	if len(related) != 0 {
		t.Errorf("related = %v, want empty when search disabled", related)
	}
}
