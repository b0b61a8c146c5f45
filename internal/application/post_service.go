package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	repo "github.com/wellnest/wellnest-api/internal/domain/repository"
	"github.com/wellnest/wellnest-api/pkg/embeddings"
)

// Embedder turns text into a dense vector. Satisfied by *embeddings.Client.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

var _ Embedder = (*embeddings.Client)(nil)

// PostService manages blog posts. Postgres is the source of truth; each post
// is also indexed into Elasticsearch with an embedding vector so related
// posts can be found by kNN similarity. Indexing is best-effort: a post is
// never lost because the search cluster or the embedding provider is down.
type PostService struct {
	Accounts     repo.AccountRepository
	Repo         repo.PostRepository
	ES           *elasticsearch.Client
	ESPostsIndex string
	Embedder     Embedder // optional; nil disables vector indexing
	Logger       *logrus.Logger
}

func NewPostService(accounts repo.AccountRepository, r repo.PostRepository, es *elasticsearch.Client, esPostsIndex string, embedder Embedder, logger *logrus.Logger) *PostService {
	return &PostService{
		Accounts:     accounts,
		Repo:         r,
		ES:           es,
		ESPostsIndex: esPostsIndex,
		Embedder:     embedder,
		Logger:       logger,
	}
}

// PostInput is the author-supplied content of a post.
type PostInput struct {
	Title   string
	Content string
	Tags    []string
}

func (in *PostInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" {
		return Validationf("title is required")
	}
	if len(in.Title) > 200 {
		return Validationf("title must be at most 200 characters")
	}
	if in.Content == "" {
		return Validationf("content is required")
	}
	in.Tags = entity.NormalizeTags(in.Tags, 5)
	return nil
}

// Create stores a new post authored by the given practitioner and indexes it
// for similarity search.
func (s *PostService) Create(ctx context.Context, authorID string, in PostInput) (*entity.Post, error) {
	author, err := s.Accounts.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !author.IsPractitioner() {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &entity.Post{
		AuthorID: authorID,
		Title:    in.Title,
		Content:  in.Content,
		Tags:     in.Tags,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.AuthorName = author.Name

	s.indexPost(ctx, p)
	return p, nil
}

// Update rewrites a post's content. Only the author may update; anyone else
// gets ErrForbidden.
func (s *PostService) Update(ctx context.Context, authorID, postID string, in PostInput) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.AuthorID != authorID {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.Content = in.Content
	p.Tags = in.Tags
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.indexPost(ctx, p)
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns posts newest-first with simple limit/offset paging.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]entity.Post, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, limit, offset)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]entity.Post, error) {
	return s.Repo.ListByAuthor(ctx, authorID)
}

// RelatedPost is one similarity hit from the posts index.
type RelatedPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	AuthorName string  `json:"author_name"`
	Score      float64 `json:"score"`
}

// Related finds posts similar to the given post using kNN over the indexed
// embedding vectors. Returns an empty list when search is not configured.
func (s *PostService) Related(ctx context.Context, postID string, size int) ([]RelatedPost, error) {
	if s.ES == nil || s.ESPostsIndex == "" || s.Embedder == nil {
		return []RelatedPost{}, nil
	}
	if size <= 0 || size > 20 {
		size = 5
	}

	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	vec, err := s.Embedder.Embed(ctx, p.Title+"\n\n"+p.Content)
	if err != nil {
		return nil, err
	}

	query := map[string]any{
		"knn": map[string]any{
			"field":          "embedding",
			"query_vector":   vec,
			"k":              size + 1, // the post itself ranks first
			"num_candidates": 100,
		},
		"_source": []string{"title", "author_name"},
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESPostsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if s.Logger != nil {
			s.Logger.WithField("status", res.Status()).Warn("es knn search response error")
		}
		return []RelatedPost{}, nil
	}

	var out struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Score  float64 `json:"_score"`
				Source struct {
					Title      string `json:"title"`
					AuthorName string `json:"author_name"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}

	related := make([]RelatedPost, 0, size)
	for _, h := range out.Hits.Hits {
		if h.ID == postID {
			continue
		}
		related = append(related, RelatedPost{
			ID:         h.ID,
			Title:      h.Source.Title,
			AuthorName: h.Source.AuthorName,
			Score:      h.Score,
		})
		if len(related) == size {
			break
		}
	}
	return related, nil
}

// indexPost writes the post document, with its embedding when available,
// into the search index.
func (s *PostService) indexPost(ctx context.Context, p *entity.Post) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"author_id":   p.AuthorID,
		"author_name": p.AuthorName,
		"title":       p.Title,
		"tags":        p.Tags,
		"created_at":  p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	if s.Embedder != nil {
		vec, err := s.Embedder.Embed(ctx, p.Title+"\n\n"+p.Content)
		if err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("post_id", p.ID).Warn("embedding failed, indexing without vector")
			}
		} else {
			doc["embedding"] = vec
		}
	}

	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESPostsIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("post_id", p.ID).Warn("es index response error")
	}
}
