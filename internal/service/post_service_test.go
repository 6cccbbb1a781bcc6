package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPostServiceTest(t *testing.T) (*PostService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:post_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}, &models.Tag{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	return NewPostService(repository.NewPostRepository(db), repository.NewTagRepository(db)), db
}

func TestPostCreateAndGet(t *testing.T) {
	svc, _ := setupPostServiceTest(t)

	post, err := svc.Create(CreatePostInput{
		Slug:        "hello-world",
		Title:       "Hello World",
		Content:     "first post",
		IsPublished: true,
		TagNames:    []string{"Go", "Web"},
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if post.Type != constants.PostTypeBlog {
		t.Fatalf("expected default type blog, got: %q", post.Type)
	}
	if post.PublishedAt == nil {
		t.Fatalf("expected published_at stamped on publish")
	}
	if len(post.Tags) != 2 {
		t.Fatalf("expected 2 tags, got: %d", len(post.Tags))
	}

	got, err := svc.GetBySlug("hello-world", true)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if got.ID != post.ID {
		t.Fatalf("expected post %d, got: %d", post.ID, got.ID)
	}
}

func TestPostCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _ := setupPostServiceTest(t)

	if _, err := svc.Create(CreatePostInput{Slug: "dup", Title: "one"}); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if _, err := svc.Create(CreatePostInput{Slug: "dup", Title: "two"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got: %v", err)
	}
}

func TestPostCreateValidation(t *testing.T) {
	svc, _ := setupPostServiceTest(t)

	if _, err := svc.Create(CreatePostInput{Slug: " ", Title: "x"}); !errors.Is(err, ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got: %v", err)
	}
	if _, err := svc.Create(CreatePostInput{Slug: "x", Type: "podcast"}); !errors.Is(err, ErrInvalidPostType) {
		t.Fatalf("expected ErrInvalidPostType, got: %v", err)
	}
}

func TestPostDraftHiddenFromPublicQueries(t *testing.T) {
	svc, _ := setupPostServiceTest(t)

	if _, err := svc.Create(CreatePostInput{Slug: "draft", Title: "draft"}); err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	if _, err := svc.GetBySlug("draft", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for public read, got: %v", err)
	}
	if _, err := svc.GetBySlug("draft", false); err != nil {
		t.Fatalf("admin read should see draft, got: %v", err)
	}

	posts, total, err := svc.List(repository.PostListFilter{OnlyPublished: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(posts) != 0 {
		t.Fatalf("expected empty public list, got total=%d len=%d", total, len(posts))
	}
}

func TestPostUpdateStampsPublishedAtOnce(t *testing.T) {
	svc, _ := setupPostServiceTest(t)

	post, err := svc.Create(CreatePostInput{Slug: "later", Title: "later"})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if post.PublishedAt != nil {
		t.Fatalf("draft must not carry published_at")
	}

	published := true
	post, err = svc.Update(post.ID, UpdatePostInput{IsPublished: &published})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if post.PublishedAt == nil {
		t.Fatalf("expected published_at after publish")
	}
	firstPublishedAt := *post.PublishedAt

	// 再次发布不重置时间戳
	post, err = svc.Update(post.ID, UpdatePostInput{IsPublished: &published})
	if err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	if !post.PublishedAt.Equal(firstPublishedAt) {
		t.Fatalf("published_at changed on republish: %v vs %v", post.PublishedAt, firstPublishedAt)
	}
}

func TestPostUpdateReplacesTags(t *testing.T) {
	svc, _ := setupPostServiceTest(t)

	post, err := svc.Create(CreatePostInput{Slug: "tagged", Title: "tagged", TagNames: []string{"Go"}})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	post, err = svc.Update(post.ID, UpdatePostInput{TagNames: []string{"Rust", "Web"}})
	if err != nil {
		t.Fatalf("update tags failed: %v", err)
	}
	if len(post.Tags) != 2 {
		t.Fatalf("expected 2 tags after replace, got: %d", len(post.Tags))
	}
	for _, tag := range post.Tags {
		if tag.Name == "Go" {
			t.Fatalf("old tag association should be gone")
		}
	}
}

func TestPostListByTag(t *testing.T) {
	svc, _ := setupPostServiceTest(t)

	if _, err := svc.Create(CreatePostInput{Slug: "a", Title: "a", IsPublished: true, TagNames: []string{"Go"}}); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if _, err := svc.Create(CreatePostInput{Slug: "b", Title: "b", IsPublished: true, TagNames: []string{"Web"}}); err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	posts, total, err := svc.List(repository.PostListFilter{OnlyPublished: true, TagSlug: "go"})
	if err != nil {
		t.Fatalf("list by tag failed: %v", err)
	}
	if total != 1 || len(posts) != 1 || posts[0].Slug != "a" {
		t.Fatalf("expected only post a, got total=%d posts=%+v", total, posts)
	}
}

func TestPostDelete(t *testing.T) {
	svc, _ := setupPostServiceTest(t)

	post, err := svc.Create(CreatePostInput{Slug: "gone", Title: "gone"})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if err := svc.Delete(post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetByID(post.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
	if err := svc.Delete(post.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got: %v", err)
	}
}

func TestResolveTagsDeduplicates(t *testing.T) {
	svc, db := setupPostServiceTest(t)

	post, err := svc.Create(CreatePostInput{Slug: "dedupe", Title: "dedupe", TagNames: []string{"Go", "go", " GO ", ""}})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if len(post.Tags) != 1 {
		t.Fatalf("expected 1 tag after dedupe, got: %d", len(post.Tags))
	}

	var count int64
	if err := db.Model(&models.Tag{}).Count(&count).Error; err != nil {
		t.Fatalf("count tags failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 tag row, got: %d", count)
	}
}
