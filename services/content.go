package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/atelier-nova/atelier_api/dto"
	"github.com/atelier-nova/atelier_api/model"
	"github.com/atelier-nova/atelier_api/shared"
)

// ContentService is the markdown-file-backed post store. One file per post
// under the content directory, YAML front-matter followed by the body. The
// filesystem is the system of record; every read re-parses the file.
//
// Writes are serialized through a single mutex so two admin requests can
// never interleave a read-merge-write cycle.
type ContentService struct {
	context.DefaultService

	contentDir string

	writeMutex sync.Mutex
	now        func() time.Time
}

const CONTENT_SVC = "content_svc"

const (
	markdownExt        = ".md"
	frontMatterFence   = "---"
	excerptLength      = 160
	wordsPerMinute     = 200
	defaultContentDir  = "content/posts"
	contentDirFileMode = 0o755
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9\s-]`)
var slugHyphenPattern = regexp.MustCompile(`[\s-]+`)

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *context.Context) error {
	svc.contentDir = os.Getenv("CONTENT_DIR")
	if svc.contentDir == "" {
		svc.contentDir = defaultContentDir
	}
	svc.now = time.Now

	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	return nil
}

// NewContentService builds a store rooted at dir, outside the container.
func NewContentService(dir string, now func() time.Time) *ContentService {
	if now == nil {
		now = time.Now
	}
	return &ContentService{contentDir: dir, now: now}
}

// ==================== READ OPERATIONS ====================

// List returns post metadata sorted newest-first. A missing content
// directory yields an empty list, not an error.
func (svc *ContentService) List(includeDrafts bool) (*dto.PostListResponse, error) {
	entries, err := os.ReadDir(svc.contentDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dto.PostListResponse{Posts: []dto.PostSummary{}}, nil
		}
		return nil, shared.NewInternalError(err, "Failed to read content directory")
	}

	posts := make([]dto.PostSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), markdownExt) {
			continue
		}

		slug := strings.TrimSuffix(entry.Name(), markdownExt)
		post, err := svc.readPost(slug)
		if err != nil {
			log.WithError(err).WithField("slug", slug).Warn("Skipping unreadable post file")
			continue
		}

		if !includeDrafts && !post.Meta.Published {
			continue
		}

		posts = append(posts, dto.PostSummary{Slug: post.Slug, Meta: post.Meta})
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Meta.Date.After(posts[j].Meta.Date)
	})

	return &dto.PostListResponse{Posts: posts, Total: len(posts)}, nil
}

// Get loads a single post by slug.
func (svc *ContentService) Get(slug string) (*model.Post, error) {
	if !validSlug(slug) {
		return nil, shared.NewBadRequestError(nil, "Invalid slug")
	}

	post, err := svc.readPost(slug)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, shared.NewNotFoundError(err, "Post not found")
		}
		return nil, shared.NewInternalError(err, "Failed to read post")
	}

	return post, nil
}

// ==================== WRITE OPERATIONS ====================

// Create derives a slug from the title and writes a new post file. A slug
// collision is a conflict, never an overwrite.
func (svc *ContentService) Create(req dto.CreatePostRequest) (*model.Post, error) {
	slug := Slugify(req.Title)
	if slug == "" {
		return nil, shared.NewBadRequestError(nil, "Title produces an empty slug")
	}

	svc.writeMutex.Lock()
	defer svc.writeMutex.Unlock()

	if _, err := os.Stat(svc.postPath(slug)); err == nil {
		return nil, shared.NewConflictError(nil, fmt.Sprintf("A post with slug %q already exists", slug))
	}

	now := svc.now()

	date := now
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, shared.NewBadRequestError(err, "Invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = buildExcerpt(req.Content)
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	post := &model.Post{
		Slug: slug,
		Meta: model.PostMeta{
			Title:           req.Title,
			Date:            date,
			Category:        req.Category,
			Tags:            req.Tags,
			Author:          req.Author,
			Excerpt:         excerpt,
			Image:           req.Image,
			ImageAlt:        req.ImageAlt,
			ReadTime:        estimateReadTime(req.Content),
			Featured:        req.Featured,
			Published:       published,
			MetaDescription: req.MetaDescription,
		},
		Content: req.Content,
	}

	if err := svc.writePost(post); err != nil {
		return nil, shared.NewInternalError(err, "Failed to write post")
	}

	postOperationsTotal.WithLabelValues("create").Inc()
	log.WithField("slug", slug).Info("Post created")
	return post, nil
}

// Update merges the submitted fields over the stored front-matter and
// rewrites the file. Omitted fields keep their prior values.
func (svc *ContentService) Update(slug string, req dto.UpdatePostRequest) (*model.Post, error) {
	if !validSlug(slug) {
		return nil, shared.NewBadRequestError(nil, "Invalid slug")
	}

	svc.writeMutex.Lock()
	defer svc.writeMutex.Unlock()

	post, err := svc.readPost(slug)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, shared.NewNotFoundError(err, "Post not found")
		}
		return nil, shared.NewInternalError(err, "Failed to read post")
	}

	if req.Title != nil {
		post.Meta.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
		post.Meta.ReadTime = estimateReadTime(*req.Content)
	}
	if req.Category != nil {
		post.Meta.Category = *req.Category
	}
	if req.Tags != nil {
		post.Meta.Tags = *req.Tags
	}
	if req.Author != nil {
		post.Meta.Author = *req.Author
	}
	if req.Excerpt != nil {
		post.Meta.Excerpt = *req.Excerpt
	}
	if req.Image != nil {
		post.Meta.Image = *req.Image
	}
	if req.ImageAlt != nil {
		post.Meta.ImageAlt = *req.ImageAlt
	}
	if req.Featured != nil {
		post.Meta.Featured = *req.Featured
	}
	if req.Published != nil {
		post.Meta.Published = *req.Published
	}
	if req.MetaDescription != nil {
		post.Meta.MetaDescription = *req.MetaDescription
	}

	post.Meta.UpdatedAt = svc.now()

	if err := svc.writePost(post); err != nil {
		return nil, shared.NewInternalError(err, "Failed to write post")
	}

	postOperationsTotal.WithLabelValues("update").Inc()
	log.WithField("slug", slug).Info("Post updated")
	return post, nil
}

// Delete removes the post file. Not-found is distinct from success.
func (svc *ContentService) Delete(slug string) error {
	if !validSlug(slug) {
		return shared.NewBadRequestError(nil, "Invalid slug")
	}

	svc.writeMutex.Lock()
	defer svc.writeMutex.Unlock()

	err := os.Remove(svc.postPath(slug))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return shared.NewNotFoundError(err, "Post not found")
		}
		return shared.NewInternalError(err, "Failed to delete post")
	}

	postOperationsTotal.WithLabelValues("delete").Inc()
	log.WithField("slug", slug).Info("Post deleted")
	return nil
}

// ==================== FILE FORMAT ====================

func (svc *ContentService) postPath(slug string) string {
	return filepath.Join(svc.contentDir, slug+markdownExt)
}

func (svc *ContentService) readPost(slug string) (*model.Post, error) {
	raw, err := os.ReadFile(svc.postPath(slug))
	if err != nil {
		return nil, err
	}

	meta, content, err := parseFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	return &model.Post{Slug: slug, Meta: *meta, Content: content}, nil
}

func (svc *ContentService) writePost(post *model.Post) error {
	if err := os.MkdirAll(svc.contentDir, contentDirFileMode); err != nil {
		return err
	}

	raw, err := serializeFrontMatter(&post.Meta, post.Content)
	if err != nil {
		return err
	}

	return os.WriteFile(svc.postPath(post.Slug), raw, 0o644)
}

func parseFrontMatter(raw []byte) (*model.PostMeta, string, error) {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")

	if !strings.HasPrefix(text, frontMatterFence+"\n") {
		return nil, "", errors.New("missing front-matter fence")
	}

	rest := text[len(frontMatterFence)+1:]
	idx := strings.Index(rest, "\n"+frontMatterFence+"\n")
	if idx < 0 {
		return nil, "", errors.New("unterminated front-matter block")
	}

	var meta model.PostMeta
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return nil, "", err
	}

	body := strings.TrimPrefix(rest[idx+len(frontMatterFence)+2:], "\n")
	return &meta, body, nil
}

func serializeFrontMatter(meta *model.PostMeta, content string) ([]byte, error) {
	encoded, err := yaml.Marshal(meta)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(frontMatterFence + "\n")
	buf.Write(encoded)
	buf.WriteString(frontMatterFence + "\n\n")
	buf.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ==================== DERIVED FIELDS ====================

// Slugify turns a title into a filesystem- and URL-safe identifier. The
// mapping is deterministic: the same title always yields the same slug.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugHyphenPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func validSlug(slug string) bool {
	return slug != "" && slug == Slugify(slug)
}

func buildExcerpt(content string) string {
	plain := content
	for _, marker := range []string{"#", "*", "_", "`", ">"} {
		plain = strings.ReplaceAll(plain, marker, "")
	}
	plain = strings.Join(strings.Fields(plain), " ")

	if len(plain) <= excerptLength {
		return plain
	}

	cut := plain[:excerptLength]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

func estimateReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
