package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/plumecms/plume-backend/internal/common"
	"github.com/plumecms/plume-backend/internal/repository"
)

// maxSlugSuffix highest numeric suffix tried before giving up
const maxSlugSuffix = 99

var (
	// whitespace and en/em dashes become hyphens before anything else,
	// otherwise the dash characters would be dropped with the non-ASCII pass
	slugSeparators = regexp.MustCompile(`[\s\p{Zs}\x{2013}\x{2014}]+`)
	// everything outside the slug alphabet is stripped: emoji, non-ASCII,
	// quotes, brackets, ampersands and the rest of the punctuation set
	slugIllegal = regexp.MustCompile(`[^a-z0-9_-]+`)
	// runs of hyphens/underscores collapse to a single hyphen
	slugRuns = regexp.MustCompile(`[-_]+`)
)

// Slugify normalizes a title into URL-safe form. A title with no usable
// characters yields an empty string; callers decide whether that is an error.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugIllegal.ReplaceAllString(s, "")
	s = slugRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_ ")
}

// SlugResolver turns titles into slugs unused by any persisted post
type SlugResolver struct {
	posts repository.PostRepository
}

// NewSlugResolver creates a new SlugResolver
func NewSlugResolver(posts repository.PostRepository) *SlugResolver {
	return &SlugResolver{posts: posts}
}

// Resolve returns the normalized title, suffixed with the lowest free "-n"
// when the base form is taken. The store's unique index stays the
// authoritative guard; a concurrent create can still win the race, in which
// case the caller sees ErrSlugConflict from the insert and retries.
func (s *SlugResolver) Resolve(title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		return "", nil
	}

	existing, err := s.posts.FindSlugsLike(base)
	if err != nil {
		return "", err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, slug := range existing {
		taken[slug] = struct{}{}
	}

	if _, ok := taken[base]; !ok {
		return base, nil
	}
	for i := 1; i <= maxSlugSuffix; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free suffix for %q: %w", base, common.ErrSlugConflict)
}
