package service

import (
	"fmt"
	"testing"

	"github.com/plumecms/plume-backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Already-Slugged Title", "already-slugged-title"},
		{"Tips & Tricks (2024)", "tips-tricks-2024"},
		{"snake_case_title", "snake-case-title"},
		{"dash – heavy — title", "dash-heavy-title"},
		{"emoji 👋🎉 party", "emoji-party"},
		{"MiXeD CaSe", "mixed-case"},
		{"a  --  b", "a-b"},
		{"???", ""},
		{"你好世界", ""},
		{"", ""},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestSlugify_OutputAlphabet(t *testing.T) {
	titles := []string{
		"Hello, World!",
		"A (very) long — title, with 'quotes' & [brackets]",
		"__trim__ me__",
		"100% sure?!",
	}
	for _, title := range titles {
		slug := Slugify(title)
		assert.Regexp(t, `^$|^[a-z0-9]+(-[a-z0-9]+)*$`, slug)
	}
}

func TestResolve_BaseFree(t *testing.T) {
	posts := new(mockPostRepo)
	resolver := NewSlugResolver(posts)

	posts.On("FindSlugsLike", "hello-world").Return([]string{}, nil)

	slug, err := resolver.Resolve("Hello, World!")
	assert.NoError(t, err)
	assert.Equal(t, "hello-world", slug)
}

func TestResolve_SuffixWhenTaken(t *testing.T) {
	posts := new(mockPostRepo)
	resolver := NewSlugResolver(posts)

	posts.On("FindSlugsLike", "hello-world").Return([]string{"hello-world"}, nil)

	slug, err := resolver.Resolve("Hello, World!")
	assert.NoError(t, err)
	assert.Equal(t, "hello-world-1", slug)
}

func TestResolve_SkipsTakenSuffixes(t *testing.T) {
	posts := new(mockPostRepo)
	resolver := NewSlugResolver(posts)

	posts.On("FindSlugsLike", "hello-world").
		Return([]string{"hello-world", "hello-world-1", "hello-world-2"}, nil)

	slug, err := resolver.Resolve("Hello, World!")
	assert.NoError(t, err)
	assert.Equal(t, "hello-world-3", slug)
}

func TestResolve_Exhausted(t *testing.T) {
	posts := new(mockPostRepo)
	resolver := NewSlugResolver(posts)

	taken := []string{"hello-world"}
	for i := 1; i <= 99; i++ {
		taken = append(taken, fmt.Sprintf("hello-world-%d", i))
	}
	posts.On("FindSlugsLike", "hello-world").Return(taken, nil)

	slug, err := resolver.Resolve("Hello, World!")
	assert.ErrorIs(t, err, common.ErrSlugConflict)
	assert.Empty(t, slug)
}

func TestResolve_EmptyTitle(t *testing.T) {
	posts := new(mockPostRepo)
	resolver := NewSlugResolver(posts)

	slug, err := resolver.Resolve("🎉🎉🎉")
	assert.NoError(t, err)
	assert.Empty(t, slug)
	posts.AssertNotCalled(t, "FindSlugsLike", mock.Anything)
}
