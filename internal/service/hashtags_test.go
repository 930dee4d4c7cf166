package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "no tags",
			content: "just a plain post",
			want:    nil,
		},
		{
			name:    "single tag",
			content: "hello #world",
			want:    []string{"world"},
		},
		{
			name:    "case folded duplicates collapse",
			content: "hello #demo #Demo",
			want:    []string{"demo"},
		},
		{
			name:    "order of first mention",
			content: "#beta #alpha #Beta",
			want:    []string{"beta", "alpha"},
		},
		{
			name:    "marker alone is not a tag",
			content: "strange # post ##",
			want:    nil,
		},
		{
			name:    "adjacent markers split tags",
			content: "#one#two",
			want:    []string{"one", "two"},
		},
		{
			name:    "tag stops at whitespace",
			content: "#multi word",
			want:    []string{"multi"},
		},
		{
			name:    "unicode tags",
			content: "날씨가 좋네요 #한글 #Горы",
			want:    []string{"한글", "горы"},
		},
		{
			name:    "punctuation stays in the tag",
			content: "#c++ rules",
			want:    []string{"c++"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractHashtags(tt.content))
		})
	}
}

func TestResolveHashtagsReusesRows(t *testing.T) {
	repos, state := newFakeRepos()
	ctx := context.Background()

	first, err := resolveHashtags(ctx, repos.Hashtags, "post one #go #testing")
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := resolveHashtags(ctx, repos.Hashtags, "post two #Go")
	require.NoError(t, err)
	require.Len(t, second, 1)

	// Same normalized name maps onto the same row.
	assert.Equal(t, first[0], second[0])
	assert.Equal(t, []string{"go", "testing"}, state.hashtagNames())
}

func TestResolveHashtagsEmptyContent(t *testing.T) {
	repos, state := newFakeRepos()

	ids, err := resolveHashtags(context.Background(), repos.Hashtags, "no tags here")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, state.hashtagNames())
}
