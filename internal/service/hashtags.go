package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/fosel/chirp/internal/repository"
)

var hashtagPattern = regexp.MustCompile(`#[^\s#]+`)

// extractHashtags pulls tag mentions out of content and normalizes them:
// marker stripped, lowercased, de-duplicated in order of first mention.
// "#Demo #demo" yields one tag.
func extractHashtags(content string) []string {
	matches := hashtagPattern.FindAllString(content, -1)

	seen := make(map[string]struct{}, len(matches))
	var names []string
	for _, m := range matches {
		name := strings.ToLower(strings.TrimPrefix(m, "#"))
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// resolveHashtags maps content to hashtag row IDs via atomic
// find-or-create. No mentions means an empty result; the caller then
// skips tag association entirely rather than clearing it.
func resolveHashtags(ctx context.Context, tags repository.HashtagRepository, content string) ([]uuid.UUID, error) {
	names := extractHashtags(content)

	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		tag, err := tags.FindOrCreate(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolving hashtag %q: %w", name, err)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}
