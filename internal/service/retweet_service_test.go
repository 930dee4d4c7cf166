package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fosel/chirp/internal/domain"
	"github.com/fosel/chirp/internal/repository"
)

func newRetweetService(t *testing.T, notifier Notifier) (*RetweetService, repository.Repos, *fakeState) {
	t.Helper()
	repos, state := newFakeRepos()
	svc := NewRetweetService(repos, NewProjector(repos), notifier)
	return svc, repos, state
}

func seedPost(t *testing.T, repos repository.Repos, author, content string) *domain.Post {
	t.Helper()
	post := &domain.Post{ID: uuid.New(), AuthorEmail: author, Content: content}
	require.NoError(t, repos.Posts.Create(context.Background(), post))
	return post
}

func TestRetweetCreatesPlaceholderRecord(t *testing.T) {
	svc, repos, state := newRetweetService(t, nil)
	state.addUser("alice@example.com", "alice")
	state.addUser("bob@example.com", "bob")
	original := seedPost(t, repos, "alice@example.com", "original words")

	full, err := svc.Retweet(context.Background(), "bob@example.com", original.ID)
	require.NoError(t, err)

	assert.Equal(t, "retweet", full.Content)
	assert.Equal(t, "bob@example.com", full.AuthorEmail)
	require.NotNil(t, full.RetweetOf)
	assert.Equal(t, original.ID, *full.RetweetOf)

	// the projection nests the original with its author
	require.NotNil(t, full.Retweet)
	assert.Equal(t, original.ID, full.Retweet.ID)
	assert.Equal(t, "original words", full.Retweet.Content)
	assert.Equal(t, "alice", full.Retweet.Author.Nickname)
}

func TestRetweetOfRetweetCollapses(t *testing.T) {
	svc, repos, state := newRetweetService(t, nil)
	state.addUser("alice@example.com", "alice")
	state.addUser("bob@example.com", "bob")
	state.addUser("carol@example.com", "carol")
	ctx := context.Background()
	original := seedPost(t, repos, "alice@example.com", "the source")

	bobShare, err := svc.Retweet(ctx, "bob@example.com", original.ID)
	require.NoError(t, err)

	carolShare, err := svc.Retweet(ctx, "carol@example.com", bobShare.ID)
	require.NoError(t, err)

	// carol's record points at the original, not at bob's share
	require.NotNil(t, carolShare.RetweetOf)
	assert.Equal(t, original.ID, *carolShare.RetweetOf)
	require.NotNil(t, carolShare.Retweet)
	assert.Equal(t, original.ID, carolShare.Retweet.ID)
}

func TestRetweetTwiceRejected(t *testing.T) {
	svc, repos, state := newRetweetService(t, nil)
	state.addUser("alice@example.com", "alice")
	state.addUser("bob@example.com", "bob")
	ctx := context.Background()
	original := seedPost(t, repos, "alice@example.com", "popular")

	_, err := svc.Retweet(ctx, "bob@example.com", original.ID)
	require.NoError(t, err)

	_, err = svc.Retweet(ctx, "bob@example.com", original.ID)
	assert.ErrorIs(t, err, ErrAlreadyRetweeted)
}

func TestRetweetViaShareDeduplicates(t *testing.T) {
	svc, repos, state := newRetweetService(t, nil)
	state.addUser("alice@example.com", "alice")
	state.addUser("bob@example.com", "bob")
	state.addUser("carol@example.com", "carol")
	ctx := context.Background()
	original := seedPost(t, repos, "alice@example.com", "popular")

	bobShare, err := svc.Retweet(ctx, "bob@example.com", original.ID)
	require.NoError(t, err)

	// carol already shared the original directly
	_, err = svc.Retweet(ctx, "carol@example.com", original.ID)
	require.NoError(t, err)

	// sharing bob's share collapses onto the same original and is caught
	_, err = svc.Retweet(ctx, "carol@example.com", bobShare.ID)
	assert.ErrorIs(t, err, ErrAlreadyRetweeted)
}

func TestRetweetOwnPostViaShareRejected(t *testing.T) {
	svc, repos, state := newRetweetService(t, nil)
	state.addUser("alice@example.com", "alice")
	state.addUser("bob@example.com", "bob")
	ctx := context.Background()
	original := seedPost(t, repos, "alice@example.com", "mine")

	bobShare, err := svc.Retweet(ctx, "bob@example.com", original.ID)
	require.NoError(t, err)

	_, err = svc.Retweet(ctx, "alice@example.com", bobShare.ID)
	assert.ErrorIs(t, err, ErrRetweetOwnPost)
}

func TestRetweetMissingPost(t *testing.T) {
	svc, _, state := newRetweetService(t, nil)
	state.addUser("bob@example.com", "bob")

	_, err := svc.Retweet(context.Background(), "bob@example.com", uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestRetweetNotifies(t *testing.T) {
	spy := &spyNotifier{}
	svc, repos, state := newRetweetService(t, spy)
	state.addUser("alice@example.com", "alice")
	state.addUser("bob@example.com", "bob")
	original := seedPost(t, repos, "alice@example.com", "share me")

	full, err := svc.Retweet(context.Background(), "bob@example.com", original.ID)
	require.NoError(t, err)

	require.Len(t, spy.posts, 1)
	assert.Equal(t, full.ID, spy.posts[0].ID)
}

// blindPosts hides existing retweets from the pre-insert check so the
// insert itself hits the uniqueness conflict, as a losing racer would.
type blindPosts struct {
	repository.PostRepository
}

func (b blindPosts) GetRetweetByAuthor(context.Context, string, uuid.UUID) (*domain.Post, error) {
	return nil, nil
}

func TestRetweetLostRaceSurfacesAsAlreadyRetweeted(t *testing.T) {
	repos, state := newFakeRepos()
	state.addUser("alice@example.com", "alice")
	state.addUser("bob@example.com", "bob")
	ctx := context.Background()
	original := seedPost(t, repos, "alice@example.com", "contested")

	racing := repos
	racing.Posts = blindPosts{PostRepository: repos.Posts}
	svc := NewRetweetService(racing, NewProjector(racing), nil)

	_, err := svc.Retweet(ctx, "bob@example.com", original.ID)
	require.NoError(t, err)

	_, err = svc.Retweet(ctx, "bob@example.com", original.ID)
	assert.ErrorIs(t, err, ErrAlreadyRetweeted)
}
