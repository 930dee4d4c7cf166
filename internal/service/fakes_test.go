package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fosel/chirp/internal/domain"
	"github.com/fosel/chirp/internal/repository"
)

// fakeState is a shared in-memory store backing all fake repositories,
// mirroring the uniqueness constraints the real schema enforces.
type fakeState struct {
	mu sync.Mutex

	users    map[string]*domain.User
	posts    map[uuid.UUID]*domain.Post
	images   map[uuid.UUID][]domain.Image
	hashtags map[string]*domain.Hashtag
	postTags map[uuid.UUID][]uuid.UUID
	comments []*domain.Comment
	likes    map[uuid.UUID][]string
	follows  [][2]string // (follower, followee)
}

func newFakeRepos() (repository.Repos, *fakeState) {
	s := &fakeState{
		users:    make(map[string]*domain.User),
		posts:    make(map[uuid.UUID]*domain.Post),
		images:   make(map[uuid.UUID][]domain.Image),
		hashtags: make(map[string]*domain.Hashtag),
		postTags: make(map[uuid.UUID][]uuid.UUID),
		likes:    make(map[uuid.UUID][]string),
	}
	repos := repository.Repos{
		Users:    &fakeUsers{s: s},
		Posts:    &fakePosts{s: s},
		Hashtags: &fakeHashtags{s: s},
		Comments: &fakeComments{s: s},
		Follows:  &fakeFollows{s: s},
	}
	return repos, s
}

// fakeAtomic runs the callback against the same repositories; rollback
// isn't modeled, which is fine for the paths under test.
type fakeAtomic struct {
	repos repository.Repos
}

func (a fakeAtomic) InTx(_ context.Context, fn func(r repository.Repos) error) error {
	return fn(a.repos)
}

func (s *fakeState) addUser(email, nickname string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = &domain.User{Email: email, Nickname: nickname}
}

func (s *fakeState) hashtagNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.hashtags))
	for name := range s.hashtags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- users ---

type fakeUsers struct {
	s *fakeState
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[user.Email]; ok {
		return repository.ErrConflict
	}
	u := *user
	f.s.users[user.Email] = &u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[email]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (f *fakeUsers) UpdateNickname(_ context.Context, email, nickname string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if u, ok := f.s.users[email]; ok {
		u.Nickname = nickname
	}
	return nil
}

func (f *fakeUsers) ListPostIDs(_ context.Context, email string) ([]uuid.UUID, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var posts []*domain.Post
	for _, p := range f.s.posts {
		if p.AuthorEmail == email {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// --- posts ---

type fakePosts struct {
	s *fakeState
}

func (f *fakePosts) Create(_ context.Context, post *domain.Post) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if post.RetweetOf != nil {
		for _, p := range f.s.posts {
			if p.AuthorEmail == post.AuthorEmail && p.RetweetOf != nil && *p.RetweetOf == *post.RetweetOf {
				return repository.ErrConflict
			}
		}
	}
	p := *post
	f.s.posts[post.ID] = &p
	return nil
}

func (f *fakePosts) GetByID(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.posts[id]
	if !ok {
		return nil, nil
	}
	copy := *p
	return &copy, nil
}

func (f *fakePosts) GetRetweetByAuthor(_ context.Context, authorEmail string, originalID uuid.UUID) (*domain.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.posts {
		if p.AuthorEmail == authorEmail && p.RetweetOf != nil && *p.RetweetOf == originalID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakePosts) UpdateContent(_ context.Context, id uuid.UUID, content string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if p, ok := f.s.posts[id]; ok {
		p.Content = content
	}
	return nil
}

func (f *fakePosts) DeleteOwned(_ context.Context, id uuid.UUID, authorEmail string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if p, ok := f.s.posts[id]; ok && p.AuthorEmail == authorEmail {
		delete(f.s.posts, id)
	}
	return nil
}

func (f *fakePosts) AddImages(_ context.Context, postID uuid.UUID, images []domain.Image) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.images[postID] = append(f.s.images[postID], images...)
	return nil
}

func (f *fakePosts) ReplaceImages(_ context.Context, postID uuid.UUID, images []domain.Image) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.images[postID] = append([]domain.Image{}, images...)
	return nil
}

func (f *fakePosts) ListImages(_ context.Context, postID uuid.UUID) ([]domain.Image, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return append([]domain.Image{}, f.s.images[postID]...), nil
}

func (f *fakePosts) AddHashtags(_ context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, tagID := range tagIDs {
		if !containsID(f.s.postTags[postID], tagID) {
			f.s.postTags[postID] = append(f.s.postTags[postID], tagID)
		}
	}
	return nil
}

func (f *fakePosts) ReplaceHashtags(_ context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	f.s.mu.Lock()
	f.s.postTags[postID] = nil
	f.s.mu.Unlock()
	return f.AddHashtags(context.Background(), postID, tagIDs)
}

func (f *fakePosts) ListHashtags(_ context.Context, postID uuid.UUID) ([]domain.Hashtag, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var tags []domain.Hashtag
	for _, tag := range f.s.hashtags {
		if containsID(f.s.postTags[postID], tag.ID) {
			tags = append(tags, *tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (f *fakePosts) AddLiker(_ context.Context, postID uuid.UUID, email string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, e := range f.s.likes[postID] {
		if e == email {
			return nil
		}
	}
	f.s.likes[postID] = append(f.s.likes[postID], email)
	return nil
}

func (f *fakePosts) RemoveLiker(_ context.Context, postID uuid.UUID, email string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	likes := f.s.likes[postID]
	for i, e := range likes {
		if e == email {
			f.s.likes[postID] = append(likes[:i], likes[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakePosts) ListLikers(_ context.Context, postID uuid.UUID) ([]domain.PublicUser, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var likers []domain.PublicUser
	for _, email := range f.s.likes[postID] {
		likers = append(likers, domain.PublicUser{Email: email})
	}
	return likers, nil
}

// --- hashtags ---

type fakeHashtags struct {
	s *fakeState
}

func (f *fakeHashtags) FindOrCreate(_ context.Context, name string) (*domain.Hashtag, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if tag, ok := f.s.hashtags[name]; ok {
		copy := *tag
		return &copy, nil
	}
	tag := &domain.Hashtag{ID: uuid.New(), Name: name}
	f.s.hashtags[name] = tag
	copy := *tag
	return &copy, nil
}

// --- comments ---

type fakeComments struct {
	s *fakeState
}

func (f *fakeComments) Create(_ context.Context, comment *domain.Comment) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c := *comment
	f.s.comments = append(f.s.comments, &c)
	return nil
}

func (f *fakeComments) GetByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.comments {
		if c.ID == id {
			return f.joined(c), nil
		}
	}
	return nil, nil
}

func (f *fakeComments) ListByPost(_ context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var comments []domain.Comment
	for _, c := range f.s.comments {
		if c.PostID == postID {
			comments = append(comments, *f.joined(c))
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
	return comments, nil
}

func (f *fakeComments) joined(c *domain.Comment) *domain.Comment {
	copy := *c
	copy.Author = domain.PublicUser{Email: c.AuthorEmail}
	if u, ok := f.s.users[c.AuthorEmail]; ok {
		copy.Author.Nickname = u.Nickname
	}
	return &copy
}

// --- follows ---

type fakeFollows struct {
	s *fakeState
}

func (f *fakeFollows) Add(_ context.Context, followerEmail, followeeEmail string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, edge := range f.s.follows {
		if edge[0] == followerEmail && edge[1] == followeeEmail {
			return nil
		}
	}
	f.s.follows = append(f.s.follows, [2]string{followerEmail, followeeEmail})
	return nil
}

func (f *fakeFollows) Remove(_ context.Context, followerEmail, followeeEmail string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i, edge := range f.s.follows {
		if edge[0] == followerEmail && edge[1] == followeeEmail {
			f.s.follows = append(f.s.follows[:i], f.s.follows[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeFollows) ListFollowers(_ context.Context, email string) ([]domain.PublicUser, error) {
	return f.list(email, true), nil
}

func (f *fakeFollows) ListFollowings(_ context.Context, email string) ([]domain.PublicUser, error) {
	return f.list(email, false), nil
}

func (f *fakeFollows) list(email string, followersOf bool) []domain.PublicUser {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var users []domain.PublicUser
	for _, edge := range f.s.follows {
		var other string
		switch {
		case followersOf && edge[1] == email:
			other = edge[0]
		case !followersOf && edge[0] == email:
			other = edge[1]
		default:
			continue
		}
		u := domain.PublicUser{Email: other}
		if stored, ok := f.s.users[other]; ok {
			u.Nickname = stored.Nickname
		}
		users = append(users, u)
	}
	return users
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
