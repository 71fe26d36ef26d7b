package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Shivanisinghay/Epsilon/internal/models"
	"github.com/Shivanisinghay/Epsilon/internal/repository"
)

// memUserStore mimics the uniqueness guarantees of the real repository.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]models.User)}
}

func (s *memUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if user.Username != nil && existing.Username != nil && *existing.Username == *user.Username {
			return repository.ErrUsernameTaken
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username != nil && *user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *memUserStore) UpdateProfile(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = existing.PasswordHash
	user.AvatarData = existing.AvatarData
	user.AvatarMIME = existing.AvatarMIME
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id string, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = hash
	s.users[id] = user
	return nil
}

func (s *memUserStore) UpdateAvatar(_ context.Context, id string, data []byte, mime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.AvatarData = data
	user.AvatarMIME = &mime
	s.users[id] = user
	return nil
}

func (s *memUserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

type memContentStore struct {
	mu    sync.Mutex
	items map[string]models.ContentItem
}

func newMemContentStore() *memContentStore {
	return &memContentStore{items: make(map[string]models.ContentItem)}
}

func (s *memContentStore) Create(_ context.Context, item models.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *memContentStore) GetByID(_ context.Context, id string) (models.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.ContentItem{}, repository.ErrContentNotFound
	}
	return item, nil
}

func (s *memContentStore) ListByUser(_ context.Context, userID string) ([]models.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.ContentItem
	for _, item := range s.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *memContentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repository.ErrContentNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *memContentStore) CountByType(_ context.Context, contentType models.ContentType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, item := range s.items {
		if item.Type == contentType {
			count++
		}
	}
	return count, nil
}

type memReviewStore struct {
	mu      sync.Mutex
	reviews map[string]models.Review
}

func newMemReviewStore() *memReviewStore {
	return &memReviewStore{reviews: make(map[string]models.Review)}
}

func (s *memReviewStore) Create(_ context.Context, review models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[review.ID] = review
	return nil
}

func (s *memReviewStore) FindByUser(_ context.Context, userID string) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, review := range s.reviews {
		if review.UserID == userID {
			return review, nil
		}
	}
	return models.Review{}, repository.ErrReviewNotFound
}

func (s *memReviewStore) ListApproved(_ context.Context) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var reviews []models.Review
	for _, review := range s.reviews {
		if review.IsApproved {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}
