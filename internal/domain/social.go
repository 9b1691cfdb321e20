package domain

import (
	"context"
	"time"
)

// UserSummary is the public slice of an account shown in follower listings.
type UserSummary struct {
	ID    string
	Name  string
	Email string
}

// FeedItem is one workout in a viewer's feed, annotated with author identity
// and the aggregates computed over its exercise entries.
type FeedItem struct {
	WorkoutID     string
	AuthorID      string
	AuthorName    string
	Date          time.Time
	Name          *string
	Notes         *string
	ExerciseCount int
	TotalVolume   float64
	LoggedAt      time.Time
}

// FeedQuery scopes a feed read.
type FeedQuery struct {
	Limit         int
	Offset        int
	IncludeViewed bool
}

// DefaultFeedLimit bounds feed pages when the caller supplies no limit.
const DefaultFeedLimit = 20

// SocialRepository captures persistence operations for the follow graph,
// feed composition, and per-viewer seen state.
type SocialRepository interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	Followers(ctx context.Context, userID string) ([]UserSummary, error)
	Following(ctx context.Context, userID string) ([]UserSummary, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	Feed(ctx context.Context, viewerID string, query FeedQuery) ([]FeedItem, error)
	MarkViewed(ctx context.Context, workoutID, viewerID string) error
}

// SocialService orchestrates follow relationships and the workout feed.
type SocialService struct {
	repo SocialRepository
}

// NewSocialService constructs a SocialService.
func NewSocialService(repo SocialRepository) *SocialService {
	return &SocialService{repo: repo}
}

// Follow creates a follow edge. Self-follows are rejected without touching
// the store; a duplicate edge surfaces as ErrDuplicate.
func (s *SocialService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	return s.repo.Follow(ctx, followerID, followingID)
}

// Unfollow removes a follow edge. Removing an absent edge succeeds.
func (s *SocialService) Unfollow(ctx context.Context, followerID, followingID string) error {
	return s.repo.Unfollow(ctx, followerID, followingID)
}

// Followers lists accounts following the given user.
func (s *SocialService) Followers(ctx context.Context, userID string) ([]UserSummary, error) {
	return s.repo.Followers(ctx, userID)
}

// Following lists accounts the given user follows.
func (s *SocialService) Following(ctx context.Context, userID string) ([]UserSummary, error) {
	return s.repo.Following(ctx, userID)
}

// IsFollowing reports whether exactly one edge follower→following exists.
func (s *SocialService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.repo.IsFollowing(ctx, followerID, followingID)
}

// Feed returns workouts authored by followees, newest first. Unless
// IncludeViewed is set, workouts the viewer has already seen are excluded
// before pagination, so Limit counts only unseen items.
func (s *SocialService) Feed(ctx context.Context, viewerID string, query FeedQuery) ([]FeedItem, error) {
	if query.Limit <= 0 {
		query.Limit = DefaultFeedLimit
	}
	if query.Offset < 0 {
		query.Offset = 0
	}
	return s.repo.Feed(ctx, viewerID, query)
}

// MarkViewed records that the viewer has seen the workout. Repeat calls for
// the same pair are no-ops and succeed.
func (s *SocialService) MarkViewed(ctx context.Context, workoutID, viewerID string) error {
	return s.repo.MarkViewed(ctx, workoutID, viewerID)
}
