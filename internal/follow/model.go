package follow

import "errors"

var (
	ErrSelfFollow   = errors.New("cannot follow yourself")
	ErrUserNotFound = errors.New("user not found")
)

type FollowResponse struct {
	FollowingID   string `json:"following_id"`
	IsFollowing   bool   `json:"is_following"`
	FollowerCount int64  `json:"follower_count"`
}
