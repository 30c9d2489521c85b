package models

import "time"

type Profile struct {
	ID             int64   `json:"-"`
	UserID         int64   `json:"-"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	Location       *string `json:"location"`
	Website        *string `json:"website"`
	CoverPhoto     *string `json:"cover_photo"`
}

type Post struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"-"`
	Content   string    `json:"content"`
	Media     *string   `json:"media"`
	CreatedAt time.Time `json:"created_at"`
}

type Follow struct {
	ID          int64     `json:"id"`
	FollowerID  int64     `json:"follower"`
	FollowingID int64     `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post"`
	AuthorID  int64     `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Like struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	PostID    int64     `json:"post"`
	CreatedAt time.Time `json:"created_at"`
}

type Repost struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"-"`
	OriginalPostID int64     `json:"original_post"`
	CreatedAt      time.Time `json:"created_at"`
}

type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"-"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	IsRead      bool      `json:"is_read"`
}

type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"-"`
	RecipientID int64     `json:"recipient"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	IsRead      bool      `json:"is_read"`
}

type Hashtag struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
}
