package models

import "time"

const (
	MaxPageSize = 100

	BlogPageSize         = 4
	CategoryPageSize     = 6
	TagPageSize          = 7
	UserPageSize         = 10
	NotificationPageSize = 10
	ContactPageSize      = 10
	AdPageSize           = 10
)

type PageParams struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Normalize fills in defaults and clamps the page size.
func (p *PageParams) Normalize(defaultSize int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Auth

type RegisterRequest struct {
	Username        string   `json:"username" binding:"required,min=3,max=150"`
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,min=8"`
	ConfirmPassword string   `json:"confirm_password" binding:"required"`
	Role            UserRole `json:"role,omitempty" binding:"omitempty,oneof=ADMIN AUTHOR USER"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type AuthResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

// Users

type UpdateUserRequest struct {
	Username *string   `json:"username" binding:"omitempty,min=3,max=150"`
	Email    *string   `json:"email" binding:"omitempty,email"`
	Role     *UserRole `json:"role" binding:"omitempty,oneof=ADMIN AUTHOR USER"`
	Avatar   *string   `json:"avatar" binding:"omitempty,max=2000"`
	Bio      *string   `json:"bio"`
	IsActive *bool     `json:"is_active"`
}

type UserListParams struct {
	PageParams
	Search string `form:"search"`
	Role   string `form:"role"`
}

// Categories and tags

type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	IsActive *bool  `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"is_active"`
}

type CreateTagRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=50"`
	IsActive *bool  `json:"is_active"`
}

type UpdateTagRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=50"`
	IsActive *bool   `json:"is_active"`
}

type TaxonomyListParams struct {
	PageParams
	Search string `form:"search"`
}

// Blogs

type CreateBlogRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Content     string `json:"content" binding:"required"`
	CategoryID  *uint  `json:"category_id"`
	TagIDs      []uint `json:"tag_ids"`
	Image       string `json:"image" binding:"omitempty,max=2000"`
	IsFeatured  bool   `json:"is_featured"`
	IsPublished bool   `json:"is_published"`
}

// UpdateBlogRequest is a partial update. category_id 0 clears the category.
type UpdateBlogRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Content     *string `json:"content" binding:"omitempty,min=1"`
	CategoryID  *uint   `json:"category_id"`
	TagIDs      *[]uint `json:"tag_ids"`
	Image       *string `json:"image" binding:"omitempty,max=2000"`
	IsFeatured  *bool   `json:"is_featured"`
	IsPublished *bool   `json:"is_published"`
	IsActive    *bool   `json:"is_active"`
}

// PublishRequest toggles the current state when IsPublished is omitted.
type PublishRequest struct {
	IsPublished *bool `json:"is_published"`
}

type BlogListParams struct {
	PageParams
	Search      string `form:"search"`
	Category    uint   `form:"category"`
	Tag         uint   `form:"tag"`
	Author      uint   `form:"author"`
	IsPublished *bool  `form:"is_published"`
}

// BlogFilter is what repositories see after visibility rules are applied.
type BlogFilter struct {
	Search        string
	CategoryID    uint
	TagID         uint
	AuthorID      uint
	IsPublished   *bool
	OnlyVisible   bool
	VisibleOrOwns uint
	Featured      bool
}

type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TagSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type BlogResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Author      UserSummary      `json:"author"`
	Category    *CategorySummary `json:"category"`
	Tags        []TagSummary     `json:"tags"`
	Content     string           `json:"content"`
	Image       string           `json:"image"`
	IsActive    bool             `json:"is_active"`
	IsFeatured  bool             `json:"is_featured"`
	IsPublished bool             `json:"is_published"`
	PublishedAt *time.Time       `json:"published_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewBlogResponse(b *Blog) BlogResponse {
	res := BlogResponse{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.Slug,
		Author:      b.Author.Summary(),
		Tags:        make([]TagSummary, 0, len(b.Tags)),
		Content:     b.Content,
		Image:       b.Image,
		IsActive:    b.IsActive,
		IsFeatured:  b.IsFeatured,
		IsPublished: b.IsPublished,
		PublishedAt: b.PublishedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Category != nil {
		res.Category = &CategorySummary{ID: b.Category.ID, Name: b.Category.Name, Slug: b.Category.Slug}
	}
	for _, t := range b.Tags {
		res.Tags = append(res.Tags, TagSummary{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return res
}

// Public feed

type BlogEngagement struct {
	ViewsCount     int64          `json:"views_count"`
	CommentsCount  int64          `json:"comments_count"`
	ReactionCounts ReactionCounts `json:"reaction_counts"`
	TotalReactions int64          `json:"total_reactions"`
}

type PostResponse struct {
	BlogResponse
	BlogEngagement
}

type PostDetailResponse struct {
	PostResponse
	ContentHTML        string            `json:"content_html"`
	Comments           []CommentResponse `json:"comments"`
	UserReaction       *ReactionType     `json:"user_reaction"`
	TimeSincePublished *string           `json:"time_since_published"`
}

type SiteStats struct {
	TotalPublishedPosts int64 `json:"total_published_posts"`
	ActiveUsers         int64 `json:"active_users"`
	NewPostsLast7Days   int64 `json:"new_posts_last_7_days"`
	TotalViews          int64 `json:"total_views"`
	TotalComments       int64 `json:"total_comments"`
	TotalReactions      int64 `json:"total_reactions"`
}

// Comments

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	Parent  *uint  `json:"parent"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID        uint              `json:"id"`
	Blog      uint              `json:"blog"`
	User      UserSummary       `json:"user"`
	Content   string            `json:"content"`
	Parent    *uint             `json:"parent"`
	Replies   []CommentResponse `json:"replies"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Blog:      c.BlogID,
		User:      c.User.Summary(),
		Content:   c.Content,
		Parent:    c.ParentID,
		Replies:   []CommentResponse{},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Reactions

type ReactionRequest struct {
	Type ReactionType `json:"type" binding:"required"`
}

type ReactionSummary struct {
	ReactionCounts ReactionCounts `json:"reaction_counts"`
	TotalReactions int64          `json:"total_reactions"`
	UserReaction   *ReactionType  `json:"user_reaction"`
}

// Notifications, contact messages, advertisements

type NotificationListParams struct {
	PageParams
	Unread *bool `form:"unread"`
}

type CreateContactMessageRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"omitempty,max=200"`
	Message string `json:"message" binding:"required"`
}

type CreateAdvertisementRequest struct {
	Title     string     `json:"title" binding:"required,max=255"`
	Image     string     `json:"image" binding:"omitempty,max=2000"`
	URL       string     `json:"url" binding:"required,url,max=2000"`
	StartDate *time.Time `json:"start_date"`
	EndDate   time.Time  `json:"end_date" binding:"required"`
	IsActive  *bool      `json:"is_active"`
}

type UpdateAdvertisementRequest struct {
	Title     *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Image     *string    `json:"image" binding:"omitempty,max=2000"`
	URL       *string    `json:"url" binding:"omitempty,url,max=2000"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsActive  *bool      `json:"is_active"`
}
