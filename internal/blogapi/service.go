package blogapi

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import "context"

// Service is the blog REST API as seen by the client state store.
// It is implemented by *Client; tests use the generated mocks.
type Service interface {
	Register(ctx context.Context, reg Registration) (*User, error)
	Login(ctx context.Context, creds Credentials) (string, error)
	Profile(ctx context.Context, token string) (*User, error)
	UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*User, error)
	User(ctx context.Context, id ID) (*User, error)

	ListBlogs(ctx context.Context, query ListQuery) (BlogPage, error)
	Blog(ctx context.Context, id ID) (*Blog, error)
	CreateBlog(ctx context.Context, token string, input BlogInput) (*Blog, error)
	UpdateBlog(ctx context.Context, token string, id ID, input BlogInput) (*Blog, error)
	DeleteBlog(ctx context.Context, token string, id ID) error
	BookmarkedBlogs(ctx context.Context, token string) ([]Blog, error)
	Categories(ctx context.Context) ([]Category, error)
	Upload(ctx context.Context, token string, file File) (string, error)

	ToggleLike(ctx context.Context, token string, id ID) (Engagement, error)
	ToggleBookmark(ctx context.Context, token string, id ID) (Engagement, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)
