// Package blogapi provides an HTTP client for the blog REST API.
//
// # Overview
//
// The package defines the wire types of the blog service (users, blogs,
// categories), the Service interface the state store depends on, and Client,
// the net/http implementation of that interface.
//
// # Architecture
//
//   - client.go: Client, request building and response decoding
//   - service.go: the Service interface (mocked in mocks/ via mockgen)
//   - types.go: structures mirroring the API schema plus list/engagement decoders
//   - errors.go: APIError, NetworkError and UploadError
//
// # Client Usage
//
//	client, err := blogapi.NewClient(blogapi.DefaultAPIURL, blogapi.WithTimeout(10*time.Second))
//	if err != nil {
//		return fmt.Errorf("create api client: %w", err)
//	}
//
//	token, err := client.Login(ctx, blogapi.Credentials{Email: email, Password: password})
//	page, err := client.ListBlogs(ctx, blogapi.ListQuery{Page: 2})
//
// # API Endpoints
//
//   - POST /register, POST /login
//   - GET/PUT /users/profile, GET /users/{id}, GET /users/bookmarked-blogs
//   - GET/POST /blogs, GET/PUT/DELETE /blogs/{id}
//   - POST /blogs/{id}/like, POST /blogs/{id}/bookmark
//   - GET /categories
//   - POST /upload (multipart, field "files")
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: quill/0.1
//   - Carry a fresh X-Request-ID (UUID) that is also logged at debug level
//   - Send Authorization: Bearer <token> when a token is supplied
//
// Requests have no timeout unless WithTimeout is given. The state store
// assumes requests may take arbitrarily long.
//
// # Listing
//
// GET /blogs answers either with an envelope {blogs, total, total_pages,
// has_more} or with a bare array. ListBlogs derives pagination as:
//
//   - TotalPages: total_pages, else ceil(total / page_size), never below 1
//   - HasMore: has_more, or an envelope page that came back full
//
// Empty filters (search, category, category_id, author_id) are not sent.
//
// # Error Handling
//
//   - *APIError: non-2xx response. The message comes from the body's
//     "message", then "error", then a string "errors" field, else "HTTP {status}".
//   - *NetworkError: no response was received.
//   - *UploadError: upload accepted but no file URL came back.
//   - context errors are returned as is when the caller's context ended.
//
// Malformed success bodies return "decode response: ..." errors.
//
// # Identifiers
//
// The API sends ids as strings or numbers depending on the resource. ID
// accepts both and round-trips integers as numbers.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package blogapi
