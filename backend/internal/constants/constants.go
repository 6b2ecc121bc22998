package constants

// Service constants
const (
	// ServiceName labels logs and the root banner
	ServiceName = "socialgraph"

	// WelcomeMessage is returned by GET /
	WelcomeMessage = "Welcome to the social graph API!"
)

// Node labels
const (
	LabelUser    = "User"
	LabelPost    = "Post"
	LabelComment = "Comment"
)

// Relationship types
const (
	// RelFriendsWith connects two users; logically undirected
	RelFriendsWith = "FRIENDS_WITH"

	// RelCreated connects an author to a post or comment
	RelCreated = "CREATED"

	// RelHasComment connects a post to one of its comments
	RelHasComment = "HAS_COMMENT"

	// RelLikes connects a user to a liked post or comment
	RelLikes = "LIKES"
)

// Node property keys
const (
	PropID        = "id"
	PropName      = "name"
	PropEmail     = "email"
	PropTitle     = "title"
	PropContent   = "content"
	PropCreatedAt = "created_at"
)

// Seeding constants
const (
	// MaxSeedUsers bounds graphctl seed so a typo cannot flood the store
	MaxSeedUsers = 10000

	// SeedConcurrency is the number of in-flight seed requests
	SeedConcurrency = 8
)
