package domain

import (
	"context"
	"time"
)

// Query is a composable, not yet executed query over entities of type E.
// Nothing touches the store until a terminal method (ToList, FirstOrDefault,
// PluckInts, Count, Each) is called. Query values are immutable: every
// builder method returns a new Query and leaves the receiver untouched.
type Query[E any] interface {
	// Where adds a condition. Args may be other Query values, which are
	// rendered as sub-queries.
	Where(condition string, args ...any) Query[E]

	// Include eagerly loads the named relations at materialization time
	Include(relations ...string) Query[E]

	// Select restricts the selected columns (mainly for sub-queries)
	Select(columns ...string) Query[E]

	// OrderBy appends an ordering clause
	OrderBy(order string) Query[E]

	// ToList materializes every matching entity
	ToList(ctx context.Context) ([]E, error)

	// FirstOrDefault returns the first matching entity, or nil when none match
	FirstOrDefault(ctx context.Context) (*E, error)

	// PluckInts materializes a single integer column
	PluckInts(ctx context.Context, column string) ([]int, error)

	// Count returns the number of matching rows
	Count(ctx context.Context) (int64, error)

	// Each streams matching entities in batches of batchSize
	Each(ctx context.Context, batchSize int, fn func(E) error) error
}

// Repository defines the CRUD and query-composition contract shared by every entity kind
type Repository[E any] interface {
	// Add inserts one entity and commits, returning it with its assigned ID
	Add(ctx context.Context, entity *E) (*E, error)

	// AddRange inserts every entity in one commit
	AddRange(ctx context.Context, entities []E) ([]E, error)

	// Update overwrites every scalar field of the row identified by id.
	// Returns nil, nil when the row does not exist.
	Update(ctx context.Context, id int, entity *E) (*E, error)

	// Delete removes the row identified by id. A missing row is a no-op.
	Delete(ctx context.Context, id int) error

	// GetByID returns the row identified by id, or nil when it does not exist
	GetByID(ctx context.Context, id int) (*E, error)

	// GetAllList eagerly loads every row
	GetAllList(ctx context.Context) ([]E, error)

	// GetAllListWithInclude eagerly loads every row with the named relations
	GetAllListWithInclude(ctx context.Context, relations ...string) ([]E, error)

	// GetAllQuery returns a deferred query over every row
	GetAllQuery() Query[E]

	// GetAllQueryWithInclude returns a deferred query that loads the named relations
	GetAllQueryWithInclude(relations ...string) Query[E]
}

// SignInResult is the outcome of a password sign-in attempt
type SignInResult struct {
	Succeeded    bool
	IsLockedOut  bool
	SessionToken string
	ExpiresAt    time.Time
}

// SignInManager defines the identity and session operations used by the account flow
type SignInManager interface {
	// FindByUserName returns the account registered under userName, or nil
	FindByUserName(ctx context.Context, userName string) (*AppUser, error)

	// PasswordSignIn verifies the password with lockout tracking enabled and
	// opens a session on success
	PasswordSignIn(ctx context.Context, userName, password string) (SignInResult, error)

	// GetRoles returns the roles assigned to user
	GetRoles(ctx context.Context, user *AppUser) ([]string, error)

	// SignOut closes the session carried by ctx
	SignOut(ctx context.Context) error
}
