package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrVaultConfigNotFound is returned when no vault configuration exists
	// for the requested owner. Callers treat this as "vault uninitialized".
	ErrVaultConfigNotFound = errors.New("vault config was not found")

	// ErrEncryptionDowngrade is returned when a save would clear the
	// is_encrypted flag of an existing vault configuration. The flag is
	// monotonic; the repository refuses the write outright.
	ErrEncryptionDowngrade = errors.New("vault encryption cannot be disabled")

	// ErrRoleGrantNotFound is returned when an update targets a role grant
	// that does not exist.
	ErrRoleGrantNotFound = errors.New("role grant was not found")

	// ErrPendingRequestExists is returned when creating a recovery request
	// would violate the at-most-one-pending-per-vault invariant. The
	// violation is detected by the partial unique index, so two concurrent
	// submitters cannot both succeed.
	ErrPendingRequestExists = errors.New("a pending recovery request already exists for this vault")

	// ErrRecoveryRequestNotFound is returned when a lookup by request ID
	// produces no row.
	ErrRecoveryRequestNotFound = errors.New("recovery request was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
