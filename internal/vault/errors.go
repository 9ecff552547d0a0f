package vault

import "errors"

var (
	// ErrAuthenticationFailed is returned when the supplied master password
	// does not match the vault's key material. Recoverable, the caller may
	// retry with a different password.
	ErrAuthenticationFailed = errors.New("vault authentication failed")

	// ErrVaultNotInitialized is returned when an operation requires a vault
	// that has completed encryption setup and none exists for the owner.
	ErrVaultNotInitialized = errors.New("vault is not initialized")

	// ErrVaultAlreadyInitialized is returned when setup runs against a vault
	// that has already completed encryption setup. Encryption cannot be
	// re-run or disabled through this interface.
	ErrVaultAlreadyInitialized = errors.New("vault is already initialized")

	// ErrVaultLocked is returned when an operation needs a live session key
	// and the session holds none.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrVaultAlreadyUnlocked is returned when an unlock runs against a
	// session that already holds a live key.
	ErrVaultAlreadyUnlocked = errors.New("vault is already unlocked")
)
