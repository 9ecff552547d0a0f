package models

// EffectiveAccess is the result of one access-control evaluation for an
// (actor, vault owner) pair. It is computed fresh on every sensitive
// operation so that revocations and toggle flips take effect on the next
// evaluation, not at session start.
type EffectiveAccess struct {
	// Role is the actor's resolved role toward the owner.
	Role Role `json:"role"`

	// CanAttemptUnlock reports whether the actor may reach the
	// password-unlock flow at all. True only for the owner.
	CanAttemptUnlock bool `json:"can_attempt_unlock"`

	// CanSeeEncryptedVault reports whether the actor may see encrypted
	// vault content once it is unlocked.
	CanSeeEncryptedVault bool `json:"can_see_encrypted_vault"`

	// CanSeeUnencryptedVault reports whether the actor may see vault
	// content that predates encryption setup.
	CanSeeUnencryptedVault bool `json:"can_see_unencrypted_vault"`

	// RecoveryPath reports whether the actor is the assigned delegate and
	// therefore holds the recovery-request path. A delegate without a
	// separate role grant holds only this path.
	RecoveryPath bool `json:"recovery_path"`
}

// Denied reports whether the evaluation yielded no access of any kind.
func (a EffectiveAccess) Denied() bool {
	return a.Role == RoleNone && !a.RecoveryPath
}
