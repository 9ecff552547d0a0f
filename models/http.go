package models

// RegisterRequest is the payload for account registration. AuthHash is a
// client-side derivative of the master password; the plaintext password never
// reaches the server.
type RegisterRequest struct {
	Login    string `json:"login"`
	Name     string `json:"name,omitempty"`
	AuthHash string `json:"auth_hash"`
}

// LoginRequest is the payload for account authentication.
type LoginRequest struct {
	Login    string `json:"login"`
	AuthHash string `json:"auth_hash"`
}

// TokenResponse carries the issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// VaultSetupRequest starts field encryption for the caller's vault.
// MasterPassword is used for in-memory key derivation only and is committed
// nowhere; only the wrapped key material and the salt are persisted.
type VaultSetupRequest struct {
	MasterPassword string `json:"master_password"`
}

// VaultUnlockRequest attempts a password unlock of the caller's vault.
type VaultUnlockRequest struct {
	MasterPassword string `json:"master_password"`
}

// VaultStatusResponse describes the caller-visible vault state.
type VaultStatusResponse struct {
	Encrypted        bool           `json:"encrypted"`
	Unlocked         bool           `json:"unlocked"`
	AllowAdminAccess bool           `json:"allow_admin_access"`
	RecoveryStatus   RecoveryStatus `json:"recovery_status"`
	HasDelegate      bool           `json:"has_delegate"`
}

// FieldPayload is one named field crossing the encrypt/decrypt boundary.
type FieldPayload struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldsRequest carries a batch of fields to encrypt or decrypt within the
// caller's unlocked session.
type FieldsRequest struct {
	Fields []FieldPayload `json:"fields"`
}

// FieldsResponse carries the per-field outcome of a batch decrypt. Failed
// holds the names of fields whose ciphertext did not authenticate; the
// remaining fields are returned regardless, so one corrupted field never
// aborts the whole record.
type FieldsResponse struct {
	Fields []FieldPayload `json:"fields"`
	Failed []string       `json:"failed,omitempty"`
}

// DelegateAssignRequest designates a recovery delegate for the caller's
// vault. DelegatePublicKey is the delegate's X25519 public key (base64) that
// the vault key is sealed to at assignment time.
type DelegateAssignRequest struct {
	DelegateID        int64  `json:"delegate_id"`
	DelegatePublicKey []byte `json:"delegate_public_key"`
	GracePeriodDays   uint32 `json:"grace_period_days"`
	MasterPassword    string `json:"master_password"`
}

// RecoverySubmitRequest is the delegate's emergency access request.
type RecoverySubmitRequest struct {
	VaultOwnerID int64  `json:"vault_owner_id"`
	Relationship string `json:"relationship"`
	Reason       string `json:"reason"`
}

// RecoveryDecisionRequest is the owner's approve/reject response to a
// pending request.
type RecoveryDecisionRequest struct {
	RequestID string `json:"request_id"`
}

// RecoveryUnlockRequest consumes an approved request. DelegatePrivateKey is
// the delegate-held X25519 private key matching the public key registered at
// assignment; it is used in memory only.
type RecoveryUnlockRequest struct {
	RequestID          string `json:"request_id"`
	DelegatePrivateKey []byte `json:"delegate_private_key"`
}

// ChallengeResponse carries an issued second-factor challenge handle.
type ChallengeResponse struct {
	ChallengeID string `json:"challenge_id"`
}

// ChallengeVerifyRequest submits the one-time code for a challenge.
type ChallengeVerifyRequest struct {
	ChallengeID string `json:"challenge_id"`
	Code        string `json:"code"`
}

// GrantInviteRequest invites another account into a role on the caller's
// vault.
type GrantInviteRequest struct {
	GranteeID int64 `json:"grantee_id"`
	Role      Role  `json:"role"`
}

// GrantAcceptRequest accepts a pending invitation from the named owner.
type GrantAcceptRequest struct {
	OwnerID int64 `json:"owner_id"`
}

// GrantRevokeRequest removes a grant from the caller's vault.
type GrantRevokeRequest struct {
	GranteeID int64 `json:"grantee_id"`
}

// GrantsResponse lists the grants on the caller's vault.
type GrantsResponse struct {
	Grants []RoleGrant `json:"grants"`
}

// AdminAccessRequest flips the owner's administrator-access setting.
type AdminAccessRequest struct {
	Allow bool `json:"allow"`
}
