package models

import "time"

// Role is the effective role an actor holds toward a vault owner. It is a
// closed set: AccessControlEvaluator switches over it exhaustively, so an
// unknown role can never fall through to an allow branch.
type Role string

const (
	// RoleOwner is the vault owner. Never stored as a grant; derived when
	// the actor and the owner are the same account.
	RoleOwner Role = "owner"

	// RoleAdministrator may manage vault content and, subject to the
	// owner's AllowAdminAccess veto, see encrypted content.
	RoleAdministrator Role = "administrator"

	// RoleContributor may see and edit unencrypted vault content only.
	RoleContributor Role = "contributor"

	// RoleViewer may see unencrypted vault content only.
	RoleViewer Role = "viewer"

	// RoleNone is the absence of any role. It is the result of evaluation,
	// never a stored grant.
	RoleNone Role = "none"
)

// GrantStatus is the lifecycle state of a role grant.
type GrantStatus string

const (
	// GrantStatusInvited means the grant was issued but the grantee has not
	// accepted it. Invited grants confer no access.
	GrantStatusInvited GrantStatus = "invited"

	// GrantStatusAccepted means the grantee accepted and the grant is live.
	GrantStatusAccepted GrantStatus = "accepted"
)

// RoleGrant links a grantee account to a vault owner with a role. At most one
// active grant exists per (owner, grantee) pair.
type RoleGrant struct {
	// OwnerID is the vault owner who issued the grant.
	OwnerID int64 `json:"owner_id"`

	// GranteeID is the account the role is granted to.
	GranteeID int64 `json:"grantee_id"`

	// Role is the granted role. RoleOwner and RoleNone are never stored.
	Role Role `json:"role"`

	// Status gates the grant: only accepted grants confer access.
	Status GrantStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the RoleGrant model.
func (g RoleGrant) TableName() string {
	return "role_grants"
}

// Active reports whether the grant currently confers access.
func (g *RoleGrant) Active() bool {
	return g.Status == GrantStatusAccepted
}
