package models

import (
	"errors"

	"memorial/db"
	"memorial/utils"

	"gorm.io/gorm"
)

type Permission uint8

const (
	PermissionView       Permission = 1
	PermissionContribute Permission = 2
	PermissionAdmin      Permission = 3
)

// Includes reports whether a holder of p may perform an operation that
// requires the given level (VIEW < CONTRIBUTE < ADMIN)
func (p Permission) Includes(required Permission) bool {
	return p >= required
}

func (p Permission) String() string {
	switch p {
	case PermissionView:
		return "VIEW"
	case PermissionContribute:
		return "CONTRIBUTE"
	case PermissionAdmin:
		return "ADMIN"
	}
	return ""
}

func ParsePermission(s string) (Permission, error) {
	switch s {
	case "VIEW":
		return PermissionView, nil
	case "CONTRIBUTE":
		return PermissionContribute, nil
	case "ADMIN":
		return PermissionAdmin, nil
	}
	return 0, errors.New("invalid permission: " + s)
}

type GrantKind uint8

const (
	GrantKindUser       GrantKind = 0 // bound to a registered user
	GrantKindInvite     GrantKind = 1 // pending invite, identified by email only
	GrantKindShareToken GrantKind = 2 // anonymous share link
)

// AccessGrant confers a permission level on a memorial to a registered user,
// a pending email invite, or an anonymous share token. The grant kind is
// derived from which identity field is set - see Kind.
type AccessGrant struct {
	ID          uint64    `gorm:"primaryKey"`
	CreatedAt   int64
	MemorialID  uint64    `gorm:"not null;index:uniq_memorial_user,unique,priority:1"`
	UserID      *uint64   `gorm:"index:uniq_memorial_user,unique,priority:2"`
	User        *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Email       string    `gorm:"type:varchar(150)"`
	AccessToken *string   `gorm:"type:varchar(100);index:uniq_access_token,unique"`
	Permission  Permission `gorm:"type:tinyint;not null"`
}

func (g *AccessGrant) Kind() GrantKind {
	if g.AccessToken != nil {
		return GrantKindShareToken
	}
	if g.UserID != nil {
		return GrantKindUser
	}
	return GrantKindInvite
}

func NewUserGrant(memorialID, userID uint64, email string, permission Permission) AccessGrant {
	return AccessGrant{MemorialID: memorialID, UserID: &userID, Email: email, Permission: permission}
}

func NewInviteGrant(memorialID uint64, email string, permission Permission) AccessGrant {
	return AccessGrant{MemorialID: memorialID, Email: email, Permission: permission}
}

func NewShareTokenGrant(memorialID uint64) AccessGrant {
	token := utils.Rand16BytesToBase62()
	return AccessGrant{MemorialID: memorialID, AccessToken: &token, Permission: PermissionView}
}

// CheckAccess decides whether the requester may perform an operation at the
// required level on the memorial. requesterID is nil for anonymous callers.
// Returns nil on grant, ErrNotFound when the memorial does not exist and
// ErrForbidden otherwise. Pure read - never mutates anything.
func CheckAccess(memorialID uint64, requesterID *uint64, required Permission) error {
	memorial := Memorial{}
	if err := db.Instance.First(&memorial, memorialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return memorial.CheckAccess(requesterID, required)
}

// CheckAccess evaluates the precedence chain on an already-loaded memorial:
//  1. PUBLIC memorials satisfy VIEW for anyone, including anonymous
//  2. anything else requires identity
//  3. the owner holds an implicit ADMIN grant
//  4. an explicit grant row must be at least the required level
func (m *Memorial) CheckAccess(requesterID *uint64, required Permission) error {
	if required == PermissionView && m.PrivacyLevel == PrivacyPublic {
		return nil
	}
	if requesterID == nil {
		return ErrForbidden
	}
	grant := m.resolveGrant(*requesterID)
	if grant == nil || !grant.Permission.Includes(required) {
		return ErrForbidden
	}
	return nil
}

// resolveGrant normalizes ownership and explicit rows into one grant shape:
// the owner gets a synthesized ADMIN grant, everyone else their stored row.
func (m *Memorial) resolveGrant(userID uint64) *AccessGrant {
	if m.OwnerID == userID {
		return &AccessGrant{MemorialID: m.ID, UserID: &userID, Permission: PermissionAdmin}
	}
	grant := AccessGrant{}
	if db.Instance.First(&grant, "memorial_id = ? and user_id = ?", m.ID, userID).Error != nil {
		return nil
	}
	return &grant
}

// ensureShareToken mints the memorial's share-token grant if none exists and
// returns it. Callers must run it inside a transaction holding the memorial
// row lock, so two concurrent calls cannot both observe "no token yet".
func ensureShareToken(tx *gorm.DB, memorialID uint64) (grant AccessGrant, err error) {
	err = tx.First(&grant, "memorial_id = ? and access_token is not null", memorialID).Error
	if err == nil {
		return grant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	grant = NewShareTokenGrant(memorialID)
	err = tx.Create(&grant).Error
	return
}

// EnsureShareLink returns the memorial's share token, minting one on first
// use. Tokens are independent of the current privacy level: one may exist
// while the memorial is PRIVATE, inert until the level is switched.
func EnsureShareLink(memorialID, requesterID uint64) (token string, err error) {
	if err = CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return
	}
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		memorial := Memorial{}
		if err := db.ForUpdate(tx).First(&memorial, memorialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		grant, err := ensureShareToken(tx, memorialID)
		if err != nil {
			return err
		}
		token = *grant.AccessToken
		return nil
	})
	return
}

// ResolveByToken is the anonymous share-link path: possession of the token is
// the authorization. The memorial's current privacy level is deliberately not
// consulted - a minted token stays valid until its grant is revoked.
func ResolveByToken(token string) (memorial Memorial, permission Permission, err error) {
	grant := AccessGrant{}
	if err = db.Instance.First(&grant, "access_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrNotFound
		}
		return
	}
	if err = db.Instance.First(&memorial, grant.MemorialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrNotFound
		}
		return
	}
	return memorial, grant.Permission, nil
}

// InviteUser grants access to an email address. A registered user is bound by
// id right away; an unknown email becomes a pending invite that starts working
// once that account exists. Pending invites are not retroactively bound at
// registration time. Fails with ErrConflict when the identity already holds a
// grant on this memorial.
func InviteUser(memorialID, requesterID uint64, email string, permission Permission) (grant AccessGrant, err error) {
	if err = CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return
	}
	user, err := UserByEmail(email)
	if err != nil {
		return
	}
	query := db.Instance.Model(&AccessGrant{})
	if user != nil {
		query = query.Where("memorial_id = ? and (email = ? or user_id = ?)", memorialID, email, user.ID)
	} else {
		query = query.Where("memorial_id = ? and email = ?", memorialID, email)
	}
	var count int64
	if err = query.Count(&count).Error; err != nil {
		return
	}
	if count > 0 {
		return AccessGrant{}, ErrConflict
	}
	if user != nil {
		grant = NewUserGrant(memorialID, user.ID, email, permission)
	} else {
		grant = NewInviteGrant(memorialID, email, permission)
	}
	err = db.Instance.Create(&grant).Error
	return
}

// ListGrants returns all grants on the memorial, newest first. Requires ADMIN.
func ListGrants(memorialID, requesterID uint64) (grants []AccessGrant, err error) {
	if err = CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return
	}
	err = db.Instance.Preload("User").Where("memorial_id = ?", memorialID).Order("created_at DESC").Find(&grants).Error
	return
}

// grantInMemorial loads a grant and verifies it belongs to the memorial
func grantInMemorial(memorialID, grantID uint64) (grant AccessGrant, err error) {
	if err = db.Instance.First(&grant, grantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrNotFound
		}
		return
	}
	if grant.MemorialID != memorialID {
		return AccessGrant{}, ErrNotFound
	}
	return
}

// UpdateGrant changes a grant's permission level. Requires ADMIN. Share-link
// grants are view-only by construction and cannot be raised.
func UpdateGrant(memorialID, grantID, requesterID uint64, permission Permission) (grant AccessGrant, err error) {
	if err = CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return
	}
	if grant, err = grantInMemorial(memorialID, grantID); err != nil {
		return
	}
	if grant.Kind() == GrantKindShareToken && permission != PermissionView {
		return AccessGrant{}, ErrConflict
	}
	grant.Permission = permission
	err = db.Instance.Save(&grant).Error
	return
}

// RevokeGrant deletes a grant. Requires ADMIN. Revoking the share-token grant
// is the one way to invalidate a previously handed-out link.
func RevokeGrant(memorialID, grantID, requesterID uint64) error {
	if err := CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return err
	}
	grant, err := grantInMemorial(memorialID, grantID)
	if err != nil {
		return err
	}
	return db.Instance.Delete(&grant).Error
}
