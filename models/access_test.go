package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionIncludes(t *testing.T) {
	assert.True(t, PermissionAdmin.Includes(PermissionView))
	assert.True(t, PermissionAdmin.Includes(PermissionContribute))
	assert.True(t, PermissionContribute.Includes(PermissionView))
	assert.False(t, PermissionView.Includes(PermissionContribute))
	assert.False(t, PermissionContribute.Includes(PermissionAdmin))
}

func TestCheckAccessMissingMemorial(t *testing.T) {
	user := testUser(t)
	assert.ErrorIs(t, CheckAccess(987654321, nil, PermissionView), ErrNotFound)
	assert.ErrorIs(t, CheckAccess(987654321, &user.ID, PermissionAdmin), ErrNotFound)
}

func TestCheckAccessOwner(t *testing.T) {
	owner := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)
	for _, level := range []Permission{PermissionView, PermissionContribute, PermissionAdmin} {
		assert.NoError(t, CheckAccess(memorial.ID, &owner.ID, level))
	}
}

func TestCheckAccessPublic(t *testing.T) {
	owner := testUser(t)
	stranger := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPublic)
	// Anyone can view, including anonymous
	assert.NoError(t, CheckAccess(memorial.ID, nil, PermissionView))
	assert.NoError(t, CheckAccess(memorial.ID, &stranger.ID, PermissionView))
	// Public never grants more than VIEW
	assert.ErrorIs(t, CheckAccess(memorial.ID, nil, PermissionContribute), ErrForbidden)
	assert.ErrorIs(t, CheckAccess(memorial.ID, &stranger.ID, PermissionContribute), ErrForbidden)
}

func TestCheckAccessAnonymousDenied(t *testing.T) {
	owner := testUser(t)
	for _, level := range []PrivacyLevel{PrivacyPrivate, PrivacySharedLink} {
		memorial := testMemorial(t, owner.ID, level)
		assert.ErrorIs(t, CheckAccess(memorial.ID, nil, PermissionView), ErrForbidden)
	}
}

func TestCheckAccessGrantLevels(t *testing.T) {
	owner := testUser(t)
	contributor := testUser(t)
	stranger := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)

	grant, err := InviteUser(memorial.ID, owner.ID, contributor.Email, PermissionContribute)
	require.NoError(t, err)
	assert.Equal(t, GrantKindUser, grant.Kind())

	assert.NoError(t, CheckAccess(memorial.ID, &contributor.ID, PermissionView))
	assert.NoError(t, CheckAccess(memorial.ID, &contributor.ID, PermissionContribute))
	assert.ErrorIs(t, CheckAccess(memorial.ID, &contributor.ID, PermissionAdmin), ErrForbidden)
	assert.ErrorIs(t, CheckAccess(memorial.ID, &stranger.ID, PermissionView), ErrForbidden)
}

func TestInviteConflicts(t *testing.T) {
	owner := testUser(t)
	invitee := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)

	_, err := InviteUser(memorial.ID, owner.ID, invitee.Email, PermissionView)
	require.NoError(t, err)
	_, err = InviteUser(memorial.ID, owner.ID, invitee.Email, PermissionAdmin)
	assert.ErrorIs(t, err, ErrConflict)

	// Only an admin can invite
	_, err = InviteUser(memorial.ID, invitee.ID, "someone@example.com", PermissionView)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestInviteUnknownEmailStaysPending(t *testing.T) {
	owner := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)

	grant, err := InviteUser(memorial.ID, owner.ID, "not.yet.registered@example.com", PermissionContribute)
	require.NoError(t, err)
	assert.Equal(t, GrantKindInvite, grant.Kind())
	assert.Nil(t, grant.UserID)

	// Registering later does not bind the pending invite
	late, err := UserCreate("Late Arrival", "not.yet.registered@example.com", "some password")
	require.NoError(t, err)
	assert.ErrorIs(t, CheckAccess(memorial.ID, &late.ID, PermissionView), ErrForbidden)
}

func TestShareLinkMintedOnCreate(t *testing.T) {
	owner := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacySharedLink)

	grants := tokenGrants(t, memorial.ID)
	require.Len(t, grants, 1)
	assert.Equal(t, GrantKindShareToken, grants[0].Kind())
	assert.Equal(t, PermissionView, grants[0].Permission)

	token, err := EnsureShareLink(memorial.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, *grants[0].AccessToken, token)

	resolved, permission, err := ResolveByToken(token)
	require.NoError(t, err)
	assert.Equal(t, memorial.ID, resolved.ID)
	assert.Equal(t, PermissionView, permission)
}

func TestShareLinkIdempotent(t *testing.T) {
	owner := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)
	require.Empty(t, tokenGrants(t, memorial.ID))

	first, err := EnsureShareLink(memorial.ID, owner.ID)
	require.NoError(t, err)
	second, err := EnsureShareLink(memorial.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Flipping the privacy level around does not mint a new token either
	_, err = SetPrivacyLevel(memorial.ID, owner.ID, PrivacySharedLink)
	require.NoError(t, err)
	_, err = SetPrivacyLevel(memorial.ID, owner.ID, PrivacyPrivate)
	require.NoError(t, err)
	_, err = SetPrivacyLevel(memorial.ID, owner.ID, PrivacySharedLink)
	require.NoError(t, err)

	grants := tokenGrants(t, memorial.ID)
	require.Len(t, grants, 1)
	assert.Equal(t, first, *grants[0].AccessToken)
}

func TestShareLinkSurvivesPrivacyChange(t *testing.T) {
	owner := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacySharedLink)
	token, err := EnsureShareLink(memorial.ID, owner.ID)
	require.NoError(t, err)

	_, err = SetPrivacyLevel(memorial.ID, owner.ID, PrivacyPrivate)
	require.NoError(t, err)

	// The minted token keeps resolving until its grant is revoked
	_, _, err = ResolveByToken(token)
	assert.NoError(t, err)

	grants := tokenGrants(t, memorial.ID)
	require.Len(t, grants, 1)
	require.NoError(t, RevokeGrant(memorial.ID, grants[0].ID, owner.ID))
	_, _, err = ResolveByToken(token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShareLinkConcurrentMint(t *testing.T) {
	owner := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)

	const callers = 8
	tokens := make([]string, callers)
	errs := make([]error, callers)
	wg := sync.WaitGroup{}
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = EnsureShareLink(memorial.ID, owner.ID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, tokens[0], tokens[i])
	}
	assert.Len(t, tokenGrants(t, memorial.ID), 1)
}

func TestShareLinkRequiresAdmin(t *testing.T) {
	owner := testUser(t)
	viewer := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)
	_, err := InviteUser(memorial.ID, owner.ID, viewer.Email, PermissionView)
	require.NoError(t, err)

	_, err = EnsureShareLink(memorial.ID, viewer.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResolveByTokenUnknown(t *testing.T) {
	_, _, err := ResolveByToken("no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateGrant(t *testing.T) {
	owner := testUser(t)
	member := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)
	grant, err := InviteUser(memorial.ID, owner.ID, member.Email, PermissionView)
	require.NoError(t, err)

	updated, err := UpdateGrant(memorial.ID, grant.ID, owner.ID, PermissionAdmin)
	require.NoError(t, err)
	assert.Equal(t, PermissionAdmin, updated.Permission)
	assert.NoError(t, CheckAccess(memorial.ID, &member.ID, PermissionAdmin))

	// A freshly promoted admin can manage grants too
	_, err = UpdateGrant(memorial.ID, grant.ID, member.ID, PermissionContribute)
	assert.NoError(t, err)
}

func TestUpdateGrantShareTokenStaysView(t *testing.T) {
	owner := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacySharedLink)
	grants := tokenGrants(t, memorial.ID)
	require.Len(t, grants, 1)

	_, err := UpdateGrant(memorial.ID, grants[0].ID, owner.ID, PermissionContribute)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = UpdateGrant(memorial.ID, grants[0].ID, owner.ID, PermissionView)
	assert.NoError(t, err)
}

func TestGrantScopedToMemorial(t *testing.T) {
	owner := testUser(t)
	member := testUser(t)
	first := testMemorial(t, owner.ID, PrivacyPrivate)
	second := testMemorial(t, owner.ID, PrivacyPrivate)
	grant, err := InviteUser(first.ID, owner.ID, member.Email, PermissionView)
	require.NoError(t, err)

	_, err = UpdateGrant(second.ID, grant.ID, owner.ID, PermissionAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, RevokeGrant(second.ID, grant.ID, owner.ID), ErrNotFound)
}

func TestRevokeGrant(t *testing.T) {
	owner := testUser(t)
	member := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)
	grant, err := InviteUser(memorial.ID, owner.ID, member.Email, PermissionContribute)
	require.NoError(t, err)
	require.NoError(t, CheckAccess(memorial.ID, &member.ID, PermissionView))

	assert.ErrorIs(t, RevokeGrant(memorial.ID, grant.ID, member.ID), ErrForbidden)
	require.NoError(t, RevokeGrant(memorial.ID, grant.ID, owner.ID))
	assert.ErrorIs(t, CheckAccess(memorial.ID, &member.ID, PermissionView), ErrForbidden)
}

func TestListGrants(t *testing.T) {
	owner := testUser(t)
	member := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacySharedLink)
	_, err := InviteUser(memorial.ID, owner.ID, member.Email, PermissionView)
	require.NoError(t, err)
	_, err = InviteUser(memorial.ID, owner.ID, "pending@example.com", PermissionView)
	require.NoError(t, err)

	grants, err := ListGrants(memorial.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, grants, 3) // user + invite + share token

	_, err = ListGrants(memorial.ID, member.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
