package models

import (
	"testing"

	"memorial/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorialCreateDefaults(t *testing.T) {
	owner := testUser(t)
	memorial, err := MemorialCreate(owner.ID, "John Doe", "1940-05-06", "2019-07-08", "", "")
	require.NoError(t, err)
	assert.Equal(t, PrivacyPrivate, memorial.PrivacyLevel)
	assert.Empty(t, tokenGrants(t, memorial.ID))

	_, err = MemorialCreate(owner.ID, "John Doe", "", "", "", "SOMETHING_ELSE")
	assert.Error(t, err)
}

func TestMemorialGet(t *testing.T) {
	owner := testUser(t)
	stranger := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)

	got, err := MemorialGet(memorial.ID, &owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.FullName)

	_, err = MemorialGet(memorial.ID, &stranger.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = MemorialGet(memorial.ID, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = MemorialGet(123456789, &owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorialSavePartial(t *testing.T) {
	owner := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)

	newName := "Jane A. Doe"
	saved, err := MemorialSave(memorial.ID, owner.ID, MemorialUpdate{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, saved.FullName)
	// Untouched fields keep their values
	assert.Equal(t, memorial.Biography, saved.Biography)
	assert.Equal(t, PrivacyPrivate, saved.PrivacyLevel)

	bad := PrivacyLevel("LOUD")
	_, err = MemorialSave(memorial.ID, owner.ID, MemorialUpdate{PrivacyLevel: &bad})
	assert.Error(t, err)
}

func TestMemorialSaveRequiresAdmin(t *testing.T) {
	owner := testUser(t)
	contributor := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)
	_, err := InviteUser(memorial.ID, owner.ID, contributor.Email, PermissionContribute)
	require.NoError(t, err)

	name := "Hijacked"
	_, err = MemorialSave(memorial.ID, contributor.ID, MemorialUpdate{FullName: &name})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMemorialDeleteOwnerOnly(t *testing.T) {
	owner := testUser(t)
	admin := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPrivate)
	grant, err := InviteUser(memorial.ID, owner.ID, admin.Email, PermissionAdmin)
	require.NoError(t, err)
	_ = grant

	assert.ErrorIs(t, MemorialDelete(memorial.ID, admin.ID), ErrForbidden)
	require.NoError(t, MemorialDelete(memorial.ID, owner.ID))
	assert.ErrorIs(t, MemorialDelete(memorial.ID, owner.ID), ErrNotFound)
}

func TestMemorialDeleteCascades(t *testing.T) {
	owner := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacySharedLink)
	_, err := LifeMomentCreate(memorial.ID, owner.ID, "Born", "", "1950-02-01", nil)
	require.NoError(t, err)
	_, err = MemoryCreate(memorial.ID, owner.ID, MemoryText, "She loved her garden")
	require.NoError(t, err)
	_, err = InteractionCreate(memorial.ID, &owner.ID, InteractionCandle, "", "🕯️")
	require.NoError(t, err)

	require.NoError(t, MemorialDelete(memorial.ID, owner.ID))

	for _, child := range []interface{}{&AccessGrant{}, &LifeMoment{}, &Memory{}, &VisitorInteraction{}} {
		var count int64
		require.NoError(t, db.Instance.Model(child).Where("memorial_id = ?", memorial.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestUserMemorials(t *testing.T) {
	owner := testUser(t)
	other := testUser(t)
	testMemorial(t, owner.ID, PrivacyPrivate)
	testMemorial(t, owner.ID, PrivacyPublic)
	testMemorial(t, other.ID, PrivacyPrivate)

	memorials, err := UserMemorials(owner.ID)
	require.NoError(t, err)
	assert.Len(t, memorials, 2)
}
