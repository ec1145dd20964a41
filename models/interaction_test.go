package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractionCreate(t *testing.T) {
	owner := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPublic)

	// Anonymous visitors can interact with public memorials
	candle, err := InteractionCreate(memorial.ID, nil, InteractionCandle, "", "🕯️")
	require.NoError(t, err)
	assert.Nil(t, candle.VisitorID)

	_, err = InteractionCreate(memorial.ID, nil, "WAVE", "", "")
	assert.Error(t, err)

	private := testMemorial(t, owner.ID, PrivacyPrivate)
	_, err = InteractionCreate(private.ID, nil, InteractionCandle, "", "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMemorialStats(t *testing.T) {
	owner := testUser(t)
	visitor := testUser(t)
	memorial := testMemorial(t, owner.ID, PrivacyPublic)

	_, err := MemoryCreate(memorial.ID, owner.ID, MemoryText, "remembered")
	require.NoError(t, err)
	_, err = InteractionCreate(memorial.ID, &visitor.ID, InteractionCandle, "", "")
	require.NoError(t, err)
	_, err = InteractionCreate(memorial.ID, &visitor.ID, InteractionMessage, "rest in peace", "")
	require.NoError(t, err)
	_, err = InteractionCreate(memorial.ID, nil, InteractionCandle, "", "")
	require.NoError(t, err)

	stats, err := MemorialStats(memorial.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalMemories)
	assert.EqualValues(t, 2, stats.TotalCandles)
	assert.EqualValues(t, 1, stats.TotalMessages)
	// Anonymous interactions do not count as distinct visitors
	assert.EqualValues(t, 1, stats.TotalVisitors)
}
