package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeParticipantsDeduplicates(t *testing.T) {
	ids, err := NormalizeParticipants([]uint{3, 1, 3, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 2}, ids, "order of first occurrence is preserved")
}

func TestNormalizeParticipantsTooFew(t *testing.T) {
	_, err := NormalizeParticipants([]uint{5, 5})
	assert.ErrorIs(t, err, ErrParticipantCount, "duplicates collapse below the minimum")

	_, err = NormalizeParticipants([]uint{5})
	assert.ErrorIs(t, err, ErrParticipantCount)

	_, err = NormalizeParticipants(nil)
	assert.ErrorIs(t, err, ErrParticipantCount)
}

func TestNormalizeParticipantsTooMany(t *testing.T) {
	ids := make([]uint, MaxConversationParticipants+1)
	for i := range ids {
		ids[i] = uint(i + 1)
	}
	_, err := NormalizeParticipants(ids)
	assert.ErrorIs(t, err, ErrParticipantCount)
}

func TestNormalizeParticipantsAtBounds(t *testing.T) {
	ids, err := NormalizeParticipants([]uint{1, 2})
	require.NoError(t, err)
	assert.Len(t, ids, MinConversationParticipants)

	full := make([]uint, MaxConversationParticipants)
	for i := range full {
		full[i] = uint(i + 1)
	}
	ids, err = NormalizeParticipants(full)
	require.NoError(t, err)
	assert.Len(t, ids, MaxConversationParticipants)
}
