package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidationMessageRoundTrip(t *testing.T) {
	body, err := NewInvalidationMessage("user-1", "replica-a").ToJSON()
	require.NoError(t, err)

	msg, err := InvalidationMessageFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, "user-1", msg.UserID)
	assert.Equal(t, "replica-a", msg.Origin)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestInvalidationMessageFromJSON_Rejects(t *testing.T) {
	_, err := InvalidationMessageFromJSON([]byte("{not json"))
	assert.Error(t, err)

	_, err = InvalidationMessageFromJSON([]byte(`{"origin":"x"}`))
	assert.Error(t, err)
}

func TestHandleDelivery(t *testing.T) {
	var applied []string
	apply := func(userID string) { applied = append(applied, userID) }

	remote, _ := NewInvalidationMessage("user-1", "replica-b").ToJSON()
	local, _ := NewInvalidationMessage("user-2", "replica-a").ToJSON()

	assert.True(t, handleDelivery(remote, "replica-a", apply))
	assert.True(t, handleDelivery(local, "replica-a", apply))
	assert.False(t, handleDelivery([]byte("garbage"), "replica-a", apply))

	assert.Equal(t, []string{"user-1"}, applied)
}
