package common

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientdesk/internal/models"
)

func TestActorRoundTrip(t *testing.T) {
	actor := models.Actor{UserID: uuid.New(), Role: models.RoleClient, ClientID: uuid.New()}

	ctx := WithActor(context.Background(), actor)
	got, ok := GetActorFromContext(ctx)

	require.True(t, ok)
	assert.Equal(t, actor, got)
}

func TestGetActorFromContext_Absent(t *testing.T) {
	_, ok := GetActorFromContext(context.Background())
	assert.False(t, ok)
}

func TestValidateUUID(t *testing.T) {
	id := uuid.New()

	got, err := ValidateUUID(id.String(), "client_id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = ValidateUUID("  "+id.String()+"  ", "client_id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ValidateUUID("", "client_id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_id is required")

	_, err = ValidateUUID("not-a-uuid", "client_id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid UUID")
}

func TestValidatePaginationParams(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 50, 0},
		{-5, -10, 50, 0},
		{25, 100, 25, 100},
		{5000, 0, 1000, 0},
	}
	for _, tt := range tests {
		limit, offset := ValidatePaginationParams(tt.limit, tt.offset)
		assert.Equal(t, tt.wantLimit, limit)
		assert.Equal(t, tt.wantOffset, offset)
	}
}
