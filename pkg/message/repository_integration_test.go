package message

import (
	"context"
	"testing"

	"github.com/gatherly/gatherly/pkg/inttest"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create_SurvivesCallerCancellation(t *testing.T) {
	t.Parallel()

	db := inttest.SetupDB(t)
	messageRepository := NewRepository(db)

	author := &model.User{Email: "ana@gatherly.test", Name: "Ana"}
	require.NoError(t, db.Create(author).Error)
	hikers := &model.Group{Name: "Hikers", City: "Bled", OwnerID: author.ID}
	require.NoError(t, db.Create(hikers).Error)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	message := &model.GroupMessage{Content: "see you at the trailhead", UserID: author.ID, GroupID: hikers.ID}
	require.NoError(t, messageRepository.create(ctx, message))

	require.NotNil(t, message.User, "author should be preloaded on the returned message")
	assert.Equal(t, "Ana", message.User.Name)

	var count int64
	require.NoError(t, db.Model(&model.GroupMessage{}).Where("group_id = ?", hikers.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
