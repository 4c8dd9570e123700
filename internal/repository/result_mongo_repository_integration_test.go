//go:build integration

package repository

import (
	"ap_quiz_backend/internal/model"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// go test -tags integration ./internal/repository/ 需要设置 AP_QUIZ_TEST_MONGO_URI
func TestMongoResultRepository_RoundTrip(t *testing.T) {
	uri := os.Getenv("AP_QUIZ_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("AP_QUIZ_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	collection := fmt.Sprintf("result_records_%d", time.Now().UnixNano())
	repo := NewMongoResultRepository(client, "ap_quiz_test", collection)
	t.Cleanup(func() { repo.coll.Drop(context.Background()) })

	require.NoError(t, repo.Ping(ctx))
	require.NoError(t, repo.EnsureHeader(ctx))
	require.NoError(t, repo.EnsureHeader(ctx))

	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// created_at 相同时按插入顺序返回
	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	for i, status := range []model.ResultStatus{model.StatusCorrect, model.StatusIncorrect, model.StatusCorrect} {
		rec := sampleRecord(status)
		rec.Name = fmt.Sprintf("user-%d", i)
		rec.CreatedAt = createdAt
		require.NoError(t, repo.AppendRow(ctx, rec))
	}
	require.NoError(t, repo.AppendRow(ctx, sampleRecord(model.StatusIncorrect)))

	records, err = repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"user-0", "user-1", "user-2", "Ada"},
		[]string{records[0].Name, records[1].Name, records[2].Name, records[3].Name})
	assert.True(t, createdAt.Equal(records[0].CreatedAt))
	assert.Equal(t, "11", records[3].UserAnswer)

	summary := model.Summarize(records)
	assert.Equal(t, 2, summary.CorrectCount)
	assert.Equal(t, 2, summary.IncorrectCount)
}
