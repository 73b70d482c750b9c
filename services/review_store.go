package services

import (
	"context"
	"fmt"

	"helpmate_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoReviewStore persists reviews in the Reviews table, keyed
// (sessionId, reviewerId).
type DynamoReviewStore struct {
	Dynamo *DynamoService
}

func (s *DynamoReviewStore) Create(ctx context.Context, r *models.Review) error {
	return s.Dynamo.PutItemIfAbsent(ctx, models.ReviewsTable, "reviewerId", r)
}

func (s *DynamoReviewStore) ListByTarget(ctx context.Context, userID string) ([]models.Review, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.ReviewsTable,
		models.ReviewsByTargetIndex,
		"targetUserId = :userId",
		map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
		nil, 0)
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := attributevalue.UnmarshalListOfMaps(items, &reviews); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reviews: %w", err)
	}
	return reviews, nil
}
