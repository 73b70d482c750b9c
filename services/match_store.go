package services

import (
	"context"
	"fmt"

	"helpmate_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoMatchStore persists match requests in the MatchRequests table.
type DynamoMatchStore struct {
	Dynamo *DynamoService
}

func (s *DynamoMatchStore) Create(ctx context.Context, m *models.MatchRequest) error {
	return s.Dynamo.PutItemIfAbsent(ctx, models.MatchRequestsTable, "matchId", m)
}

func (s *DynamoMatchStore) Get(ctx context.Context, matchID string) (*models.MatchRequest, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MatchRequestsTable, StringKey("matchId", matchID))
	if err != nil {
		return nil, err
	}
	var match models.MatchRequest
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match request: %w", err)
	}
	return &match, nil
}

func (s *DynamoMatchStore) SetStatus(ctx context.Context, matchID, expect, next, respondedAt string) (*models.MatchRequest, error) {
	attrs, err := s.Dynamo.UpdateItemConditional(ctx,
		models.MatchRequestsTable,
		StringKey("matchId", matchID),
		"SET #status = :next, respondedAt = :respondedAt",
		"#status = :expect",
		map[string]types.AttributeValue{
			":next":        &types.AttributeValueMemberS{Value: next},
			":expect":      &types.AttributeValueMemberS{Value: expect},
			":respondedAt": &types.AttributeValueMemberS{Value: respondedAt},
		},
		map[string]string{"#status": "status"},
	)
	if err != nil {
		return nil, err
	}
	var match models.MatchRequest
	if err := attributevalue.UnmarshalMap(attrs, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match request: %w", err)
	}
	return &match, nil
}

func (s *DynamoMatchStore) AcceptWithSession(ctx context.Context, matchID, respondedAt string, session *models.Session) error {
	sessionItem, err := attributevalue.MarshalMap(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{
			Update: &types.Update{
				TableName:           aws.String(models.MatchRequestsTable),
				Key:                 StringKey("matchId", matchID),
				UpdateExpression:    aws.String("SET #status = :accepted, respondedAt = :respondedAt"),
				ConditionExpression: aws.String("#status = :pending"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":accepted":    &types.AttributeValueMemberS{Value: models.MatchStatusAccepted},
					":pending":     &types.AttributeValueMemberS{Value: models.MatchStatusPending},
					":respondedAt": &types.AttributeValueMemberS{Value: respondedAt},
				},
			},
		},
		{
			Put: &types.Put{
				TableName:           aws.String(models.SessionsTable),
				Item:                sessionItem,
				ConditionExpression: aws.String("attribute_not_exists(matchId)"),
			},
		},
	})
}

func (s *DynamoMatchStore) ListByUser(ctx context.Context, userID string) ([]models.MatchRequest, error) {
	values := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}

	sent, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MatchRequestsTable,
		models.MatchRequestsByUserIndex, "requesterId = :userId", values, nil, 0)
	if err != nil {
		return nil, err
	}
	received, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MatchRequestsTable,
		models.MatchRequestsByReceiverIndex, "receiverId = :userId", values, nil, 0)
	if err != nil {
		return nil, err
	}

	var matches []models.MatchRequest
	if err := attributevalue.UnmarshalListOfMaps(append(sent, received...), &matches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match requests: %w", err)
	}
	return matches, nil
}
