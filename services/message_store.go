package services

import (
	"context"
	"fmt"
	"sort"

	"helpmate_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoMessageStore persists chat messages in the Messages table, keyed
// (sessionId, messageId).
type DynamoMessageStore struct {
	Dynamo *DynamoService
}

func (s *DynamoMessageStore) Create(ctx context.Context, m *models.ChatMessage) error {
	return s.Dynamo.PutItemIfAbsent(ctx, models.MessagesTable, "messageId", m)
}

func (s *DynamoMessageStore) Get(ctx context.Context, sessionID, messageID string) (*models.ChatMessage, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MessagesTable, map[string]types.AttributeValue{
		"sessionId": &types.AttributeValueMemberS{Value: sessionID},
		"messageId": &types.AttributeValueMemberS{Value: messageID},
	})
	if err != nil {
		return nil, err
	}
	var message models.ChatMessage
	if err := attributevalue.UnmarshalMap(item, &message); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &message, nil
}

func (s *DynamoMessageStore) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable,
		"sessionId = :sessionId",
		map[string]types.AttributeValue{
			":sessionId": &types.AttributeValueMemberS{Value: sessionID},
		},
		nil, int32(limit))
	if err != nil {
		return nil, err
	}

	var messages []models.ChatMessage
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}

	// The sort key is messageId, so order by timestamp here (oldest first).
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})
	return messages, nil
}
