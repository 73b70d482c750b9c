package services

import (
	"context"
	"fmt"
	"sort"

	"helpmate_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoNotificationStore persists notifications in the Notifications table.
type DynamoNotificationStore struct {
	Dynamo *DynamoService
}

func (s *DynamoNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	return s.Dynamo.PutItem(ctx, models.NotificationsTable, n)
}

func (s *DynamoNotificationStore) Get(ctx context.Context, notificationID string) (*models.Notification, error) {
	item, err := s.Dynamo.GetItem(ctx, models.NotificationsTable, StringKey("notificationId", notificationID))
	if err != nil {
		return nil, err
	}
	var notification models.Notification
	if err := attributevalue.UnmarshalMap(item, &notification); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return &notification, nil
}

func (s *DynamoNotificationStore) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.NotificationsTable,
		models.NotificationsByUserIndex,
		"userId = :userId",
		map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
		nil, 0)
	if err != nil {
		return nil, err
	}

	var notifications []models.Notification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notifications: %w", err)
	}

	// Newest first for list views
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt > notifications[j].CreatedAt
	})
	return notifications, nil
}

func (s *DynamoNotificationStore) MarkRead(ctx context.Context, notificationID string) (*models.Notification, error) {
	attrs, err := s.Dynamo.UpdateItemConditional(ctx,
		models.NotificationsTable,
		StringKey("notificationId", notificationID),
		"SET isRead = :true",
		"attribute_exists(notificationId)",
		map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		},
		nil,
	)
	if err != nil {
		return nil, err
	}
	var notification models.Notification
	if err := attributevalue.UnmarshalMap(attrs, &notification); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return &notification, nil
}
