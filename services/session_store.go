package services

import (
	"context"
	"fmt"
	"strings"

	"helpmate_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoSessionStore persists sessions in the Sessions table. The table is
// keyed by matchId, which makes the one-session-per-match invariant a plain
// conditional put; sessionId lookups go through the sessionId GSI.
type DynamoSessionStore struct {
	Dynamo *DynamoService
}

func (s *DynamoSessionStore) Create(ctx context.Context, sess *models.Session) error {
	return s.Dynamo.PutItemIfAbsent(ctx, models.SessionsTable, "matchId", sess)
}

func (s *DynamoSessionStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.SessionsTable,
		models.SessionsBySessionIndex,
		"sessionId = :sessionId",
		map[string]types.AttributeValue{
			":sessionId": &types.AttributeValueMemberS{Value: sessionID},
		},
		nil, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	var session models.Session
	if err := attributevalue.UnmarshalMap(items[0], &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *DynamoSessionStore) GetByMatch(ctx context.Context, matchID string) (*models.Session, error) {
	item, err := s.Dynamo.GetItem(ctx, models.SessionsTable, StringKey("matchId", matchID))
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := attributevalue.UnmarshalMap(item, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *DynamoSessionStore) SetStatus(ctx context.Context, matchID, expect, next string, stamps SessionStamps) (*models.Session, error) {
	sets := []string{"#status = :next"}
	values := map[string]types.AttributeValue{
		":next":   &types.AttributeValueMemberS{Value: next},
		":expect": &types.AttributeValueMemberS{Value: expect},
	}
	if stamps.UpdatedAt != "" {
		sets = append(sets, "updatedAt = :updatedAt")
		values[":updatedAt"] = &types.AttributeValueMemberS{Value: stamps.UpdatedAt}
	}
	if stamps.CheckInTime != "" {
		sets = append(sets, "checkInTime = :checkIn")
		values[":checkIn"] = &types.AttributeValueMemberS{Value: stamps.CheckInTime}
	}
	if stamps.CheckOutTime != "" {
		sets = append(sets, "checkOutTime = :checkOut")
		values[":checkOut"] = &types.AttributeValueMemberS{Value: stamps.CheckOutTime}
	}

	attrs, err := s.Dynamo.UpdateItemConditional(ctx,
		models.SessionsTable,
		StringKey("matchId", matchID),
		"SET "+strings.Join(sets, ", "),
		"#status = :expect",
		values,
		map[string]string{"#status": "status"},
	)
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := attributevalue.UnmarshalMap(attrs, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}
