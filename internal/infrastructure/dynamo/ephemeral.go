package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// EphemeralStore keeps short-lived keys (OTPs, verification tokens) in a table
// with a TTL attribute. DynamoDB deletes expired items lazily, so expiry is
// also checked on every read.
type EphemeralStore struct {
	client    API
	tableName string
	now       func() time.Time
}

func NewEphemeralStore(client API, tableName string) *EphemeralStore {
	return &EphemeralStore{client: client, tableName: tableName, now: time.Now}
}

func (s *EphemeralStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	expires := s.now().Add(ttl).Unix()
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			fieldKey:       &types.AttributeValueMemberS{Value: key},
			fieldValue:     &types.AttributeValueMemberS{Value: value},
			fieldExpiresAt: &types.AttributeValueMemberN{Value: strconv.FormatInt(expires, 10)},
		},
	})
	if err != nil {
		return fmt.Errorf("put ephemeral key: %w", err)
	}
	return nil
}

func (s *EphemeralStore) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            strKey(fieldKey, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("get ephemeral key: %w", err)
	}
	v, ok := s.live(out.Item)
	return v, ok, nil
}

func (s *EphemeralStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey(fieldKey, key),
	})
	if err != nil {
		return fmt.Errorf("delete ephemeral key: %w", err)
	}
	return nil
}

// Take deletes the item and returns what was there. DeleteItem is atomic per
// item, so two concurrent takers never both see the value.
func (s *EphemeralStore) Take(ctx context.Context, key string) (string, bool, error) {
	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.tableName),
		Key:          strKey(fieldKey, key),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return "", false, fmt.Errorf("take ephemeral key: %w", err)
	}
	v, ok := s.live(out.Attributes)
	return v, ok, nil
}

// CompareAndDelete deletes the item only if it is live and holds value.
func (s *EphemeralStore) CompareAndDelete(ctx context.Context, key, value string) (bool, error) {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 strKey(fieldKey, key),
		ConditionExpression: aws.String("#v = :v AND #e > :now"),
		ExpressionAttributeNames: map[string]string{
			"#v": fieldValue,
			"#e": fieldExpiresAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v":   &types.AttributeValueMemberS{Value: value},
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(s.now().Unix(), 10)},
		},
	})
	if isConditionFailed(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare-and-delete ephemeral key: %w", err)
	}
	return true, nil
}

func (s *EphemeralStore) live(item map[string]types.AttributeValue) (string, bool) {
	if item == nil {
		return "", false
	}
	exp, ok := item[fieldExpiresAt].(*types.AttributeValueMemberN)
	if !ok {
		return "", false
	}
	ts, err := strconv.ParseInt(exp.Value, 10, 64)
	if err != nil || s.now().Unix() >= ts {
		return "", false
	}
	val, ok := item[fieldValue].(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return val.Value, true
}
