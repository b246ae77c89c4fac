package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jobportal-auth/internal/domain"
)

// UserRepo provides typed DynamoDB operations for the users table.
// Email uniqueness is held by a marker item (user_id = "email#<address>")
// written in the same transaction as the user.
type UserRepo struct {
	client    API
	tableName string
	now       func() time.Time
}

func NewUserRepo(client API, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName, now: time.Now}
}

// Create stores a new user. It returns domain.ErrConflict if the email is taken.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	marker := map[string]types.AttributeValue{
		fieldUserID:  &types.AttributeValueMemberS{Value: emailMarkerPrefix + u.Email},
		fieldOwnerID: &types.AttributeValueMemberS{Value: u.UserID},
	}
	notExists := aws.String("attribute_not_exists(" + fieldUserID + ")")

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: item, ConditionExpression: notExists}},
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: marker, ConditionExpression: notExists}},
		},
	})
	if isTxCanceled(err) {
		return fmt.Errorf("email %s: %w", u.Email, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldUserID, userID),
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}

// GetByEmail looks a user up through the email GSI. email must already be normalized.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(emailIndex),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": fieldEmail},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: email}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}

// Update applies a set of attribute changes and returns the updated user.
func (r *UserRepo) Update(ctx context.Context, userID string, updates map[string]interface{}) (*domain.User, error) {
	changes := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		changes[k] = v
	}
	changes[fieldUpdatedAt] = r.now().UTC()

	ue, err := buildUpdateExpr(changes)
	if err != nil {
		return nil, err
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldUserID, userID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(" + fieldUserID + ")"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionFailed(err) {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Attributes, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) SetPassword(ctx context.Context, userID, hash string) error {
	_, err := r.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: hash})
	return err
}

// SetOTP stores a record-resident code for the email verification flow.
func (r *UserRepo) SetOTP(ctx context.Context, userID, otp string, createdAt time.Time) error {
	_, err := r.Update(ctx, userID, map[string]interface{}{
		fieldOTP:          otp,
		fieldOTPCreatedAt: createdAt.UTC(),
	})
	return err
}

// SetVerified marks the user verified and clears the stored code, but only if
// the stored code still equals otp. A lost race returns domain.ErrConflict.
func (r *UserRepo) SetVerified(ctx context.Context, userID, otp string) error {
	now, err := attributevalue.Marshal(r.now().UTC())
	if err != nil {
		return fmt.Errorf("marshal timestamp: %w", err)
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey(fieldUserID, userID),
		UpdateExpression:    aws.String("SET #v = :t, #u = :now REMOVE #o, #oc"),
		ConditionExpression: aws.String("#o = :otp"),
		ExpressionAttributeNames: map[string]string{
			"#v":  fieldIsVerified,
			"#u":  fieldUpdatedAt,
			"#o":  fieldOTP,
			"#oc": fieldOTPCreatedAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":   &types.AttributeValueMemberBOOL{Value: true},
			":now": now,
			":otp": &types.AttributeValueMemberS{Value: otp},
		},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("verify user %s: %w", userID, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("verify user: %w", err)
	}
	return nil
}
