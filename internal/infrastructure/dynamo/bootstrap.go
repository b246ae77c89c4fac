package dynamo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jobportal-auth/internal/config"
)

// TableAdmin is the control-plane subset of the DynamoDB client used at startup.
type TableAdmin interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	UpdateTimeToLive(ctx context.Context, in *dynamodb.UpdateTimeToLiveInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateTimeToLiveOutput, error)
}

// tableSpec describes a table keyed by a single string hash key.
type tableSpec struct {
	name    string
	hashKey string
	// indexes maps a GSI name to its string hash key.
	indexes map[string]string
	ttlAttr string
}

// Bootstrap creates missing tables. Existing tables are left alone, so it is
// safe on every start. The ephemeral table is only created when the dynamo
// ephemeral backend is selected.
func Bootstrap(ctx context.Context, admin TableAdmin, tables config.DynamoTables, withEphemeral bool) {
	specs := []tableSpec{{
		name:    tables.Users,
		hashKey: fieldUserID,
		indexes: map[string]string{emailIndex: fieldEmail},
	}}
	if withEphemeral {
		specs = append(specs, tableSpec{name: tables.Ephemeral, hashKey: fieldKey, ttlAttr: fieldExpiresAt})
	}
	for _, s := range specs {
		ensureTable(ctx, admin, s)
	}
}

func ensureTable(ctx context.Context, admin TableAdmin, s tableSpec) {
	_, err := admin.CreateTable(ctx, s.createInput())
	var inUse *types.ResourceInUseException
	switch {
	case errors.As(err, &inUse):
	case err != nil:
		slog.Warn("could not create table", "table", s.name, "err", err)
		return
	default:
		slog.Info("created table", "table", s.name)
	}

	if s.ttlAttr == "" {
		return
	}
	_, err = admin.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
		TableName: aws.String(s.name),
		TimeToLiveSpecification: &types.TimeToLiveSpecification{
			Enabled:       aws.Bool(true),
			AttributeName: aws.String(s.ttlAttr),
		},
	})
	if err != nil {
		// Re-enabling an active TTL fails with a ValidationException.
		slog.Debug("update ttl", "table", s.name, "err", err)
	}
}

func (s tableSpec) createInput() *dynamodb.CreateTableInput {
	in := &dynamodb.CreateTableInput{
		TableName:            aws.String(s.name),
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{stringAttr(s.hashKey)},
		KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String(s.hashKey), KeyType: types.KeyTypeHash}},
	}
	for name, key := range s.indexes {
		in.AttributeDefinitions = append(in.AttributeDefinitions, stringAttr(key))
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName:  aws.String(name),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String(key), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	return in
}

func stringAttr(name string) types.AttributeDefinition {
	return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS}
}
