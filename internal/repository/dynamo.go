package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kawafuchieirin/team-workspace/internal/model"
)

const (
	// GoalStatusIndex is the GSI of the goals table keyed (user_id, status).
	GoalStatusIndex = "status-index"
	// RecordDateIndex is the GSI of the records table keyed (user_id, study_date).
	RecordDateIndex = "date-index"
)

// DynamoAPI is the subset of *dynamodb.Client the repositories use.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// GoalTableSchema describes the goals table and its status index.
func GoalTableSchema(name string) *dynamodb.CreateTableInput {
	return tableSchema(name, "goal_id", GoalStatusIndex, "status")
}

// RecordTableSchema describes the records table and its date index.
func RecordTableSchema(name string) *dynamodb.CreateTableInput {
	return tableSchema(name, "record_id", RecordDateIndex, "study_date")
}

func tableSchema(name, idAttr, index, indexAttr string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("user_id"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(idAttr), KeyType: types.KeyTypeRange},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("user_id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(idAttr), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(indexAttr), AttributeType: types.ScalarAttributeTypeS},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(index),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("user_id"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String(indexAttr), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}

func itemKey(idAttr, userID, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: userID},
		idAttr:    &types.AttributeValueMemberS{Value: id},
	}
}

// queryAll follows every page of a query. Results are never truncated at the 1 MB page limit.
// An empty result is a non-nil empty slice.
func queryAll[T any](ctx context.Context, client DynamoAPI, input *dynamodb.QueryInput) ([]T, error) {
	items := []T{}
	paginator := dynamodb.NewQueryPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		items = append(items, batch...)
	}
	return items, nil
}

func keyQuery(table, index string, cond expression.KeyConditionBuilder) (*dynamodb.QueryInput, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build key condition: %w", err)
	}
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if index != "" {
		input.IndexName = aws.String(index)
	}
	return input, nil
}

// setExpression builds "SET updated_at = ..., <fields>" guarded by the item existing.
func setExpression(idAttr string, fields []model.Field, now time.Time) (expression.Expression, error) {
	update := expression.Set(expression.Name("updated_at"), expression.Value(now))
	for _, f := range fields {
		update = update.Set(expression.Name(f.Name), expression.Value(f.Value))
	}
	return expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name(idAttr))).
		Build()
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
