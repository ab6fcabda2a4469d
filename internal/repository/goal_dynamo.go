package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kawafuchieirin/team-workspace/internal/model"
)

type goalDynamoRepository struct {
	client DynamoAPI
	table  string
}

func NewGoalDynamoRepository(client DynamoAPI, table string) GoalRepository {
	return &goalDynamoRepository{client: client, table: table}
}

func (r *goalDynamoRepository) Create(ctx context.Context, goal *model.Goal) error {
	item, err := attributevalue.MarshalMap(goal)
	if err != nil {
		return fmt.Errorf("failed to marshal goal: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put goal: %w", err)
	}

	return nil
}

func (r *goalDynamoRepository) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	resp, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       itemKey("goal_id", userID, goalID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	if resp.Item == nil {
		return nil, ErrGoalNotFound
	}

	goal := &model.Goal{}
	if err := attributevalue.UnmarshalMap(resp.Item, goal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal goal: %w", err)
	}

	return goal, nil
}

func (r *goalDynamoRepository) Goals(ctx context.Context, userID, status string) ([]*model.Goal, error) {
	cond := expression.Key("user_id").Equal(expression.Value(userID))
	index := ""
	if status != "" {
		cond = cond.And(expression.Key("status").Equal(expression.Value(status)))
		index = GoalStatusIndex
	}

	input, err := keyQuery(r.table, index, cond)
	if err != nil {
		return nil, err
	}

	goals, err := queryAll[*model.Goal](ctx, r.client, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}

	sortGoalsByCreated(goals)
	return goals, nil
}

func (r *goalDynamoRepository) Update(ctx context.Context, userID, goalID string, u model.GoalUpdate, now time.Time) (*model.Goal, error) {
	expr, err := setExpression("goal_id", u.Fields(), now)
	if err != nil {
		return nil, fmt.Errorf("failed to build goal update: %w", err)
	}

	resp, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       itemKey("goal_id", userID, goalID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	goal := &model.Goal{}
	if err := attributevalue.UnmarshalMap(resp.Attributes, goal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal goal: %w", err)
	}

	return goal, nil
}

func (r *goalDynamoRepository) Delete(ctx context.Context, userID, goalID string) (bool, error) {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.table),
		Key:                 itemKey("goal_id", userID, goalID),
		ConditionExpression: aws.String("attribute_exists(goal_id)"),
	})
	if isConditionalCheckFailed(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete goal: %w", err)
	}

	return true, nil
}
