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

type recordDynamoRepository struct {
	client DynamoAPI
	table  string
}

func NewRecordDynamoRepository(client DynamoAPI, table string) RecordRepository {
	return &recordDynamoRepository{client: client, table: table}
}

func (r *recordDynamoRepository) Create(ctx context.Context, record *model.StudyRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put record: %w", err)
	}

	return nil
}

func (r *recordDynamoRepository) ByID(ctx context.Context, userID, recordID string) (*model.StudyRecord, error) {
	resp, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       itemKey("record_id", userID, recordID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	if resp.Item == nil {
		return nil, ErrRecordNotFound
	}

	record := &model.StudyRecord{}
	if err := attributevalue.UnmarshalMap(resp.Item, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return record, nil
}

func (r *recordDynamoRepository) Records(ctx context.Context, userID string, filter model.RecordFilter) ([]*model.StudyRecord, error) {
	cond := expression.Key("user_id").Equal(expression.Value(userID))
	index := ""
	if filter.HasDateRange() {
		date := expression.Key("study_date")
		switch {
		case filter.DateFrom != "" && filter.DateTo != "":
			cond = cond.And(date.Between(expression.Value(filter.DateFrom), expression.Value(filter.DateTo)))
		case filter.DateFrom != "":
			cond = cond.And(date.GreaterThanEqual(expression.Value(filter.DateFrom)))
		default:
			cond = cond.And(date.LessThanEqual(expression.Value(filter.DateTo)))
		}
		index = RecordDateIndex
	}

	input, err := keyQuery(r.table, index, cond)
	if err != nil {
		return nil, err
	}

	records, err := queryAll[*model.StudyRecord](ctx, r.client, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	records = filterSubject(records, filter.Subject)
	sortRecordsByDate(records)
	return records, nil
}

func (r *recordDynamoRepository) Update(ctx context.Context, userID, recordID string, u model.RecordUpdate, now time.Time) (*model.StudyRecord, error) {
	expr, err := setExpression("record_id", u.Fields(), now)
	if err != nil {
		return nil, fmt.Errorf("failed to build record update: %w", err)
	}

	resp, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       itemKey("record_id", userID, recordID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	record := &model.StudyRecord{}
	if err := attributevalue.UnmarshalMap(resp.Attributes, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return record, nil
}

func (r *recordDynamoRepository) Delete(ctx context.Context, userID, recordID string) (bool, error) {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.table),
		Key:                 itemKey("record_id", userID, recordID),
		ConditionExpression: aws.String("attribute_exists(record_id)"),
	})
	if isConditionalCheckFailed(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}

	return true, nil
}
