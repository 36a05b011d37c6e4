package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/grovetools/core/logging"
	"github.com/grovetools/recfix/internal/event"
	"github.com/sirupsen/logrus"
)

// DynamoAPI is the subset of the DynamoDB client the store uses.
type DynamoAPI interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoStore is a Store backed by a DynamoDB table.
type DynamoStore struct {
	client DynamoAPI
	table  string
	region string
	logger *logrus.Entry
}

// NewDynamoStore connects to table in region using the default AWS
// credential chain. A non-empty endpoint points the client at another
// DynamoDB-compatible service, such as DynamoDB Local.
func NewDynamoStore(ctx context.Context, region, table, endpoint string) (*DynamoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return NewDynamoStoreWithClient(client, region, table), nil
}

// NewDynamoStoreWithClient wraps an existing client.
func NewDynamoStoreWithClient(client DynamoAPI, region, table string) *DynamoStore {
	return &DynamoStore{
		client: client,
		table:  table,
		region: region,
		logger: logging.NewLogger("recfix-store-dynamodb"),
	}
}

// Name implements Store.
func (s *DynamoStore) Name() string {
	return fmt.Sprintf("dynamodb:%s/%s", s.region, s.table)
}

// Scan reads every page of the table.
func (s *DynamoStore) Scan(ctx context.Context) ([]Item, error) {
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	var items []Item
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", s.table, err)
		}
		pages++

		decoded, err := decodeItems(page.Items)
		if err != nil {
			return nil, err
		}
		items = append(items, decoded...)
	}

	s.logger.WithField("table", s.table).
		WithField("pages", pages).
		WithField("items", len(items)).
		Debug("Scanned table")
	return items, nil
}

// Sample reads at most one item.
func (s *DynamoStore) Sample(ctx context.Context) (Item, bool, error) {
	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
		Limit:     aws.Int32(1),
	})
	if err != nil {
		return nil, false, fmt.Errorf("scanning %s: %w", s.table, err)
	}
	if len(out.Items) == 0 {
		return nil, false, nil
	}

	items, err := decodeItems(out.Items[:1])
	if err != nil {
		return nil, false, err
	}
	return items[0], true, nil
}

// Put writes rec with PutItem, which replaces an item with the same key.
func (s *DynamoStore) Put(ctx context.Context, rec event.Record) error {
	av, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", rec.ID, err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("writing record %s: %w", rec.ID, err)
	}

	s.logger.WithField("table", s.table).WithField("id", rec.ID).Debug("Put item")
	return nil
}

// Delete removes the item keyed on id.
func (s *DynamoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			event.FieldID: &types.AttributeValueMemberS{Value: id},
		},
	}); err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}

	s.logger.WithField("table", s.table).WithField("id", id).Debug("Deleted item")
	return nil
}

func decodeItems(raw []map[string]types.AttributeValue) ([]Item, error) {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		var item map[string]any
		if err := attributevalue.UnmarshalMap(r, &item); err != nil {
			return nil, fmt.Errorf("decoding item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}
