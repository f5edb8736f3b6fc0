/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dispatch/codec"
)

// IndexConfig holds the configuration for a Global Secondary Index.
type IndexConfig struct {
	// IndexName is the actual GSI name in DynamoDB (e.g., "GSI1")
	IndexName string
	// PartitionKeyName is the partition key attribute name in the GSI
	PartitionKeyName string
	// SortKeyName is the sort key attribute name in the GSI
	SortKeyName string
}

// DefaultIndexes holds conventional single-table index layouts. TypeIndex
// keys events by their wire name, so one query can pull every event of a
// single type across all partitions.
var DefaultIndexes = map[string]IndexConfig{
	"GSI1": {
		IndexName:        "GSI1",
		PartitionKeyName: "GSI1PK",
		SortKeyName:      "GSI1SK",
	},
	"TypeIndex": {
		IndexName:        "TypeIndex",
		PartitionKeyName: TypeAttribute,
		SortKeyName:      "SK",
	},
}

// IndexFor returns the configuration for a named index.
func IndexFor(name string) (IndexConfig, bool) {
	config, ok := DefaultIndexes[name]
	return config, ok
}

// Query provides a fluent interface for building event queries.
//
// A query targets the table's main PK/SK keys unless OnIndex switches it
// to a GSI. Sort-key refinements replace one another; the last call wins.
type Query struct {
	table      string
	index      *IndexConfig
	pkName     string
	skName     string
	pkValue    string
	skOperator string // "", "=", "begins_with", ">", "<", ">=", "<=", "BETWEEN"
	skValue    string
	skUpper    string
	filters    []string
	filterVals map[string]types.AttributeValue
	limit      *int32
	forward    *bool
}

// NewQuery creates a query builder for the given table.
func NewQuery(table string) *Query {
	return &Query{
		table:      table,
		pkName:     "PK",
		skName:     "SK",
		filterVals: make(map[string]types.AttributeValue),
	}
}

// OnIndex redirects the query to a Global Secondary Index.
func (q *Query) OnIndex(cfg IndexConfig) *Query {
	q.index = &cfg
	q.pkName = cfg.PartitionKeyName
	q.skName = cfg.SortKeyName
	return q
}

// WithPartitionKey sets the partition key value.
func (q *Query) WithPartitionKey(value string) *Query {
	q.pkValue = value
	return q
}

// WithSortKey sets the sort key value with the equals operator.
func (q *Query) WithSortKey(value string) *Query {
	q.skValue = value
	q.skOperator = "="
	return q
}

// WithSortKeyPrefix sets the sort key to use the begins_with operator.
func (q *Query) WithSortKeyPrefix(prefix string) *Query {
	q.skValue = prefix
	q.skOperator = "begins_with"
	return q
}

// WithSortKeyGreaterThan sets the sort key to use the > operator.
func (q *Query) WithSortKeyGreaterThan(value string) *Query {
	q.skValue = value
	q.skOperator = ">"
	return q
}

// WithSortKeyLessThan sets the sort key to use the < operator.
func (q *Query) WithSortKeyLessThan(value string) *Query {
	q.skValue = value
	q.skOperator = "<"
	return q
}

// WithSortKeyBetween sets the sort key to use the BETWEEN operator.
func (q *Query) WithSortKeyBetween(start, end string) *Query {
	q.skValue = start
	q.skUpper = end
	q.skOperator = "BETWEEN"
	return q
}

// WithFilter adds a filter expression applied after the key condition.
func (q *Query) WithFilter(expression string, values map[string]types.AttributeValue) *Query {
	q.filters = append(q.filters, expression)
	for k, v := range values {
		q.filterVals[k] = v
	}
	return q
}

// WithLimit caps the number of items per page.
func (q *Query) WithLimit(limit int32) *Query {
	q.limit = aws.Int32(limit)
	return q
}

// After keeps events whose sort key is later than t. Sort keys are assumed
// to hold RFC3339 timestamps, which sort lexicographically in time order.
func (q *Query) After(t time.Time) *Query {
	return q.WithSortKeyGreaterThan(t.Format(time.RFC3339))
}

// Before keeps events whose sort key is earlier than t.
func (q *Query) Before(t time.Time) *Query {
	return q.WithSortKeyLessThan(t.Format(time.RFC3339))
}

// Between keeps events whose sort key falls between start and end.
func (q *Query) Between(start, end time.Time) *Query {
	return q.WithSortKeyBetween(start.Format(time.RFC3339), end.Format(time.RFC3339))
}

// InLast keeps events from the trailing window d.
func (q *Query) InLast(d time.Duration) *Query {
	return q.After(time.Now().Add(-d))
}

// Latest returns results in descending sort order (newest first).
func (q *Query) Latest() *Query {
	q.forward = aws.Bool(false)
	return q
}

// Oldest returns results in ascending sort order (oldest first).
func (q *Query) Oldest() *Query {
	q.forward = aws.Bool(true)
	return q
}

// Build constructs the final query parameters.
func (q *Query) Build() (*QueryParams, error) {
	if q.table == "" {
		return nil, fmt.Errorf("table name is required")
	}
	if q.pkValue == "" {
		return nil, fmt.Errorf("partition key value is required")
	}

	exprVals := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: q.pkValue},
	}
	keyConditions := []string{fmt.Sprintf("%s = :pk", q.pkName)}

	if q.skOperator != "" {
		switch q.skOperator {
		case "begins_with":
			keyConditions = append(keyConditions, fmt.Sprintf("begins_with(%s, :sk)", q.skName))
		case "BETWEEN":
			keyConditions = append(keyConditions, fmt.Sprintf("%s BETWEEN :sk AND :sk2", q.skName))
			exprVals[":sk2"] = &types.AttributeValueMemberS{Value: q.skUpper}
		default:
			keyConditions = append(keyConditions, fmt.Sprintf("%s %s :sk", q.skName, q.skOperator))
		}
		exprVals[":sk"] = &types.AttributeValueMemberS{Value: q.skValue}
	}

	params := &QueryParams{
		TableName:                 q.table,
		KeyConditionExpression:    strings.Join(keyConditions, " AND "),
		ExpressionAttributeValues: exprVals,
		Limit:                     q.limit,
		ScanIndexForward:          q.forward,
	}

	if q.index != nil {
		params.IndexName = aws.String(q.index.IndexName)
	}

	if len(q.filters) > 0 {
		params.FilterExpression = aws.String(strings.Join(q.filters, " AND "))
		for k, v := range q.filterVals {
			exprVals[k] = v
		}
	}

	return params, nil
}

// Feed builds the query and wraps it in a Feed that decodes items with the
// given codec table.
func (q *Query) Feed(client QueryAPI, codecs *codec.Table) (*Feed, error) {
	params, err := q.Build()
	if err != nil {
		return nil, err
	}
	return NewFeed(client, codecs, params), nil
}
