/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// QueryParams holds the parameters for a DynamoDB query.
//
// KeyConditionExpression and ExpressionAttributeValues are required;
// the remaining fields are optional refinements. Most callers build
// QueryParams through Query rather than by hand.
type QueryParams struct {
	TableName                 string
	KeyConditionExpression    string
	ExpressionAttributeValues map[string]types.AttributeValue
	FilterExpression          *string
	IndexName                 *string
	Limit                     *int32
	ExclusiveStartKey         map[string]types.AttributeValue
	ScanIndexForward          *bool
}
