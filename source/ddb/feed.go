/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dispatch/codec"
	"github.com/suparena/dispatch/source"
)

// TypeAttribute is the item attribute that carries an event's wire name.
// Publishers stamp it on write; feeds read it to pick a decoder and strip
// it before the payload reaches the decoder.
const TypeAttribute = "EventType"

// Feed streams tagged events out of a DynamoDB table.
//
// Each item is routed through the codec table by its TypeAttribute value,
// so one query can yield events of many different Go types.
type Feed struct {
	client QueryAPI
	codecs *codec.Table
	params *QueryParams
}

// NewFeed constructs a Feed that runs the given query and decodes items
// with the given codec table.
func NewFeed(client QueryAPI, codecs *codec.Table, params *QueryParams) *Feed {
	return &Feed{
		client: client,
		codecs: codecs,
		params: params,
	}
}

// Events runs the query and emits one Result per item until the query is
// exhausted or ctx is cancelled. The returned channel is closed when the
// feed stops. Setup problems are returned immediately; per-item problems
// ride Result.Err.
func (f *Feed) Events(ctx context.Context, opts ...source.Option) (<-chan source.Result, error) {
	if f.client == nil {
		return nil, errors.New("ddb feed has no client")
	}
	if f.codecs == nil {
		return nil, errors.New("ddb feed has no codec table")
	}
	if f.params == nil {
		return nil, errors.New("ddb feed has no query params")
	}
	if f.params.TableName == "" {
		return nil, errors.New("ddb feed has no table name")
	}
	if f.params.KeyConditionExpression == "" {
		return nil, errors.New("ddb feed has no key condition")
	}

	options := source.ApplyOptions(opts...)
	out := make(chan source.Result, options.BufferSize)

	go f.pump(ctx, options, out)

	return out, nil
}

// pump pages through the query and emits decoded results.
func (f *Feed) pump(ctx context.Context, options source.Options, out chan<- source.Result) {
	defer close(out)

	var index int64
	var page int
	startTime := time.Now()
	var pumpErrors []error

	reportProgress := func() {
		if options.ProgressHandler == nil {
			return
		}
		progress := source.Progress{
			ItemsProcessed: index,
			PagesProcessed: page,
			Errors:         pumpErrors,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	input := &sdk.QueryInput{
		TableName:                 &f.params.TableName,
		KeyConditionExpression:    &f.params.KeyConditionExpression,
		ExpressionAttributeValues: f.params.ExpressionAttributeValues,
		FilterExpression:          f.params.FilterExpression,
		IndexName:                 f.params.IndexName,
		Limit:                     aws.Int32(options.PageSize),
		ScanIndexForward:          f.params.ScanIndexForward,
	}
	if f.params.Limit != nil {
		input.Limit = f.params.Limit
	}

	lastKey := f.params.ExclusiveStartKey

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if lastKey != nil {
			input.ExclusiveStartKey = lastKey
		}

		qout, err := f.queryWithRetry(ctx, input, options)
		if err != nil {
			// The error handler may elect to keep paging.
			if options.ErrorHandler != nil && options.ErrorHandler(err) {
				pumpErrors = append(pumpErrors, err)
				continue
			}
			result := source.Result{
				Err:  fmt.Errorf("query failed: %w", err),
				Meta: source.Meta{Index: index, Page: page, Timestamp: time.Now()},
			}
			select {
			case <-ctx.Done():
			case out <- result:
			}
			return
		}

		page++

		for _, item := range qout.Items {
			result := f.decodeItem(item, index, page)
			index++

			select {
			case <-ctx.Done():
				return
			case out <- result:
			}

			if result.Err != nil {
				pumpErrors = append(pumpErrors, result.Err)
			}
		}

		reportProgress()

		if len(qout.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = qout.LastEvaluatedKey
	}

	reportProgress()
}

// queryWithRetry executes a query, retrying throttle-class errors with a
// linear backoff.
func (f *Feed) queryWithRetry(ctx context.Context, input *sdk.QueryInput, options source.Options) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := f.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}

// decodeItem converts a raw DynamoDB item into a tagged Result.
func (f *Feed) decodeItem(item map[string]types.AttributeValue, index int64, page int) source.Result {
	meta := source.Meta{
		Index:     index,
		Page:      page,
		Timestamp: time.Now(),
	}

	attr, ok := item[TypeAttribute]
	if !ok {
		return source.Result{
			Err:  fmt.Errorf("item %d has no %s attribute", index, TypeAttribute),
			Meta: meta,
		}
	}

	var name string
	if err := attributevalue.Unmarshal(attr, &name); err != nil {
		return source.Result{
			Err:  fmt.Errorf("failed to unmarshal %s attribute: %w", TypeAttribute, err),
			Meta: meta,
		}
	}

	// Strip the routing attribute so decoders see only the payload.
	payload := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		if k == TypeAttribute {
			continue
		}
		payload[k] = v
	}

	value, err := f.codecs.DecodeItem(name, payload)
	if err != nil {
		return source.Result{WireName: name, Err: err, Meta: meta}
	}

	return source.Result{Value: value, WireName: name, Meta: meta}
}

// isRetryableError determines if a DynamoDB error is worth retrying.
func isRetryableError(err error) bool {
	switch err.(type) {
	case *types.ProvisionedThroughputExceededException:
		return true
	case *types.RequestLimitExceeded:
		return true
	case *types.InternalServerError:
		return true
	}

	if awsErr, ok := err.(interface{ IsRetryable() bool }); ok {
		return awsErr.IsRetryable()
	}

	return false
}
