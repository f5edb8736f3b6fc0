/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dispatch/codec"
	"github.com/suparena/dispatch/tag"
)

// Publisher writes tagged events into a DynamoDB table.
//
// Every published item carries the event's wire name in TypeAttribute and
// the key attributes produced by expanding the publisher's KeyMap against
// the event, so a Feed over the same table can route items back through
// the codec table.
type Publisher struct {
	client PutAPI
	table  string
	codecs *codec.Table
	keys   KeyMap
}

// NewPublisher constructs a Publisher for the given table. The codec table
// supplies wire names; keys supplies the PK/SK templates.
func NewPublisher(client PutAPI, table string, codecs *codec.Table, keys KeyMap) *Publisher {
	return &Publisher{
		client: client,
		table:  table,
		codecs: codecs,
		keys:   keys,
	}
}

// Publish writes one event. The tag must have a binding in the publisher's
// codec table; its wire name becomes the item's TypeAttribute value and is
// substituted for the {EventType} macro in key templates, so events of
// different types can share a partition without colliding.
//
// Publish is a package-level function because Go methods cannot introduce
// type parameters.
func Publish[T any](ctx context.Context, p *Publisher, tg tag.Tag[T], event T) error {
	name, ok := p.codecs.NameFor(tg.ID())
	if !ok {
		return fmt.Errorf("no codec binding for %s", tg)
	}

	av, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	keys := make(KeyMap, len(p.keys))
	for attr, template := range p.keys {
		keys[attr] = strings.ReplaceAll(template, "{"+TypeAttribute+"}", name)
	}

	expanded, err := keys.Expand(event)
	if err != nil {
		return err
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	av[TypeAttribute] = &types.AttributeValueMemberS{Value: name}

	_, err = p.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &p.table,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}
