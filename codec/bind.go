/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dispatch/errors"
	"github.com/suparena/dispatch/tag"
)

// DDB builds a DynamoDB decoder that unmarshals items into T and boxes the
// result with tg.
func DDB[T any](tg tag.Tag[T]) DDBFunc {
	return func(item map[string]types.AttributeValue) (tag.Value, error) {
		var payload T
		if err := attributevalue.UnmarshalMap(item, &payload); err != nil {
			return tag.Value{}, err
		}
		return tg.Box(payload), nil
	}
}

// JSON builds a JSON decoder that unmarshals documents into T and boxes the
// result with tg.
func JSON[T any](tg tag.Tag[T]) JSONFunc {
	return func(data []byte) (tag.Value, error) {
		var payload T
		if err := json.Unmarshal(data, &payload); err != nil {
			return tag.Value{}, err
		}
		return tg.Box(payload), nil
	}
}

// Bind registers decoders for tg under the given wire name and records the
// reverse binding used by encoders. With no explicit formats both the
// DynamoDB and JSON formats are bound. A duplicate name in any requested
// format leaves the table unchanged.
//
// Bind is a package-level function because Go methods cannot introduce type
// parameters.
func Bind[T any](tbl *Table, name string, tg tag.Tag[T], formats ...Format) error {
	if name == "" {
		return errors.ErrInvalidName
	}
	if tg.ID().IsZero() {
		return errors.ErrInvalidTag
	}

	if len(formats) == 0 {
		formats = []Format{FormatDDB, FormatJSON}
	}

	var ddbFn DDBFunc
	var jsonFn JSONFunc
	for _, f := range formats {
		switch f {
		case FormatDDB:
			ddbFn = DDB(tg)
		case FormatJSON:
			jsonFn = JSON(tg)
		default:
			return fmt.Errorf("unknown format %q", f)
		}
	}

	return tbl.bind(name, tg.ID(), ddbFn, jsonFn)
}

// MustBind is like Bind but panics on error. It is intended for generated
// registration code running in init functions, where a duplicate wire name
// indicates a build problem rather than a runtime condition.
func MustBind[T any](tbl *Table, name string, tg tag.Tag[T], formats ...Format) {
	if err := Bind(tbl, name, tg, formats...); err != nil {
		panic(fmt.Sprintf("codec: bind %q: %v", name, err))
	}
}
