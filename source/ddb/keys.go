/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// KeyMap maps table key attributes to templates expanded from event fields.
//
// Templates may embed {Field} macros that are resolved against the event's
// marshaled attribute values, so a map like
//
//	KeyMap{
//	    "PK": "PLAYER#{PlayerId}",
//	    "SK": "{RegisteredAt}",
//	}
//
// turns an event with PlayerId "p-1" into PK "PLAYER#p-1". Static templates
// (no macros) are copied through unchanged. A macro whose field is missing
// or has a non-scalar value expands to the empty string.
type KeyMap map[string]string

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// Expand resolves every template in the map against the given event.
func (m KeyMap) Expand(event any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event for key expansion: %w", err)
	}

	res := make(map[string]string, len(m))
	for attr, template := range m {
		res[attr] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			field := strings.Trim(macro, "{}")

			val, ok := av[field]
			if !ok {
				return ""
			}

			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				// NULL, binary and set members have no string form here.
				return ""
			}
		})
	}

	return res, nil
}
