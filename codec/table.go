/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dispatch/errors"
	"github.com/suparena/dispatch/tag"
)

// DDBFunc decodes a raw DynamoDB item into a tagged value.
type DDBFunc func(item map[string]types.AttributeValue) (tag.Value, error)

// JSONFunc decodes a JSON document into a tagged value.
type JSONFunc func(data []byte) (tag.Value, error)

// Format names a wire format a binding covers.
type Format string

const (
	// FormatDDB selects the DynamoDB attribute-map format.
	FormatDDB Format = "ddb"

	// FormatJSON selects the JSON document format.
	FormatJSON Format = "json"
)

// Table maps wire names (like the EntityType attribute "RATING") to decoders,
// and tag identities back to wire names for the encoding side. A Table is
// safe for concurrent use; it is typically populated during initialization
// by generated code.
type Table struct {
	mu    sync.RWMutex
	ddb   map[string]DDBFunc
	json  map[string]JSONFunc
	names map[tag.ID]string
}

// NewTable creates an empty decoder table.
func NewTable() *Table {
	return &Table{
		ddb:   make(map[string]DDBFunc),
		json:  make(map[string]JSONFunc),
		names: make(map[tag.ID]string),
	}
}

// Default is the table generated code registers into. Applications that
// prefer explicit wiring can construct their own Table and ignore it.
var Default = NewTable()

// RegisterDDB registers a DynamoDB decoder under the given wire name.
// Registering a name twice returns a DuplicateDecoderError.
func (t *Table) RegisterDDB(name string, fn DDBFunc) error {
	if err := validate(name, fn == nil); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.ddb[name]; exists {
		return errors.NewDuplicateDecoderError(name)
	}
	t.ddb[name] = fn
	return nil
}

// RegisterJSON registers a JSON decoder under the given wire name.
// Registering a name twice returns a DuplicateDecoderError.
func (t *Table) RegisterJSON(name string, fn JSONFunc) error {
	if err := validate(name, fn == nil); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.json[name]; exists {
		return errors.NewDuplicateDecoderError(name)
	}
	t.json[name] = fn
	return nil
}

// LookupDDB returns the DynamoDB decoder registered under name, or a
// NoDecoderError when the name is unknown.
func (t *Table) LookupDDB(name string) (DDBFunc, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	fn, exists := t.ddb[name]
	if !exists {
		return nil, errors.NewNoDecoderError(name)
	}
	return fn, nil
}

// LookupJSON returns the JSON decoder registered under name, or a
// NoDecoderError when the name is unknown.
func (t *Table) LookupJSON(name string) (JSONFunc, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	fn, exists := t.json[name]
	if !exists {
		return nil, errors.NewNoDecoderError(name)
	}
	return fn, nil
}

// DecodeItem decodes a raw DynamoDB item through the decoder registered
// under name. Unknown names yield a NoDecoderError; a decoder that runs and
// fails yields a DecodeError wrapping its cause.
func (t *Table) DecodeItem(name string, item map[string]types.AttributeValue) (tag.Value, error) {
	fn, err := t.LookupDDB(name)
	if err != nil {
		return tag.Value{}, err
	}
	v, err := fn(item)
	if err != nil {
		return tag.Value{}, errors.NewDecodeError(name, err)
	}
	return v, nil
}

// DecodeJSON decodes a JSON document through the decoder registered under
// name. Unknown names yield a NoDecoderError; a decoder that runs and fails
// yields a DecodeError wrapping its cause.
func (t *Table) DecodeJSON(name string, data []byte) (tag.Value, error) {
	fn, err := t.LookupJSON(name)
	if err != nil {
		return tag.Value{}, err
	}
	v, err := fn(data)
	if err != nil {
		return tag.Value{}, errors.NewDecodeError(name, err)
	}
	return v, nil
}

// NameFor returns the wire name bound to the given tag identity. The
// binding is recorded by Bind; decoders registered directly through
// RegisterDDB or RegisterJSON carry no reverse mapping.
func (t *Table) NameFor(id tag.ID) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	name, exists := t.names[id]
	return name, exists
}

// Names returns all wire names with at least one registered decoder, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	set := make(map[string]struct{}, len(t.ddb)+len(t.json))
	for name := range t.ddb {
		set[name] = struct{}{}
	}
	for name := range t.json {
		set[name] = struct{}{}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset removes every registration. It exists for tests that share the
// Default table across cases.
func (t *Table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ddb = make(map[string]DDBFunc)
	t.json = make(map[string]JSONFunc)
	t.names = make(map[tag.ID]string)
}

// bind atomically registers the supplied decoders and the reverse name
// mapping, so a duplicate in any target format leaves the table untouched.
func (t *Table) bind(name string, id tag.ID, ddbFn DDBFunc, jsonFn JSONFunc) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ddbFn != nil {
		if _, exists := t.ddb[name]; exists {
			return errors.NewDuplicateDecoderError(name)
		}
	}
	if jsonFn != nil {
		if _, exists := t.json[name]; exists {
			return errors.NewDuplicateDecoderError(name)
		}
	}

	if ddbFn != nil {
		t.ddb[name] = ddbFn
	}
	if jsonFn != nil {
		t.json[name] = jsonFn
	}
	t.names[id] = name
	return nil
}

func validate(name string, nilFn bool) error {
	if name == "" {
		return errors.ErrInvalidName
	}
	if nilFn {
		return errors.ErrNilDecoder
	}
	return nil
}
