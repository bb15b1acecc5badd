package ledger

import (
	"errors"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

type SelectorKeyString = string
type SelectorValString = string

// DocTypeField is the document attribute that discriminates record kinds.
const DocTypeField = "docType"

const selectorEnvelopeKey = "selector"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

/***** Selector *****/

// Selector is a structured rich-query predicate: a document matches when its discriminant equals
// DocType (if set) AND every field equals its value.
// It is never assembled from strings; engines serialize it with a JSON encoder.
type Selector struct {
	docType SelectorValString
	fields  []SelectorField
}

func (s Selector) DocType() SelectorValString {
	return s.docType
}

func (s Selector) Fields() []SelectorField {
	return s.fields
}

// IsEmpty reports whether the Selector matches every document.
func (s Selector) IsEmpty() bool {
	return s.docType == "" && len(s.fields) == 0
}

// Conditions returns all equality conditions including the discriminant, keyed by attribute name.
func (s Selector) Conditions() map[SelectorKeyString]SelectorValString {
	conditions := make(map[SelectorKeyString]SelectorValString, len(s.fields)+1)

	if s.docType != "" {
		conditions[DocTypeField] = s.docType
	}

	for _, field := range s.fields {
		conditions[field.key] = field.val
	}

	return conditions
}

// MarshalJSON renders the CouchDB rich-query form: {"selector":{"docType":"...","owner":"..."}}.
func (s Selector) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[SelectorKeyString]SelectorValString{
		selectorEnvelopeKey: s.Conditions(),
	})
}

// ContainmentJSON renders only the conditions object, as used by JSONB containment (@>) predicates.
func (s Selector) ContainmentJSON() ([]byte, error) {
	conditionsJSON, err := json.Marshal(s.Conditions())
	if err != nil {
		return nil, errors.Join(ErrEncodingSelectorFailed, err)
	}

	return conditionsJSON, nil
}

// Matches evaluates the Selector against a JSON document for engines without native rich queries.
// Values that are not JSON objects never match. Only string attributes can satisfy a condition.
func (s Selector) Matches(document []byte) bool {
	if len(document) == 0 {
		return false
	}

	var attributes map[string]any
	if err := json.Unmarshal(document, &attributes); err != nil {
		return false
	}

	for key, want := range s.Conditions() {
		got, ok := attributes[key].(string)
		if !ok || got != want {
			return false
		}
	}

	return true
}

/***** SelectorField *****/

type SelectorField struct {
	key SelectorKeyString
	val SelectorValString
}

// F creates a SelectorField requiring the attribute key to equal val.
func F(key SelectorKeyString, val SelectorValString) SelectorField {
	return SelectorField{key: key, val: val}
}

func (sf SelectorField) Key() SelectorKeyString {
	return sf.key
}

func (sf SelectorField) Val() SelectorValString {
	return sf.val
}

/***** SelectorBuilder *****/

// SelectorBuilder builds a generic Selector that engines translate into their native query language,
// e.g. a CouchDB selector, a JSONB containment predicate, or an in-process document match.
// Only conjunctive equality selectors can be built:
//
//   - empty selector (matches every document)
//   - (docType)
//   - (docType AND field AND field...)
//   - (field AND field...)
type SelectorBuilder interface {
	// MatchingDocType restricts the Selector to one record kind.
	MatchingDocType(docType SelectorValString) SelectorBuilderWithConditions

	// MatchingAllFieldsOf starts a Selector without a discriminant condition.
	MatchingAllFieldsOf(field SelectorField, fields ...SelectorField) SelectorBuilderWithConditions

	// MatchingAnyDocument directly creates an empty Selector.
	MatchingAnyDocument() Selector
}

type SelectorBuilderWithConditions interface {
	// AndAllFieldsOf adds one or multiple SelectorField(s) that must all match.
	//
	// It sanitizes the input:
	//	- removing fields with an empty key and fields on the discriminant attribute
	//	- letting a later field replace an earlier one with the same key
	//	- sorting the fields by key
	AndAllFieldsOf(field SelectorField, fields ...SelectorField) SelectorBuilderWithConditions

	// Finalize returns the Selector.
	Finalize() Selector
}

// selectorBuilder implements all the interfaces of SelectorBuilder
type selectorBuilder struct {
	selector Selector
}

// BuildSelector creates a SelectorBuilder which must eventually be finalized with Finalize() or MatchingAnyDocument().
func BuildSelector() SelectorBuilder {
	return selectorBuilder{}
}

func (sb selectorBuilder) MatchingDocType(docType SelectorValString) SelectorBuilderWithConditions {
	sb.selector.docType = docType

	return sb
}

func (sb selectorBuilder) MatchingAllFieldsOf(field SelectorField, fields ...SelectorField) SelectorBuilderWithConditions {
	return sb.AndAllFieldsOf(field, fields...)
}

func (sb selectorBuilder) AndAllFieldsOf(field SelectorField, fields ...SelectorField) SelectorBuilderWithConditions {
	all := make([]SelectorField, 0, len(sb.selector.fields)+len(fields)+1)
	all = append(all, sb.selector.fields...)
	all = append(all, field)
	all = append(all, fields...)

	sb.selector.fields = sb.sanitizeFields(all)

	return sb
}

func (sb selectorBuilder) sanitizeFields(fields []SelectorField) []SelectorField {
	byKey := make(map[SelectorKeyString]SelectorField, len(fields))

	for _, field := range fields {
		if field.key == "" || field.key == DocTypeField {
			continue
		}

		byKey[field.key] = field
	}

	sanitized := make([]SelectorField, 0, len(byKey))
	for _, field := range byKey {
		sanitized = append(sanitized, field)
	}

	slices.SortFunc(sanitized, func(a, b SelectorField) int {
		return strings.Compare(a.key, b.key)
	})

	return sanitized
}

func (sb selectorBuilder) MatchingAnyDocument() Selector {
	return Selector{}
}

func (sb selectorBuilder) Finalize() Selector {
	return sb.selector
}
