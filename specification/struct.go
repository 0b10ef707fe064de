package specification

import (
	"fmt"
	"go/token"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/zoobzio/sentinel"
)

// TagName is the struct tag read by Struct.
const TagName = "satisfies"

func init() {
	sentinel.Tag(TagName)
}

// Violation names a field rule a candidate failed.
type Violation struct {
	Field string
	Rule  string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Rule
}

// StructSpecification is the conjunction of the rules declared on the fields
// of T with the satisfies tag:
//
//	type Account struct {
//		Email  string   `satisfies:"notblank,email"`
//		Handle string   `satisfies:"fitinto=32,matches=[a-z0-9_]+"`
//		Tags   []string `satisfies:"notnull"`
//	}
//
// Rules are separated by commas and run in declaration order. The supported
// rules are null, notnull, empty and notempty on fields of any kind, and
// blank, notblank, email, fitinto=N and matches=RE on string and []byte
// fields. A matches rule must come last and takes the remainder of the tag.
// Exported nested structs and pointers to structs are scanned too; their
// fields are named with a dotted path and treated as absent when a pointer
// on the path is nil.
type StructSpecification[T any] struct {
	typeName string
	rules    []fieldRule[T]
}

type fieldRule[T any] struct {
	field string
	rule  string
	spec  Specification[T]
}

// Struct builds the specification declared by the tags of T, which must be a
// struct type. An unknown rule, a rule that does not fit its field, or a bad
// argument fails with ErrInvalidArgument; a bad pattern fails with a
// *PatternError.
func Struct[T any]() (*StructSpecification[T], error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, invalidArgument("struct: %s is not a struct type", rt)
	}

	meta := sentinel.Scan[T]()
	s := &StructSpecification[T]{typeName: meta.TypeName}
	if err := buildFieldRules(s, meta, nil, "", map[reflect.Type]bool{rt: true}); err != nil {
		return nil, err
	}
	return s, nil
}

// ForStruct is like Struct but panics when the tags cannot be built.
func ForStruct[T any]() *StructSpecification[T] {
	s, err := Struct[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// IsSatisfiedBy reports whether candidate passes every field rule.
func (s *StructSpecification[T]) IsSatisfiedBy(candidate T) bool {
	for _, r := range s.rules {
		if !r.spec.IsSatisfiedBy(candidate) {
			return false
		}
	}
	return true
}

// Components returns the field rules in declaration order.
func (s *StructSpecification[T]) Components() []Specification[T] {
	out := make([]Specification[T], len(s.rules))
	for i, r := range s.rules {
		out[i] = r.spec
	}
	return out
}

// Violations returns every field rule candidate fails, in declaration order.
func (s *StructSpecification[T]) Violations(candidate T) []Violation {
	var out []Violation
	for _, r := range s.rules {
		if !r.spec.IsSatisfiedBy(candidate) {
			out = append(out, Violation{Field: r.field, Rule: r.rule})
		}
	}
	return out
}

func (s *StructSpecification[T]) String() string {
	parts := make([]string, len(s.rules))
	for i, r := range s.rules {
		parts[i] = r.field + ":" + r.rule
	}
	return s.typeName + "{" + strings.Join(parts, ", ") + "}"
}

// equal compares the declared rules. Every StructSpecification of one T is
// built from the same tags, so this only fails for hand-built values.
func (s *StructSpecification[T]) equal(other Specification[T]) bool {
	o, ok := other.(*StructSpecification[T])
	if !ok {
		return false
	}
	return slices.EqualFunc(s.rules, o.rules, func(a, b fieldRule[T]) bool {
		return a.field == b.field && a.rule == b.rule
	})
}

// buildFieldRules walks the scanned fields, descending into nested structs.
// path holds the struct types being walked, so a type that refers back to
// itself is scanned once rather than forever.
func buildFieldRules[T any](s *StructSpecification[T], meta sentinel.Metadata, parentIndex []int, namePrefix string, path map[reflect.Type]bool) error {
	for _, field := range meta.Fields {
		if !token.IsExported(field.Name) {
			continue
		}
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		if tag, ok := field.Tags[TagName]; ok && tag != "" {
			if err := addFieldRules(s, field.ReflectType, fullIndex, fullName, tag); err != nil {
				return err
			}
		}

		nested, ok := nestedStruct(field.ReflectType)
		if !ok || path[nested] {
			continue
		}
		path[nested] = true
		err := buildFieldRules(s, *scanNestedType(nested), fullIndex, fullName, path)
		delete(path, nested)
		if err != nil {
			return err
		}
	}
	return nil
}

// nestedStruct reports the struct type behind a struct or pointer-to-struct
// field.
func nestedStruct(ft reflect.Type) (reflect.Type, bool) {
	if ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	return ft, ft.Kind() == reflect.Struct
}

// addFieldRules parses one tag and appends its rules.
func addFieldRules[T any](s *StructSpecification[T], ft reflect.Type, index []int, name, tag string) error {
	value := fieldValue[T](index)

	for tag != "" {
		tag = strings.TrimLeft(tag, " ")
		var rule string
		if strings.HasPrefix(tag, "matches=") {
			rule, tag = tag, ""
		} else {
			rule, tag, _ = strings.Cut(tag, ",")
		}
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		spec, err := fieldSpec(ft, value, rule)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		s.rules = append(s.rules, fieldRule[T]{field: name, rule: rule, spec: spec})
	}
	return nil
}

// fieldSpec builds the specification for a single rule.
func fieldSpec[T any](ft reflect.Type, value func(T) any, rule string) (Specification[T], error) {
	key, arg, hasArg := strings.Cut(rule, "=")

	switch key {
	case "null", "notnull", "empty", "notempty":
		if hasArg {
			return nil, invalidArgument("rule %q takes no argument", key)
		}
		var spec Specification[any]
		switch key {
		case "null":
			spec = NullValue[any]()
		case "notnull":
			spec = NotNull[any]()
		case "empty":
			spec = Empty[any]()
		case "notempty":
			spec = Not(Empty[any]())
		}
		return On(value, spec), nil
	}

	isString := ft.Kind() == reflect.String
	isBytes := ft.Kind() == reflect.Slice && ft.Elem().Kind() == reflect.Uint8
	if !isString && !isBytes {
		return nil, invalidArgument("rule %q needs a string or []byte field, got %s", key, ft)
	}
	text := func(candidate T) []byte {
		switch v := value(candidate).(type) {
		case nil:
			return nil
		case []byte:
			return v
		default:
			rv := reflect.ValueOf(v)
			if rv.Kind() == reflect.String {
				return []byte(rv.String())
			}
			return rv.Bytes()
		}
	}

	var spec Specification[[]byte]
	switch key {
	case "blank":
		spec = Blank[[]byte]()
	case "notblank":
		spec = NotBlank[[]byte]()
	case "email":
		spec = ValidEmail[[]byte]()
	case "fitinto":
		limit, err := strconv.Atoi(arg)
		if !hasArg || err != nil {
			return nil, invalidArgument("fitinto needs an integer limit, got %q", arg)
		}
		if isString {
			// Strings are measured in runes.
			return On(func(candidate T) []rune {
				b := text(candidate)
				if b == nil {
					return nil
				}
				return []rune(string(b))
			}, FitInto[[]rune](limit)), nil
		}
		spec = FitInto[[]byte](limit)
	case "matches":
		if !hasArg {
			return nil, invalidArgument("matches needs a pattern")
		}
		m, err := Matches[[]byte](arg)
		if err != nil {
			return nil, err
		}
		spec = m
	default:
		return nil, invalidArgument("unknown rule %q", key)
	}
	return On(text, spec), nil
}

// fieldValue returns a projection reading the field at index, or nil when a
// pointer on the path is nil.
func fieldValue[T any](index []int) func(T) any {
	return func(candidate T) any {
		rv := reflect.ValueOf(&candidate).Elem()
		f, err := rv.FieldByIndexErr(index)
		if err != nil {
			return nil
		}
		return f.Interface()
	}
}

// scanNestedType returns the metadata of a nested struct type, falling back
// to reading the satisfies tags directly when sentinel has not cached it.
// Only the fields buildFieldRules reads are filled in.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return &meta
	}

	meta := sentinel.Metadata{TypeName: rt.Name()}
	for _, sf := range reflect.VisibleFields(rt) {
		if !sf.IsExported() || len(sf.Index) != 1 {
			continue
		}
		tags := map[string]string{}
		if tag, ok := sf.Tag.Lookup(TagName); ok {
			tags[TagName] = tag
		}
		meta.Fields = append(meta.Fields, sentinel.FieldMetadata{
			Name:        sf.Name,
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        tags,
		})
	}
	return &meta
}
