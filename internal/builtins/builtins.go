// Package builtins implements JAL's five built-in functions (spec §4.3):
// print, len, type, stringify, toNumber. Grounded on the teacher's
// internal/interp/string_helpers.go, which reaches for
// golang.org/x/text/unicode/norm to measure and print strings by Unicode
// grapheme rather than by raw byte count; stringify/len follow the same
// normalize-then-measure idiom here.
package builtins

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jal-lang/jal/internal/errors"
	"github.com/jal-lang/jal/internal/value"
)

// Names lists the built-ins that shadow user function declarations.
var Names = map[string]bool{
	"print":     true,
	"len":       true,
	"type":      true,
	"stringify": true,
	"toNumber":  true,
}

// Call dispatches a built-in invocation. out receives print's output.
func Call(name string, args []value.Value, out io.Writer) (value.Value, error) {
	switch name {
	case "print":
		return callPrint(args, out)
	case "len":
		return callLen(args)
	case "type":
		return callType(args)
	case "stringify":
		return callStringify(args)
	case "toNumber":
		return callToNumber(args)
	default:
		return nil, &errors.RuntimeError{Message: "unknown built-in '" + name + "'"}
	}
}

// callPrint accepts any number of arguments (spec §4.2: "print accepts any
// args and returns void"), stringifies each and joins them with a space.
func callPrint(args []value.Value, out io.Writer) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = stringifyValue(a)
	}
	fmt.Fprintln(out, strings.Join(parts, " "))
	return value.NullValue{}, nil
}

func callLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &errors.RuntimeError{Message: "len() takes exactly one argument"}
	}
	switch v := args[0].(type) {
	case value.StringValue:
		normalized := norm.NFC.String(v.Val)
		count := 0
		for range normalized {
			count++
		}
		return value.NewInt(int64(count)), nil
	case value.ListValue:
		return value.NewInt(int64(len(*v.Elements))), nil
	default:
		return nil, &errors.RuntimeError{Message: "len() requires a list or string argument"}
	}
}

// jalTypeName maps a runtime value to the name JAL's `type()` reports,
// which deliberately differs from value.TypeName's internal Kind names
// ("array"/"boolean" rather than "list"/"bool" — spec §4.2).
func jalTypeName(v value.Value) string {
	switch v.(type) {
	case value.NullValue:
		return "null"
	case value.ListValue:
		return "array"
	case value.BoolValue:
		return "boolean"
	case value.NumberValue:
		return "number"
	case value.StringValue:
		return "string"
	default:
		return "?"
	}
}

func callType(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &errors.RuntimeError{Message: "type() takes exactly one argument"}
	}
	return value.StringValue{Val: jalTypeName(args[0])}, nil
}

func callStringify(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &errors.RuntimeError{Message: "stringify() takes exactly one argument"}
	}
	return value.StringValue{Val: stringifyValue(args[0])}, nil
}

// stringifyValue renders any runtime value as a display string, normalizing
// string payloads to NFC so visually-identical strings with differing
// combining-mark decompositions print the same.
func stringifyValue(v value.Value) string {
	if s, ok := v.(value.StringValue); ok {
		return norm.NFC.String(s.Val)
	}
	return v.String()
}

func callToNumber(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &errors.RuntimeError{Message: "toNumber() takes exactly one argument"}
	}
	switch v := args[0].(type) {
	case value.NumberValue:
		return v, nil
	case value.BoolValue:
		if v.Val {
			return value.NewInt(1), nil
		}
		return value.NewInt(0), nil
	case value.StringValue:
		trimmed := strings.TrimSpace(norm.NFC.String(v.Val))
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return value.NewInt(n), nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, &errors.RuntimeError{Message: "toNumber(): cannot convert \"" + v.Val + "\" to a number"}
		}
		return value.NewFloat(f), nil
	default:
		return nil, &errors.RuntimeError{Message: "toNumber() requires a string, number, or bool argument"}
	}
}
