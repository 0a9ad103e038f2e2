// Package formula implements a calculator for formulas written the way you'd
// type them into a pocket calculator.
//
// A formula is parsed once into an immutable tree and evaluated with an
// arithmetic, which decides what numbers are. The same tokenizer and parser
// serve every arithmetic: Dynamic uses Number, an exact integer which widens to
// a float when a result is inexact or overflows; Float64, Int64, Complex128,
// Decimal, and BigFloat use a single concrete type throughout.
//
// Whitespace is insignificant. Adjacent terms multiply, so "2(3)", "(2)(3)",
// and "2 sin(3)" are all products, but constants never start an implicit
// product. "-2^2" is "(-2)^2", and "^" groups to the left. "@" stands for the
// answer passed to Eval, which lets a REPL refer to its previous result.
//
// Errors from parsing carry the column of the offending token and match
// either ErrInvalidOperator or ErrUnableToParse with errors.Is. Errors from
// evaluation are *EvalError, which also matches ErrUnableToParse.
package formula
