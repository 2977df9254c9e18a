// Package styling resolves atomic utility class names such as mt-4 or
// bg-color-primary into CSS declarations.
//
// A Table holds ordered rule groups, each rule pairing a literal or regular
// expression matcher with a transform. Resolution is a pure function of the
// class name and the table, so a Table can be shared between goroutines.
// The Generator adds variants (strict:, breakpoints) and renders a Sheet.
package styling
