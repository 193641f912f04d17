// Package render defines the page renderer contract, per-request render
// options, and helpers shared by form-bearing pages (hidden inputs and
// validation error mapping).
package render
