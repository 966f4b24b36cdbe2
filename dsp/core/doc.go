// Package core holds small numeric and configuration helpers shared by the
// processing packages.
package core
