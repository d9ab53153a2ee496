// Package settings persists the placement tool's properties between runs. It declares the
// accepted range of each numeric property and which properties apply under the current modes.
package settings
