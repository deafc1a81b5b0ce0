//go:build !xscope_unchecked

package xscope

const checksEnabled = true
