//go:build xscope_unchecked

package xscope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omeyang/xambient/pkg/context/xscope"
)

func TestUncheckedReturnsNil(t *testing.T) {
	type uncheckedCtx struct{}

	assert.False(t, xscope.Checked())
	assert.Nil(t, xscope.Local[uncheckedCtx]())
	assert.Nil(t, xscope.Global[uncheckedCtx]())
	assert.Nil(t, xscope.Top[uncheckedCtx]())
}
