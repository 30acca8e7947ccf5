package glerr

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "INVALID_OPERATION", Name(gl.INVALID_OPERATION))
	assert.Equal(t, "0x1234", Name(0x1234))
	assert.Equal(t, "gl: OUT_OF_MEMORY", Error(gl.OUT_OF_MEMORY).Error())
}
