package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	stack := string(Stack(1))
	assert.True(t, strings.HasPrefix(stack, "github.com/neonflick/goapi/base/utils.TestStack"), stack)
}
