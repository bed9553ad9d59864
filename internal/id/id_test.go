package id_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examhall/backend/internal/id"
)

func TestGenerateID_Unique(t *testing.T) {
	a := id.GenerateID()
	b := id.GenerateID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.True(t, id.Valid(a))
}

func TestValid_RejectsGarbage(t *testing.T) {
	assert.False(t, id.Valid(""))
	assert.False(t, id.Valid("not-an-id"))
}
