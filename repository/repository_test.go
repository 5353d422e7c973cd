package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.Equal(t, ErrNotFound, translate(gorm.ErrRecordNotFound))
	assert.Equal(t, ErrNotFound, translate(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)))

	other := errors.New("connection refused")
	assert.Equal(t, other, translate(other))
}
