package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeleteRecurrenceSQL_KeepsSuccessorLinks(t *testing.T) {
	assert.Contains(t, deleteRecurrenceSQL, "fee_id = $1")
	assert.NotContains(t, deleteRecurrenceSQL, "previous_fee_id")
}
