package db

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-rental/pkg/types"
)

var bookingColumns = map[string]string{
	"status":  "b.status",
	"unit_id": "b.unit_id",
}

func TestApplyListParams(t *testing.T) {
	filter := types.Filter{
		Filter:         map[string]interface{}{"status": "ongoing,completed", "password": "x"},
		Sort:           map[string]string{"unit_id": "desc"},
		Search:         "E-1",
		Limit:          10,
		Offset:         20,
		WithPagination: true,
	}

	builder := sq.Select("b.id").From("bookings b")
	sql, args, err := ApplyListParams(builder, filter, bookingColumns, []string{"u.code"}, "b.id DESC").
		PlaceholderFormat(sq.Dollar).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT b.id FROM bookings b WHERE b.status IN ($1,$2) AND (u.code ILIKE $3) ORDER BY b.unit_id DESC LIMIT 10 OFFSET 20", sql)
	assert.Equal(t, []interface{}{"ongoing", "completed", "%E-1%"}, args)
}

func TestApplyListParams_DefaultOrderWithoutPagination(t *testing.T) {
	builder := sq.Select("id").From("faults")
	sql, args, err := ApplyListParams(builder, types.Filter{}, nil, nil, "reported_at DESC", "id DESC").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM faults ORDER BY reported_at DESC, id DESC", sql)
	assert.Empty(t, args)
}
