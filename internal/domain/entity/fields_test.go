package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
)

func TestFields_JSONRoundTripPreservesOrderAndKinds(t *testing.T) {
	when := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	nested := entity.NewFields().
		Set("qty", entity.Int(12)).
		Set("unitPrice", entity.Number(decimal.RequireFromString("19.90")))

	f := entity.NewFields().
		Set("title", entity.String("فاتورة مبيعات")).
		Set("total", entity.Number(decimal.RequireFromString("238.80"))).
		Set("paid", entity.Bool(false)).
		Set("issuedAt", entity.Time(when)).
		Set("note", entity.Null()).
		Set("lines", entity.List(entity.Map(nested))).
		Set("tags", entity.List(entity.String("retail"), entity.String("walk-in")))

	raw, err := json.Marshal(f)
	require.NoError(t, err)

	back := entity.NewFields()
	require.NoError(t, json.Unmarshal(raw, back))

	assert.Equal(t, f.Keys(), back.Keys(), "field order must survive the round trip")

	total, ok := back.Get("total")
	require.True(t, ok)
	d, isNum := total.AsNumber()
	require.True(t, isNum)
	assert.True(t, d.Equal(decimal.RequireFromString("238.80")), "decimal precision must survive")

	issued, _ := back.Get("issuedAt")
	ts, isTime := issued.AsTime()
	require.True(t, isTime, "RFC3339 strings decode as timestamps")
	assert.True(t, ts.Equal(when))

	note, _ := back.Get("note")
	assert.True(t, note.IsNull())

	lines, _ := back.Get("lines")
	items, isList := lines.AsList()
	require.True(t, isList)
	require.Len(t, items, 1)
	line, isMap := items[0].AsMap()
	require.True(t, isMap)
	qty, _ := line.Get("qty")
	n, _ := qty.AsNumber()
	assert.True(t, n.Equal(decimal.NewFromInt(12)))

	assert.True(t, f.Equal(back), "round-tripped fields must compare equal")
}

func TestFields_CloneIsDeep(t *testing.T) {
	inner := entity.NewFields().Set("a", entity.Int(1))
	f := entity.NewFields().Set("nested", entity.Map(inner))

	clone := f.Clone()
	nested, _ := clone.Get("nested")
	m, _ := nested.AsMap()
	m.Set("a", entity.Int(99))

	orig, _ := f.Get("nested")
	om, _ := orig.AsMap()
	v, _ := om.Get("a")
	n, _ := v.AsNumber()
	assert.True(t, n.Equal(decimal.NewFromInt(1)), "mutating a clone must not touch the original")
}

func TestFields_SetReplacesWithoutReordering(t *testing.T) {
	f := entity.NewFields().
		Set("a", entity.Int(1)).
		Set("b", entity.Int(2)).
		Set("a", entity.Int(3))

	assert.Equal(t, []string{"a", "b"}, f.Keys())
	v, _ := f.Get("a")
	n, _ := v.AsNumber()
	assert.True(t, n.Equal(decimal.NewFromInt(3)))
}

func TestValue_EqualDistinguishesKinds(t *testing.T) {
	assert.False(t, entity.String("1").Equal(entity.Int(1)), "string \"1\" is not number 1")
	assert.False(t, entity.Null().Equal(entity.Bool(false)), "null is not false")
	assert.True(t, entity.Int(5).Equal(entity.Number(decimal.RequireFromString("5.0"))),
		"5 and 5.0 are the same decimal")
}
