package optional_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minaretapp/minaret/internal/optional"
)

func TestOptional(t *testing.T) {
	t.Run("new optional has a value", func(t *testing.T) {
		o := optional.New(42)
		assert.False(t, o.IsEmpty())
		v, err := o.Value()
		if assert.NoError(t, err) {
			assert.Equal(t, 42, v)
		}
	})
	t.Run("zero value is empty", func(t *testing.T) {
		var o optional.Optional[int]
		assert.True(t, o.IsEmpty())
		_, err := o.Value()
		assert.ErrorIs(t, err, optional.ErrIsEmpty)
	})
	t.Run("can set and clear", func(t *testing.T) {
		var o optional.Optional[string]
		o.Set("alpha")
		assert.Equal(t, "alpha", o.ValueOrZero())
		o.Clear()
		assert.True(t, o.IsEmpty())
		assert.Equal(t, "", o.ValueOrZero())
	})
	t.Run("fallbacks", func(t *testing.T) {
		var empty optional.Optional[int]
		assert.Equal(t, 7, empty.ValueOrFallback(7))
		assert.Equal(t, 0, empty.ValueOrZero())
		assert.Equal(t, 42, optional.New(42).ValueOrFallback(7))
	})
	t.Run("string representations", func(t *testing.T) {
		var empty optional.Optional[float64]
		assert.Equal(t, "<empty>", empty.String())
		assert.Equal(t, "1.5", optional.New(1.5).String())
		assert.Equal(t, "?", empty.StringFunc("?", func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		}))
		assert.Equal(t, "1.5", optional.New(1.5).StringFunc("?", func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		}))
	})
}

func TestOptionalJSON(t *testing.T) {
	type payload struct {
		Latitude optional.Optional[float64] `json:"latitude"`
	}
	t.Run("can round trip a value", func(t *testing.T) {
		b, err := json.Marshal(payload{Latitude: optional.New(30.0444)})
		if assert.NoError(t, err) {
			var got payload
			if assert.NoError(t, json.Unmarshal(b, &got)) {
				assert.InDelta(t, 30.0444, got.Latitude.ValueOrZero(), 0.001)
			}
		}
	})
	t.Run("empty marshals as null", func(t *testing.T) {
		b, err := json.Marshal(payload{})
		if assert.NoError(t, err) {
			assert.JSONEq(t, `{"latitude": null}`, string(b))
		}
	})
	t.Run("null unmarshals as empty", func(t *testing.T) {
		var got payload
		if assert.NoError(t, json.Unmarshal([]byte(`{"latitude": null}`), &got)) {
			assert.True(t, got.Latitude.IsEmpty())
		}
	})
}

func TestOptionalConversions(t *testing.T) {
	t.Run("can convert between numeric optionals", func(t *testing.T) {
		got := optional.ConvertNumeric[int, float64](optional.New(3))
		assert.InDelta(t, 3.0, got.ValueOrZero(), 0.001)
		empty := optional.ConvertNumeric[int, float64](optional.Optional[int]{})
		assert.True(t, empty.IsEmpty())
	})
	t.Run("can convert sql null floats", func(t *testing.T) {
		o := optional.FromNullFloat64(sql.NullFloat64{Float64: 1.5, Valid: true})
		assert.InDelta(t, 1.5, o.ValueOrZero(), 0.001)
		assert.True(t, optional.FromNullFloat64(sql.NullFloat64{}).IsEmpty())
		n := optional.ToNullFloat64(o)
		assert.True(t, n.Valid)
		assert.False(t, optional.ToNullFloat64(optional.Optional[float64]{}).Valid)
	})
}
