package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want Value
	}{
		{name: "string", data: `"ON"`, want: StringValue("ON")},
		{name: "number", data: `42`, want: NumberValue(42)},
		{name: "float", data: `1.5`, want: NumberValue(1.5)},
		{name: "bool_true", data: `true`, want: BoolValue(true)},
		{name: "bool_false", data: `false`, want: BoolValue(false)},
		{name: "null", data: `null`, want: Absent()},
		{name: "array_kept_raw", data: `[1,2]`, want: RawValue(json.RawMessage(`[1,2]`))},
		{name: "object_kept_raw", data: `{"a":1}`, want: RawValue(json.RawMessage(`{"a":1}`))},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.data), &v))
			assert.True(t, tt.want.Equal(v), "got %+v want %+v", v, tt.want)
		})
	}
}

func TestValueMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	profile := CaseProfile{
		"province":       StringValue("ON"),
		"age":            NumberValue(34),
		"has_disability": BoolValue(false),
		"tags":           RawValue(json.RawMessage(`["a","b"]`)),
		"missing":        Absent(),
	}

	data, err := json.Marshal(profile)
	require.NoError(t, err)

	var decoded CaseProfile
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.True(t, decoded["province"].Equal(StringValue("ON")))
	assert.True(t, decoded["age"].Equal(NumberValue(34)))
	assert.True(t, decoded["has_disability"].Equal(BoolValue(false)))
	assert.True(t, decoded["tags"].Equal(RawValue(json.RawMessage(`["a","b"]`))))
	assert.Equal(t, KindAbsent, decoded["missing"].Kind)
}

func TestValueIsPresent(t *testing.T) {
	t.Parallel()

	assert.False(t, Absent().IsPresent())
	assert.False(t, StringValue("").IsPresent())
	assert.True(t, StringValue("300-600 hours").IsPresent())
	assert.True(t, NumberValue(0).IsPresent())
	assert.True(t, BoolValue(false).IsPresent())
	assert.False(t, RawValue(json.RawMessage(`null`)).IsPresent())
}

func TestValueDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ON", StringValue("ON").Display())
	assert.Equal(t, "42", NumberValue(42).Display())
	assert.Equal(t, "1.5", NumberValue(1.5).Display())
	assert.Equal(t, "true", BoolValue(true).Display())
	assert.Equal(t, "", Absent().Display())
}
