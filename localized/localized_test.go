package localized

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringUnmarshalScalar(t *testing.T) {
	var s String
	require.NoError(t, json.Unmarshal([]byte(`"warm hat"`), &s))
	assert.False(t, s.Localized())
	assert.Equal(t, "warm hat", s.Resolve(LangRU))
}

func TestStringUnmarshalMap(t *testing.T) {
	var s String
	require.NoError(t, json.Unmarshal([]byte(`{"en":"hat","ru":"шапка"}`), &s))
	assert.True(t, s.Localized())
	assert.Equal(t, "шапка", s.Resolve(LangRU))
	assert.Equal(t, "hat", s.Resolve(LangEN))
	// missing language falls back to en
	assert.Equal(t, "hat", s.Resolve(LangPL))
}

func TestStringRoundTrip(t *testing.T) {
	for _, raw := range []string{`"hat"`, `{"en":"hat","ua":"шапка"}`} {
		var s String
		require.NoError(t, json.Unmarshal([]byte(raw), &s))
		out, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	}
}

func TestStringValidateRequiresFallback(t *testing.T) {
	withEn := String{PerLang: map[Lang]string{LangEN: "hat"}}
	assert.NoError(t, withEn.Validate())

	withoutEn := String{PerLang: map[Lang]string{LangRU: "шапка"}}
	assert.Error(t, withoutEn.Validate())

	scalar := NewString("hat")
	assert.NoError(t, scalar.Validate())
}

func TestAmountUnmarshalScalar(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`49.9`), &a))
	assert.False(t, a.Localized())
	assert.InDelta(t, 49.9, a.Resolve(LangUA), 1e-9)
}

func TestAmountUnmarshalMap(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`{"en":10,"ru":900,"pl":45}`), &a))
	assert.True(t, a.Localized())
	assert.InDelta(t, 900, a.Resolve(LangRU), 1e-9)
	assert.InDelta(t, 45, a.Resolve(LangPL), 1e-9)
	// missing language falls back to en
	assert.InDelta(t, 10, a.Resolve(LangUA), 1e-9)
}

func TestAmountValidateRequiresFallback(t *testing.T) {
	assert.Error(t, Amount{PerLang: map[Lang]float64{LangRU: 900}}.Validate())
	assert.NoError(t, Amount{PerLang: map[Lang]float64{LangEN: 10}}.Validate())
	assert.NoError(t, NewAmount(10).Validate())
}

func TestScanFromColumn(t *testing.T) {
	var s String
	require.NoError(t, s.Scan([]byte(`{"en":"hat"}`)))
	assert.Equal(t, "hat", s.Resolve(LangEN))

	var a Amount
	require.NoError(t, a.Scan(`{"en":10}`))
	assert.InDelta(t, 10, a.Resolve(LangEN), 1e-9)
}

func TestParseLang(t *testing.T) {
	assert.Equal(t, LangRU, ParseLang("ru"))
	assert.Equal(t, LangEN, ParseLang(""))
	assert.Equal(t, LangEN, ParseLang("de"))
}
