package pixkey

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Scenarios(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		kind    Kind
		phone   PhoneType
		display string
	}{
		{name: "cpf third digit not nine", input: "12345678901", kind: CPF, display: "123.456.789-01"},
		{name: "mobile", input: "11998765432", kind: Phone, phone: Mobile, display: "(11) 99876-5432"},
		{name: "landline", input: "1133334444", kind: Phone, phone: Landline, display: "(11) 3333-4444"},
		{name: "cnpj", input: "12345678000195", kind: CNPJ, display: "12.345.678/0001-95"},
		{name: "masked cnpj", input: "12.345.678/0001-95", kind: CNPJ, display: "12.345.678/0001-95"},
		{name: "masked mobile", input: "(11) 99876-5432", kind: Phone, phone: Mobile, display: "(11) 99876-5432"},
		{name: "ddd ten is cpf", input: "10912345678", kind: CPF, display: "109.123.456-78"},
		{name: "email lower-cased", input: "Joao.Silva@Banco.COM", kind: Email, display: "joao.silva@banco.com"},
		{name: "email wins over digits", input: "12345678901@pix.com", kind: Email, display: "12345678901@pix.com"},
		{name: "uuid", input: "123e4567-e89b-12d3-a456-426614174000", kind: Random, display: "123e4567-e89b-12d3-a456-426614174000"},
		{name: "upper-case uuid", input: "123E4567-E89B-12D3-A456-426614174000", kind: Random, display: "123E4567-E89B-12D3-A456-426614174000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Classify(tc.input)
			assert.True(t, res.Matched)
			assert.Equal(t, tc.kind, res.Kind)
			assert.Equal(t, tc.phone, res.Phone)
			assert.Equal(t, tc.display, res.Display)
		})
	}
}

func TestClassify_NoRuleMatches(t *testing.T) {
	inputs := []string{"abc", "123412341234@pix", "12345", "not a key at all"}

	for _, in := range inputs {
		res := New().Classify(in)
		assert.Equal(t, Unknown, res.Kind, in)
		assert.False(t, res.Matched, in)
		assert.Empty(t, res.Rule, in)
		assert.Equal(t, in, res.Display, "unknown input is displayed unchanged")

		res = New(WithFallback(FallbackRandom)).Classify(in)
		assert.Equal(t, Random, res.Kind, in)
		assert.False(t, res.Matched, "fallback results are never reported as matched")
	}
}

func TestClassify_FourteenDigitsAreCNPJ(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	for i := 0; i < 500; i++ {
		in := randomDigits(rng, 14)
		assert.Equal(t, CNPJ, Classify(in).Kind, in)
	}
}

func TestClassify_ElevenDigitsArePhoneOrCPF(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		in := randomDigits(rng, 11)
		if i%3 == 0 {
			// force the mobile shape often enough to exercise both branches
			in = in[:2] + "9" + in[3:]
		}
		ddd := int(in[0]-'0')*10 + int(in[1]-'0')

		res := Classify(in)
		if ddd >= 11 && ddd <= 99 && in[2] == '9' {
			assert.Equal(t, Phone, res.Kind, in)
			assert.Equal(t, Mobile, res.Phone, in)
		} else {
			assert.Equal(t, CPF, res.Kind, in)
		}
	}
}

func TestClassify_UUIDShapeIsAlwaysRandom(t *testing.T) {
	inputs := []string{
		"aaaaaaaa-aaaa-aaaa-aa12-345678901234", // 14 digits
		"aaaaaaaa-aaaa-aaaa-aaa1-234567890123", // 13 digits
		"bbbbbbbb-bbbb-bbbb-bbbb-b12345678901", // 11 digits, third digit 3
		"cccccccc-cccc-cccc-cccc-cc1198765432", // 10 digits
		"dddddddd-dddd-dddd-dddd-d11998765432", // 11 digits, mobile shape
		"12345678-1234-1234-1234-123456789012",
	}
	for i := 0; i < 200; i++ {
		inputs = append(inputs, uuid.NewString())
	}

	for _, in := range inputs {
		assert.Equal(t, Random, Classify(in).Kind, in)
	}
}

func TestDefaultRules_Order(t *testing.T) {
	var names []string
	for _, r := range DefaultRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"email", "cnpj", "mobile", "cpf", "landline", "random"}, names)
}

func TestRules_Individually(t *testing.T) {
	assert.True(t, IsEmail("a@b.co", ""))
	assert.False(t, IsEmail("a @b.co", ""))
	assert.False(t, IsEmail("a@b", ""))

	assert.True(t, IsMobile("11998765432", "11998765432"))
	assert.False(t, IsMobile("11898765432", "11898765432"))
	assert.False(t, IsMobile("09998765432", "09998765432"))
	assert.False(t, IsMobile("1199876543", "1199876543"))

	assert.True(t, IsRandom("123e4567-e89b-12d3-a456-426614174000", ""))
	assert.False(t, IsRandom("123e4567e89b12d3a456426614174000", ""))
}

func TestWithRules_CustomTable(t *testing.T) {
	c := New(WithRules([]Rule{{Name: "everything", Kind: Email, Match: func(string, string) bool { return true }}}))
	res := c.Classify("ABC")
	assert.Equal(t, Email, res.Kind)
	assert.Equal(t, "everything", res.Rule)
	assert.Equal(t, "abc", res.Display)
}

func TestParseFallback(t *testing.T) {
	f, err := ParseFallback("")
	require.NoError(t, err)
	assert.Equal(t, FallbackUnknown, f)

	f, err = ParseFallback(" RANDOM ")
	require.NoError(t, err)
	assert.Equal(t, FallbackRandom, f)

	_, err = ParseFallback("cpf")
	assert.Error(t, err)
}

func TestKind_WireNameAndParse(t *testing.T) {
	assert.Equal(t, "TELEFONE", Phone.WireName())
	assert.Equal(t, "ALEATORIA", Random.WireName())
	assert.Equal(t, "", Unknown.WireName())
	assert.False(t, Unknown.Known())

	for _, k := range []Kind{CPF, CNPJ, Email, Phone, Random} {
		parsed, err := ParseKind(k.WireName())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)

		parsed, err = ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("boleto")
	assert.Error(t, err)
}

func randomDigits(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + rng.Intn(10))
	}
	return string(b)
}

func ExampleClassify() {
	res := Classify("11998765432")
	fmt.Println(res.Kind, res.Phone, res.Display)
	// Output: PHONE mobile (11) 99876-5432
}
