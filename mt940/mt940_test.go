package mt940

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testdata = "../testdata/mt940"

func readFixture(t testing.TB, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(testdata, name))
	require.NoError(t, err)
	return string(data)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields(":20:3996-1234567890\r\n:25:DABADKKK/1234567890\r\n")
	require.NoError(t, err)
	require.Equal(t, []Field{
		{Tag: "20", Value: "3996-1234567890"},
		{Tag: "25", Value: "DABADKKK/1234567890"},
	}, fields)

	fields, err = ParseFields(":86:F.M.T.\nV/TESTE KUNDEN   \n\n:62F:C091020DKK3851379,47\n-\n")
	require.NoError(t, err)
	require.Equal(t, []Field{
		{Tag: "86", Value: "F.M.T.\nV/TESTE KUNDEN"},
		{Tag: "62F", Value: "C091020DKK3851379,47"},
	}, fields)

	fields, err = ParseFields(":86:first\r\n-\r\nsecond\r\n-}\r\n:62F:C091020DKK1,00\r\n-\r\n\r\n:20:X\r\n-")
	require.NoError(t, err)
	require.Equal(t, []Field{
		{Tag: "86", Value: "first\n-\nsecond"},
		{Tag: "62F", Value: "C091020DKK1,00"},
		{Tag: "20", Value: "X"},
	}, fields)

	_, err = ParseFields("garbage\r\n:20:X\r\n")
	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	require.Equal(t, 1, syntaxErr.Line)
}

func TestParseAmount(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"380115,12", "380115.12"},
		{"380115,1", "380115.1"},
		{"380115,", "380115"},
		{"0,12", "0.12"},
		{"00,12", "0.12"},
		{"001,12", "1.12"},
	} {
		got, err := parseAmount(tc.in)
		require.NoError(t, err, tc.in)
		require.True(t, got.Equal(decimal.RequireFromString(tc.want)), "%s: got %s", tc.in, got)
	}

	for in, reason := range map[string]string{
		"380115": "no comma",
		"1,2,3":  "too many commas",
		",12":    "not a number",
		"12a,00": "not a number",
	} {
		_, err := parseAmount(in)
		var amountErr *AmountParseError
		require.True(t, errors.As(err, &amountErr), in)
		require.Equal(t, reason, amountErr.Reason, in)
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("100318")
	require.NoError(t, err)
	require.Equal(t, date(2010, time.March, 18), got)

	_, err = parseDate("160230")
	require.Equal(t, &DateParseError{Year: "2016", Month: "02", Day: "30"}, err)

	_, err = parseDate("161301")
	require.Error(t, err)
}

func TestParseBalance(t *testing.T) {
	b, err := parseBalance(Field{Tag: "60M", Value: "D100318EUR380115,12"})
	require.NoError(t, err)
	require.True(t, b.Intermediate)
	require.Equal(t, Debit, b.DebitOrCredit)
	require.Equal(t, date(2010, time.March, 18), b.Date)
	require.Equal(t, "EUR", b.Currency)
	require.Equal(t, "380115.12", b.Amount.String())

	for _, v := range []string{"X100318EUR1,00", "C100318E1R1,00", "C100318EUR", "C100318EUR100"} {
		_, err := parseBalance(Field{Tag: "62F", Value: v})
		require.Error(t, err, v)
	}
}

func TestParseStatementLine(t *testing.T) {
	l, err := parseStatementLine(Field{Tag: "61", Value: "110701CN50,00NDISNONREF"})
	require.NoError(t, err)
	require.Nil(t, l.EntryDate)
	require.Equal(t, ExtCredit, l.DebitOrCredit)
	require.Equal(t, "N", l.FundsCode)
	require.Equal(t, "50", l.Amount.String())
	require.Equal(t, "DIS", l.TransactionType)
	require.Equal(t, "NONREF", l.CustomerRef)

	l, err = parseStatementLine(Field{Tag: "61", Value: "1801020103RD1234,5FTRFREF-1//BANKREF\nDetails here"})
	require.NoError(t, err)
	require.Equal(t, date(2018, time.January, 2), l.ValueDate)
	require.Equal(t, date(2018, time.January, 3), *l.EntryDate)
	require.Equal(t, ExtReversalDebit, l.DebitOrCredit)
	require.Empty(t, l.FundsCode)
	require.Equal(t, "1234.5", l.Amount.String())
	require.Equal(t, "TRF", l.TransactionType)
	require.Equal(t, "REF-1", l.CustomerRef)
	require.Equal(t, "BANKREF", l.BankRef)
	require.Equal(t, "Details here", l.SupplementaryDetails)

	for _, v := range []string{
		"180102",
		"180102X10,00NMSCREF",
		"180102D10,00",
		"180102D10,00NXYZREF",
		"180102D10,00NMSC",
	} {
		_, err := parseStatementLine(Field{Tag: "61", Value: v})
		require.Error(t, err, v)
	}
}

func TestParseStatementNumber(t *testing.T) {
	no, seq, err := parseStatementNumber(Field{Tag: "28C", Value: "00014/001"})
	require.NoError(t, err)
	require.Equal(t, "00014", no)
	require.Equal(t, "001", seq)

	no, seq, err = parseStatementNumber(Field{Tag: "28C", Value: "7"})
	require.NoError(t, err)
	require.Equal(t, "7", no)
	require.Empty(t, seq)

	_, _, err = parseStatementNumber(Field{Tag: "28C", Value: "123456/1"})
	require.Error(t, err)
}

func TestParseDanskeBank(t *testing.T) {
	messages, err := Parse(readFixture(t, "danskebank/MT940_DK_Example.sta"))
	require.NoError(t, err)
	require.Len(t, messages, 2)

	m := messages[0]
	require.Equal(t, "3996-1234567890", m.TransactionRefNo)
	require.Equal(t, "DABADKKK/1234567890", m.AccountID)
	require.Equal(t, "00014", m.StatementNo)
	require.Equal(t, "001", m.SequenceNo)
	require.Equal(t, Credit, m.OpeningBalance.DebitOrCredit)
	require.Equal(t, date(2009, time.October, 19), m.OpeningBalance.Date)
	require.Equal(t, "DKK", m.OpeningBalance.Currency)
	require.Equal(t, "3859701.48", m.OpeningBalance.Amount.String())
	require.Equal(t,
		"For your inform. IBAN no.: DK5030001234567890\nDABADKKK\n1234567890\n"+
			"DANSKE BANK                        HOLMENS KANAL 2-12",
		m.Information)

	require.Len(t, m.StatementLines, 2)
	l := m.StatementLines[0]
	require.Equal(t, date(2009, time.October, 20), l.ValueDate)
	require.Equal(t, date(2009, time.October, 20), *l.EntryDate)
	require.Equal(t, ExtDebit, l.DebitOrCredit)
	require.Equal(t, "K", l.FundsCode)
	require.Equal(t, "5312.5", l.Amount.String())
	require.Equal(t, "MSC", l.TransactionType)
	require.Equal(t, "DBT.teste kunden", l.CustomerRef)
	require.Equal(t, "F.M.T.\nV/TESTE KUNDEN\nHOLMENS KANAL 2-12\n1192  KOBENHAVN H", l.Information)

	require.Equal(t, "3851379.47", m.ClosingBalance.Amount.String())
	require.NotNil(t, m.ClosingAvailableBalance)
	require.Equal(t, date(2009, time.October, 20), m.ClosingAvailableBalance.Date)
	require.Empty(t, m.ForwardAvailableBalance)

	m = messages[1]
	require.Equal(t, "00015", m.StatementNo)
	require.Len(t, m.StatementLines, 3)
	require.Equal(t, ExtCredit, m.StatementLines[0].DebitOrCredit)
	require.Equal(t, "CHG", m.StatementLines[1].TransactionType)
	require.Equal(t, "KORTKOB 19.10 KOBENHAVN", m.StatementLines[2].Information)
	require.Len(t, m.ForwardAvailableBalance, 1)
	require.Equal(t, date(2009, time.October, 22), m.ForwardAvailableBalance[0].Date)
}

func TestParseShortStatement(t *testing.T) {
	messages, err := Parse(readFixture(t, "danskebank/MT940_FI_Example.sta"))
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "EUR", messages[0].ClosingBalance.Currency)
	require.Nil(t, messages[0].ClosingAvailableBalance)
	require.Equal(t, "Kortti-ostos", messages[0].StatementLines[0].Information)
}

func TestParseSpecialCases(t *testing.T) {
	_, err := Parse(readFixture(t, "special-cases/february_30.sta"))
	var dateErr *DateParseError
	require.True(t, errors.As(err, &dateErr))
	require.Equal(t, DateParseError{Year: "2016", Month: "02", Day: "30"}, *dateErr)

	_, err = Parse(readFixture(t, "special-cases/incomplete_tag61.sta"))
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	require.Equal(t, "61", fieldErr.Tag)

	_, err = Parse(readFixture(t, "special-cases/invalid_statement.sta"))
	var requiredErr *RequiredTagNotFoundError
	require.True(t, errors.As(err, &requiredErr))
	require.Equal(t, "20", requiredErr.Tag)

	_, err = Parse(readFixture(t, "special-cases/overly_long_details.sta"))
	require.True(t, errors.As(err, &fieldErr))
	require.Equal(t, "86", fieldErr.Tag)
	require.Contains(t, err.Error(), "?33g Erhebung?34992?60000000012345 BIC: BYLADEMM")

	_, err = Parse(readFixture(t, "special-cases/unexpected_tag.sta"))
	var unexpectedErr *UnexpectedTagError
	require.True(t, errors.As(err, &unexpectedErr))
	require.Equal(t, UnexpectedTagError{Current: "28C", Last: "20", Expected: []string{"21", "25"}}, *unexpectedErr)

	_, err = Parse(readFixture(t, "special-cases/unknown_tag.sta"))
	var unknownErr *UnknownTagError
	require.True(t, errors.As(err, &unknownErr))
	require.Equal(t, "12", unknownErr.Tag)
}

func TestParseIncomplete(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)

	_, err = Parse(":20:REF\r\n:25:ACCOUNT\r\n")
	var requiredErr *RequiredTagNotFoundError
	require.True(t, errors.As(err, &requiredErr))
	require.Equal(t, "28C", requiredErr.Tag)

	_, err = Parse(":20:REF\r\n:25:ACCOUNT\r\n:28C:1\r\n:60F:C100318EUR1,00\r\n:61:100318D1,00NMSCREF\r\n")
	require.True(t, errors.As(err, &requiredErr))
	require.Equal(t, "62", requiredErr.Tag)
}

func TestParseTrailer(t *testing.T) {
	input := ":20:REF\n:25:ACCOUNT\n:28C:1\n:60F:C100318EUR1,00\n:62F:C100318EUR1,00\n:86:closing note\n:86:more\n:64:C100318EUR1,00\n"
	_, err := Parse(input)
	var unexpectedErr *UnexpectedTagError
	require.True(t, errors.As(err, &unexpectedErr))
	require.Equal(t, []string{"86", "20"}, unexpectedErr.Expected)

	messages, err := Parse(input[:len(input)-len(":64:C100318EUR1,00\n")])
	require.NoError(t, err)
	require.Equal(t, "closing note\nmore", messages[0].Information)
}

func TestParseMisplacedMessageStart(t *testing.T) {
	const rest = ":25:ACCOUNT\n:28C:1\n:60F:C100318EUR1,00\n:62F:C100318EUR1,00\n"

	_, err := Parse(":20:A\n:20:B\n" + rest)
	var unexpectedErr *UnexpectedTagError
	require.True(t, errors.As(err, &unexpectedErr))
	require.Equal(t, UnexpectedTagError{Current: "20", Last: "20", Expected: []string{"21", "25"}}, *unexpectedErr)

	_, err = Parse(":20:A\n:25:ACCOUNT\n:28C:1\n:60F:C100318EUR1,00\n:20:B\n" + rest)
	require.True(t, errors.As(err, &unexpectedErr))
	require.Equal(t, UnexpectedTagError{Current: "20", Last: "60F", Expected: bodyTags}, *unexpectedErr)

	for _, closing := range []string{"", ":64:C100318EUR1,00\n", ":65:C100318EUR1,00\n", ":86:note\n"} {
		messages, err := Parse(":20:A\n" + rest + closing + ":20:B\n" + rest)
		require.NoError(t, err, closing)
		require.Len(t, messages, 2, closing)
		require.Equal(t, "B", messages[1].TransactionRefNo)
	}

	fields, err := ParseFields(":20:A\n" + rest + ":20:B\n" + rest)
	require.NoError(t, err)
	_, err = NewMessage(fields)
	require.ErrorIs(t, err, errSecondMessage)
}

func TestSanitize(t *testing.T) {
	require.Equal(t, "hallo wass ist los", Sanitize("hällö waß íst lös"))
	for in, want := range map[string]string{
		"ä": "a", "ö": "o", "ú": "u", "é": "e", "å": "a", "á": "a",
		"ß": "ss", "ó": "o", "í": "i", "ë": "e", "=": ".", "!": ".",
		"Ø": "O", "€": ".", "abc/-?:().,'+{} \r\n": "abc/-?:().,'+{} \r\n",
	} {
		require.Equal(t, want, Sanitize(in), in)
	}
}

func TestSanitizeParses(t *testing.T) {
	input := readFixture(t, "danskebank/MT940_DK_Example.sta")
	require.Equal(t, input, Sanitize(input))

	messages, err := Parse(Sanitize(":20:REF\r\n:25:ACCOUNT\r\n:28C:1\r\n:60F:C100318EUR1,00\r\n:86:Grüße aus Köln!\r\n:62F:C100318EUR1,00\r\n"))
	require.NoError(t, err)
	require.Equal(t, "Grusse aus Koln.", messages[0].Information)
}

func BenchmarkParse(b *testing.B) {
	input := readFixture(b, "danskebank/MT940_DK_Example.sta")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseSanitize(b *testing.B) {
	input := readFixture(b, "danskebank/MT940_DK_Example.sta")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(Sanitize(input)); err != nil {
			b.Fatal(err)
		}
	}
}
