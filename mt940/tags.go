package mt940

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Balance is an opening (60) or closing (62) balance.
type Balance struct {
	Intermediate  bool
	DebitOrCredit DebitOrCredit
	Date          time.Time
	Currency      string
	Amount        decimal.Decimal
}

// AvailableBalance is a closing (64) or forward (65) available balance.
type AvailableBalance struct {
	DebitOrCredit DebitOrCredit
	Date          time.Time
	Currency      string
	Amount        decimal.Decimal
}

// StatementLine is a single transaction (61) together with the information
// to account owner (86) that follows it.
type StatementLine struct {
	ValueDate            time.Time
	EntryDate            *time.Time
	DebitOrCredit        ExtDebitOrCredit
	FundsCode            string
	Amount               decimal.Decimal
	TransactionType      string
	CustomerRef          string
	BankRef              string
	SupplementaryDetails string
	Information          string
}

// transactionTypes are the SWIFT transaction type identification codes that
// may follow the N or F marker of a statement line.
var transactionTypes = map[string]bool{
	"BNK": true, "BOE": true, "BRF": true, "CAR": true, "CAS": true,
	"CHG": true, "CHK": true, "CLR": true, "CLS": true, "CMI": true,
	"CMN": true, "CMP": true, "CMS": true, "CMT": true, "CMZ": true,
	"COL": true, "COM": true, "CPN": true, "DCR": true, "DDT": true,
	"DIS": true, "DIV": true, "EQA": true, "EXT": true, "FEX": true,
	"INT": true, "LBX": true, "LDP": true, "MAR": true, "MAT": true,
	"MGT": true, "MSC": true, "NWI": true, "ODC": true, "OPT": true,
	"PCH": true, "POP": true, "PRN": true, "REC": true, "RED": true,
	"RIG": true, "RTI": true, "SAL": true, "SEC": true, "SLE": true,
	"STO": true, "STP": true, "SUB": true, "SWP": true, "TCK": true,
	"TCM": true, "TRA": true, "TRF": true, "TRN": true, "UWC": true,
	"VDA": true, "WAR": true,
}

const (
	maxRefLen        = 16
	maxAccountLen    = 35
	maxDetailsLen    = 34
	maxInfoLines     = 6
	maxInfoLineLen   = 65
	maxStatementNo   = 5
	minBalanceLength = 1 + 6 + 3 + 2
)

func parseReference(f Field, max int) (string, error) {
	v := f.Value
	if v == "" || len(v) > max || strings.Contains(v, "\n") {
		return "", fieldErr(f, "bad reference")
	}
	return v, nil
}

// parseStatementNumber parses 28C, "nnnnn[/nnnnn]".
func parseStatementNumber(f Field) (statementNo, sequenceNo string, err error) {
	statementNo, sequenceNo, hasSeq := strings.Cut(f.Value, "/")
	if !validNumber(statementNo) || (hasSeq && !validNumber(sequenceNo)) {
		return "", "", fieldErr(f, "bad statement number")
	}
	return statementNo, sequenceNo, nil
}

func validNumber(s string) bool {
	return s != "" && len(s) <= maxStatementNo && allDigits(s)
}

// parseBalance parses 60M, 60F, 62M and 62F.
func parseBalance(f Field) (Balance, error) {
	dc, date, currency, amount, err := parseBalanceValue(f)
	if err != nil {
		return Balance{}, err
	}
	return Balance{
		Intermediate:  strings.HasSuffix(f.Tag, "M"),
		DebitOrCredit: dc,
		Date:          date,
		Currency:      currency,
		Amount:        amount,
	}, nil
}

// parseAvailableBalance parses 64 and 65.
func parseAvailableBalance(f Field) (AvailableBalance, error) {
	dc, date, currency, amount, err := parseBalanceValue(f)
	if err != nil {
		return AvailableBalance{}, err
	}
	return AvailableBalance{
		DebitOrCredit: dc,
		Date:          date,
		Currency:      currency,
		Amount:        amount,
	}, nil
}

func parseBalanceValue(f Field) (dc DebitOrCredit, date time.Time, currency string, amount decimal.Decimal, err error) {
	v := f.Value
	if len(v) < minBalanceLength {
		err = fieldErr(f, "too short")
		return
	}
	switch DebitOrCredit(v[:1]) {
	case Debit, Credit:
		dc = DebitOrCredit(v[:1])
	default:
		err = fieldErr(f, "bad debit/credit mark")
		return
	}
	if date, err = parseDate(v[1:7]); err != nil {
		return
	}
	currency = v[7:10]
	if !isAlpha(currency[0]) || !isAlpha(currency[1]) || !isAlpha(currency[2]) {
		err = fieldErr(f, "bad currency")
		return
	}
	amount, err = parseAmount(v[10:])
	return
}

// parseStatementLine parses 61:
//
//	YYMMDD[MMDD](D|C|RD|RC)[funds code]amount(N|F)XXXcustomer ref[//bank ref]
//	[supplementary details]
func parseStatementLine(f Field) (StatementLine, error) {
	var l StatementLine
	v, details, _ := strings.Cut(f.Value, "\n")
	if len(details) > maxDetailsLen || strings.Contains(details, "\n") {
		return l, fieldErr(f, "bad supplementary details")
	}
	l.SupplementaryDetails = details

	if len(v) < 6 {
		return l, fieldErr(f, "too short")
	}
	var err error
	if l.ValueDate, err = parseDate(v[:6]); err != nil {
		return l, err
	}
	v = v[6:]

	if len(v) >= 4 && allDigits(v[:4]) {
		entry, err := parseShortDate(v[:4], l.ValueDate)
		if err != nil {
			return l, err
		}
		l.EntryDate = &entry
		v = v[4:]
	}

	switch {
	case strings.HasPrefix(v, "RD"), strings.HasPrefix(v, "RC"):
		l.DebitOrCredit, v = ExtDebitOrCredit(v[:2]), v[2:]
	case strings.HasPrefix(v, "D"), strings.HasPrefix(v, "C"):
		l.DebitOrCredit, v = ExtDebitOrCredit(v[:1]), v[1:]
	default:
		return l, fieldErr(f, "bad debit/credit mark")
	}

	if len(v) > 0 && isAlpha(v[0]) {
		l.FundsCode, v = v[:1], v[1:]
	}

	end := strings.IndexFunc(v, func(r rune) bool {
		return r != ',' && (r < '0' || r > '9')
	})
	if end < 0 {
		return l, fieldErr(f, "incomplete")
	}
	if l.Amount, err = parseAmount(v[:end]); err != nil {
		return l, err
	}
	v = v[end:]

	if len(v) < 4 || (v[0] != 'N' && v[0] != 'F') {
		return l, fieldErr(f, "missing transaction type")
	}
	if !transactionTypes[v[1:4]] {
		return l, fieldErr(f, "invalid transaction type identification code "+v[:4])
	}
	l.TransactionType, v = v[1:4], v[4:]

	customerRef, bankRef, _ := strings.Cut(v, "//")
	if customerRef == "" || len(customerRef) > maxRefLen || len(bankRef) > maxRefLen {
		return l, fieldErr(f, "bad reference")
	}
	l.CustomerRef, l.BankRef = customerRef, bankRef
	return l, nil
}

// parseInformation parses 86, at most six lines of 65 characters.
func parseInformation(f Field) (string, error) {
	lines := strings.Split(f.Value, "\n")
	if len(lines) > maxInfoLines {
		return "", fieldErr(f, "too many lines")
	}
	for _, line := range lines {
		if len(line) > maxInfoLineLen {
			return "", fieldErr(f, "line too long")
		}
	}
	return f.Value, nil
}
