package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"farmacoplus/internal/domain"
)

const maxQuestion = 1000

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	rePhone = regexp.MustCompile(`^[0-9]{10}$`)
	reDNI   = regexp.MustCompile(`^[0-9]{8}$`)
	reInt   = regexp.MustCompile(`^-?[0-9]+$`)
)

// Rule pairs a check with the message shown when it fails.
type Rule struct {
	OK  func() bool
	Msg string
}

// First evaluates rules in order and returns the first failing message, or
// "" when every rule passes. Later rules are not evaluated.
func First(rules ...Rule) string {
	for _, r := range rules {
		if !r.OK() {
			return r.Msg
		}
	}
	return ""
}

func required(s string) func() bool {
	return func() bool { return strings.TrimSpace(s) != "" }
}

func maxLen(s string, n int) func() bool {
	return func() bool { return utf8.RuneCountInString(s) <= n }
}

func matches(re *regexp.Regexp, s string) func() bool {
	return func() bool { return re.MatchString(s) }
}

func oneOf(s string, allowed []string) func() bool {
	return func() bool {
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}

func nonNegativeDecimal(s string) func() bool {
	return func() bool {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		return err == nil && !d.IsNegative()
	}
}

func nonNegativeInt(s string) func() bool {
	return func() bool {
		s = strings.TrimSpace(s)
		if !reInt.MatchString(s) {
			return false
		}
		n, err := strconv.Atoi(s)
		return err == nil && n >= 0
	}
}

func optionalDate(s string) func() bool {
	return func() bool {
		_, err := domain.ParseTimestamp(s)
		return err == nil
	}
}

// Client checks a client form; "" means valid.
func Client(f domain.ClientForm) string {
	return First(
		Rule{required(f.FirstName), "El nombre es obligatorio"},
		Rule{maxLen(f.FirstName, 100), "El nombre no puede exceder 100 caracteres"},
		Rule{required(f.LastName), "El apellido es obligatorio"},
		Rule{maxLen(f.LastName, 100), "El apellido no puede exceder 100 caracteres"},
		Rule{required(f.Email), "El email es obligatorio"},
		Rule{maxLen(f.Email, 150), "El email no puede exceder 150 caracteres"},
		Rule{matches(reEmail, f.Email), "El formato del email no es válido"},
		Rule{required(f.Phone), "El teléfono es obligatorio"},
		Rule{matches(rePhone, f.Phone), "El teléfono debe tener 10 dígitos"},
		Rule{maxLen(f.Address, 200), "La dirección no puede exceder 200 caracteres"},
		Rule{required(f.NationalID), "El DNI es obligatorio"},
		Rule{matches(reDNI, f.NationalID), "El DNI debe tener 8 dígitos"},
		Rule{required(f.Status), "El estado es obligatorio"},
		Rule{optionalDate(f.BirthDate), "La fecha de nacimiento no es válida"},
	)
}

// Medication checks a medication form; "" means valid.
func Medication(f domain.MedicationForm) string {
	return First(
		Rule{required(f.Name), "El nombre es obligatorio"},
		Rule{maxLen(f.Name, 100), "El nombre no puede exceder 100 caracteres"},
		Rule{required(f.Price), "El precio es obligatorio"},
		Rule{nonNegativeDecimal(f.Price), "El precio debe ser un número mayor o igual a 0"},
		Rule{required(f.Stock), "El stock es obligatorio"},
		Rule{nonNegativeInt(f.Stock), "El stock debe ser un entero mayor o igual a 0"},
		Rule{required(f.MinStock), "El stock mínimo es obligatorio"},
		Rule{nonNegativeInt(f.MinStock), "El stock mínimo debe ser un entero mayor o igual a 0"},
		Rule{optionalDate(f.ExpiresAt), "La fecha de caducidad no es válida"},
		Rule{oneOf(f.Category, domain.MedicationCategories), "La categoría no es válida"},
		Rule{oneOf(f.Status, domain.MedicationStatuses), "El estado no es válido"},
	)
}

// ID validates a backend record id taken from the path.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Page parses a 1-based page number; anything unparsable falls back to 1.
// Range clamping is the pager's job.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Index parses a 0-based history index.
func Index(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Question trims an AI question and enforces a max length.
func Question(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxQuestion {
		return "", false
	}
	return s, true
}
