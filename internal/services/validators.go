package services

import (
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ruralpay/banksim/internal/models"
	"github.com/shopspring/decimal"
)

// Every validator below is total: it returns nil on success or a validation
// *BankError naming the field and the first rule that failed.

var (
	minInitialBalance = decimal.NewFromInt(100)

	validOperators    = []string{"jio", "bsnl", "idea", "airtel"}
	validTravelClass  = []string{"1", "2", "3", "4"}
	validTravelQuotas = []string{"1", "2", "3", "4", "5"}
)

// Month and day may be one or two digits.
const travelDateLayout = "2006-1-2"

// ValidateUsername checks a new username. taken reports whether it is already registered.
func ValidateUsername(username string, taken bool) error {
	if taken {
		return validationError("username", "Username already exists")
	}
	first, _ := utf8.DecodeRuneInString(username)
	if username == "" || !unicode.IsLetter(first) {
		return validationError("username", "Username must be start with a letter")
	}
	if !anyRune(username, unicode.IsDigit) {
		return validationError("username", "Username must contain at least one number")
	}
	if !strings.Contains(username, "_") {
		return validationError("username", "Username must contain an underscore")
	}
	if n := utf8.RuneCountInString(username); n < 6 || n > 20 {
		return validationError("username", "Username length must be between 6 and 20 characters")
	}
	return nil
}

func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return validationError("email", "Invalid email format. Email must be contain '@'")
	}
	if !strings.HasSuffix(email, ".com") {
		return validationError("email", "Invalid email format. Email must be end with '.com'")
	}
	if !anyRune(email, unicode.IsLetter) {
		return validationError("email", "Email must contain at least one letter")
	}
	if !anyRune(email, unicode.IsDigit) {
		return validationError("email", "Email must contain at least one digit")
	}
	// Redundant with the letter check above.
	if !anyRune(email, func(r rune) bool { return unicode.IsLower(r) || unicode.IsUpper(r) }) {
		return validationError("email", "Email must contain at least one upper or lower case letter")
	}
	return nil
}

func ValidatePassword(password string) error {
	if !anyRune(password, unicode.IsUpper) {
		return validationError("password", "Password must contain at least one uppercase letter")
	}
	if !anyRune(password, unicode.IsLower) {
		return validationError("password", "Password must contain at least one lowercase letter")
	}
	if !anyRune(password, unicode.IsDigit) {
		return validationError("password", "Password must contain at least one digit")
	}
	if n := utf8.RuneCountInString(password); n < 8 || n > 15 {
		return validationError("password", "Password length must be between 8 and 15 characters")
	}
	return nil
}

// ValidateMpin only checks the format: the directory holds no MPIN to compare against.
func ValidateMpin(mpin string) error {
	if !allRunes(mpin, unicode.IsDigit) || utf8.RuneCountInString(mpin) != 6 {
		return validationError("mpin", "MPIN must be a 6-digit number")
	}
	return nil
}

// ValidateAccountNumber checks a new account number. exists reports whether it is already in the ledger.
func ValidateAccountNumber(accountNumber string, exists bool) error {
	if exists {
		return validationError("accountNumber", "Account number already exists")
	}
	if !allRunes(accountNumber, unicode.IsDigit) {
		return validationError("accountNumber", "Account number must contain only digits")
	}
	if n := utf8.RuneCountInString(accountNumber); n < 9 || n > 18 {
		return validationError("accountNumber", "Account number length must be between 9 and 18 digits")
	}
	return nil
}

func ValidateAccountHolder(holderName string) error {
	if !allRunes(strings.ReplaceAll(holderName, " ", ""), unicode.IsLetter) {
		return validationError("holderName", "Account holder's name must contain only alphabets")
	}
	return nil
}

// ValidateAccountType accepts the three product types in any letter case.
func ValidateAccountType(accountType string) (models.AccountType, error) {
	t := models.AccountType(strings.ToLower(accountType))
	if !t.Valid() {
		return "", validationError("type", "Invalid account type")
	}
	return t, nil
}

// ValidateInitialBalance parses raw and enforces the opening minimum of 100.
func ValidateInitialBalance(raw string) (decimal.Decimal, error) {
	balance, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, validationError("initialBalance", "Initial balance must be a number")
	}
	if balance.LessThan(minInitialBalance) {
		return decimal.Zero, validationError("initialBalance", "Initial balance must be at least 100")
	}
	return balance, nil
}

// ParseAmount turns a raw amount field into a decimal, reporting garbage as a validation failure.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, validationError(field, "Amount must be a number")
	}
	return amount, nil
}

func ValidateMobileNumber(mobile string) error {
	if utf8.RuneCountInString(mobile) != 10 || !allRunes(mobile, unicode.IsDigit) {
		return validationError("mobileNumber", "Invalid mobile number")
	}
	return nil
}

func ValidateOperator(operator string) error {
	if !slices.Contains(validOperators, strings.ToLower(operator)) {
		return validationError("operator", "Invalid operator")
	}
	return nil
}

// ValidateCustomerID requires three leading letters followed by digits only.
// No total length is enforced, but at least one digit must follow the letters.
func ValidateCustomerID(customerID string) error {
	runes := []rune(customerID)
	split := min(3, len(runes))
	if !allRunes(string(runes[:split]), unicode.IsLetter) || !allRunes(string(runes[split:]), unicode.IsDigit) {
		return validationError("customerId", "Invalid Customer ID")
	}
	return nil
}

func ValidateStationName(field, station string) error {
	if strings.TrimSpace(station) == "" {
		return validationError(field, "Invalid "+stationLabel(field)+" station name")
	}
	return nil
}

// ValidateTravelDate parses a year-month-day date at local midnight and rejects
// it when it falls strictly before now.
func ValidateTravelDate(travelDate string, now time.Time) error {
	date, err := time.ParseInLocation(travelDateLayout, travelDate, now.Location())
	if err != nil || date.Before(now) {
		return validationError("travelDate", "Invalid travel date")
	}
	return nil
}

func ValidateTravelClass(travelClass string) error {
	if !slices.Contains(validTravelClass, travelClass) {
		return validationError("travelClass", "Invalid travel class")
	}
	return nil
}

func ValidateQuota(quota string) error {
	if !slices.Contains(validTravelQuotas, quota) {
		return validationError("quota", "Invalid quota")
	}
	return nil
}

func stationLabel(field string) string {
	if field == "toStation" {
		return "destination"
	}
	return "departure"
}

func anyRune(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if pred(r) {
			return true
		}
	}
	return false
}

// allRunes is false for the empty string.
func allRunes(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}
