package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ruralpay/banksim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation), "expected a validation error, got %v", err)
	var be *BankError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, field, be.Field)
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		taken    bool
		wantMsg  string
	}{
		{"valid", "ab1_cdef", false, ""},
		{"missing underscore", "abc123", false, "Username must contain an underscore"},
		{"starts with digit", "1ab_cdef", false, "Username must be start with a letter"},
		{"empty", "", false, "Username must be start with a letter"},
		{"no digit", "abc_def", false, "Username must contain at least one number"},
		{"too short", "a1_b", false, "Username length must be between 6 and 20 characters"},
		{"too long", "a1_bcdefghijklmnopqrst", false, "Username length must be between 6 and 20 characters"},
		{"taken", "ab1_cdef", true, "Username already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username, tt.taken)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assertValidationField(t, err, "username")
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jane1@example.com"))

	assert.EqualError(t, ValidateEmail("jane1.example.com"), "Invalid email format. Email must be contain '@'")
	assert.EqualError(t, ValidateEmail("jane1@example.org"), "Invalid email format. Email must be end with '.com'")
	assert.EqualError(t, ValidateEmail("jane@example.com"), "Email must contain at least one digit")
	assertValidationField(t, ValidateEmail(""), "email")
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Secret123"))

	assert.EqualError(t, ValidatePassword("secret123"), "Password must contain at least one uppercase letter")
	assert.EqualError(t, ValidatePassword("SECRET123"), "Password must contain at least one lowercase letter")
	assert.EqualError(t, ValidatePassword("SecretPass"), "Password must contain at least one digit")
	assert.EqualError(t, ValidatePassword("Sec1"), "Password length must be between 8 and 15 characters")
	assert.EqualError(t, ValidatePassword("Secret1234567890"), "Password length must be between 8 and 15 characters")
}

func TestValidateMpin(t *testing.T) {
	assert.NoError(t, ValidateMpin("123456"))
	assertValidationField(t, ValidateMpin("12345"), "mpin")
	assertValidationField(t, ValidateMpin("12345a"), "mpin")
	assertValidationField(t, ValidateMpin(""), "mpin")
}

func TestValidateAccountNumber(t *testing.T) {
	assert.NoError(t, ValidateAccountNumber("123456789", false))
	assert.NoError(t, ValidateAccountNumber("123456789012345678", false))

	assert.EqualError(t, ValidateAccountNumber("12345", false), "Account number length must be between 9 and 18 digits")
	assert.EqualError(t, ValidateAccountNumber("1234567890123456789", false), "Account number length must be between 9 and 18 digits")
	assert.EqualError(t, ValidateAccountNumber("12345678a", false), "Account number must contain only digits")
	assert.EqualError(t, ValidateAccountNumber("123456789", true), "Account number already exists")
	assertValidationField(t, ValidateAccountNumber("", false), "accountNumber")
}

func TestValidateAccountHolder(t *testing.T) {
	assert.NoError(t, ValidateAccountHolder("Jane Doe"))
	assertValidationField(t, ValidateAccountHolder("Jane Doe 2"), "holderName")
	assertValidationField(t, ValidateAccountHolder("   "), "holderName")
}

func TestValidateAccountType(t *testing.T) {
	got, err := ValidateAccountType("Savings")
	require.NoError(t, err)
	assert.Equal(t, models.AccountTypeSavings, got)

	got, err = ValidateAccountType("INVESTMENT")
	require.NoError(t, err)
	assert.Equal(t, models.AccountTypeInvestment, got)

	_, err = ValidateAccountType("current")
	assertValidationField(t, err, "type")
}

func TestValidateInitialBalance(t *testing.T) {
	got, err := ValidateInitialBalance(" 100 ")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("100")))

	_, err = ValidateInitialBalance("99.99")
	assert.EqualError(t, err, "Initial balance must be at least 100")

	_, err = ValidateInitialBalance("lots")
	assertValidationField(t, err, "initialBalance")
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("amount", "12.50")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("12.5")))

	_, err = ParseAmount("amount", "twelve")
	assertValidationField(t, err, "amount")
}

func TestValidateMobileNumberAndOperator(t *testing.T) {
	assert.NoError(t, ValidateMobileNumber("9876543210"))
	assertValidationField(t, ValidateMobileNumber("987654321"), "mobileNumber")
	assertValidationField(t, ValidateMobileNumber("98765432ab"), "mobileNumber")

	for _, op := range []string{"jio", "BSNL", "Idea", "airtel"} {
		assert.NoError(t, ValidateOperator(op), op)
	}
	assertValidationField(t, ValidateOperator("vodafone"), "operator")
}

func TestValidateCustomerID(t *testing.T) {
	valid := []string{"ABC1", "abc123456", "XyZ0"}
	for _, id := range valid {
		assert.NoError(t, ValidateCustomerID(id), id)
	}

	invalid := []string{"", "AB", "ABC", "AB12", "1BC23", "ABC12D", "ABCD123"}
	for _, id := range invalid {
		assertValidationField(t, ValidateCustomerID(id), "customerId")
	}
}

func TestValidateStationName(t *testing.T) {
	assert.NoError(t, ValidateStationName("fromStation", "Mumbai"))
	assert.EqualError(t, ValidateStationName("fromStation", " "), "Invalid departure station name")
	assert.EqualError(t, ValidateStationName("toStation", ""), "Invalid destination station name")
}

func TestValidateTravelDate(t *testing.T) {
	now := time.Date(2030, time.June, 15, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateTravelDate("2030-06-16", now))
	assert.NoError(t, ValidateTravelDate("2031-01-01", now))
	assert.NoError(t, ValidateTravelDate("2030-6-16", now), "single-digit month")
	assert.NoError(t, ValidateTravelDate("2030-7-1", now), "single-digit month and day")

	for _, date := range []string{"2030-06-15", "2030-06-14", "2030-6-14", "16-06-2030", "", "2030-02-30", "2030-006-16"} {
		assertValidationField(t, ValidateTravelDate(date, now), "travelDate")
	}

	midnight := time.Date(2030, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidateTravelDate("2030-06-15", midnight), "today is valid exactly at midnight")
}

func TestValidateTravelClassAndQuota(t *testing.T) {
	for _, c := range []string{"1", "2", "3", "4"} {
		assert.NoError(t, ValidateTravelClass(c))
	}
	assertValidationField(t, ValidateTravelClass("5"), "travelClass")
	assertValidationField(t, ValidateTravelClass(""), "travelClass")

	for _, q := range []string{"1", "2", "3", "4", "5"} {
		assert.NoError(t, ValidateQuota(q))
	}
	assertValidationField(t, ValidateQuota("6"), "quota")
}

func TestBankError_Is(t *testing.T) {
	err := notFoundError("Account does not exist")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}
