package withdrawal

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

const (
	minBankAccountDigits = 6
	maxBankAccountDigits = 100
	maxNameLength        = 100
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ValidateAmount checks a withdrawal amount against the policy limits
// and the wallet's available balance. Rules are applied in order and
// the first failure wins. A nil return means the amount is acceptable.
func (l WithdrawalLimits) ValidateAmount(amount, maxBalance int64) error {
	switch {
	case amount <= 0:
		return fmt.Errorf("Vui lòng nhập số tiền")
	case amount < l.MinAmount:
		return fmt.Errorf("Số tiền tối thiểu là %s VND", humanize.Comma(l.MinAmount))
	case amount > l.MaxAmount:
		return fmt.Errorf("Số tiền tối đa là %s VND", humanize.Comma(l.MaxAmount))
	case amount > maxBalance:
		return fmt.Errorf("Số tiền vượt quá số dư khả dụng")
	}
	return nil
}

// ValidateAmount applies the default policy limits.
func ValidateAmount(amount, maxBalance int64) error {
	return DefaultLimits().ValidateAmount(amount, maxBalance)
}

// ValidateBankAccount checks a destination account number: required,
// 6 to 100 characters, digits only. Checked in that order.
func ValidateBankAccount(accountNumber string) error {
	switch {
	case accountNumber == "":
		return fmt.Errorf("Vui lòng nhập số tài khoản")
	case len(accountNumber) < minBankAccountDigits:
		return fmt.Errorf("Số tài khoản phải có ít nhất %d chữ số", minBankAccountDigits)
	case len(accountNumber) > maxBankAccountDigits:
		return fmt.Errorf("Số tài khoản không được vượt quá %d ký tự", maxBankAccountDigits)
	case !digitsOnly.MatchString(accountNumber):
		return fmt.Errorf("Số tài khoản chỉ được chứa chữ số")
	}
	return nil
}

// ValidateAccountName checks the account holder name.
func ValidateAccountName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("Vui lòng nhập tên chủ tài khoản")
	case utf8.RuneCountInString(name) > maxNameLength:
		return fmt.Errorf("Tên chủ tài khoản không được vượt quá %d ký tự", maxNameLength)
	}
	return nil
}

// ValidateBankName checks the bank name.
func ValidateBankName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("Vui lòng nhập tên ngân hàng")
	case utf8.RuneCountInString(name) > maxNameLength:
		return fmt.Errorf("Tên ngân hàng không được vượt quá %d ký tự", maxNameLength)
	}
	return nil
}

// FormErrors carries one message per form field. The zero value means
// the form passed validation. Fields are enumerated rather than keyed
// by string so a caller cannot probe for a field that does not exist.
type FormErrors struct {
	Amount            string
	BankAccountNumber string
	BankAccountName   string
	BankName          string
}

// IsValid reports whether every field passed.
func (e FormErrors) IsValid() bool { return e == FormErrors{} }

// ValidateForm runs every field validator independently so the caller
// can surface all failing fields at once, not just the first.
func (l WithdrawalLimits) ValidateForm(f CreateRequest, maxBalance int64) FormErrors {
	var errs FormErrors
	if err := l.ValidateAmount(f.Amount, maxBalance); err != nil {
		errs.Amount = err.Error()
	}
	if err := ValidateBankAccount(f.BankAccountNumber); err != nil {
		errs.BankAccountNumber = err.Error()
	}
	if err := ValidateAccountName(f.BankAccountName); err != nil {
		errs.BankAccountName = err.Error()
	}
	if err := ValidateBankName(f.BankName); err != nil {
		errs.BankName = err.Error()
	}
	return errs
}

// ValidateForm applies the default policy limits.
func ValidateForm(f CreateRequest, maxBalance int64) FormErrors {
	return DefaultLimits().ValidateForm(f, maxBalance)
}
