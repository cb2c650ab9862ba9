package domain

import "errors"

var (
	// Money errors
	ErrInvalidAmount    = errors.New("amount must be a finite number")
	ErrInvalidCurrency  = errors.New("currency must be a 3-letter code")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrInvalidFactor    = errors.New("factor must be a finite number")
	ErrInvalidDivisor   = errors.New("divisor must be a finite non-zero number")

	// Entry errors
	ErrZeroEntryAmount = errors.New("entry amount cannot be zero")

	// Transaction errors
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrForeignEntry           = errors.New("entry belongs to another transaction")
	ErrTooManyEntries         = errors.New("transfer cannot have more than two entries")
	ErrUnbalancedTransfer     = errors.New("transfer entries must sum to zero")
	ErrWrongEntryCount        = errors.New("wrong number of entries for transaction type")
	ErrWrongEntrySign         = errors.New("entry sign does not match transaction type")
	ErrNonPositiveAmount      = errors.New("amount must be positive")
	ErrFutureDate             = errors.New("transaction date cannot be in the future")
	ErrPayeeNotAllowed        = errors.New("transfer cannot have a payee")
	ErrCategoryNotAllowed     = errors.New("transfer cannot have a category")
	ErrPayeeRequired          = errors.New("payee is required")
	ErrCategoryRequired       = errors.New("category is required")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrDuplicateTransaction   = errors.New("transaction already exists")
	ErrAmountTooLarge         = errors.New("amount exceeds maximum")

	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountKind = errors.New("invalid account kind")
	ErrSameAccount        = errors.New("cannot transfer to same account")
	ErrNoPaymentSchedule  = errors.New("account has no payment due date")

	// Payee and category errors
	ErrPayeeNotFound    = errors.New("payee not found")
	ErrCategoryNotFound = errors.New("category not found")

	// Recurrence errors
	ErrInvalidRange          = errors.New("start date is after end date")
	ErrInvalidCadence        = errors.New("invalid recurrence cadence")
	ErrRecurringRuleNotFound = errors.New("recurring rule not found")
	ErrInvalidRecurringRule  = errors.New("invalid recurring rule")

	// Calendar errors
	ErrInvalidDueDay         = errors.New("due day must be between 1 and 28")
	ErrInvalidShiftDirection = errors.New("invalid shift direction")
	ErrNoOpenDayFound        = errors.New("no open day found within shift limit")
	ErrYearOutOfRange        = errors.New("year outside supported Gregorian range")
)
