package domain

// Entry is a single signed movement of money against one account.
// An entry belongs to exactly one Transaction and is never zero.
type Entry struct {
	id            string
	transactionID string
	accountID     string
	amount        Money
}

// NewEntry creates a validated Entry.
func NewEntry(id, transactionID, accountID string, amount Money) (Entry, error) {
	if amount.IsZero() {
		return Entry{}, ErrZeroEntryAmount
	}

	return Entry{
		id:            id,
		transactionID: transactionID,
		accountID:     accountID,
		amount:        amount,
	}, nil
}

func (e Entry) ID() string            { return e.id }
func (e Entry) TransactionID() string { return e.transactionID }
func (e Entry) AccountID() string     { return e.accountID }
func (e Entry) Amount() Money         { return e.amount }

// WithAmount returns a copy of e carrying amount.
func (e Entry) WithAmount(amount Money) (Entry, error) {
	if amount.IsZero() {
		return Entry{}, ErrZeroEntryAmount
	}

	e.amount = amount

	return e, nil
}
