package eth

import "errors"

var (
	ErrTxReverted       = errors.New("transaction reverted")
	ErrUnexpectedOutput = errors.New("unexpected contract output")
	ErrNoPair           = errors.New("pair does not exist")
)
