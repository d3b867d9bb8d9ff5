package xa

import (
	"errors"
	"fmt"
)

// ErrorCode - код возврата XA.
type ErrorCode int

const (
	XA_RBROLLBACK  ErrorCode = 100
	XA_RBCOMMFAIL  ErrorCode = 101
	XA_RBDEADLOCK  ErrorCode = 102
	XA_RBINTEGRITY ErrorCode = 103
	XA_RBOTHER     ErrorCode = 104
	XA_RBPROTO     ErrorCode = 105
	XA_RBTIMEOUT   ErrorCode = 106
	XA_RBTRANSIENT ErrorCode = 107

	XA_NOMIGRATE ErrorCode = 9
	XA_HEURHAZ   ErrorCode = 8
	XA_HEURCOM   ErrorCode = 7
	XA_HEURRB    ErrorCode = 6
	XA_HEURMIX   ErrorCode = 5
	XA_RETRY     ErrorCode = 4
	XA_RDONLY    ErrorCode = 3

	XAER_ASYNC   ErrorCode = -2
	XAER_RMERR   ErrorCode = -3
	XAER_NOTA    ErrorCode = -4
	XAER_INVAL   ErrorCode = -5
	XAER_PROTO   ErrorCode = -6
	XAER_RMFAIL  ErrorCode = -7
	XAER_DUPID   ErrorCode = -8
	XAER_OUTSIDE ErrorCode = -9
)

var codeNames = map[ErrorCode]string{
	XA_RBROLLBACK:  "XA_RBROLLBACK",
	XA_RBCOMMFAIL:  "XA_RBCOMMFAIL",
	XA_RBDEADLOCK:  "XA_RBDEADLOCK",
	XA_RBINTEGRITY: "XA_RBINTEGRITY",
	XA_RBOTHER:     "XA_RBOTHER",
	XA_RBPROTO:     "XA_RBPROTO",
	XA_RBTIMEOUT:   "XA_RBTIMEOUT",
	XA_RBTRANSIENT: "XA_RBTRANSIENT",
	XA_NOMIGRATE:   "XA_NOMIGRATE",
	XA_HEURHAZ:     "XA_HEURHAZ",
	XA_HEURCOM:     "XA_HEURCOM",
	XA_HEURRB:      "XA_HEURRB",
	XA_HEURMIX:     "XA_HEURMIX",
	XA_RETRY:       "XA_RETRY",
	XA_RDONLY:      "XA_RDONLY",
	XAER_ASYNC:     "XAER_ASYNC",
	XAER_RMERR:     "XAER_RMERR",
	XAER_NOTA:      "XAER_NOTA",
	XAER_INVAL:     "XAER_INVAL",
	XAER_PROTO:     "XAER_PROTO",
	XAER_RMFAIL:    "XAER_RMFAIL",
	XAER_DUPID:     "XAER_DUPID",
	XAER_OUTSIDE:   "XAER_OUTSIDE",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("XA(%d)", int(c))
}

// IsRollback сообщает, означает ли c откат ветви.
func (c ErrorCode) IsRollback() bool {
	return c >= XA_RBROLLBACK && c <= XA_RBTRANSIENT
}

// IsHeuristic сообщает, означает ли c эвристическое решение менеджера ресурсов.
func (c ErrorCode) IsHeuristic() bool {
	return c >= XA_HEURMIX && c <= XA_HEURHAZ
}

// Error - ошибка менеджера ресурсов.
type Error struct {
	Code  ErrorCode
	Cause error
}

func NewError(code ErrorCode, cause error) *Error {
	return &Error{Code: code, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("xa error %s: %v", e.Code, e.Cause)
	}
	return fmt.Sprintf("xa error %s", e.Code)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is сопоставляет *Error с тем же кодом.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf извлекает код XA из цепочки err.
func CodeOf(err error) (ErrorCode, bool) {
	var xe *Error
	if errors.As(err, &xe) {
		return xe.Code, true
	}
	return 0, false
}
