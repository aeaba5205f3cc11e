package pack

import (
	"io"
)

// codecError carries an error raised by errPanic or errAssert up to
// errRecover.  Any other panic keeps unwinding.
type codecError struct {
	err error
}

func errPanic(err error) {
	if err != nil {
		panic(codecError{err})
	}
}

func errAssert(cond bool, err error) {
	if !cond {
		panic(codecError{err})
	}
}

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case codecError:
		*err = ex.err
	default:
		panic(ex)
	}
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
