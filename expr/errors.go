package expr

import "github.com/insee-trevas/vtlengine/verrors"

func unsupportedType(format string, args ...any) *verrors.Error {
	return verrors.New(verrors.UnsupportedType, format, args...)
}

func unsupportedOp(format string, args ...any) *verrors.Error {
	return verrors.New(verrors.UnsupportedOperation, format, args...)
}

func undefinedRef(name string) *verrors.Error {
	return verrors.New(verrors.UndefinedReference, "identifier %q is not bound", name)
}
