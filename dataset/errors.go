package dataset

import "github.com/insee-trevas/vtlengine/verrors"

func invalidArg(format string, args ...any) *verrors.Error {
	return verrors.New(verrors.InvalidArgument, format, args...)
}

func structureMismatch(format string, args ...any) *verrors.Error {
	return verrors.New(verrors.StructureMismatch, format, args...)
}
